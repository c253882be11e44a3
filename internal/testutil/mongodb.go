//go:build integration

// Package testutil starts the MongoDB container shared by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// MongoImage is the image used for integration tests.
const MongoImage = "mongo:7.0"

// MongoDBContainer wraps a running MongoDB testcontainer.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

// StartMongoDB starts a MongoDB container and resolves its connection string.
func StartMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	container, err := mongodb.Run(ctx, MongoImage)
	if err != nil {
		return nil, fmt.Errorf("start mongodb container: %w", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("mongodb connection string: %w", err)
	}

	return &MongoDBContainer{Container: container, URI: uri}, nil
}

// Terminate stops the container.
func (m *MongoDBContainer) Terminate(ctx context.Context) error {
	if m == nil || m.Container == nil {
		return nil
	}
	if err := m.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminate mongodb container: %w", err)
	}
	return nil
}

var (
	sharedOnce sync.Once
	shared     *MongoDBContainer
	sharedErr  error
)

// RunWithMongoDB starts one container for the whole package, runs the tests and stops it.
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.RunWithMongoDB(context.Background(), m))
//	}
func RunWithMongoDB(ctx context.Context, m *testing.M) int {
	sharedOnce.Do(func() {
		shared, sharedErr = StartMongoDB(ctx)
	})
	if sharedErr != nil {
		_, _ = fmt.Fprintf(os.Stderr, "mongodb container: %v\n", sharedErr)
		return 1
	}

	code := m.Run()

	if err := shared.Terminate(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return code
}

// SharedMongoURI returns the URI of the container started by RunWithMongoDB.
func SharedMongoURI(t testing.TB) string {
	t.Helper()
	if shared == nil {
		t.Fatal("shared mongodb container not started, use RunWithMongoDB in TestMain")
	}
	return shared.URI
}

var dbNameReplacer = strings.NewReplacer("/", "_", "\\", "_", " ", "_", ".", "_")

// DatabaseName derives a unique database name from the running test.
func DatabaseName(t testing.TB) string {
	name := dbNameReplacer.Replace(t.Name())
	if len(name) > 40 {
		name = name[:40]
	}
	return fmt.Sprintf("%s_%d", name, time.Now().UnixNano()%1_000_000)
}
