//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMongoDB_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	t.Run("connection successful", func(t *testing.T) {
		assert.NotNil(t, db.Client)
		assert.NotNil(t, db.Database)
		assert.Equal(t, logsCollection, db.Logs.Name())
	})

	t.Run("health check", func(t *testing.T) {
		assert.NoError(t, db.HealthCheck(ctx))
	})

	t.Run("set logs ttl is repeatable", func(t *testing.T) {
		require.NoError(t, db.SetLogsTTL(ctx, 24*time.Hour))
		require.NoError(t, db.SetLogsTTL(ctx, 48*time.Hour))

		cursor, err := db.Logs.Indexes().List(ctx)
		require.NoError(t, err)
		var indexes []bson.M
		require.NoError(t, cursor.All(ctx, &indexes))

		var ttl any
		for _, idx := range indexes {
			if idx["name"] == logsTTLIndex {
				ttl = idx["expireAfterSeconds"]
			}
		}
		assert.EqualValues(t, 48*60*60, ttl)
	})

	t.Run("zero ttl is ignored", func(t *testing.T) {
		assert.NoError(t, db.SetLogsTTL(ctx, 0))
	})
}

func TestNewMongoDB_InvalidURI(t *testing.T) {
	_, err := NewMongoDB("not-a-uri", "x")
	assert.Error(t, err)
}
