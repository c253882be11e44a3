//go:build !integration

package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestNewServer(t *testing.T) {
	server := NewServer(okHandler, "8080")

	require.NotNil(t, server.httpServer)
	assert.Equal(t, ":8080", server.httpServer.Addr)
	assert.Equal(t, 15*time.Second, server.httpServer.ReadTimeout)
	assert.Equal(t, 45*time.Second, server.httpServer.WriteTimeout)
	assert.Equal(t, 60*time.Second, server.httpServer.IdleTimeout)
	assert.Equal(t, 10*time.Second, server.shutdownTimeout)
}

func TestServer_Serve(t *testing.T) {
	server := NewServer(okHandler, "0")
	var hooks []string
	server.OnShutdown(func(context.Context) error {
		hooks = append(hooks, "flush")
		return nil
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Serve(ctx, ln)
	}()

	resp, err := http.Get(fmt.Sprintf("http://%s/", ln.Addr()))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down in time")
	}
	assert.Equal(t, []string{"flush"}, hooks)
}

func TestServer_Run_InvalidAddress(t *testing.T) {
	server := NewServer(okHandler, "invalid-port")

	err := server.Run(context.Background())

	assert.Error(t, err)
}

func TestServer_Shutdown_JoinsHookErrors(t *testing.T) {
	server := NewServer(okHandler, "0")
	errHook := errors.New("disconnect failed")
	server.OnShutdown(func(context.Context) error { return errHook })
	server.OnShutdown(func(context.Context) error { return nil })

	err := server.Shutdown()

	assert.ErrorIs(t, err, errHook)
}
