package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nauticalab/confstore/internal/api"
	"github.com/nauticalab/confstore/pkg/config"
)

func startServer(t *testing.T, content, token string) (*httptest.Server, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	file, err := config.NewFile(path, config.WithReporter(config.NopReporter))
	require.NoError(t, err)
	file.Load()
	require.NoError(t, file.Err())

	server, err := api.NewServer(api.ServerConfig{File: file, Token: token, Version: "v1"})
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts, path
}

func TestClient_RoundTrip(t *testing.T) {
	ts, path := startServer(t, "#> Banner\n\n# The port\nport: 8080\n", "s3cret")
	c := NewClient(ClientConfig{BaseURL: ts.URL, Token: "s3cret"})
	ctx := context.Background()

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)

	version, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v1", version.Version)

	value, err := c.GetValue(ctx, "port")
	require.NoError(t, err)
	assert.Equal(t, float64(8080), value.Value)
	assert.Equal(t, "The port", value.Header)

	_, err = c.SetValue(ctx, "server.host", "localhost")
	require.NoError(t, err)
	_, err = c.SetHeader(ctx, "server.host", "Where to bind")
	require.NoError(t, err)
	_, err = c.SetHeader(ctx, "", "New banner")
	require.NoError(t, err)

	header, err := c.GetHeader(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "New banner", header.Header)

	keys, err := c.Keys(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"port", "server", "server.host"}, keys.Keys)

	_, err = c.Save(ctx)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#> New banner\n\n# The port\nport: 8080\nserver:\n  # Where to bind\n  host: localhost\n", string(data))

	_, err = c.DeleteValue(ctx, "port")
	require.NoError(t, err)
	_, err = c.DeleteHeader(ctx, "port")
	require.NoError(t, err)
	_, err = c.Reload(ctx)
	require.NoError(t, err)

	value, err = c.GetValue(ctx, "port")
	require.NoError(t, err, "reload restores the saved value")
	assert.Equal(t, "The port", value.Header)
}

func TestClient_Errors(t *testing.T) {
	ts, _ := startServer(t, "a: 1\n", "s3cret")
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		c := NewClient(ClientConfig{BaseURL: ts.URL})
		_, err := c.GetValue(ctx, "missing")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("missing token", func(t *testing.T) {
		c := NewClient(ClientConfig{BaseURL: ts.URL})
		_, err := c.SetValue(ctx, "a", 2)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 401")
	})

	t.Run("api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(api.ErrorResponse{Error: "Internal Server Error", Message: "disk full", Code: 500})
		}))
		defer server.Close()

		c := NewClient(ClientConfig{BaseURL: server.URL})
		_, err := c.Save(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})
}
