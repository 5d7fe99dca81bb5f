package app

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salmankhalil12/Restaurant-Site/internal/config"
)

func testConfig(t *testing.T, environ map[string]string) *config.Config {
	t.Helper()
	if environ == nil {
		environ = map[string]string{}
	}
	cfg, err := config.LoadFrom(environ)
	require.NoError(t, err)
	return cfg
}

func discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

func serve(a *App, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewApp_MemoryBackend(t *testing.T) {
	a, err := NewApp(testConfig(t, nil), discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })

	rec := serve(a, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(a, http.MethodPost, "/api/v1/cart/items/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Delicious Pizza")
}

func TestNewApp_RedisBackendRestoresCart(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("FoodSprintCart", `[{"id":"a1","name":"Pizza","price":9.99,"img":"pizza.png","quantity":2}]`))

	env := map[string]string{
		"STORAGE_BACKEND": "redis",
		"REDIS_HOST":      mr.Host(),
		"REDIS_PORT":      mr.Port(),
	}
	a, err := NewApp(testConfig(t, env), discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })

	rec := serve(a, http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_display":"$19.98"`)

	rec = serve(a, http.MethodPost, "/api/v1/cart/items/a1/increase", "")
	require.Equal(t, http.StatusOK, rec.Code)

	saved, err := mr.Get("FoodSprintCart")
	require.NoError(t, err)
	assert.Contains(t, saved, `"quantity":3`)
}

func TestNewApp_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	port := mr.Port()
	mr.Close()

	_, err := NewApp(testConfig(t, map[string]string{
		"STORAGE_BACKEND": "redis",
		"REDIS_PORT":      port,
	}), discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to redis")
}

func TestNewApp_CustomMenuFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items:\n  - id: s1\n    name: Sushi Roll\n    price: \"11\"\n    category: sushi\n"), 0o600))

	a, err := NewApp(testConfig(t, map[string]string{"MENU_FILE": path}), discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })

	rec := serve(a, http.MethodGet, "/api/v1/menu/categories", "")
	assert.JSONEq(t, `{"data":["sushi"]}`, rec.Body.String())
}

func TestNewApp_EmptyMenuDegradesReadiness(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items: []\n"), 0o600))

	a, err := NewApp(testConfig(t, map[string]string{"MENU_FILE": path}), discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })

	rec := serve(a, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
	assert.Contains(t, rec.Body.String(), "menu has no items")
}

func TestNewApp_MissingMenuFile(t *testing.T) {
	_, err := NewApp(testConfig(t, map[string]string{"MENU_FILE": "/nonexistent/menu.yaml"}), discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load menu")
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t, nil)
	cfg.HTTPPort = freePort(t)

	a, err := NewApp(cfg, discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	url := "http://127.0.0.1:" + strconv.Itoa(cfg.HTTPPort) + "/health/live"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.Listener.Addr().String()
	srv.Close()
	port, err := strconv.Atoi(addr[strings.LastIndex(addr, ":")+1:])
	require.NoError(t, err)
	return port
}
