package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alex-pricope/hackathon-judging/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		StorageConfig: StorageConfig{Driver: storage.DriverSQLite, DatabaseURL: "file::memory:"},
		ServerConfig:  ServerConfig{Port: 0, Env: "local"},
		AuthConfig: AuthConfig{
			AdminCode:       "ADMIN-TEST",
			JWTSecret:       "0123456789abcdef0123456789abcdef",
			SessionTTL:      time.Hour,
			LoginRatePerMin: 1,
			LoginBurst:      2,
		},
	}
}

func TestNewEngine(t *testing.T) {
	conf := testConfig()
	stores, closeStores, err := OpenStores(context.Background(), conf)
	require.NoError(t, err)
	t.Cleanup(closeStores)

	engine := NewEngine(conf, stores)

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "198.51.100.7:5555"
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	t.Run("Happy path - health", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/api/health", "").Code)
	})

	t.Run("Happy path - metrics", func(t *testing.T) {
		w := serve(http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "judging_ranked_teams")
	})

	t.Run("Happy path - swagger is served locally", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/swagger/index.html", "").Code)
	})

	t.Run("Unhappy path - final scores need a session", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(http.MethodGet, "/api/final-scores", "").Code)
	})

	t.Run("Unhappy path - login attempts are throttled", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(http.MethodPost, "/api/auth/login", `{"loginCode":"JUDGE-0000"}`).Code)
		assert.Equal(t, http.StatusUnauthorized, serve(http.MethodPost, "/api/auth/login", `{"loginCode":"JUDGE-0001"}`).Code)
		assert.Equal(t, http.StatusTooManyRequests, serve(http.MethodPost, "/api/auth/login", `{"loginCode":"JUDGE-0002"}`).Code)
	})
}

func TestOpenStores(t *testing.T) {
	t.Run("Unhappy path - unknown driver", func(t *testing.T) {
		conf := testConfig()
		conf.Driver = "oracle"

		_, _, err := OpenStores(context.Background(), conf)
		assert.Error(t, err)
	})
}
