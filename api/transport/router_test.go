package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouter(t *testing.T) {
	r := NewRouter(RouterOptions{
		GinMode:        gin.TestMode,
		Registry:       NewRegistry(),
		AllowedOrigins: []string{"http://localhost:5173"},
	})
	r.GET("/api/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("Happy path - CORS echoes the origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := serve(req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("Unhappy path - CORS ignores unlisted origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := serve(req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("Happy path - preflight", func(t *testing.T) {
		w := serve(httptest.NewRequest(http.MethodOptions, "/api/ping", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Happy path - metrics count routed requests", func(t *testing.T) {
		serve(httptest.NewRequest(http.MethodGet, "/api/ping", nil))
		w := serve(httptest.NewRequest(http.MethodGet, "/metrics", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `judging_http_requests_total{method="GET",route="/api/ping",status="200"}`)
		assert.Contains(t, w.Body.String(), "go_goroutines")
	})

	t.Run("Unhappy path - unknown route", func(t *testing.T) {
		w := serve(httptest.NewRequest(http.MethodGet, "/nope", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"code": "PAGE_NOT_FOUND", "error": "Not Found"}`, w.Body.String())
	})
}
