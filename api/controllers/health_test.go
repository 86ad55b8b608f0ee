package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/alex-pricope/hackathon-judging/api/controllers/testutils"
	"github.com/alex-pricope/hackathon-judging/api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error {
	return errors.New("connection refused")
}

func TestHealth(t *testing.T) {
	t.Run("Happy path - database reachable", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		res := testutils.PerformRequest(router, http.MethodGet, "/api/health", nil, nil)

		require.Equal(t, http.StatusOK, res.Code)
		body := testutils.DecodeJSON[models.HealthResponse](t, res)
		assert.True(t, body.Success)
		assert.False(t, body.Timestamp.IsZero())
	})

	t.Run("Unhappy path - database down", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		NewHealthController(failingPinger{}).RegisterRoutes(router)

		res := testutils.PerformRequest(router, http.MethodGet, "/api/health", nil, nil)

		require.Equal(t, http.StatusServiceUnavailable, res.Code)
		assert.False(t, testutils.DecodeJSON[models.HealthResponse](t, res).Success)
	})
}
