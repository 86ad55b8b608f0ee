package controllers

import (
	"net/http"
	"time"

	"github.com/alex-pricope/hackathon-judging/api/models"
	"github.com/alex-pricope/hackathon-judging/logging"
	"github.com/alex-pricope/hackathon-judging/storage"
	"github.com/gin-gonic/gin"
)

type HealthController struct {
	pinger storage.Pinger
}

func NewHealthController(p storage.Pinger) *HealthController {
	return &HealthController{pinger: p}
}

func (c *HealthController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/api/health", c.health)
}

// health godoc
// @Summary Check the database connection
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 503 {object} models.HealthResponse
// @Router /api/health [get]
func (c *HealthController) health(g *gin.Context) {
	if err := c.pinger.Ping(g.Request.Context()); err != nil {
		logging.Log.Errorf("HEALTH: database ping failed: %v", err)
		g.JSON(http.StatusServiceUnavailable, models.HealthResponse{
			Success:   false,
			Message:   "Database connection failed",
			Timestamp: time.Now().UTC(),
		})
		return
	}
	g.JSON(http.StatusOK, models.HealthResponse{
		Success:   true,
		Message:   "Database connection successful",
		Timestamp: time.Now().UTC(),
	})
}
