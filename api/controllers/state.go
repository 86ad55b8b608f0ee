package controllers

import (
	"errors"
	"net/http"

	"github.com/alex-pricope/hackathon-judging/api/models"
	"github.com/alex-pricope/hackathon-judging/api/transport"
	"github.com/alex-pricope/hackathon-judging/auth"
	"github.com/alex-pricope/hackathon-judging/logging"
	"github.com/alex-pricope/hackathon-judging/storage"
	"github.com/gin-gonic/gin"
)

// ActiveTeamController exposes the team judges are currently scoring.
type ActiveTeamController struct {
	stateStorage storage.StateStorage
	teamsStorage storage.TeamStorage
}

func NewActiveTeamController(state storage.StateStorage, teams storage.TeamStorage) *ActiveTeamController {
	return &ActiveTeamController{
		stateStorage: state,
		teamsStorage: teams,
	}
}

func (c *ActiveTeamController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/active-team")

	group.GET("", transport.RequireRole(auth.RoleAdmin, auth.RoleJudge), c.get)
	group.PUT("", transport.RequireRole(auth.RoleAdmin), c.set)
}

// @Summary Get the active team
// @Tags active-team
// @Produce json
// @Success 200 {object} models.ActiveTeamResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/active-team [get]
func (c *ActiveTeamController) get(g *gin.Context) {
	teamID, err := c.stateStorage.GetActiveTeam(g.Request.Context())
	if err != nil {
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not load active team"})
		return
	}

	resp := models.ActiveTeamResponse{}
	if teamID != "" {
		resp.TeamID = &teamID
	}
	g.JSON(http.StatusOK, resp)
}

// @Summary Set or clear the active team
// @Tags active-team
// @Accept json
// @Produce json
// @Param state body models.ActiveTeamRequest true "Team ID or null"
// @Success 200 {object} models.ActiveTeamResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/active-team [put]
func (c *ActiveTeamController) set(g *gin.Context) {
	ctx := g.Request.Context()

	var req models.ActiveTeamRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request format"})
		return
	}

	teamID := ""
	if req.TeamID != nil && *req.TeamID != "" {
		teamID = *req.TeamID
		if _, err := c.teamsStorage.Get(ctx, teamID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				g.JSON(http.StatusNotFound, models.ErrorResponse{Error: "team not found"})
				return
			}
			g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not load team"})
			return
		}
	}

	if err := c.stateStorage.SetActiveTeam(ctx, teamID); err != nil {
		logging.Log.Errorf("STATE: failed to set active team %q: %v", teamID, err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not set active team"})
		return
	}

	resp := models.ActiveTeamResponse{}
	if teamID != "" {
		resp.TeamID = &teamID
	}
	g.JSON(http.StatusOK, resp)
}
