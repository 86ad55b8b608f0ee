package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alex-pricope/hackathon-judging/api/models"
	"github.com/alex-pricope/hackathon-judging/api/transport"
	"github.com/alex-pricope/hackathon-judging/auth"
	"github.com/alex-pricope/hackathon-judging/logging"
	"github.com/alex-pricope/hackathon-judging/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TeamController struct {
	teamsStorage   storage.TeamStorage
	ratingsStorage storage.RatingStorage
	stateStorage   storage.StateStorage
}

func NewTeamController(teams storage.TeamStorage, ratings storage.RatingStorage, state storage.StateStorage) *TeamController {
	return &TeamController{
		teamsStorage:   teams,
		ratingsStorage: ratings,
		stateStorage:   state,
	}
}

func (c *TeamController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/teams")

	group.GET("", transport.RequireRole(auth.RoleAdmin, auth.RoleJudge), c.getAll)
	group.POST("", transport.RequireRole(auth.RoleAdmin), c.create)
	group.DELETE("/:id", transport.RequireRole(auth.RoleAdmin), c.delete)
}

// @Summary Get all teams in creation order
// @Tags teams
// @Produce json
// @Success 200 {array} models.TeamResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/teams [get]
func (c *TeamController) getAll(g *gin.Context) {
	teams, err := c.teamsStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("TEAM: failed to get all teams: %v", err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not load teams"})
		return
	}

	responses := make([]models.TeamResponse, 0, len(teams))
	for _, t := range teams {
		responses = append(responses, models.TransformTeamFromStorage(t))
	}
	g.JSON(http.StatusOK, responses)
}

// @Summary Create a team
// @Tags teams
// @Accept json
// @Produce json
// @Param team body models.TeamCreateRequest true "Team"
// @Success 201 {object} models.TeamResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/teams [post]
func (c *TeamController) create(g *gin.Context) {
	var req models.TeamCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		logging.Log.Warnf("TEAM: invalid create team request: %v", err)
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request empty name"})
		return
	}

	team := &storage.Team{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: time.Now().UTC(),
	}
	if err := c.teamsStorage.Create(g.Request.Context(), team); err != nil {
		logging.Log.Errorf("TEAM: failed to create team: %v", err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not create team"})
		return
	}

	logging.Log.Infof("TEAM: created team %s (%s)", team.ID, team.Name)
	g.JSON(http.StatusCreated, models.TransformTeamFromStorage(team))
}

// @Summary Delete a team and its ratings
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/teams/{id} [delete]
func (c *TeamController) delete(g *gin.Context) {
	ctx := g.Request.Context()
	id := g.Param("id")

	if _, err := c.teamsStorage.Get(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// A previous delete may have stopped before its ratings were gone.
			if err := c.ratingsStorage.DeleteByTeam(ctx, id); err != nil {
				logging.Log.Errorf("TEAM: failed to sweep ratings of missing team %s: %v", id, err)
			}
			g.JSON(http.StatusNotFound, models.ErrorResponse{Error: "team not found"})
			return
		}
		logging.Log.Errorf("TEAM: failed to get team %s: %v", id, err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not load team"})
		return
	}

	// Team first: if it stays, so do its ratings.
	if err := c.teamsStorage.Delete(ctx, id); err != nil {
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not delete team"})
		return
	}
	if err := c.ratingsStorage.DeleteByTeam(ctx, id); err != nil {
		logging.Log.Errorf("TEAM: deleted team %s but not its ratings: %v", id, err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not delete team ratings"})
		return
	}

	active, err := c.stateStorage.GetActiveTeam(ctx)
	if err == nil && active == id {
		err = c.stateStorage.SetActiveTeam(ctx, "")
	}
	if err != nil {
		logging.Log.Errorf("TEAM: failed to clear active team after deleting %s: %v", id, err)
	}

	g.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
