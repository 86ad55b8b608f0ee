package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alex-pricope/hackathon-judging/api/models"
	"github.com/alex-pricope/hackathon-judging/api/transport"
	"github.com/alex-pricope/hackathon-judging/auth"
	"github.com/alex-pricope/hackathon-judging/logging"
	"github.com/alex-pricope/hackathon-judging/storage"
	"github.com/gin-gonic/gin"
)

type ScoreController struct {
	ratingsStorage  storage.RatingStorage
	teamsStorage    storage.TeamStorage
	judgesStorage   storage.JudgeStorage
	criteriaStorage storage.CriterionStorage
}

func NewScoreController(ratings storage.RatingStorage, teams storage.TeamStorage, judges storage.JudgeStorage, criteria storage.CriterionStorage) *ScoreController {
	return &ScoreController{
		ratingsStorage:  ratings,
		teamsStorage:    teams,
		judgesStorage:   judges,
		criteriaStorage: criteria,
	}
}

func (c *ScoreController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/scores", transport.RequireRole(auth.RoleAdmin, auth.RoleJudge))

	group.GET("", c.get)
	group.POST("", c.submit)
}

// get godoc
// @Summary Read submitted scores
// @Description With judgeId and teamId returns one rating or null, with judgeId only that judge's ratings, otherwise every rating. Judges can only read their own.
// @Tags scores
// @Produce json
// @Param judgeId query string false "Judge ID"
// @Param teamId query string false "Team ID"
// @Success 200 {array} models.RatingResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/scores [get]
func (c *ScoreController) get(g *gin.Context) {
	ctx := g.Request.Context()
	judgeID := g.Query("judgeId")
	teamID := g.Query("teamId")

	if claims := transport.Session(g); claims.Role == auth.RoleJudge {
		if judgeID != "" && judgeID != claims.Subject {
			g.JSON(http.StatusForbidden, models.ErrorResponse{Error: "judges can only read their own scores"})
			return
		}
		judgeID = claims.Subject
	}

	switch {
	case judgeID != "" && teamID != "":
		rating, err := c.ratingsStorage.Get(ctx, teamID, judgeID)
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusOK, nil)
			return
		}
		if err != nil {
			g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not load score"})
			return
		}
		g.JSON(http.StatusOK, models.TransformRatingFromStorage(rating))
	case judgeID != "":
		ratings, err := c.ratingsStorage.GetByJudge(ctx, judgeID)
		if err != nil {
			g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not load scores"})
			return
		}
		g.JSON(http.StatusOK, transformRatings(ratings))
	default:
		ratings, err := c.ratingsStorage.GetAll(ctx)
		if err != nil {
			g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not load scores"})
			return
		}
		g.JSON(http.StatusOK, transformRatings(ratings))
	}
}

// submit godoc
// @Summary Submit or replace a judge's scores for a team
// @Description Judges always submit as themselves; admins must name the judge. Each score must belong to a known criterion and lie between 0 and its max score.
// @Tags scores
// @Accept json
// @Produce json
// @Param scores body models.ScoreSubmitRequest true "Scores"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/scores [post]
func (c *ScoreController) submit(g *gin.Context) {
	ctx := g.Request.Context()

	var req models.ScoreSubmitRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request format"})
		return
	}

	claims := transport.Session(g)
	if claims.Role == auth.RoleJudge {
		if req.JudgeID != "" && req.JudgeID != claims.Subject {
			logging.Log.Warnf("SCORE: judge %s tried to submit as %s", claims.Subject, req.JudgeID)
			g.JSON(http.StatusForbidden, models.ErrorResponse{Error: "judges can only submit their own scores"})
			return
		}
		req.JudgeID = claims.Subject
	}
	if req.JudgeID == "" {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "judgeId is required"})
		return
	}

	if _, err := c.teamsStorage.Get(ctx, req.TeamID); err != nil {
		c.respondLookupError(g, "team", err)
		return
	}
	if _, err := c.judgesStorage.Get(ctx, req.JudgeID); err != nil {
		c.respondLookupError(g, "judge", err)
		return
	}

	criteria, err := c.criteriaStorage.GetAll(ctx)
	if err != nil {
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not load criteria"})
		return
	}
	if err := validateScores(req.Scores, criteria); err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	rating := &storage.Rating{
		TeamID:    req.TeamID,
		JudgeID:   req.JudgeID,
		Scores:    req.Scores,
		UpdatedAt: time.Now().UTC(),
	}
	if err := c.ratingsStorage.Upsert(ctx, rating); err != nil {
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not save scores"})
		return
	}

	logging.Log.Infof("SCORE: judge %s scored team %s", rating.JudgeID, rating.TeamID)
	g.JSON(http.StatusCreated, models.SuccessResponse{Success: true})
}

func (c *ScoreController) respondLookupError(g *gin.Context, entity string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		g.JSON(http.StatusNotFound, models.ErrorResponse{Error: entity + " not found"})
		return
	}
	logging.Log.Errorf("SCORE: failed to load %s: %v", entity, err)
	g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not load " + entity})
}

func validateScores(scores map[string]float64, criteria []*storage.Criterion) error {
	maxByID := make(map[string]float64, len(criteria))
	for _, cr := range criteria {
		maxByID[cr.ID] = cr.MaxScore
	}
	for id, v := range scores {
		maxScore, ok := maxByID[id]
		if !ok {
			return fmt.Errorf("unknown criterion %s", id)
		}
		if v < 0 || v > maxScore {
			return fmt.Errorf("score for criterion %s must be between 0 and %g", id, maxScore)
		}
	}
	return nil
}

func transformRatings(ratings []*storage.Rating) []models.RatingResponse {
	responses := make([]models.RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		responses = append(responses, models.TransformRatingFromStorage(r))
	}
	return responses
}
