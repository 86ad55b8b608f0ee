package controllers

import (
	"math"
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

type CriterionController struct {
	storage storage.CriterionStorage
}

func NewCriterionController(s storage.CriterionStorage) *CriterionController {
	return &CriterionController{storage: s}
}

func (c *CriterionController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/criteria")

	group.GET("", transport.RequireRole(auth.RoleAdmin, auth.RoleJudge), c.getAll)
	group.POST("", transport.RequireRole(auth.RoleAdmin), c.create)
	group.DELETE("/:id", transport.RequireRole(auth.RoleAdmin), c.delete)
}

// @Summary Get all criteria
// @Tags criteria
// @Produce json
// @Success 200 {array} models.CriterionResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/criteria [get]
func (c *CriterionController) getAll(g *gin.Context) {
	criteria, err := c.storage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("CRITERION: failed to get all criteria: %v", err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not load criteria"})
		return
	}

	responses := make([]models.CriterionResponse, 0, len(criteria))
	for _, cr := range criteria {
		responses = append(responses, models.TransformCriterionFromStorage(cr))
	}
	g.JSON(http.StatusOK, responses)
}

// @Summary Create a criterion
// @Description maxScore is required; weight is stored for display and used as maxScore when maxScore is absent.
// @Tags criteria
// @Accept json
// @Produce json
// @Param criterion body models.CriterionCreateRequest true "Criterion"
// @Success 201 {object} models.CriterionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/criteria [post]
func (c *CriterionController) create(g *gin.Context) {
	var req models.CriterionCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request empty name"})
		return
	}

	criterion := &storage.Criterion{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: time.Now().UTC(),
	}
	if req.Weight != nil {
		criterion.Weight = *req.Weight
	}
	switch {
	case req.MaxScore != nil:
		criterion.MaxScore = *req.MaxScore
	case req.Weight != nil:
		criterion.MaxScore = *req.Weight
	}

	if criterion.MaxScore <= 0 || math.IsInf(criterion.MaxScore, 0) || math.IsNaN(criterion.MaxScore) {
		logging.Log.Warnf("CRITERION: rejected max score %v", criterion.MaxScore)
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "maxScore must be a positive number"})
		return
	}

	if err := c.storage.Create(g.Request.Context(), criterion); err != nil {
		logging.Log.Errorf("CRITERION: failed to create criterion: %v", err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not create criterion"})
		return
	}
	g.JSON(http.StatusCreated, models.TransformCriterionFromStorage(criterion))
}

// @Summary Delete a criterion
// @Tags criteria
// @Produce json
// @Param id path string true "Criterion ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/criteria/{id} [delete]
func (c *CriterionController) delete(g *gin.Context) {
	if err := c.storage.Delete(g.Request.Context(), g.Param("id")); err != nil {
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not delete criterion"})
		return
	}
	g.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
