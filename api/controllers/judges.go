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
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Codes are short, so a collision is possible; retry a few times.
const maxCodeAttempts = 5

type JudgeController struct {
	judgesStorage  storage.JudgeStorage
	ratingsStorage storage.RatingStorage
}

func NewJudgeController(judges storage.JudgeStorage, ratings storage.RatingStorage) *JudgeController {
	return &JudgeController{
		judgesStorage:  judges,
		ratingsStorage: ratings,
	}
}

func (c *JudgeController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/judges", transport.RequireRole(auth.RoleAdmin))

	group.GET("", c.getAll)
	group.POST("", c.create)
	group.DELETE("/:id", c.delete)
}

// @Summary List judges with their login codes
// @Tags judges
// @Produce json
// @Success 200 {array} models.JudgeResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/judges [get]
func (c *JudgeController) getAll(g *gin.Context) {
	judges, err := c.judgesStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("JUDGE: failed to list judges: %v", err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not load judges"})
		return
	}

	responses := make([]models.JudgeResponse, 0, len(judges))
	for _, j := range judges {
		responses = append(responses, models.TransformJudgeFromStorage(j))
	}
	logging.Log.Debugf("JUDGE: listed %d judges", len(responses))
	g.JSON(http.StatusOK, responses)
}

// @Summary Create a judge with a generated login code
// @Tags judges
// @Accept json
// @Produce json
// @Param judge body models.JudgeCreateRequest true "Judge"
// @Success 201 {object} models.JudgeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/judges [post]
func (c *JudgeController) create(g *gin.Context) {
	var req models.JudgeCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request empty name"})
		return
	}

	judge := &storage.Judge{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: time.Now().UTC(),
	}

	for attempt := 1; ; attempt++ {
		code, err := generateJudgeCode()
		if err != nil {
			logging.Log.Errorf("JUDGE: failed to generate code: %v", err)
			g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not generate judge code"})
			return
		}
		judge.SecretID = code

		err = c.judgesStorage.Create(g.Request.Context(), judge)
		if err == nil {
			break
		}
		if errors.Is(err, storage.ErrAlreadyExists) && attempt < maxCodeAttempts {
			logging.Log.Warnf("JUDGE: code collision on attempt %d, retrying", attempt)
			continue
		}
		logging.Log.Errorf("JUDGE: failed to store judge: %v", err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not create judge"})
		return
	}

	logging.Log.Infof("JUDGE: created judge %s (%s)", judge.ID, judge.Name)
	g.JSON(http.StatusCreated, models.TransformJudgeFromStorage(judge))
}

// @Summary Delete a judge and their ratings
// @Tags judges
// @Produce json
// @Param id path string true "Judge ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/judges/{id} [delete]
func (c *JudgeController) delete(g *gin.Context) {
	ctx := g.Request.Context()
	id := g.Param("id")

	if _, err := c.judgesStorage.Get(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			if err := c.ratingsStorage.DeleteByJudge(ctx, id); err != nil {
				logging.Log.Errorf("JUDGE: failed to sweep ratings of missing judge %s: %v", id, err)
			}
			g.JSON(http.StatusNotFound, models.ErrorResponse{Error: "judge not found"})
			return
		}
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not load judge"})
		return
	}

	if err := c.judgesStorage.Delete(ctx, id); err != nil {
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not delete judge"})
		return
	}
	if err := c.ratingsStorage.DeleteByJudge(ctx, id); err != nil {
		logging.Log.Errorf("JUDGE: deleted judge %s but not their ratings: %v", id, err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not delete judge ratings"})
		return
	}
	g.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

func generateJudgeCode() (string, error) {
	code, err := gonanoid.Generate(models.JudgeCodeAlphabet, models.JudgeCodeLength)
	if err != nil {
		return "", err
	}
	return models.JudgeCodePrefix + code, nil
}
