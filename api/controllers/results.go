package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alex-pricope/hackathon-judging/api/models"
	"github.com/alex-pricope/hackathon-judging/api/transport"
	"github.com/alex-pricope/hackathon-judging/auth"
	"github.com/alex-pricope/hackathon-judging/logging"
	"github.com/alex-pricope/hackathon-judging/storage"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type ResultsController struct {
	stores *storage.Stores
}

func NewResultsController(stores *storage.Stores) *ResultsController {
	return &ResultsController{stores: stores}
}

func (c *ResultsController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/api/final-scores", transport.RequireRole(auth.RoleAdmin), c.finalScores)
}

// finalScores godoc
// @Summary Ranked leaderboard
// @Description Teams scored by every judge, ranked by their judge-averaged percentage of the total possible points.
// @Tags results
// @Produce json
// @Success 200 {array} scoring.FinalScore
// @Failure 500 {object} models.ErrorResponse
// @Router /api/final-scores [get]
func (c *ResultsController) finalScores(g *gin.Context) {
	snapshot, err := LoadSnapshot(g.Request.Context(), c.stores)
	if err != nil {
		logging.Log.Errorf("RESULTS: failed to load snapshot: %v", err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not load scores"})
		return
	}

	results := snapshot.FinalScores()
	transport.RankedTeams.Set(float64(len(results)))
	logging.Log.Debugf("RESULTS: ranked %d of %d teams", len(results), len(snapshot.Teams))
	g.JSON(http.StatusOK, results)
}

// LoadSnapshot reads teams, judges, criteria and ratings concurrently. The
// first failure cancels the other reads.
func LoadSnapshot(ctx context.Context, stores *storage.Stores) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		snapshot.Teams, err = stores.Teams.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("load teams: %w", err)
		}
		return nil
	})
	group.Go(func() (err error) {
		snapshot.Judges, err = stores.Judges.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("load judges: %w", err)
		}
		return nil
	})
	group.Go(func() (err error) {
		snapshot.Criteria, err = stores.Criteria.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("load criteria: %w", err)
		}
		return nil
	})
	group.Go(func() (err error) {
		snapshot.Ratings, err = stores.Ratings.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("load ratings: %w", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
