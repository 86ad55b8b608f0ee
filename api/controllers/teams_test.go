package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/alex-pricope/hackathon-judging/api/controllers/testutils"
	"github.com/alex-pricope/hackathon-judging/api/models"
	"github.com/alex-pricope/hackathon-judging/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTeam(t *testing.T) {
	router, _ := setupTestRouter(t)
	admin := adminHeaders(t, router)

	t.Run("Happy path - create team", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/teams", models.TeamCreateRequest{Name: "  Team Alpha "}, admin)

		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
		team := testutils.DecodeJSON[models.TeamResponse](t, res)
		assert.NotEmpty(t, team.ID)
		assert.Equal(t, "Team Alpha", team.Name)
		assert.False(t, team.CreatedAt.IsZero())
	})

	t.Run("Unhappy path - empty name", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/teams", models.TeamCreateRequest{Name: "   "}, admin)

		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Unhappy path - malformed body", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/teams", "not an object", admin)

		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func TestGetAllTeams(t *testing.T) {
	router, _ := setupTestRouter(t)
	admin := adminHeaders(t, router)

	t.Run("Happy path - empty list", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/teams", nil, admin)

		require.Equal(t, http.StatusOK, res.Code)
		assert.JSONEq(t, "[]", res.Body.String())
	})

	t.Run("Happy path - creation order", func(t *testing.T) {
		first := createTeam(t, router, admin, "First")
		second := createTeam(t, router, admin, "Second")

		res := testutils.PerformRequest(router, http.MethodGet, "/api/teams", nil, admin)

		require.Equal(t, http.StatusOK, res.Code)
		teams := testutils.DecodeJSON[[]models.TeamResponse](t, res)
		require.Len(t, teams, 2)
		assert.Equal(t, first.ID, teams[0].ID)
		assert.Equal(t, second.ID, teams[1].ID)
	})
}

func TestDeleteTeam(t *testing.T) {
	router, stores := setupTestRouter(t)
	admin := adminHeaders(t, router)
	ctx := context.Background()

	t.Run("Happy path - cascades ratings and clears active team", func(t *testing.T) {
		team := createTeam(t, router, admin, "Doomed")
		other := createTeam(t, router, admin, "Survivor")
		judge := createJudge(t, router, admin, "Judge")
		criterion := createCriterion(t, router, admin, "Idea", 10)
		for _, teamID := range []string{team.ID, other.ID} {
			submitScores(t, router, admin, models.ScoreSubmitRequest{
				TeamID:  teamID,
				JudgeID: judge.ID,
				Scores:  map[string]float64{criterion.ID: 5},
			})
		}
		res := testutils.PerformRequest(router, http.MethodPut, "/api/active-team", models.ActiveTeamRequest{TeamID: &team.ID}, admin)
		require.Equal(t, http.StatusOK, res.Code)

		res = testutils.PerformRequest(router, http.MethodDelete, "/api/teams/"+team.ID, nil, admin)

		require.Equal(t, http.StatusOK, res.Code, res.Body.String())
		ratings, err := stores.Ratings.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, ratings, 1)
		assert.Equal(t, other.ID, ratings[0].TeamID)

		active, err := stores.State.GetActiveTeam(ctx)
		require.NoError(t, err)
		assert.Empty(t, active)
	})

	t.Run("Unhappy path - unknown team", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodDelete, "/api/teams/missing", nil, admin)

		assert.Equal(t, http.StatusNotFound, res.Code)
	})
}

type failingTeamDelete struct {
	storage.TeamStorage
}

func (failingTeamDelete) Delete(context.Context, string) error {
	return errors.New("write conflict")
}

func TestDeleteTeamOrdering(t *testing.T) {
	ctx := context.Background()

	t.Run("Unhappy path - failed team delete keeps its ratings", func(t *testing.T) {
		router, stores := setupTestRouter(t, func(s *storage.Stores) {
			s.Teams = failingTeamDelete{TeamStorage: s.Teams}
		})
		admin := adminHeaders(t, router)
		team := createTeam(t, router, admin, "Sticky")
		judge := createJudge(t, router, admin, "Judge")
		criterion := createCriterion(t, router, admin, "Idea", 10)
		submitScores(t, router, admin, models.ScoreSubmitRequest{TeamID: team.ID, JudgeID: judge.ID, Scores: map[string]float64{criterion.ID: 4}})

		res := testutils.PerformRequest(router, http.MethodDelete, "/api/teams/"+team.ID, nil, admin)

		assert.Equal(t, http.StatusInternalServerError, res.Code)
		_, err := stores.Teams.Get(ctx, team.ID)
		assert.NoError(t, err)
		ratings, err := stores.Ratings.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, ratings, 1)
	})

	t.Run("Happy path - deleting a missing team sweeps leftover ratings", func(t *testing.T) {
		router, stores := setupTestRouter(t)
		admin := adminHeaders(t, router)
		require.NoError(t, stores.Ratings.Upsert(ctx, &storage.Rating{TeamID: "gone", JudgeID: "j1", Scores: map[string]float64{"c1": 1}}))

		res := testutils.PerformRequest(router, http.MethodDelete, "/api/teams/gone", nil, admin)

		assert.Equal(t, http.StatusNotFound, res.Code)
		ratings, err := stores.Ratings.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, ratings)
	})
}
