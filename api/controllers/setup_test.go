package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/alex-pricope/hackathon-judging/api/controllers/testutils"
	"github.com/alex-pricope/hackathon-judging/api/models"
	"github.com/alex-pricope/hackathon-judging/api/transport"
	"github.com/alex-pricope/hackathon-judging/auth"
	"github.com/alex-pricope/hackathon-judging/logging"
	"github.com/alex-pricope/hackathon-judging/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const (
	testAdminCode = "ADMIN-TEST"
	testJWTSecret = "0123456789abcdef0123456789abcdef"
)

// setupTestRouter wires every controller to a fresh in-memory database. The
// overrides may swap individual stores; the returned Stores are the originals.
func setupTestRouter(t *testing.T, overrides ...func(*storage.Stores)) (*gin.Engine, *storage.Stores) {
	t.Helper()
	logging.Log = logrus.New()
	logging.Log.SetLevel(logrus.WarnLevel)

	base := testutils.NewSQLiteStores(t)
	wired := *base
	for _, override := range overrides {
		override(&wired)
	}
	stores := &wired
	signer := auth.NewSigner(testJWTSecret, time.Hour)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(transport.SessionMiddleware(signer))

	NewAuthController(stores.Judges, signer, testAdminCode, false, nil).RegisterRoutes(r)
	NewTeamController(stores.Teams, stores.Ratings, stores.State).RegisterRoutes(r)
	NewJudgeController(stores.Judges, stores.Ratings).RegisterRoutes(r)
	NewCriterionController(stores.Criteria).RegisterRoutes(r)
	NewScoreController(stores.Ratings, stores.Teams, stores.Judges, stores.Criteria).RegisterRoutes(r)
	NewActiveTeamController(stores.State, stores.Teams).RegisterRoutes(r)
	NewResultsController(stores).RegisterRoutes(r)
	NewHealthController(stores.Health).RegisterRoutes(r)
	return r, base
}

func adminHeaders(t *testing.T, r *gin.Engine) map[string]string {
	t.Helper()
	return testutils.Login(t, r, testAdminCode)
}

func createTeam(t *testing.T, r *gin.Engine, admin map[string]string, name string) models.TeamResponse {
	t.Helper()
	res := testutils.PerformRequest(r, http.MethodPost, "/api/teams", models.TeamCreateRequest{Name: name}, admin)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	return testutils.DecodeJSON[models.TeamResponse](t, res)
}

func createJudge(t *testing.T, r *gin.Engine, admin map[string]string, name string) models.JudgeResponse {
	t.Helper()
	res := testutils.PerformRequest(r, http.MethodPost, "/api/judges", models.JudgeCreateRequest{Name: name}, admin)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	return testutils.DecodeJSON[models.JudgeResponse](t, res)
}

func createCriterion(t *testing.T, r *gin.Engine, admin map[string]string, name string, maxScore float64) models.CriterionResponse {
	t.Helper()
	res := testutils.PerformRequest(r, http.MethodPost, "/api/criteria",
		models.CriterionCreateRequest{Name: name, MaxScore: &maxScore}, admin)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	return testutils.DecodeJSON[models.CriterionResponse](t, res)
}

func submitScores(t *testing.T, r *gin.Engine, headers map[string]string, req models.ScoreSubmitRequest) {
	t.Helper()
	res := testutils.PerformRequest(r, http.MethodPost, "/api/scores", req, headers)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
}
