package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/alex-pricope/hackathon-judging/api/controllers/testutils"
	"github.com/alex-pricope/hackathon-judging/api/models"
	"github.com/alex-pricope/hackathon-judging/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	router, _ := setupTestRouter(t)
	admin := adminHeaders(t, router)
	judge := createJudge(t, router, admin, "Ada")

	t.Run("Happy path - admin code", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/auth/login", models.LoginRequest{LoginCode: testAdminCode}, nil)

		require.Equal(t, http.StatusOK, res.Code)
		body := testutils.DecodeJSON[models.LoginResponse](t, res)
		assert.True(t, body.Success)
		assert.Equal(t, auth.RoleAdmin, body.Role)
		assert.Nil(t, body.User)

		cookie := res.Header().Get("Set-Cookie")
		assert.Contains(t, cookie, "auth_token=")
		assert.Contains(t, cookie, "HttpOnly")
		assert.Contains(t, cookie, "SameSite=Strict")
	})

	t.Run("Happy path - judge code", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/auth/login", models.LoginRequest{LoginCode: judge.SecretID}, nil)

		require.Equal(t, http.StatusOK, res.Code)
		body := testutils.DecodeJSON[models.LoginResponse](t, res)
		assert.Equal(t, auth.RoleJudge, body.Role)
		require.NotNil(t, body.User)
		assert.Equal(t, judge.ID, body.User.ID)
		assert.Equal(t, "Ada", body.User.Name)
	})

	t.Run("Unhappy path - unknown code", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/auth/login", models.LoginRequest{LoginCode: "JUDGE-NOPE"}, nil)

		assert.Equal(t, http.StatusUnauthorized, res.Code)
		assert.Equal(t, "Invalid login code", testutils.DecodeJSON[models.ErrorResponse](t, res).Error)
		assert.Empty(t, res.Header().Get("Set-Cookie"))
	})

	t.Run("Unhappy path - missing code", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/auth/login", map[string]string{}, nil)

		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func TestSession(t *testing.T) {
	router, _ := setupTestRouter(t)
	admin := adminHeaders(t, router)
	judge := createJudge(t, router, admin, "Grace")

	t.Run("Happy path - admin session", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/auth/session", nil, admin)

		require.Equal(t, http.StatusOK, res.Code)
		body := testutils.DecodeJSON[models.SessionResponse](t, res)
		assert.Equal(t, auth.RoleAdmin, body.Role)
		assert.Equal(t, auth.AdminSubject, body.Subject)
		assert.NotZero(t, body.Expires)
	})

	t.Run("Happy path - judge session", func(t *testing.T) {
		headers := testutils.Login(t, router, judge.SecretID)
		res := testutils.PerformRequest(router, http.MethodGet, "/api/auth/session", nil, headers)

		require.Equal(t, http.StatusOK, res.Code)
		body := testutils.DecodeJSON[models.SessionResponse](t, res)
		assert.Equal(t, auth.RoleJudge, body.Role)
		assert.Equal(t, judge.ID, body.Subject)
		assert.Equal(t, "Grace", body.Name)
	})

	t.Run("Unhappy path - no cookie", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/auth/session", nil, nil)

		assert.Equal(t, http.StatusUnauthorized, res.Code)
		assert.Equal(t, "No active session", testutils.DecodeJSON[models.ErrorResponse](t, res).Error)
	})

	t.Run("Unhappy path - tampered cookie", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/auth/session", nil,
			map[string]string{"Cookie": admin["Cookie"] + "x"})

		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})
}

func TestLogout(t *testing.T) {
	router, _ := setupTestRouter(t)
	admin := adminHeaders(t, router)

	res := testutils.PerformRequest(router, http.MethodPost, "/api/auth/logout", nil, admin)

	require.Equal(t, http.StatusOK, res.Code)
	assert.True(t, testutils.DecodeJSON[models.SuccessResponse](t, res).Success)
	cookie := res.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(cookie, "auth_token=;"), cookie)
	assert.Contains(t, cookie, "Max-Age=0")
}

func TestRoleChecks(t *testing.T) {
	router, _ := setupTestRouter(t)
	admin := adminHeaders(t, router)
	judge := createJudge(t, router, admin, "Linus")
	judgeHeaders := testutils.Login(t, router, judge.SecretID)

	adminOnly := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/teams"},
		{http.MethodDelete, "/api/teams/some-id"},
		{http.MethodGet, "/api/judges"},
		{http.MethodPost, "/api/judges"},
		{http.MethodPost, "/api/criteria"},
		{http.MethodPut, "/api/active-team"},
		{http.MethodGet, "/api/final-scores"},
	}

	for _, tc := range adminOnly {
		t.Run("Unhappy path - anonymous "+tc.method+" "+tc.path, func(t *testing.T) {
			res := testutils.PerformRequest(router, tc.method, tc.path, nil, nil)
			assert.Equal(t, http.StatusUnauthorized, res.Code)
		})
		t.Run("Unhappy path - judge "+tc.method+" "+tc.path, func(t *testing.T) {
			res := testutils.PerformRequest(router, tc.method, tc.path, nil, judgeHeaders)
			assert.Equal(t, http.StatusForbidden, res.Code)
		})
	}

	for _, path := range []string{"/api/teams", "/api/criteria", "/api/active-team", "/api/scores"} {
		t.Run("Happy path - judge reads "+path, func(t *testing.T) {
			res := testutils.PerformRequest(router, http.MethodGet, path, nil, judgeHeaders)
			assert.Equal(t, http.StatusOK, res.Code)
		})
	}
}
