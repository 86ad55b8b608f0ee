package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alex-pricope/hackathon-judging/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireRole(t *testing.T) {
	signer := auth.NewSigner("0123456789abcdef0123456789abcdef", time.Hour)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware(signer))
	r.GET("/admin", RequireRole(auth.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, Session(c).Subject)
	})

	do := func(cookie string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	adminToken, err := signer.Issue(auth.RoleAdmin, auth.AdminSubject, "")
	require.NoError(t, err)
	judgeToken, err := signer.Issue(auth.RoleJudge, "judge-1", "Ada")
	require.NoError(t, err)

	t.Run("Happy path - admin", func(t *testing.T) {
		w := do(adminToken)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, auth.AdminSubject, w.Body.String())
	})

	t.Run("Unhappy path - judge", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, do(judgeToken).Code)
	})

	t.Run("Unhappy path - no cookie", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("").Code)
	})

	t.Run("Unhappy path - garbage cookie", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("not-a-jwt").Code)
	})
}

func TestSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SetSessionCookie(c, "token", 2*time.Hour, true)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "token", cookies[0].Value)
	assert.Equal(t, 7200, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
}
