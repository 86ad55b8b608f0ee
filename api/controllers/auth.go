package controllers

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/alex-pricope/hackathon-judging/api/models"
	"github.com/alex-pricope/hackathon-judging/api/transport"
	"github.com/alex-pricope/hackathon-judging/auth"
	"github.com/alex-pricope/hackathon-judging/logging"
	"github.com/alex-pricope/hackathon-judging/storage"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	judgesStorage storage.JudgeStorage
	signer        *auth.Signer
	adminCode     string
	secureCookie  bool
	limiter       *transport.ClientLimiter
}

func NewAuthController(judges storage.JudgeStorage, signer *auth.Signer, adminCode string, secureCookie bool, limiter *transport.ClientLimiter) *AuthController {
	return &AuthController{
		judgesStorage: judges,
		signer:        signer,
		adminCode:     adminCode,
		secureCookie:  secureCookie,
		limiter:       limiter,
	}
}

func (c *AuthController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/auth")

	if c.limiter != nil {
		group.POST("/login", transport.RateLimitMiddleware(c.limiter), c.login)
	} else {
		group.POST("/login", c.login)
	}
	group.GET("/session", c.session)
	group.POST("/logout", c.logout)
}

// login godoc
// @Summary Log in with a judge code or the admin code
// @Tags auth
// @Accept json
// @Produce json
// @Param login body models.LoginRequest true "Login code"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/auth/login [post]
func (c *AuthController) login(g *gin.Context) {
	var req models.LoginRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "loginCode is required"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.LoginCode), []byte(c.adminCode)) == 1 {
		token, err := c.signer.Issue(auth.RoleAdmin, auth.AdminSubject, "")
		if err != nil {
			logging.Log.Errorf("AUTH: failed to issue admin session: %v", err)
			g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not create session"})
			return
		}
		transport.SetSessionCookie(g, token, c.signer.TTL(), c.secureCookie)
		logging.Log.Infof("AUTH: admin logged in from %s", g.ClientIP())
		g.JSON(http.StatusOK, models.LoginResponse{Success: true, Role: auth.RoleAdmin})
		return
	}

	judge, err := c.judgesStorage.GetBySecret(g.Request.Context(), req.LoginCode)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			logging.Log.Warnf("AUTH: invalid login code from %s", g.ClientIP())
			g.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid login code"})
			return
		}
		logging.Log.Errorf("AUTH: failed to look up judge code: %v", err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not verify login code"})
		return
	}

	token, err := c.signer.Issue(auth.RoleJudge, judge.ID, judge.Name)
	if err != nil {
		logging.Log.Errorf("AUTH: failed to issue judge session: %v", err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "could not create session"})
		return
	}
	transport.SetSessionCookie(g, token, c.signer.TTL(), c.secureCookie)
	logging.Log.Infof("AUTH: judge %s logged in", judge.ID)
	g.JSON(http.StatusOK, models.LoginResponse{
		Success: true,
		Role:    auth.RoleJudge,
		User:    &models.JudgeIdentity{ID: judge.ID, Name: judge.Name},
	})
}

// session godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} models.SessionResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/auth/session [get]
func (c *AuthController) session(g *gin.Context) {
	claims := transport.Session(g)
	if claims == nil {
		g.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "No active session"})
		return
	}
	g.JSON(http.StatusOK, models.TransformClaims(claims))
}

// logout godoc
// @Summary Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /api/auth/logout [post]
func (c *AuthController) logout(g *gin.Context) {
	transport.ClearSessionCookie(g, c.secureCookie)
	g.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
