// Package handler exposes the auth subsystem over HTTP: OAuth
// login/callback, email/password register/login, token refresh, and
// logout. Controllers stay thin; every decision lives in the
// services.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/provider"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/service"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/state"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/logger"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/user"
)

type Handler struct {
	auth  *service.Service
	creds CredentialService
	users user.Store

	frontendURL   string
	secureCookies bool

	log *zap.Logger
}

func NewHandler(
	auth *service.Service,
	creds CredentialService,
	users user.Store,
	frontendURL string,
	secureCookies bool,
) *Handler {
	return &Handler{
		auth:          auth,
		creds:         creds,
		users:         users,
		frontendURL:   frontendURL,
		secureCookies: secureCookies,
		log:           logger.Named("http.auth"),
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/oauth/:provider/login", h.oauthLogin)
	r.GET("/oauth/:provider/callback", h.oauthCallback)
	r.POST("/auth/register", h.register)
	r.POST("/auth/login", h.login)
	r.POST("/auth/refresh", h.refresh)
	r.POST("/auth/logout", h.logout)
}

func (h *Handler) oauthLogin(c *gin.Context) {
	providerName := c.Param("provider")

	authURL, csrfState, err := h.auth.InitiateLogin(providerName)
	if err != nil {
		var unsupported *provider.UnsupportedError
		if errors.As(err, &unsupported) {
			c.JSON(http.StatusBadRequest, gin.H{"error": unsupported.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start login"})
		return
	}

	h.setStateCookie(c, csrfState)
	c.Redirect(http.StatusFound, authURL)
}

func (h *Handler) oauthCallback(c *gin.Context) {
	providerName := c.Param("provider")

	// The state check is a hard precondition: without it the code
	// exchange below could complete a login this server never
	// initiated.
	if !state.Validate(c.Query("state"), h.readStateCookie(c)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid state"})
		return
	}
	h.clearStateCookie(c)

	if errParam := c.Query("error"); errParam != "" {
		h.log.Warn("oauth callback returned error",
			zap.String("provider", providerName),
			zap.String("error", errParam),
			zap.String("desc", c.Query("error_description")),
		)
		h.callbackFailure(c, "oauth_denied")
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing authorization code"})
		return
	}

	pair, expiresIn, err := h.auth.HandleCallback(c.Request.Context(), providerName, code)
	if err != nil {
		var unsupported *provider.UnsupportedError
		if errors.As(err, &unsupported) {
			c.JSON(http.StatusBadRequest, gin.H{"error": unsupported.Error()})
			return
		}
		var provErr *provider.Error
		if errors.As(err, &provErr) {
			h.log.Error("oauth callback failed upstream",
				zap.String("provider", provErr.Provider),
				zap.String("op", provErr.Op),
				zap.Error(provErr.Err),
			)
			h.callbackFailure(c, "oauth_failed")
			return
		}
		h.log.Error("oauth callback failed", zap.Error(err))
		h.callbackFailure(c, "oauth_failed")
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)

	if h.frontendURL != "" {
		c.Redirect(http.StatusFound, h.frontendURL+"/auth/callback?token="+pair.AccessToken)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(pair, expiresIn))
}

// callbackFailure reports a failed callback: a redirect to the
// frontend error page when one is configured, 502 otherwise. No
// partial token is ever issued.
func (h *Handler) callbackFailure(c *gin.Context, reason string) {
	if h.frontendURL != "" {
		c.Redirect(http.StatusFound, h.frontendURL+"/auth/error?error="+reason)
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "authentication failed"})
}
