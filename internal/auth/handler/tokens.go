package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/service"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/token"
)

const refreshCookieName = "refresh_token"

func tokenResponse(pair *token.Pair, expiresIn int) gin.H {
	return gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    "bearer",
		"expires_in":    expiresIn,
	}
}

func (h *Handler) setRefreshCookie(c *gin.Context, value string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     "/auth",
		MaxAge:   int(h.auth.RefreshTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearRefreshCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// readRefreshToken prefers the httpOnly cookie; API clients without
// cookie support may send the token in the body instead.
func (h *Handler) readRefreshToken(c *gin.Context) string {
	if cookie, err := c.Request.Cookie(refreshCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&body); err == nil {
		return body.RefreshToken
	}
	return ""
}

func (h *Handler) refresh(c *gin.Context) {
	refreshToken := h.readRefreshToken(c)
	if refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token missing"})
		return
	}

	pair, expiresIn, err := h.auth.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token refresh failed"})
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, tokenResponse(pair, expiresIn))
}

// logout is idempotent: the refresh token, if present, is
// deny-listed and the cookie cleared either way. Access tokens are
// stateless and expire naturally.
func (h *Handler) logout(c *gin.Context) {
	if refreshToken := h.readRefreshToken(c); refreshToken != "" {
		h.auth.Revoke(c.Request.Context(), refreshToken)
	}
	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}
