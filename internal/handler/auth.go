package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"veeloway/internal/auth"
	"veeloway/internal/middleware"
)

// AuthHandler handles login, logout and session checks. Credentials are
// verified by the external identity provider; locally only an opaque
// session token is kept.
type AuthHandler struct {
	provider   auth.IdentityProvider
	sessions   *auth.SessionStore
	sessionTTL int
}

// NewAuthHandler creates a new AuthHandler. sessionTTLSeconds controls the
// cookie Max-Age.
func NewAuthHandler(provider auth.IdentityProvider, sessions *auth.SessionStore, sessionTTLSeconds int) *AuthHandler {
	return &AuthHandler{provider: provider, sessions: sessions, sessionTTL: sessionTTLSeconds}
}

// LoginRequest is the HTTP request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token for clients that prefer the
// Bearer header over the cookie.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.provider.Verify(c.Request.Context(), req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookie, token, h.sessionTTL, "/", "", false, true)
	respondJSON(c, http.StatusOK, LoginResponse{Token: token})
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := sessionTokenFromRequest(c); token != "" {
		if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
			respondError(c, err)
			return
		}
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// SessionResponse reports whether the caller holds a live session.
type SessionResponse struct {
	Present bool `json:"present"`
}

// Session handles GET /v1/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	present, err := h.sessions.Present(c.Request.Context(), sessionTokenFromRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, SessionResponse{Present: present})
}

func sessionTokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	const prefix = "Bearer "
	if header := c.GetHeader("Authorization"); len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
