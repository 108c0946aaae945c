package handlers

import (
	"net/http"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/auth"
	"hospital-queue/internal/middleware"
	"hospital-queue/internal/models"

	"github.com/gin-gonic/gin"
)

// --- Structs for Request Binding ---

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --- Handler Functions ---

func (h *Handler) Register(c *gin.Context) {
	var req auth.RegisterInput
	if !bindJSON(c, &req) {
		return
	}
	if req.Role != "" && !req.Role.Valid() {
		h.fail(c, apperr.Validation("invalid role %q", req.Role))
		return
	}
	// staff accounts are created by admins only
	if req.Role != "" && req.Role != models.RolePatient {
		caller, err := h.auth.Verify(c.Request.Context(), middleware.ExtractToken(c))
		if err != nil {
			h.fail(c, err)
			return
		}
		if caller.Role != models.RoleAdmin {
			h.fail(c, apperr.Forbidden("only admins may register staff accounts"))
			return
		}
	}
	user, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	session, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if h.metrics != nil {
		h.metrics.RecordAuthAttempt(err == nil)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, session.Token, int(h.sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"session_token": session.Token,
		"expires_at":    session.ExpiresAt,
		"user":          user,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.SessionToken(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}
