package handlers

import (
	"net/http"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/middleware"
	"hospital-queue/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListUsers(c *gin.Context) {
	var role *models.UserRole
	if raw := c.Query("role"); raw != "" {
		r := models.UserRole(raw)
		if !r.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
			return
		}
		role = &r
	}
	users, err := h.users.List(c.Request.Context(), role)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// selfOrAdmin reports whether the caller may read or edit user id.
func selfOrAdmin(c *gin.Context, id string) bool {
	me := middleware.CurrentUser(c)
	return me != nil && (me.Role == models.RoleAdmin || me.ID == id)
}

func (h *Handler) GetUser(c *gin.Context) {
	id := c.Param("id")
	if !selfOrAdmin(c, id) {
		h.fail(c, apperr.Forbidden("insufficient permissions"))
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser lets users edit their own profile; changing a role or medical
// record number takes an admin.
func (h *Handler) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	if !selfOrAdmin(c, id) {
		h.fail(c, apperr.Forbidden("insufficient permissions"))
		return
	}
	var req models.UserUpdate
	if !bindJSON(c, &req) {
		return
	}
	if (req.Role != nil || req.MedicalRecordNumber != nil) && middleware.CurrentUser(c).Role != models.RoleAdmin {
		h.fail(c, apperr.Forbidden("only admins may change roles or record numbers"))
		return
	}
	user, err := h.users.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
