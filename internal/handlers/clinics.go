package handlers

import (
	"net/http"

	"hospital-queue/internal/models"

	"github.com/gin-gonic/gin"
)

// --- Structs for Request Binding ---

type CreateClinicRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// --- Handler Functions ---

func (h *Handler) ListClinics(c *gin.Context) {
	active, ok := queryBool(c, "is_active")
	if !ok {
		return
	}
	clinics, err := h.clinics.List(c.Request.Context(), active)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, clinics)
}

func (h *Handler) GetClinic(c *gin.Context) {
	clinic, err := h.clinics.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, clinic)
}

func (h *Handler) CreateClinic(c *gin.Context) {
	var req CreateClinicRequest
	if !bindJSON(c, &req) {
		return
	}
	clinic, err := h.clinics.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, clinic)
}

func (h *Handler) UpdateClinic(c *gin.Context) {
	var req models.ClinicUpdate
	if !bindJSON(c, &req) {
		return
	}
	clinic, err := h.clinics.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, clinic)
}

func (h *Handler) DeleteClinic(c *gin.Context) {
	if err := h.clinics.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Clinic deleted"})
}
