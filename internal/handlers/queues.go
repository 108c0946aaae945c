package handlers

import (
	"net/http"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/middleware"
	"hospital-queue/internal/models"
	"hospital-queue/internal/repository"
	"hospital-queue/internal/services"

	"github.com/gin-gonic/gin"
)

// --- Structs for Request Binding ---

type CallQueueRequest struct {
	DoctorID *string `json:"doctor_id"`
}

type CancelQueueRequest struct {
	Notes *string `json:"notes"`
}

// bindOptionalJSON decodes the body into v when there is one.
func bindOptionalJSON(c *gin.Context, v any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	return bindJSON(c, v)
}

// --- Handler Functions ---

func (h *Handler) CreateQueue(c *gin.Context) {
	var req services.RegisterQueueInput
	if !bindJSON(c, &req) {
		return
	}
	queue, err := h.queues.Register(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, queue)
}

func (h *Handler) ListQueues(c *gin.Context) {
	status := models.QueueStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		h.fail(c, apperr.Validation("invalid queue status %q", status))
		return
	}
	queues, err := h.queues.List(c.Request.Context(), middleware.CurrentUser(c), repository.QueueFilter{
		ClinicID:  c.Query("clinic_id"),
		Status:    status,
		PatientID: c.Query("patient_id"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, queues)
}

func (h *Handler) GetQueue(c *gin.Context) {
	queue, err := h.queues.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, queue)
}

func (h *Handler) GetQueuePosition(c *gin.Context) {
	id := c.Param("id")
	pos, err := h.queues.Position(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"queue_id": id, "position": pos})
}

func (h *Handler) UpdateQueueStatus(c *gin.Context) {
	var req services.TransitionInput
	if !bindJSON(c, &req) {
		return
	}
	queue, err := h.queues.Transition(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, queue)
}

func (h *Handler) CallQueue(c *gin.Context) {
	var req CallQueueRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	queue, err := h.queues.Call(c.Request.Context(), c.Param("id"), req.DoctorID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, queue)
}

func (h *Handler) CompleteQueue(c *gin.Context) {
	var req services.CompleteInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.queues.Complete(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) CancelQueue(c *gin.Context) {
	var req CancelQueueRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	queue, err := h.queues.Cancel(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.Notes)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, queue)
}

func (h *Handler) DeleteQueue(c *gin.Context) {
	if err := h.queues.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Queue deleted"})
}
