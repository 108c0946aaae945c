package handlers

import (
	"net/http"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/middleware"
	"hospital-queue/internal/models"
	"hospital-queue/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateVisit(c *gin.Context) {
	var req models.VisitInput
	if !bindJSON(c, &req) {
		return
	}
	visit, err := h.visits.Record(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, visit)
}

func (h *Handler) ListVisits(c *gin.Context) {
	start, ok := queryDate(c, "start_date")
	if !ok {
		return
	}
	end, ok := queryDate(c, "end_date")
	if !ok {
		return
	}
	f := models.VisitFilter{
		PatientID: c.Query("patient_id"),
		ClinicID:  c.Query("clinic_id"),
		StartDate: start,
		EndDate:   end,
	}
	if me := middleware.CurrentUser(c); !me.Role.IsStaff() {
		f.PatientID = me.ID
	}
	visits, err := h.visits.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, visits)
}

// visible hides the visits of other patients behind a 404.
func visible(c *gin.Context, v *models.VisitHistory) error {
	if !services.CanView(middleware.CurrentUser(c), v.PatientID) {
		return apperr.NotFound("visit not found")
	}
	return nil
}

func (h *Handler) GetVisit(c *gin.Context) {
	visit, err := h.visits.Get(c.Request.Context(), c.Param("id"))
	if err == nil {
		err = visible(c, visit)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, visit)
}

func (h *Handler) GetVisitByQueue(c *gin.Context) {
	visit, err := h.visits.ByQueue(c.Request.Context(), c.Param("queue_id"))
	if err == nil {
		err = visible(c, visit)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, visit)
}

func (h *Handler) UpdateVisit(c *gin.Context) {
	var req models.VisitUpdate
	if !bindJSON(c, &req) {
		return
	}
	visit, err := h.visits.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, visit)
}

func (h *Handler) DeleteVisit(c *gin.Context) {
	if err := h.visits.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Visit deleted"})
}
