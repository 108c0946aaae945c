package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) FinancialSummary(c *gin.Context) {
	out, err := h.stats.Financial(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) OperationalSummary(c *gin.Context) {
	out, err := h.stats.Operational(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) PatientSummary(c *gin.Context) {
	out, err := h.stats.Patients(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) QueueSummary(c *gin.Context) {
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}
	out, err := h.stats.QueueDay(c.Request.Context(), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) ClinicDensity(c *gin.Context) {
	out, err := h.stats.ClinicDensity(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) DailyVisits(c *gin.Context) {
	start, ok := queryDate(c, "start_date")
	if !ok {
		return
	}
	end, ok := queryDate(c, "end_date")
	if !ok {
		return
	}
	out, err := h.stats.DailyVisits(c.Request.Context(), start, end)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
