package handlers

import (
	"net/http"
	"strconv"

	"hospital-queue/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

// RecordHandlers serves list/get/create/delete for one hospital records
// table.
type RecordHandlers struct {
	List   gin.HandlerFunc
	Get    gin.HandlerFunc
	Create gin.HandlerFunc
	Delete gin.HandlerFunc
}

// paging reads ?limit= and ?offset=.
func paging(c *gin.Context) (limit, offset int, ok bool) {
	limit, offset = defaultPageSize, 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return 0, 0, false
		}
		limit = min(n, maxPageSize)
	}
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
			return 0, 0, false
		}
		offset = n
	}
	return limit, offset, true
}

func recordID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return uint(id), true
}

func recordHandlers[T any](h *Handler, repo *repository.Records[T]) RecordHandlers {
	return RecordHandlers{
		List: func(c *gin.Context) {
			limit, offset, ok := paging(c)
			if !ok {
				return
			}
			rows, total, err := repo.List(c.Request.Context(), limit, offset)
			if err != nil {
				h.fail(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"items": rows, "total": total, "limit": limit, "offset": offset})
		},
		Get: func(c *gin.Context) {
			id, ok := recordID(c)
			if !ok {
				return
			}
			row, err := repo.Get(c.Request.Context(), id)
			if err != nil {
				h.fail(c, err)
				return
			}
			c.JSON(http.StatusOK, row)
		},
		Create: func(c *gin.Context) {
			row := new(T)
			if !bindJSON(c, row) {
				return
			}
			if err := repo.Create(c.Request.Context(), row); err != nil {
				h.fail(c, err)
				return
			}
			c.JSON(http.StatusCreated, row)
		},
		Delete: func(c *gin.Context) {
			id, ok := recordID(c)
			if !ok {
				return
			}
			if err := repo.Delete(c.Request.Context(), id); err != nil {
				h.fail(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Record deleted"})
		},
	}
}

// HospitalRoutes maps each hospital records path segment to its handlers.
func (h *Handler) HospitalRoutes() map[string]RecordHandlers {
	return map[string]RecordHandlers{
		"patients":     recordHandlers(h, h.hospital.Patients),
		"doctors":      recordHandlers(h, h.hospital.Doctors),
		"appointments": recordHandlers(h, h.hospital.Appointments),
		"treatments":   recordHandlers(h, h.hospital.Treatments),
		"billing":      recordHandlers(h, h.hospital.Billing),
		"records":      recordHandlers(h, h.hospital.Records),
	}
}
