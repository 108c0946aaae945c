// Package handlers binds HTTP requests onto the repositories and services.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/auth"
	"hospital-queue/internal/database"
	"hospital-queue/internal/models"
	"hospital-queue/internal/repository"
	"hospital-queue/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Version is reported by the root endpoint.
const Version = "1.2.3"

// AuthRecorder counts login attempts.
type AuthRecorder interface {
	RecordAuthAttempt(success bool)
}

type Handler struct {
	db       *gorm.DB
	auth     *auth.Service
	clinics  *repository.Clinics
	doctors  *repository.Doctors
	users    *repository.Users
	visits   *repository.Visits
	queues   *services.QueueService
	stats    *services.StatisticsService
	hospital *repository.HospitalRecords
	metrics  AuthRecorder
	log      zerolog.Logger

	// sessionTTL sets the max age of the session cookie issued on login.
	sessionTTL time.Duration
}

// Deps lists what a Handler is built from.
type Deps struct {
	DB         *gorm.DB
	Auth       *auth.Service
	Clinics    *repository.Clinics
	Doctors    *repository.Doctors
	Users      *repository.Users
	Visits     *repository.Visits
	Queues     *services.QueueService
	Stats      *services.StatisticsService
	Hospital   *repository.HospitalRecords
	Metrics    AuthRecorder
	Log        zerolog.Logger
	SessionTTL time.Duration
}

func New(d Deps) *Handler {
	return &Handler{
		db:         d.DB,
		auth:       d.Auth,
		clinics:    d.Clinics,
		doctors:    d.Doctors,
		users:      d.Users,
		visits:     d.Visits,
		queues:     d.Queues,
		stats:      d.Stats,
		hospital:   d.Hospital,
		metrics:    d.Metrics,
		log:        d.Log,
		sessionTTL: d.SessionTTL,
	}
}

// fail renders err as {"error": message}. Errors without a kind are logged
// and hidden behind a generic 500.
func (h *Handler) fail(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		h.log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// bindJSON decodes the body into v and answers 400 on failure.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// queryBool parses an optional boolean query parameter.
func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " value"})
		return nil, false
	}
	return &v, true
}

// queryDate reads an optional YYYY-MM-DD query parameter. Date filters compare
// as strings, so anything else is rejected rather than silently matching
// nothing.
func queryDate(c *gin.Context, name string) (string, bool) {
	raw := c.Query(name)
	if raw == "" {
		return "", true
	}
	if _, err := time.Parse(models.DateLayout, raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + ", want YYYY-MM-DD"})
		return "", false
	}
	return raw, true
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Hospital Queue Management System API",
		"version": Version,
		"status":  "running",
	})
}

func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := database.Ping(ctx, h.db); err != nil {
		h.log.Warn().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": "ok"})
}
