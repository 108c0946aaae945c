// Package server assembles the gin engine: middleware, CORS and routes.
package server

import (
	"net/http"
	"time"

	"hospital-queue/internal/handlers"
	"hospital-queue/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Options configures NewRouter.
type Options struct {
	CORSOrigins []string
	Verifier    middleware.TokenVerifier
	Metrics     middleware.HTTPRecorder
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	Log            zerolog.Logger
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	cfg.MaxAge = 12 * time.Hour
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// NewRouter wires every route onto a new engine.
func NewRouter(h *handlers.Handler, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(opts.Log), middleware.Recovery(opts.Log))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	if opts.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	authed := middleware.Auth(opts.Verifier)
	staff := middleware.RequireStaff()
	admin := middleware.RequireAdmin()

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", authed, h.Logout)
		authGroup.GET("/me", authed, h.Me)
	}

	users := api.Group("/users", authed)
	{
		users.GET("", admin, h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", admin, h.DeleteUser)
	}

	clinics := api.Group("/clinics")
	{
		clinics.GET("", h.ListClinics)
		clinics.GET("/:id", h.GetClinic)
		clinics.POST("", authed, admin, h.CreateClinic)
		clinics.PUT("/:id", authed, admin, h.UpdateClinic)
		clinics.DELETE("/:id", authed, admin, h.DeleteClinic)
	}

	doctors := api.Group("/doctors")
	{
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:id", h.GetDoctor)
		doctors.POST("", authed, admin, h.CreateDoctor)
		doctors.PUT("/:id", authed, admin, h.UpdateDoctor)
		doctors.DELETE("/:id", authed, admin, h.DeleteDoctor)
	}

	queues := api.Group("/queues", authed)
	{
		queues.POST("", h.CreateQueue)
		queues.GET("", h.ListQueues)
		queues.GET("/:id", h.GetQueue)
		queues.GET("/:id/position", h.GetQueuePosition)
		queues.PUT("/:id/status", staff, h.UpdateQueueStatus)
		queues.POST("/:id/call", staff, h.CallQueue)
		queues.POST("/:id/complete", staff, h.CompleteQueue)
		queues.POST("/:id/cancel", h.CancelQueue)
		queues.DELETE("/:id", admin, h.DeleteQueue)
	}

	visits := api.Group("/visit-history", authed)
	{
		visits.GET("", h.ListVisits)
		visits.GET("/queue/:queue_id", h.GetVisitByQueue)
		visits.GET("/:id", h.GetVisit)
		visits.POST("", staff, h.CreateVisit)
		visits.PUT("/:id", staff, h.UpdateVisit)
		visits.DELETE("/:id", admin, h.DeleteVisit)
	}

	statistics := api.Group("/statistics", authed, staff)
	{
		statistics.GET("/financial-summary", h.FinancialSummary)
		statistics.GET("/operational-summary", h.OperationalSummary)
		statistics.GET("/patient-summary", h.PatientSummary)
		statistics.GET("/queue-summary", h.QueueSummary)
		statistics.GET("/clinic-density", h.ClinicDensity)
		statistics.GET("/daily-visits", h.DailyVisits)
	}

	hospital := api.Group("/hospital", authed, admin)
	for name, rh := range h.HospitalRoutes() {
		hospital.GET("/"+name, rh.List)
		hospital.POST("/"+name, rh.Create)
		hospital.GET("/"+name+"/:id", rh.Get)
		hospital.DELETE("/"+name+"/:id", rh.Delete)
	}

	return r
}
