package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"hospital-queue/internal/auth"
	"hospital-queue/internal/handlers"
	"hospital-queue/internal/metrics"
	"hospital-queue/internal/repository"
	"hospital-queue/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Config is what Build needs to assemble the application.
type Config struct {
	DB          *gorm.DB
	Sessions    auth.SessionStore
	SessionTTL  time.Duration
	CORSOrigins []string
	Log         zerolog.Logger
	// Clock stamps queue and visit times; nil means time.Now.
	Clock repository.Clock
	// PasswordCost is the bcrypt cost of new digests; zero means the default.
	PasswordCost int
}

// App is the assembled application.
type App struct {
	Engine  *gin.Engine
	Auth    *auth.Service
	Metrics *metrics.Collector
	log     zerolog.Logger
}

// Build wires repositories, services and handlers onto a router.
func Build(cfg Config) (*App, error) {
	db := cfg.DB
	m := metrics.NewCollector()
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if err := m.RegisterDB(sqlDB, "hospital_queue"); err != nil {
		return nil, fmt.Errorf("register db metrics: %w", err)
	}

	clinics := repository.NewClinics(db)
	doctors := repository.NewDoctors(db)
	users := repository.NewUsers(db)
	queues := repository.NewQueues(db, cfg.Clock)
	visits := repository.NewVisits(db, cfg.Clock)

	authSvc := auth.NewService(users, cfg.Sessions, cfg.SessionTTL, cfg.Clock, auth.WithPasswordCost(cfg.PasswordCost))

	h := handlers.New(handlers.Deps{
		DB:         db,
		Auth:       authSvc,
		Clinics:    clinics,
		Doctors:    doctors,
		Users:      users,
		Visits:     visits,
		Queues:     services.NewQueueService(db, queues, visits, users, m, cfg.Log),
		Stats:      services.NewStatisticsService(clinics, queues, visits),
		Hospital:   repository.NewHospitalRecords(db),
		Metrics:    m,
		Log:        cfg.Log,
		SessionTTL: cfg.SessionTTL,
	})

	engine := NewRouter(h, Options{
		CORSOrigins:    cfg.CORSOrigins,
		Verifier:       authSvc,
		Metrics:        m,
		MetricsHandler: m.Handler(),
		Log:            cfg.Log,
	})
	return &App{Engine: engine, Auth: authSvc, Metrics: m, log: cfg.Log}, nil
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
