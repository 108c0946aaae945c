package services

import (
	"sync"
	"testing"
	"time"

	"hospital-queue/internal/models"
	"hospital-queue/internal/repository"
	"hospital-queue/internal/testutil"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type recordedMetrics struct {
	mu          sync.Mutex
	created     []string
	transitions []string
}

func (m *recordedMetrics) RecordQueueCreated(clinicID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, clinicID)
}

func (m *recordedMetrics) RecordQueueTransition(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions = append(m.transitions, status)
}

type env struct {
	db      *gorm.DB
	clinics *repository.Clinics
	doctors *repository.Doctors
	users   *repository.Users
	queues  *repository.Queues
	visits  *repository.Visits
	metrics *recordedMetrics
	svc     *QueueService
	stats   *StatisticsService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)

	var mu sync.Mutex
	now := time.Date(2025, 3, 15, 9, 0, 0, 0, time.Local)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Minute)
		return now
	}

	e := &env{
		db:      db,
		clinics: repository.NewClinics(db),
		doctors: repository.NewDoctors(db),
		users:   repository.NewUsers(db),
		queues:  repository.NewQueues(db, clock),
		visits:  repository.NewVisits(db, clock),
		metrics: &recordedMetrics{},
	}
	e.svc = NewQueueService(db, e.queues, e.visits, e.users, e.metrics, zerolog.Nop())
	e.stats = NewStatisticsService(e.clinics, e.queues, e.visits)
	return e
}

func staff(role models.UserRole) *models.User {
	return &models.User{ID: "staff-1", Name: "Staff", Role: role}
}
