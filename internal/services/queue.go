// Package services coordinates the repositories into the operations the HTTP
// handlers expose.
package services

import (
	"context"
	"strings"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/models"
	"hospital-queue/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// QueueMetrics receives queue lifecycle events.
type QueueMetrics interface {
	RecordQueueCreated(clinicID string)
	RecordQueueTransition(status string)
}

type noopMetrics struct{}

func (noopMetrics) RecordQueueCreated(string)    {}
func (noopMetrics) RecordQueueTransition(string) {}

// RegisterQueueInput is the body of a queue registration. Patients register
// themselves and may leave the patient fields empty.
type RegisterQueueInput struct {
	PatientID   string  `json:"patient_id"`
	PatientName string  `json:"patient_name"`
	ClinicID    string  `json:"clinic_id" binding:"required"`
	DoctorID    *string `json:"doctor_id"`
}

// TransitionInput is the body of a status change.
type TransitionInput struct {
	Status   models.QueueStatus `json:"status" binding:"required"`
	DoctorID *string            `json:"doctor_id"`
	Notes    *string            `json:"notes"`
}

// CompleteInput closes a queue entry and describes the visit it produced.
type CompleteInput struct {
	DoctorID          *string `json:"doctor_id"`
	Notes             *string `json:"notes"`
	Reason            string  `json:"reason" binding:"required"`
	PaymentAmount     float64 `json:"payment_amount" binding:"gte=0"`
	ModeOfPayment     string  `json:"mode_of_payment" binding:"required"`
	ModeOfAppointment string  `json:"mode_of_appointment" binding:"required"`
}

// CompleteResult pairs the completed entry with its visit record.
type CompleteResult struct {
	Queue *models.Queue        `json:"queue"`
	Visit *models.VisitHistory `json:"visit"`
}

type QueueService struct {
	db      *gorm.DB
	queues  *repository.Queues
	visits  *repository.Visits
	users   *repository.Users
	metrics QueueMetrics
	log     zerolog.Logger
}

func NewQueueService(db *gorm.DB, queues *repository.Queues, visits *repository.Visits, users *repository.Users, m QueueMetrics, log zerolog.Logger) *QueueService {
	if m == nil {
		m = noopMetrics{}
	}
	return &QueueService{
		db:      db,
		queues:  queues,
		visits:  visits,
		users:   users,
		metrics: m,
		log:     log.With().Str("component", "queue_service").Logger(),
	}
}

// CanView reports whether actor may see records belonging to patientID.
// Staff see everything; patients only their own.
func CanView(actor *models.User, patientID string) bool {
	if actor == nil {
		return false
	}
	return actor.Role.IsStaff() || actor.ID == patientID
}

// Register puts a patient in a clinic's line. A patient always registers
// themselves; staff name the patient, and the name is looked up when only an
// id is given.
func (s *QueueService) Register(ctx context.Context, actor *models.User, in RegisterQueueInput) (*models.Queue, error) {
	if actor != nil && !actor.Role.IsStaff() {
		in.PatientID, in.PatientName = actor.ID, actor.Name
	}
	in.PatientID = strings.TrimSpace(in.PatientID)
	if in.PatientID == "" {
		return nil, apperr.Validation("patient_id is required")
	}
	if strings.TrimSpace(in.PatientName) == "" {
		patient, err := s.users.Get(ctx, in.PatientID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return nil, apperr.Validation("patient_name is required for unknown patient %s", in.PatientID)
			}
			return nil, err
		}
		in.PatientName = patient.Name
	}

	queue, err := s.queues.Create(ctx, repository.NewQueue{
		PatientID:   in.PatientID,
		PatientName: in.PatientName,
		ClinicID:    in.ClinicID,
		DoctorID:    in.DoctorID,
	})
	if err != nil {
		return nil, err
	}
	s.metrics.RecordQueueCreated(queue.ClinicID)
	s.log.Info().
		Str("queue_id", queue.ID).
		Str("queue_number", queue.QueueNumber).
		Str("clinic_id", queue.ClinicID).
		Msg("queue entry registered")
	return queue, nil
}

// Get returns a queue entry actor may see. Entries of other patients are
// reported as missing.
func (s *QueueService) Get(ctx context.Context, actor *models.User, id string) (*models.Queue, error) {
	queue, err := s.queues.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanView(actor, queue.PatientID) {
		return nil, apperr.NotFound("queue %s not found", id)
	}
	return queue, nil
}

// List returns the entries matching f; patients only ever see their own.
func (s *QueueService) List(ctx context.Context, actor *models.User, f repository.QueueFilter) ([]models.Queue, error) {
	if actor != nil && !actor.Role.IsStaff() {
		f.PatientID = actor.ID
	}
	return s.queues.List(ctx, f)
}

// Position is the waiting rank of an entry actor may see.
func (s *QueueService) Position(ctx context.Context, actor *models.User, id string) (int, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		if apperr.IsNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	return s.queues.Position(ctx, id)
}

func (s *QueueService) Transition(ctx context.Context, id string, in TransitionInput) (*models.Queue, error) {
	queue, err := s.queues.Transition(ctx, id, in.Status, models.QueueExtra{DoctorID: in.DoctorID, Notes: in.Notes})
	if err != nil {
		return nil, err
	}
	s.transitioned(queue)
	return queue, nil
}

// Call moves an entry into service.
func (s *QueueService) Call(ctx context.Context, id string, doctorID *string) (*models.Queue, error) {
	return s.Transition(ctx, id, TransitionInput{Status: models.StatusInService, DoctorID: doctorID})
}

// Cancel withdraws an entry. Patients may only cancel their own.
func (s *QueueService) Cancel(ctx context.Context, actor *models.User, id string, notes *string) (*models.Queue, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.Transition(ctx, id, TransitionInput{Status: models.StatusCancelled, Notes: notes})
}

// Complete marks an entry completed and records its visit in one
// transaction; if either write fails neither is kept.
func (s *QueueService) Complete(ctx context.Context, id string, in CompleteInput) (*CompleteResult, error) {
	var result CompleteResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		queue, err := s.queues.WithTx(tx).Transition(ctx, id, models.StatusCompleted, models.QueueExtra{DoctorID: in.DoctorID, Notes: in.Notes})
		if err != nil {
			return err
		}
		visit, err := s.visits.WithTx(tx).Record(ctx, models.VisitInput{
			QueueID:           queue.ID,
			PatientID:         queue.PatientID,
			PatientName:       queue.PatientName,
			ClinicID:          queue.ClinicID,
			ClinicName:        queue.ClinicName,
			DoctorID:          deref(queue.DoctorID),
			DoctorName:        deref(queue.DoctorName),
			Reason:            in.Reason,
			PaymentAmount:     in.PaymentAmount,
			ModeOfPayment:     in.ModeOfPayment,
			ModeOfAppointment: in.ModeOfAppointment,
		})
		if err != nil {
			return err
		}
		result = CompleteResult{Queue: queue, Visit: visit}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.transitioned(result.Queue)
	s.log.Info().
		Str("queue_id", result.Queue.ID).
		Str("visit_id", result.Visit.ID).
		Float64("payment_amount", result.Visit.PaymentAmount).
		Msg("queue entry completed")
	return &result, nil
}

func (s *QueueService) Delete(ctx context.Context, id string) error {
	return s.queues.Delete(ctx, id)
}

func (s *QueueService) transitioned(q *models.Queue) {
	s.metrics.RecordQueueTransition(string(q.Status))
	s.log.Debug().Str("queue_id", q.ID).Str("status", string(q.Status)).Msg("queue status changed")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
