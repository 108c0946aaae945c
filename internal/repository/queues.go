package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewQueue is the input for Queues.Create.
type NewQueue struct {
	PatientID   string
	PatientName string
	ClinicID    string
	DoctorID    *string
}

// QueueFilter narrows Queues.List.
type QueueFilter struct {
	ClinicID  string
	Status    models.QueueStatus
	PatientID string
}

// Queues is the queue lifecycle manager: numbering, status transitions and
// waiting positions.
type Queues struct {
	db    *gorm.DB
	clock Clock
}

func NewQueues(db *gorm.DB, clock Clock) *Queues {
	return &Queues{db: db, clock: clock}
}

// WithTx returns a copy of r that runs inside tx.
func (r *Queues) WithTx(tx *gorm.DB) *Queues {
	return &Queues{db: tx, clock: r.clock}
}

// queueNumberPrefix is the first three characters of the clinic name in
// upper case.
func queueNumberPrefix(clinicName string) string {
	runes := []rune(clinicName)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

// Create registers a patient in a clinic's line.
//
// The queue number is the clinic prefix plus the clinic's existing queue count
// plus one. Counting and inserting are intentionally not atomic: nothing
// serializes concurrent registrations for the same clinic, so two of them can
// draw the same number.
func (r *Queues) Create(ctx context.Context, in NewQueue) (*models.Queue, error) {
	var queue models.Queue
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var clinic models.Clinic
		if err := tx.First(&clinic, "id = ?", in.ClinicID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Validation("clinic not found or inactive")
			}
			return err
		}
		if !clinic.IsActive {
			return apperr.Validation("clinic not found or inactive")
		}

		var doctorID, doctorName *string
		if in.DoctorID != nil && *in.DoctorID != "" {
			var doctor models.Doctor
			err := tx.First(&doctor, "id = ?", *in.DoctorID).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err != nil || !doctor.IsAvailable || doctor.ClinicID != in.ClinicID {
				return apperr.Validation("doctor not found or not available")
			}
			doctorID, doctorName = &doctor.ID, &doctor.Name
		}

		var count int64
		if err := tx.Model(&models.Queue{}).Where("clinic_id = ?", in.ClinicID).Count(&count).Error; err != nil {
			return err
		}

		queue = models.Queue{
			ID:               uuid.NewString(),
			QueueNumber:      fmt.Sprintf("%s%03d", queueNumberPrefix(clinic.Name), count+1),
			PatientID:        in.PatientID,
			PatientName:      in.PatientName,
			ClinicID:         clinic.ID,
			ClinicName:       clinic.Name,
			DoctorID:         doctorID,
			DoctorName:       doctorName,
			Status:           models.StatusWaiting,
			RegistrationTime: timestamp(r.clock),
		}
		return tx.Create(&queue).Error
	})
	if err != nil {
		return nil, err
	}
	return &queue, nil
}

func (r *Queues) Get(ctx context.Context, id string) (*models.Queue, error) {
	var queue models.Queue
	if err := r.db.WithContext(ctx).First(&queue, "id = ?", id).Error; err != nil {
		return nil, translate(err, "queue %s not found", id)
	}
	return &queue, nil
}

// List returns queue entries ordered by registration time.
func (r *Queues) List(ctx context.Context, f QueueFilter) ([]models.Queue, error) {
	q := r.db.WithContext(ctx).Model(&models.Queue{})
	if f.ClinicID != "" {
		q = q.Where("clinic_id = ?", f.ClinicID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PatientID != "" {
		q = q.Where("patient_id = ?", f.PatientID)
	}
	var queues []models.Queue
	if err := q.Order("registration_time ASC").Order("queue_number ASC").Find(&queues).Error; err != nil {
		return nil, err
	}
	return queues, nil
}

// Transition moves a queue entry to status. Any status may follow any other.
// Entering in_service stamps called_time and service_start_time once;
// entering completed stamps service_end_time every time. Non-nil extra fields
// are merged; a doctor reassignment refreshes doctor_name.
func (r *Queues) Transition(ctx context.Context, id string, status models.QueueStatus, extra models.QueueExtra) (*models.Queue, error) {
	if !status.Valid() {
		return nil, apperr.Validation("invalid queue status %q", status)
	}
	var queue models.Queue
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&queue, "id = ?", id).Error; err != nil {
			return translate(err, "queue %s not found", id)
		}

		now := timestamp(r.clock)
		queue.Status = status
		switch status {
		case models.StatusInService:
			if queue.CalledTime == nil || *queue.CalledTime == "" {
				queue.CalledTime = &now
			}
			if queue.ServiceStartTime == nil || *queue.ServiceStartTime == "" {
				queue.ServiceStartTime = &now
			}
		case models.StatusCompleted:
			queue.ServiceEndTime = &now
		}

		if extra.DoctorID != nil && *extra.DoctorID != "" {
			var doctor models.Doctor
			if err := tx.First(&doctor, "id = ?", *extra.DoctorID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.Validation("doctor %s not found", *extra.DoctorID)
				}
				return err
			}
			queue.DoctorID, queue.DoctorName = &doctor.ID, &doctor.Name
		}
		if extra.Notes != nil {
			queue.Notes = extra.Notes
		}
		return tx.Save(&queue).Error
	})
	if err != nil {
		return nil, err
	}
	return &queue, nil
}

// Position is the 1-based rank of a waiting entry among the waiting entries
// of its clinic, by registration time. It is 0 for entries that are not
// waiting and for ids that do not exist.
func (r *Queues) Position(ctx context.Context, id string) (int, error) {
	db := r.db.WithContext(ctx)
	var queue models.Queue
	if err := db.First(&queue, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if queue.Status != models.StatusWaiting {
		return 0, nil
	}

	var ids []string
	err := db.Model(&models.Queue{}).
		Where("clinic_id = ? AND status = ?", queue.ClinicID, models.StatusWaiting).
		Order("registration_time ASC").Order("queue_number ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	for i, waitingID := range ids {
		if waitingID == id {
			return i + 1, nil
		}
	}
	return 0, nil
}

func (r *Queues) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Queue{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("queue %s not found", id)
		}
		return nil
	})
}
