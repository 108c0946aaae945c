package repository

import (
	"context"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Visits is the visit recorder.
type Visits struct {
	db    *gorm.DB
	clock Clock
}

func NewVisits(db *gorm.DB, clock Clock) *Visits {
	return &Visits{db: db, clock: clock}
}

// WithTx returns a copy of r that runs inside tx.
func (r *Visits) WithTx(tx *gorm.DB) *Visits {
	return &Visits{db: tx, clock: r.clock}
}

// Record stores a visit dated today. It neither checks that the queue is
// completed nor that it was not already recorded.
func (r *Visits) Record(ctx context.Context, in models.VisitInput) (*models.VisitHistory, error) {
	visit := models.VisitHistory{
		ID:                uuid.NewString(),
		QueueID:           in.QueueID,
		PatientID:         in.PatientID,
		PatientName:       in.PatientName,
		ClinicID:          in.ClinicID,
		ClinicName:        in.ClinicName,
		DoctorID:          in.DoctorID,
		DoctorName:        in.DoctorName,
		VisitDate:         nowOr(r.clock).Format(models.DateLayout),
		Reason:            in.Reason,
		PaymentAmount:     in.PaymentAmount,
		ModeOfPayment:     in.ModeOfPayment,
		ModeOfAppointment: in.ModeOfAppointment,
		AppointmentStatus: models.DefaultAppointmentStatus,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&visit).Error
	})
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

func (r *Visits) Get(ctx context.Context, id string) (*models.VisitHistory, error) {
	var visit models.VisitHistory
	if err := r.db.WithContext(ctx).First(&visit, "id = ?", id).Error; err != nil {
		return nil, translate(err, "visit %s not found", id)
	}
	return &visit, nil
}

// ByQueue returns the latest visit recorded against a queue entry.
func (r *Visits) ByQueue(ctx context.Context, queueID string) (*models.VisitHistory, error) {
	var visit models.VisitHistory
	err := r.db.WithContext(ctx).
		Where("queue_id = ?", queueID).
		Order("visit_date DESC").Order("created_at DESC").
		Take(&visit).Error
	if err != nil {
		return nil, translate(err, "no visit recorded for queue %s", queueID)
	}
	return &visit, nil
}

// List returns visits newest first. Date bounds compare lexically against the
// stored YYYY-MM-DD strings.
func (r *Visits) List(ctx context.Context, f models.VisitFilter) ([]models.VisitHistory, error) {
	q := r.db.WithContext(ctx).Model(&models.VisitHistory{})
	if f.PatientID != "" {
		q = q.Where("patient_id = ?", f.PatientID)
	}
	if f.ClinicID != "" {
		q = q.Where("clinic_id = ?", f.ClinicID)
	}
	if f.StartDate != "" {
		q = q.Where("visit_date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("visit_date <= ?", f.EndDate)
	}
	var visits []models.VisitHistory
	if err := q.Order("visit_date DESC").Order("created_at DESC").Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}

// Update applies the non-nil editable fields of upd.
func (r *Visits) Update(ctx context.Context, id string, upd models.VisitUpdate) (*models.VisitHistory, error) {
	var visit models.VisitHistory
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&visit, "id = ?", id).Error; err != nil {
			return translate(err, "visit %s not found", id)
		}
		if upd.Reason != nil {
			visit.Reason = *upd.Reason
		}
		if upd.PaymentAmount != nil {
			if *upd.PaymentAmount < 0 {
				return apperr.Validation("payment_amount cannot be negative")
			}
			visit.PaymentAmount = *upd.PaymentAmount
		}
		if upd.ModeOfPayment != nil {
			visit.ModeOfPayment = *upd.ModeOfPayment
		}
		if upd.ModeOfAppointment != nil {
			visit.ModeOfAppointment = *upd.ModeOfAppointment
		}
		if upd.AppointmentStatus != nil {
			visit.AppointmentStatus = *upd.AppointmentStatus
		}
		return tx.Save(&visit).Error
	})
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

func (r *Visits) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.VisitHistory{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("visit %s not found", id)
		}
		return nil
	})
}
