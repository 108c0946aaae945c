package repository

import (
	"context"
	"errors"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ref names a row that must exist before a hospital record referencing it is
// stored.
type Ref struct {
	Model any
	ID    uint
	Name  string
}

// keyed rows have a database-assigned key that callers may not choose.
type keyed interface {
	ClearKey()
}

// Records is a CRUD repository for one table of the hospital records schema.
type Records[T any] struct {
	db   *gorm.DB
	name string
	refs func(*T) []Ref
}

// NewRecords builds a repository for T. refs lists the foreign keys of a row
// that Create verifies; it may be nil.
func NewRecords[T any](db *gorm.DB, name string, refs func(*T) []Ref) *Records[T] {
	return &Records[T]{db: db, name: name, refs: refs}
}

// Create inserts row under a fresh key; any key already set on row is
// discarded.
func (r *Records[T]) Create(ctx context.Context, row *T) error {
	if k, ok := any(row).(keyed); ok {
		k.ClearKey()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.refs != nil {
			for _, ref := range r.refs(row) {
				var n int64
				if err := tx.Model(ref.Model).Where(ref.Name+" = ?", ref.ID).Count(&n).Error; err != nil {
					return err
				}
				if n == 0 {
					return apperr.Validation("%s %d does not exist", ref.Name, ref.ID)
				}
			}
		}
		if err := tx.Create(row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Validation("%s already exists", r.name)
			}
			return err
		}
		return nil
	})
}

func (r *Records[T]) Get(ctx context.Context, id uint) (*T, error) {
	var row T
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate(err, "%s %d not found", r.name, id)
	}
	return &row, nil
}

// List returns one page of rows in key order and the total row count.
func (r *Records[T]) List(ctx context.Context, limit, offset int) ([]T, int64, error) {
	db := r.db.WithContext(ctx)
	var total int64
	if err := db.Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []T
	byKey := clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey}}
	if err := db.Order(byKey).Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *Records[T]) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(new(T), id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("%s %d not found", r.name, id)
		}
		return nil
	})
}

// HospitalRecords bundles the repositories of the hospital records schema.
type HospitalRecords struct {
	Patients     *Records[models.HospitalPatient]
	Doctors      *Records[models.HospitalDoctor]
	Appointments *Records[models.Appointment]
	Treatments   *Records[models.Treatment]
	Billing      *Records[models.Billing]
	Records      *Records[models.Record]
}

func NewHospitalRecords(db *gorm.DB) *HospitalRecords {
	return &HospitalRecords{
		Patients: NewRecords[models.HospitalPatient](db, "patient", nil),
		Doctors:  NewRecords[models.HospitalDoctor](db, "doctor", nil),
		Appointments: NewRecords(db, "appointment", func(a *models.Appointment) []Ref {
			return []Ref{
				{Model: &models.HospitalPatient{}, ID: a.PatientID, Name: "patient_id"},
				{Model: &models.HospitalDoctor{}, ID: a.DoctorID, Name: "doctor_id"},
			}
		}),
		Treatments: NewRecords(db, "treatment", func(t *models.Treatment) []Ref {
			return []Ref{{Model: &models.Appointment{}, ID: t.AppointmentID, Name: "appointment_id"}}
		}),
		Billing: NewRecords(db, "bill", func(b *models.Billing) []Ref {
			return []Ref{
				{Model: &models.HospitalPatient{}, ID: b.PatientID, Name: "patient_id"},
				{Model: &models.Treatment{}, ID: b.TreatmentID, Name: "treatment_id"},
			}
		}),
		Records: NewRecords(db, "record", func(rec *models.Record) []Ref {
			refs := []Ref{{Model: &models.HospitalPatient{}, ID: rec.PatientID, Name: "patient_id"}}
			for _, opt := range []struct {
				id    *uint
				model any
				name  string
			}{
				{rec.AppointmentID, &models.Appointment{}, "appointment_id"},
				{rec.DoctorID, &models.HospitalDoctor{}, "doctor_id"},
				{rec.TreatmentID, &models.Treatment{}, "treatment_id"},
				{rec.BillID, &models.Billing{}, "bill_id"},
			} {
				if opt.id != nil {
					refs = append(refs, Ref{Model: opt.model, ID: *opt.id, Name: opt.name})
				}
			}
			return refs
		}),
	}
}
