package repository

import (
	"context"
	"errors"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/models"

	"gorm.io/gorm"
)

const doctorIDPrefix = "doctor-"

// NewDoctor is the input for Doctors.Create.
type NewDoctor struct {
	Name           string `json:"name" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
	ClinicID       string `json:"clinic_id" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
}

// DoctorFilter narrows Doctors.List.
type DoctorFilter struct {
	ClinicID    string
	IsAvailable *bool
}

type Doctors struct {
	db *gorm.DB
}

func NewDoctors(db *gorm.DB) *Doctors {
	return &Doctors{db: db}
}

// Create stores an available doctor under the next doctor-NNN id. The clinic
// must exist and be active; its name is copied onto the doctor.
func (r *Doctors) Create(ctx context.Context, in NewDoctor) (*models.Doctor, error) {
	var doctor models.Doctor
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
		id, err := nextSequentialID(tx, &models.Doctor{}, doctorIDPrefix)
		if err != nil {
			return err
		}
		clinicName := clinic.Name
		doctor = models.Doctor{
			ID:             id,
			Name:           in.Name,
			Specialization: in.Specialization,
			ClinicID:       clinic.ID,
			ClinicName:     &clinicName,
			Phone:          in.Phone,
			IsAvailable:    true,
		}
		return tx.Create(&doctor).Error
	})
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *Doctors) Get(ctx context.Context, id string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, "id = ?", id).Error; err != nil {
		return nil, translate(err, "doctor %s not found", id)
	}
	return &doctor, nil
}

func (r *Doctors) List(ctx context.Context, f DoctorFilter) ([]models.Doctor, error) {
	q := r.db.WithContext(ctx).Model(&models.Doctor{})
	if f.ClinicID != "" {
		q = q.Where("clinic_id = ?", f.ClinicID)
	}
	if f.IsAvailable != nil {
		q = q.Where("is_available = ?", *f.IsAvailable)
	}
	var doctors []models.Doctor
	if err := q.Order("id ASC").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

// Update applies the non-nil fields of upd. Moving a doctor to another clinic
// re-copies that clinic's name.
func (r *Doctors) Update(ctx context.Context, id string, upd models.DoctorUpdate) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&doctor, "id = ?", id).Error; err != nil {
			return translate(err, "doctor %s not found", id)
		}
		if upd.ClinicID != nil && *upd.ClinicID != "" {
			var clinic models.Clinic
			if err := tx.First(&clinic, "id = ?", *upd.ClinicID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.Validation("clinic %s not found", *upd.ClinicID)
				}
				return err
			}
			clinicName := clinic.Name
			doctor.ClinicID = clinic.ID
			doctor.ClinicName = &clinicName
		}
		if upd.Name != nil {
			doctor.Name = *upd.Name
		}
		if upd.Specialization != nil {
			doctor.Specialization = *upd.Specialization
		}
		if upd.Phone != nil {
			doctor.Phone = *upd.Phone
		}
		if upd.IsAvailable != nil {
			doctor.IsAvailable = *upd.IsAvailable
		}
		return tx.Save(&doctor).Error
	})
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *Doctors) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Doctor{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("doctor %s not found", id)
		}
		return nil
	})
}
