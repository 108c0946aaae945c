package repository

import (
	"context"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/models"

	"gorm.io/gorm"
)

const clinicIDPrefix = "clinic-"

type Clinics struct {
	db *gorm.DB
}

func NewClinics(db *gorm.DB) *Clinics {
	return &Clinics{db: db}
}

// Create stores a new active clinic under the next clinic-NNN id.
func (r *Clinics) Create(ctx context.Context, name string, description *string) (*models.Clinic, error) {
	if name == "" {
		return nil, apperr.Validation("clinic name is required")
	}
	var clinic models.Clinic
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextSequentialID(tx, &models.Clinic{}, clinicIDPrefix)
		if err != nil {
			return err
		}
		clinic = models.Clinic{ID: id, Name: name, Description: description, IsActive: true}
		return tx.Create(&clinic).Error
	})
	if err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (r *Clinics) Get(ctx context.Context, id string) (*models.Clinic, error) {
	var clinic models.Clinic
	if err := r.db.WithContext(ctx).First(&clinic, "id = ?", id).Error; err != nil {
		return nil, translate(err, "clinic %s not found", id)
	}
	return &clinic, nil
}

// List returns all clinics, optionally only active or inactive ones.
func (r *Clinics) List(ctx context.Context, isActive *bool) ([]models.Clinic, error) {
	q := r.db.WithContext(ctx).Model(&models.Clinic{})
	if isActive != nil {
		q = q.Where("is_active = ?", *isActive)
	}
	var clinics []models.Clinic
	if err := q.Order("id ASC").Find(&clinics).Error; err != nil {
		return nil, err
	}
	return clinics, nil
}

// Update applies the non-nil fields of upd. Renaming a clinic does not touch
// the clinic_name copies held by doctors and queues.
func (r *Clinics) Update(ctx context.Context, id string, upd models.ClinicUpdate) (*models.Clinic, error) {
	var clinic models.Clinic
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&clinic, "id = ?", id).Error; err != nil {
			return translate(err, "clinic %s not found", id)
		}
		if upd.Name != nil {
			if *upd.Name == "" {
				return apperr.Validation("clinic name cannot be empty")
			}
			clinic.Name = *upd.Name
		}
		if upd.Description != nil {
			clinic.Description = upd.Description
		}
		if upd.IsActive != nil {
			clinic.IsActive = *upd.IsActive
		}
		return tx.Save(&clinic).Error
	})
	if err != nil {
		return nil, err
	}
	return &clinic, nil
}

// Delete removes the clinic only; its doctors and queues stay.
func (r *Clinics) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Clinic{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("clinic %s not found", id)
		}
		return nil
	})
}
