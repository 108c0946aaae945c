package models

import "time"

// Doctor is a practitioner attached to one clinic. ClinicName is a copy of the
// clinic's name taken when the doctor was created or reassigned.
type Doctor struct {
	ID             string    `json:"id" gorm:"primaryKey;size:50"`            // doctor-NNN
	Name           string    `json:"name" gorm:"size:255;not null"`
	Specialization string    `json:"specialization" gorm:"size:255;not null"`
	ClinicID       string    `json:"clinic_id" gorm:"size:50;not null;index"`
	ClinicName     *string   `json:"clinic_name" gorm:"size:255"`
	Phone          string    `json:"phone" gorm:"size:50;not null"`
	IsAvailable    bool      `json:"is_available" gorm:"default:true;index"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Doctor) TableName() string { return "doctors" }

// DoctorUpdate carries the mutable doctor fields; nil fields are left alone.
type DoctorUpdate struct {
	Name           *string `json:"name"`
	Specialization *string `json:"specialization"`
	ClinicID       *string `json:"clinic_id"`
	Phone          *string `json:"phone"`
	IsAvailable    *bool   `json:"is_available"`
}
