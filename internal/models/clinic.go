package models

import "time"

// Clinic is a service point that patients queue for.
type Clinic struct {
	ID          string    `json:"id" gorm:"primaryKey;size:50"`        // clinic-NNN
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description *string   `json:"description" gorm:"size:255"`
	IsActive    bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Clinic) TableName() string { return "clinics" }

// ClinicUpdate carries the mutable clinic fields; nil fields are left alone.
type ClinicUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}
