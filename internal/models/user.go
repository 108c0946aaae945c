package models

import "time"

// User is an account of the queue system. Patients get a medical record
// number on registration; staff accounts do not.
type User struct {
	ID                  string    `json:"id" gorm:"primaryKey;size:50"`
	Name                string    `json:"name" gorm:"size:255;not null"`
	Email               string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Phone               string    `json:"phone" gorm:"size:50;not null"`
	Role                UserRole  `json:"role" gorm:"size:50;not null;index"`
	MedicalRecordNumber *string   `json:"medical_record_number" gorm:"size:50"`
	PasswordHash        string    `json:"-" gorm:"size:255;not null"`
	CreatedAt           time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (User) TableName() string { return "users" }

// UserUpdate carries the mutable user fields; nil fields are left alone.
type UserUpdate struct {
	Name                *string   `json:"name"`
	Phone               *string   `json:"phone"`
	Role                *UserRole `json:"role"`
	MedicalRecordNumber *string   `json:"medical_record_number"`
}
