package models

import "time"

// QueueStatus is the lifecycle state of a queue entry.
type QueueStatus string

const (
	StatusWaiting   QueueStatus = "waiting"
	StatusInService QueueStatus = "in_service"
	StatusCompleted QueueStatus = "completed"
	StatusCancelled QueueStatus = "cancelled"
)

// QueueStatuses lists every status in lifecycle order.
var QueueStatuses = []QueueStatus{StatusWaiting, StatusInService, StatusCompleted, StatusCancelled}

func (s QueueStatus) Valid() bool {
	switch s {
	case StatusWaiting, StatusInService, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// TimestampLayout is the format of every lifecycle timestamp. The fraction has
// a fixed width so that string order equals chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// DateLayout is the format of visit dates.
const DateLayout = "2006-01-02"

// Queue is one patient's place in a clinic's line.
type Queue struct {
	ID               string      `json:"id" gorm:"primaryKey;size:50"`
	QueueNumber      string      `json:"queue_number" gorm:"size:50;not null"`
	PatientID        string      `json:"patient_id" gorm:"size:50;not null;index"`
	PatientName      string      `json:"patient_name" gorm:"size:255;not null"`
	ClinicID         string      `json:"clinic_id" gorm:"size:50;not null;index"`
	ClinicName       string      `json:"clinic_name" gorm:"size:255;not null"`
	DoctorID         *string     `json:"doctor_id" gorm:"size:50"`
	DoctorName       *string     `json:"doctor_name" gorm:"size:255"`
	Status           QueueStatus `json:"status" gorm:"size:50;not null;index"`
	RegistrationTime string      `json:"registration_time" gorm:"size:50;not null"`
	CalledTime       *string     `json:"called_time" gorm:"size:50"`
	ServiceStartTime *string     `json:"service_start_time" gorm:"size:50"`
	ServiceEndTime   *string     `json:"service_end_time" gorm:"size:50"`
	Notes            *string     `json:"notes" gorm:"size:255"`
	CreatedAt        time.Time   `json:"-" gorm:"autoCreateTime"`
}

func (Queue) TableName() string { return "queues" }

// QueueExtra holds the optional fields merged on a status transition.
type QueueExtra struct {
	DoctorID *string `json:"doctor_id"`
	Notes    *string `json:"notes"`
}
