package models

import "time"

// DefaultAppointmentStatus is stamped on every newly recorded visit.
const DefaultAppointmentStatus = "Completed"

// VisitHistory is the record of a completed queue entry. QueueID points back at
// the originating queue but does not own it.
type VisitHistory struct {
	ID                string    `json:"id" gorm:"primaryKey;size:50"`
	QueueID           string    `json:"queue_id" gorm:"size:50;not null;index"`
	PatientID         string    `json:"patient_id" gorm:"size:50;not null;index"`
	PatientName       string    `json:"patient_name" gorm:"size:255;not null"`
	ClinicID          string    `json:"clinic_id" gorm:"size:50;not null;index"`
	ClinicName        string    `json:"clinic_name" gorm:"size:255;not null"`
	DoctorID          string    `json:"doctor_id" gorm:"size:50;not null"`
	DoctorName        string    `json:"doctor_name" gorm:"size:255;not null"`
	VisitDate         string    `json:"visit_date" gorm:"size:50;not null;index"`
	Reason            string    `json:"reason" gorm:"size:255;not null"`
	PaymentAmount     float64   `json:"payment_amount" gorm:"not null"`
	ModeOfPayment     string    `json:"mode_of_payment" gorm:"size:50;not null"`
	ModeOfAppointment string    `json:"mode_of_appointment" gorm:"size:50;not null"`
	AppointmentStatus string    `json:"appointment_status" gorm:"size:50;not null;default:Completed"`
	CreatedAt         time.Time `json:"-" gorm:"autoCreateTime"`
}

func (VisitHistory) TableName() string { return "visits" }

// VisitInput is what the recorder needs to create a visit.
type VisitInput struct {
	QueueID           string  `json:"queue_id" binding:"required"`
	PatientID         string  `json:"patient_id" binding:"required"`
	PatientName       string  `json:"patient_name" binding:"required"`
	ClinicID          string  `json:"clinic_id" binding:"required"`
	ClinicName        string  `json:"clinic_name" binding:"required"`
	DoctorID          string  `json:"doctor_id"`
	DoctorName        string  `json:"doctor_name"`
	Reason            string  `json:"reason" binding:"required"`
	PaymentAmount     float64 `json:"payment_amount" binding:"gte=0"`
	ModeOfPayment     string  `json:"mode_of_payment" binding:"required"`
	ModeOfAppointment string  `json:"mode_of_appointment" binding:"required"`
}

// VisitUpdate holds the editable visit fields; nil fields are left alone.
type VisitUpdate struct {
	Reason            *string  `json:"reason"`
	PaymentAmount     *float64 `json:"payment_amount"`
	ModeOfPayment     *string  `json:"mode_of_payment"`
	ModeOfAppointment *string  `json:"mode_of_appointment"`
	AppointmentStatus *string  `json:"appointment_status"`
}

// VisitFilter narrows a visit query. Dates compare lexically against visit_date.
type VisitFilter struct {
	PatientID string
	ClinicID  string
	StartDate string
	EndDate   string
}
