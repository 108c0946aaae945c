package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// The hospital records schema is a separate bounded context from the queue
// system: integer keys, real foreign keys, and no link to clinics/queues/visits.

// HospitalPatient is a patient in the hospital records schema.
type HospitalPatient struct {
	PatientID         uint    `json:"patient_id" gorm:"primaryKey;autoIncrement"`
	PatientName       string  `json:"patient_name" gorm:"size:100;not null" binding:"required"`
	Gender            string  `json:"gender" gorm:"size:10;not null" binding:"required"`
	DateOfBirth       string  `json:"date_of_birth" gorm:"size:10;not null" binding:"required"`
	ContactNumber     *string `json:"contact_number" gorm:"size:20"`
	Address           *string `json:"address" gorm:"size:255"`
	Email             *string `json:"email" gorm:"size:100;uniqueIndex"`
	Password          string  `json:"password,omitempty" gorm:"size:255"`
	RegistrationDate  *string `json:"registration_date" gorm:"size:10"`
	InsuranceProvider *string `json:"insurance_provider" gorm:"size:100"`
	InsuranceNumber   *string `json:"insurance_number" gorm:"size:50"`
}

func (HospitalPatient) TableName() string { return "hr_patients" }

// ClearKey zeroes the primary key so the database assigns it on insert.
func (p *HospitalPatient) ClearKey() { p.PatientID = 0 }

func (p *HospitalPatient) BeforeCreate(*gorm.DB) error {
	return hashPassword(&p.Password)
}

func (p *HospitalPatient) AfterCreate(*gorm.DB) error {
	p.Password = ""
	return nil
}

func (p *HospitalPatient) AfterFind(*gorm.DB) error {
	p.Password = ""
	return nil
}

// HospitalDoctor is a doctor in the hospital records schema.
type HospitalDoctor struct {
	DoctorID        uint    `json:"doctor_id" gorm:"primaryKey;autoIncrement"`
	DoctorsName     string  `json:"doctors_name" gorm:"size:100;not null" binding:"required"`
	Specialization  *string `json:"specialization" gorm:"size:100"`
	PhoneNumber     *string `json:"phone_number" gorm:"size:20"`
	YearsExperience *int    `json:"years_experience"`
	HospitalBranch  *string `json:"hospital_branch" gorm:"size:100"`
	Email           *string `json:"email" gorm:"size:100;uniqueIndex"`
	Password        string  `json:"password,omitempty" gorm:"size:255"`
}

func (HospitalDoctor) TableName() string { return "hr_doctors" }

func (d *HospitalDoctor) ClearKey() { d.DoctorID = 0 }

func (d *HospitalDoctor) BeforeCreate(*gorm.DB) error {
	return hashPassword(&d.Password)
}

func (d *HospitalDoctor) AfterCreate(*gorm.DB) error {
	d.Password = ""
	return nil
}

func (d *HospitalDoctor) AfterFind(*gorm.DB) error {
	d.Password = ""
	return nil
}

// hashPassword replaces a plaintext password with its bcrypt digest. The
// digest is write-only: the hooks above blank it on every read.
func hashPassword(pw *string) error {
	if *pw == "" {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(*pw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	*pw = string(hashed)
	return nil
}

// Appointment books a hospital patient with a hospital doctor.
type Appointment struct {
	AppointmentID   uint             `json:"appointment_id" gorm:"primaryKey;autoIncrement"`
	PatientID       uint             `json:"patient_id" gorm:"index" binding:"required"`
	DoctorID        uint             `json:"doctor_id" gorm:"index" binding:"required"`
	AppointmentDate string           `json:"appointment_date" gorm:"size:10;not null" binding:"required"`
	AppointmentTime *string          `json:"appointment_time" gorm:"size:8"`
	ReasonForVisit  *string          `json:"reason_for_visit" gorm:"size:255"`
	Status          *string          `json:"status" gorm:"size:50"`
	Patient         *HospitalPatient `json:"-" gorm:"foreignKey:PatientID;references:PatientID"`
	Doctor          *HospitalDoctor  `json:"-" gorm:"foreignKey:DoctorID;references:DoctorID"`
}

func (Appointment) TableName() string { return "hr_appointments" }

func (a *Appointment) ClearKey() { a.AppointmentID = 0 }

// Treatment is care given during an appointment.
type Treatment struct {
	TreatmentID   uint         `json:"treatment_id" gorm:"primaryKey;autoIncrement"`
	AppointmentID uint         `json:"appointment_id" gorm:"index" binding:"required"`
	TreatmentType *string      `json:"treatment_type" gorm:"size:100"`
	Description   *string      `json:"description" gorm:"size:255"`
	Cost          *float64     `json:"cost"`
	TreatmentDate *string      `json:"treatment_date" gorm:"size:10"`
	Appointment   *Appointment `json:"-" gorm:"foreignKey:AppointmentID;references:AppointmentID"`
}

func (Treatment) TableName() string { return "hr_treatments" }

func (t *Treatment) ClearKey() { t.TreatmentID = 0 }

// Billing charges a patient for a treatment.
type Billing struct {
	BillID        uint             `json:"bill_id" gorm:"primaryKey;autoIncrement"`
	PatientID     uint             `json:"patient_id" gorm:"index" binding:"required"`
	TreatmentID   uint             `json:"treatment_id" gorm:"index" binding:"required"`
	BillDate      *string          `json:"bill_date" gorm:"size:10"`
	Amount        *float64         `json:"amount"`
	PaymentMethod *string          `json:"payment_method" gorm:"size:50"`
	PaymentStatus *string          `json:"payment_status" gorm:"size:50"`
	Patient       *HospitalPatient `json:"-" gorm:"foreignKey:PatientID;references:PatientID"`
	Treatment     *Treatment       `json:"-" gorm:"foreignKey:TreatmentID;references:TreatmentID"`
}

func (Billing) TableName() string { return "hr_billing" }

func (b *Billing) ClearKey() { b.BillID = 0 }

// Record is the master record joining a patient with an appointment,
// treatment and bill.
type Record struct {
	RecordID      uint             `json:"record_id" gorm:"primaryKey;autoIncrement"`
	PatientID     uint             `json:"patient_id" gorm:"index" binding:"required"`
	AppointmentID *uint            `json:"appointment_id" gorm:"index"`
	DoctorID      *uint            `json:"doctor_id" gorm:"index"`
	TreatmentID   *uint            `json:"treatment_id" gorm:"index"`
	BillID        *uint            `json:"bill_id" gorm:"index"`
	Patient       *HospitalPatient `json:"-" gorm:"foreignKey:PatientID;references:PatientID"`
	Appointment   *Appointment     `json:"-" gorm:"foreignKey:AppointmentID;references:AppointmentID"`
	Doctor        *HospitalDoctor  `json:"-" gorm:"foreignKey:DoctorID;references:DoctorID"`
	Treatment     *Treatment       `json:"-" gorm:"foreignKey:TreatmentID;references:TreatmentID"`
	Billing       *Billing         `json:"-" gorm:"foreignKey:BillID;references:BillID"`
}

func (Record) TableName() string { return "hr_records" }

func (r *Record) ClearKey() { r.RecordID = 0 }
