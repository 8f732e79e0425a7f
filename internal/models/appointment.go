package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClinicID uint   `json:"clinic_id"`
	Clinic   Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"clinic"`

	DentistID uint `json:"dentist_id"`
	Dentist   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"dentist"`

	PatientID uint    `json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	ProcedureID uint      `json:"procedure_id"`
	Procedure   Procedure `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"procedure"`

	ScheduledTime time.Time `json:"scheduled_time"`
	EndTime       time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	// Reference code handed to patients booking through the public page.
	Reference string `gorm:"size:36;index" json:"reference"`

	Notes       string     `gorm:"size:255" json:"notes"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
