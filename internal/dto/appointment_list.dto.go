package dto

import "time"

type AppointmentListDTO struct {
	ID            uint      `json:"id"`
	ScheduledTime time.Time `json:"scheduled_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	CanEdit       bool      `json:"can_edit"`
	PatientName   string    `json:"patient_name"`
	ProcedureName string    `json:"procedure_name"`
}
