package schedule

import (
	"context"
	"time"

	"github.com/SmileHubSystems/dental-scheduler/internal/models"
)

type Repository interface {
	// -------- Clinic --------
	GetClinicByID(
		ctx context.Context,
		id uint,
	) (*models.Clinic, error)

	GetClinicBySlug(
		ctx context.Context,
		slug string,
	) (*models.Clinic, error)

	// -------- Procedure --------
	GetProcedure(
		ctx context.Context,
		clinicID uint,
		procedureID uint,
	) (*models.Procedure, error)

	// -------- Patient --------
	GetOrCreatePatient(
		ctx context.Context,
		clinicID uint,
		name string,
		phone string,
		email string,
	) (*models.Patient, error)

	// -------- Appointment (reserve / state change) --------

	// Reserve is the atomicity boundary for the check-then-act race:
	// inside one transaction it locks the dentist's overlapping rows,
	// re-checks the conflict and inserts. An Admitted decision from the
	// evaluator is advisory until Reserve returns nil.
	Reserve(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentForDentist(
		ctx context.Context,
		appointmentID uint,
		dentistID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		dentistID uint,
		weekday int,
	) (*models.WorkingHours, error)

	IsWithinWorkingHours(
		ctx context.Context,
		dentistID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	// ListDaySchedule returns the dentist's active windows for the day
	// [start, end), in start order, statuses already normalized.
	ListDaySchedule(
		ctx context.Context,
		dentistID uint,
		start time.Time,
		end time.Time,
	) (DaySchedule, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		dentistID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
