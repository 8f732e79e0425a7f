package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/SmileHubSystems/dental-scheduler/internal/audit"
	"github.com/SmileHubSystems/dental-scheduler/internal/httperr"
	"github.com/SmileHubSystems/dental-scheduler/internal/models"
	"github.com/SmileHubSystems/dental-scheduler/internal/schedule"
	"github.com/SmileHubSystems/dental-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClinicID  uint
	DentistID uint

	PatientName  string
	PatientPhone string
	PatientEmail string

	ProcedureID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string

	// Public marks a booking made through the clinic's public page;
	// those get a reference code the patient can quote later.
	Public bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  schedule.Repository
	cache GridCache
	audit AuditTrail
}

func NewCreateAppointment(
	repo schedule.Repository,
	cache GridCache,
	trail AuditTrail,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		cache: cache,
		audit: trail,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	proc, err := uc.repo.GetProcedure(ctx, in.ClinicID, in.ProcedureID)
	if err != nil {
		return nil, httperr.ErrBusiness("procedure_not_found")
	}

	ev := evaluatorFor(clinic)
	now := timezone.NowIn(clinic.Timezone)

	dayStart, dayEnd, err := dayBounds(clinic, in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("malformed_input")
	}

	sched, err := uc.repo.ListDaySchedule(ctx, in.DentistID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	decision := ev.EvaluateBooking(schedule.BookingRequest{
		DentistID:   in.DentistID,
		Date:        in.Date,
		Time:        in.Time,
		DurationMin: proc.DurationMin,
	}, sched, now)

	if err := decision.Err(); err != nil {
		return nil, err
	}

	start, err := schedule.ResolveLocal(in.Date, in.Time, ev.Location)
	if err != nil {
		return nil, httperr.ErrBusiness("malformed_input")
	}
	end := start.Add(time.Duration(proc.DurationMin) * time.Minute)

	ok, err := uc.repo.IsWithinWorkingHours(ctx, in.DentistID, start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	patient, err := uc.repo.GetOrCreatePatient(
		ctx,
		in.ClinicID,
		in.PatientName,
		in.PatientPhone,
		in.PatientEmail,
	)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ClinicID:      in.ClinicID,
		DentistID:     in.DentistID,
		PatientID:     patient.ID,
		ProcedureID:   proc.ID,
		ScheduledTime: start,
		EndTime:       end,
		Status:        string(schedule.InitialStatus()),
		Notes:         in.Notes,
	}
	if in.Public {
		ap.Reference = uuid.NewString()
	}

	// The admitted decision above is advisory; Reserve re-checks under a
	// row lock and is the call that actually claims the slot.
	if err := uc.repo.Reserve(ctx, ap); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.InvalidateDay(ctx, in.DentistID, in.Date)
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &in.DentistID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
