package appointment

import (
	"context"
	"time"

	"github.com/SmileHubSystems/dental-scheduler/internal/audit"
	"github.com/SmileHubSystems/dental-scheduler/internal/httperr"
	"github.com/SmileHubSystems/dental-scheduler/internal/models"
	"github.com/SmileHubSystems/dental-scheduler/internal/schedule"
	"github.com/SmileHubSystems/dental-scheduler/internal/timezone"
)

type RescheduleInput struct {
	ClinicID      uint
	DentistID     uint
	AppointmentID uint

	Date string // YYYY-MM-DD
	Time string // HH:MM

	// Optional procedure change; zero keeps the current one.
	ProcedureID uint

	Notes *string
}

// RescheduleAppointment moves an existing appointment to a new slot,
// running the same admission checks as a fresh booking. The original
// appointment's own window never blocks its move.
type RescheduleAppointment struct {
	repo  schedule.Repository
	cache GridCache
	audit AuditTrail
}

func NewRescheduleAppointment(
	repo schedule.Repository,
	cache GridCache,
	trail AuditTrail,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		cache: cache,
		audit: trail,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Appointment, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForDentist(ctx, in.AppointmentID, in.DentistID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// A finalized visit rejects every edit, whatever the field.
	if err := schedule.EnsureEditable(ap); err != nil {
		return nil, err
	}

	procedureID := ap.ProcedureID
	if in.ProcedureID != 0 {
		procedureID = in.ProcedureID
	}
	proc, err := uc.repo.GetProcedure(ctx, in.ClinicID, procedureID)
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

	// Drop the appointment's own window so moving inside it is legal.
	others := make(schedule.DaySchedule, 0, len(sched))
	for _, w := range sched {
		if w.AppointmentID != ap.ID {
			others = append(others, w)
		}
	}

	decision := ev.EvaluateBooking(schedule.BookingRequest{
		DentistID:   in.DentistID,
		Date:        in.Date,
		Time:        in.Time,
		DurationMin: proc.DurationMin,
	}, others, now)

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

	// Invalidate the day it is leaving before the times change.
	invalidateDay(ctx, uc.cache, clinic, ap)

	ap.ScheduledTime = start
	ap.EndTime = end
	ap.ProcedureID = proc.ID
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	invalidateDay(ctx, uc.cache, clinic, ap)

	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &in.DentistID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"scheduled_time": start,
			"end_time":       end,
		},
	})

	return ap, nil
}
