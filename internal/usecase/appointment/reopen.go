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

// ReopenAppointment resets a cancelled or confirmed appointment back to
// PENDING. The reception desk uses this when a cancellation turns out to
// be a mistake; a completed visit never reopens.
type ReopenAppointment struct {
	repo  schedule.Repository
	cache GridCache
	audit AuditTrail
}

func NewReopenAppointment(
	repo schedule.Repository,
	cache GridCache,
	trail AuditTrail,
) *ReopenAppointment {
	return &ReopenAppointment{
		repo:  repo,
		cache: cache,
		audit: trail,
	}
}

func (uc *ReopenAppointment) Execute(
	ctx context.Context,
	clinicID uint,
	dentistID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForDentist(ctx, appointmentID, dentistID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := schedule.Reopen(ap); err != nil {
		return nil, err
	}

	// The slot was released when the appointment left the active set;
	// someone may have booked it since. Re-check before re-occupying.
	local := ap.ScheduledTime.In(timezone.Location(clinic.Timezone))
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	sched, err := uc.repo.ListDaySchedule(ctx, dentistID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	for _, w := range sched {
		if w.AppointmentID == ap.ID {
			continue
		}
		if ap.ScheduledTime.Before(w.End) && ap.EndTime.After(w.Start) {
			return nil, httperr.ErrBusiness("slot_conflict")
		}
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	invalidateDay(ctx, uc.cache, clinic, ap)

	uc.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &dentistID,
		Action:   "appointment_reopened",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
