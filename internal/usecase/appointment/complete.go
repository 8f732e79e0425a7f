package appointment

import (
	"context"

	"github.com/SmileHubSystems/dental-scheduler/internal/audit"
	"github.com/SmileHubSystems/dental-scheduler/internal/httperr"
	"github.com/SmileHubSystems/dental-scheduler/internal/models"
	"github.com/SmileHubSystems/dental-scheduler/internal/schedule"
	"github.com/SmileHubSystems/dental-scheduler/internal/timezone"
)

type CompleteAppointment struct {
	repo  schedule.Repository
	cache GridCache
	audit AuditTrail
}

func NewCompleteAppointment(
	repo schedule.Repository,
	cache GridCache,
	trail AuditTrail,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		cache: cache,
		audit: trail,
	}
}

func (uc *CompleteAppointment) Execute(
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

	now := timezone.NowIn(clinic.Timezone)
	if err := schedule.Complete(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	invalidateDay(ctx, uc.cache, clinic, ap)

	uc.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &dentistID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
