package appointment

import (
	"context"

	"github.com/SmileHubSystems/dental-scheduler/internal/audit"
	"github.com/SmileHubSystems/dental-scheduler/internal/httperr"
	"github.com/SmileHubSystems/dental-scheduler/internal/models"
	"github.com/SmileHubSystems/dental-scheduler/internal/schedule"
	"github.com/SmileHubSystems/dental-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo  schedule.Repository
	cache GridCache
	audit AuditTrail
}

func NewCancelAppointment(
	repo schedule.Repository,
	cache GridCache,
	trail AuditTrail,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		cache: cache,
		audit: trail,
	}
}

func (uc *CancelAppointment) Execute(
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
	if err := schedule.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	invalidateDay(ctx, uc.cache, clinic, ap)

	uc.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &dentistID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
