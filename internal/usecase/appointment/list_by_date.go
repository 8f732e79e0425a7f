package appointment

import (
	"context"
	"time"

	"github.com/SmileHubSystems/dental-scheduler/internal/dto"
	"github.com/SmileHubSystems/dental-scheduler/internal/models"
	"github.com/SmileHubSystems/dental-scheduler/internal/schedule"
	"github.com/SmileHubSystems/dental-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo schedule.Repository
}

func NewListAppointmentsByDate(
	repo schedule.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	dentistID uint,
	clinicID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(clinic.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		dentistID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return toListDTOs(appointments), nil
}

// toListDTOs normalizes each stored status on the way out and tells the
// screen whether its edit controls should even show.
func toListDTOs(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		status := schedule.Normalize(ap.Status)
		out = append(out, dto.AppointmentListDTO{
			ID:            ap.ID,
			ScheduledTime: ap.ScheduledTime,
			EndTime:       ap.EndTime,
			Status:        string(status),
			CanEdit:       schedule.CanEdit(status),
			PatientName:   ap.Patient.Name,
			ProcedureName: ap.Procedure.Name,
		})
	}
	return out
}
