package appointment

import (
	"context"

	"github.com/SmileHubSystems/dental-scheduler/internal/httperr"
	"github.com/SmileHubSystems/dental-scheduler/internal/schedule"
	"github.com/SmileHubSystems/dental-scheduler/internal/timezone"
)

type AvailabilityInput struct {
	ClinicID  uint
	DentistID uint
	Date      string // YYYY-MM-DD
}

type GetAvailability struct {
	repo  schedule.Repository
	cache GridCache
}

func NewGetAvailability(repo schedule.Repository, cache GridCache) *GetAvailability {
	return &GetAvailability{repo: repo, cache: cache}
}

// Execute renders the slot grid for one dentist-day: every slot of the
// clinic's working window, each marked available or not with the reason.
// Cached per dentist-day; any appointment mutation invalidates.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]schedule.SlotView, error) {

	if uc.cache != nil {
		if grid, ok := uc.cache.GetGrid(ctx, in.DentistID, in.Date); ok {
			return grid, nil
		}
	}

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd, err := dayBounds(clinic, in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("malformed_input")
	}

	sched, err := uc.repo.ListDaySchedule(ctx, in.DentistID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	ev := evaluatorFor(clinic)
	now := timezone.NowIn(clinic.Timezone)

	grid, err := ev.BuildGrid(dayStart, sched, now)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.SetGrid(ctx, in.DentistID, in.Date, grid)
	}

	return grid, nil
}
