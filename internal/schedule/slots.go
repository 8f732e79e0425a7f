package schedule

import "github.com/SmileHubSystems/dental-scheduler/internal/httperr"

// Slot is one fixed-width candidate booking interval of the working day,
// half-open [Start, End). Recomputed per request, never persisted.
type Slot struct {
	Start TimeOfDay
	End   TimeOfDay
}

// GenerateSlots tiles [open, close) with intervalMin-wide slots.
// The window must be evenly divisible by the interval; a partial last
// slot would either spill past closing or silently shrink, so the
// mismatch is rejected instead of clamped.
func GenerateSlots(open, close TimeOfDay, intervalMin int) ([]Slot, error) {
	if intervalMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_slot_interval")
	}
	if close <= open {
		return nil, httperr.ErrBusiness("invalid_working_window")
	}
	if int(close-open)%intervalMin != 0 {
		return nil, httperr.ErrBusiness("interval_does_not_tile_window")
	}

	slots := make([]Slot, 0, int(close-open)/intervalMin)
	for cur := open; cur < close; cur = cur.Add(intervalMin) {
		slots = append(slots, Slot{Start: cur, End: cur.Add(intervalMin)})
	}
	return slots, nil
}
