package schedule

import "time"

// Window is the concrete interval [Start, End) occupied by one real
// appointment of one dentist. EndTime is derived upstream from the
// procedure's estimated minutes; here it is taken as given.
type Window struct {
	AppointmentID uint
	Start         time.Time
	End           time.Time
	Status        Status
}

// DaySchedule is one dentist's windows for one calendar day, in store
// order. The scheduling core only reads it.
type DaySchedule []Window

// Unavailability reasons for a slot. The remedial action differs: a past
// slot has none, a conflict means pick another dentist or time.
const (
	SlotReasonPast     = "past"
	SlotReasonConflict = "conflict"
)

// SlotState is Classify's verdict on one slot.
type SlotState struct {
	Slot      Slot
	Available bool
	Reason    string
	Conflict  *Window
}

// Classify marks slot against a dentist's schedule for day. A slot whose
// start is already behind now is unavailable regardless of conflicts.
// Overlap is half-open: touching endpoints do not collide. The scan is
// a plain first-match walk in input order; the tiny per-day N does not
// justify anything cleverer.
func Classify(slot Slot, day time.Time, sched DaySchedule, now time.Time) SlotState {
	state := SlotState{Slot: slot, Available: true}

	slotStart := slot.Start.At(day)
	slotEnd := slot.End.At(day)

	if slotStart.Before(now) {
		state.Available = false
		state.Reason = SlotReasonPast
		return state
	}

	for i := range sched {
		w := sched[i]
		if slotStart.Before(w.End) && slotEnd.After(w.Start) {
			state.Available = false
			state.Reason = SlotReasonConflict
			state.Conflict = &sched[i]
			return state
		}
	}

	return state
}

// Overlaps reports whether [start, end) intersects any window, returning
// the first hit in input order.
func (s DaySchedule) Overlaps(start, end time.Time) *Window {
	for i := range s {
		if start.Before(s[i].End) && end.After(s[i].Start) {
			return &s[i]
		}
	}
	return nil
}
