package schedule

import "time"

// ===============================
// Booking request / decision
// ===============================

// BookingRequest is the candidate submitted by a booking form. Transient;
// lives only for one evaluation.
type BookingRequest struct {
	DentistID   uint
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	DurationMin int
}

// Rejection reason codes, one per distinct failure so callers can show a
// specific message instead of a generic "cannot book".
type Reason string

const (
	ReasonMalformedInput       Reason = "malformed_input"
	ReasonOutsideBusinessHours Reason = "outside_business_hours"
	ReasonInPast               Reason = "in_past"
	ReasonTooFarInFuture       Reason = "too_far_in_future"
	ReasonTooFarInPast         Reason = "too_far_in_past"
	ReasonSlotConflict         Reason = "slot_conflict"
)

type Decision struct {
	Admitted bool
	Reason   Reason
	// Conflict carries the colliding window when Reason is slot_conflict,
	// so the caller can say "already booked — status X".
	Conflict *Window
}

func admitted() Decision {
	return Decision{Admitted: true}
}

func rejected(r Reason) Decision {
	return Decision{Reason: r}
}

// RejectionError wraps a rejecting Decision for callers that want the
// outcome as an error. The reason code is the error string, so it slots
// into the same branching the business-error codes use.
type RejectionError struct {
	Decision Decision
}

func (e RejectionError) Error() string {
	return string(e.Decision.Reason)
}

// Err returns nil for an admitted decision, a RejectionError otherwise.
func (d Decision) Err() error {
	if d.Admitted {
		return nil
	}
	return RejectionError{Decision: d}
}

// ===============================
// Evaluator
// ===============================

// Evaluator is the composition root of the scheduling core: temporal
// policy plus conflict detection over a caller-supplied day schedule.
// It never touches storage; an admitted decision is advisory until the
// repository's Reserve confirms it.
type Evaluator struct {
	Policy   Policy
	Interval int // slot width in minutes
	Location *time.Location
}

func NewEvaluator(policy Policy, intervalMin int, loc *time.Location) Evaluator {
	if loc == nil {
		loc = time.Local
	}
	return Evaluator{Policy: policy, Interval: intervalMin, Location: loc}
}

// EvaluateBooking runs the admission checks in reporting order: cheapest
// and most actionable first. A request that is both out-of-hours and
// conflicting reports out-of-hours. Pure; sched is read only.
func (e Evaluator) EvaluateBooking(req BookingRequest, sched DaySchedule, now time.Time) Decision {
	if req.DurationMin <= 0 {
		return rejected(ReasonMalformedInput)
	}

	start, err := ResolveLocal(req.Date, req.Time, e.Location)
	if err != nil {
		return rejected(ReasonMalformedInput)
	}

	if !e.Policy.WithinBusinessHours(req.Time) {
		return rejected(ReasonOutsideBusinessHours)
	}
	if !e.Policy.NotInPast(start, now) {
		return rejected(ReasonInPast)
	}
	if !e.Policy.WithinFutureHorizon(start, now) {
		return rejected(ReasonTooFarInFuture)
	}
	if !e.Policy.NotTooFarInPast(start, now) {
		return rejected(ReasonTooFarInPast)
	}

	end := start.Add(time.Duration(req.DurationMin) * time.Minute)
	if w := sched.Overlaps(start, end); w != nil {
		d := rejected(ReasonSlotConflict)
		d.Conflict = w
		return d
	}

	return admitted()
}

// ===============================
// Slot grid
// ===============================

// SlotView is one row of the grid the booking screens render.
type SlotView struct {
	Time      string `json:"time"`
	End       string `json:"end"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// BuildGrid generates the day's slots and classifies each against the
// dentist's schedule. Full recomputation per call; callers re-run it
// whenever the day schedule changes.
func (e Evaluator) BuildGrid(day time.Time, sched DaySchedule, now time.Time) ([]SlotView, error) {
	slots, err := GenerateSlots(e.Policy.Open, e.Policy.Close, e.Interval)
	if err != nil {
		return nil, err
	}

	grid := make([]SlotView, 0, len(slots))
	for _, slot := range slots {
		state := Classify(slot, day, sched, now)
		grid = append(grid, SlotView{
			Time:      slot.Start.String(),
			End:       slot.End.String(),
			Available: state.Available,
			Reason:    state.Reason,
		})
	}
	return grid, nil
}
