package schedule

import "time"

// Policy holds the clinic-level booking rules: the business-hours window
// and how far into the future or past a booking may be placed. Every
// predicate takes now explicitly so the whole package stays pure and
// testable with a fixed clock.
type Policy struct {
	Open          TimeOfDay
	Close         TimeOfDay
	HorizonMonths int
}

func DefaultPolicy() Policy {
	return Policy{
		Open:          TimeOfDay(8 * 60),
		Close:         TimeOfDay(20 * 60),
		HorizonMonths: 3,
	}
}

// WithinBusinessHours reports whether raw ("HH:MM") falls inside the
// open window, both ends inclusive. Malformed input is false, never an
// error: the booking forms send whatever the user typed.
func (p Policy) WithinBusinessHours(raw string) bool {
	t, err := ParseTimeOfDay(raw)
	if err != nil {
		return false
	}
	return t >= p.Open && t <= p.Close
}

// NotInPast reports whether at is now or later.
func (p Policy) NotInPast(at, now time.Time) bool {
	return !at.Before(now)
}

// WithinFutureHorizon reports whether at is no more than HorizonMonths
// calendar months after now. AddDate, not fixed 30-day blocks.
func (p Policy) WithinFutureHorizon(at, now time.Time) bool {
	return !at.After(now.AddDate(0, p.HorizonMonths, 0))
}

// NotTooFarInPast reports whether at is no more than HorizonMonths
// calendar months before now.
func (p Policy) NotTooFarInPast(at, now time.Time) bool {
	return !at.Before(now.AddDate(0, -p.HorizonMonths, 0))
}

// ResolveLocal builds the candidate instant from date ("YYYY-MM-DD") and
// time ("HH:MM") in loc. An empty time means start of day.
func ResolveLocal(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	day, err := ParseDate(dateStr, loc)
	if err != nil {
		return time.Time{}, err
	}
	if timeStr == "" {
		return day, nil
	}
	t, err := ParseTimeOfDay(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	return t.At(day), nil
}
