package schedule

import (
	"testing"
	"time"
)

func mustSlot(t *testing.T, start string, intervalMin int) Slot {
	t.Helper()
	s, err := ParseTimeOfDay(start)
	if err != nil {
		t.Fatalf("bad slot start %q: %v", start, err)
	}
	return Slot{Start: s, End: s.Add(intervalMin)}
}

func TestClassifyAgainstOffsetWindow(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, loc)
	now := day // early morning, nothing is past yet

	// One appointment 16:03-17:03, the kind a manual reschedule leaves behind.
	sched := DaySchedule{{
		AppointmentID: 7,
		Start:         day.Add(16*time.Hour + 3*time.Minute),
		End:           day.Add(17*time.Hour + 3*time.Minute),
		Status:        StatusConfirmed,
	}}

	cases := []struct {
		start string
		free  bool
	}{
		{"16:00", false}, // 16:00-16:30 overlaps the head
		{"16:30", false},
		{"17:00", false}, // 17:00-17:30 overlaps the tail
		{"17:30", true},
		{"15:30", true}, // ends exactly at... 16:00, before window start
	}

	for _, tc := range cases {
		state := Classify(mustSlot(t, tc.start, 30), day, sched, now)
		if state.Available != tc.free {
			t.Errorf("slot %s: available=%v, want %v", tc.start, state.Available, tc.free)
		}
		if !tc.free {
			if state.Reason != SlotReasonConflict {
				t.Errorf("slot %s: reason %q, want conflict", tc.start, state.Reason)
			}
			if state.Conflict == nil || state.Conflict.AppointmentID != 7 {
				t.Errorf("slot %s: missing conflicting window", tc.start)
			}
		}
	}
}

func TestClassifyTouchingEndpointsAreFree(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, loc)
	now := day

	sched := DaySchedule{{
		Start: day.Add(10 * time.Hour),
		End:   day.Add(10*time.Hour + 30*time.Minute),
	}}

	before := Classify(mustSlot(t, "09:30", 30), day, sched, now)
	if !before.Available {
		t.Error("slot ending exactly at window start must be free")
	}
	after := Classify(mustSlot(t, "10:30", 30), day, sched, now)
	if !after.Available {
		t.Error("slot starting exactly at window end must be free")
	}
}

func TestClassifyPastBeatsConflict(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, loc)
	now := day.Add(12 * time.Hour) // noon

	sched := DaySchedule{{
		Start: day.Add(9 * time.Hour),
		End:   day.Add(10 * time.Hour),
	}}

	// 09:00 is both past and conflicting; past wins, there is nothing
	// the user can do about a slot behind the clock.
	state := Classify(mustSlot(t, "09:00", 30), day, sched, now)
	if state.Available {
		t.Fatal("past slot must be unavailable")
	}
	if state.Reason != SlotReasonPast {
		t.Errorf("reason %q, want past", state.Reason)
	}

	free := Classify(mustSlot(t, "14:00", 30), day, sched, now)
	if !free.Available {
		t.Error("future conflict-free slot must be available")
	}
}

func TestClassifyFirstMatchInInputOrder(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, loc)
	now := day

	// Two windows over the same slot, deliberately out of time order.
	sched := DaySchedule{
		{AppointmentID: 2, Start: day.Add(11 * time.Hour), End: day.Add(12 * time.Hour)},
		{AppointmentID: 1, Start: day.Add(10 * time.Hour), End: day.Add(13 * time.Hour)},
	}

	state := Classify(mustSlot(t, "11:00", 30), day, sched, now)
	if state.Conflict == nil || state.Conflict.AppointmentID != 2 {
		t.Error("expected the first window in input order to be reported")
	}
}

func TestOverlapsReturnsFirstHit(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, loc)

	sched := DaySchedule{
		{AppointmentID: 1, Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour)},
		{AppointmentID: 2, Start: day.Add(11 * time.Hour), End: day.Add(12 * time.Hour)},
	}

	if w := sched.Overlaps(day.Add(10*time.Hour), day.Add(11*time.Hour)); w != nil {
		t.Errorf("touching both windows should not collide, got %d", w.AppointmentID)
	}
	w := sched.Overlaps(day.Add(11*time.Hour+30*time.Minute), day.Add(12*time.Hour+30*time.Minute))
	if w == nil || w.AppointmentID != 2 {
		t.Error("expected overlap with window 2")
	}
}
