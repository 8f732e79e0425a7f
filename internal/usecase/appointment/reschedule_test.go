package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmileHubSystems/dental-scheduler/internal/httperr"
	"github.com/SmileHubSystems/dental-scheduler/internal/schedule"
)

func TestRescheduleAppointment_MovesWithinOwnWindow(t *testing.T) {
	repo := newFakeRepo()
	repo.ap = storedAppointment("CONFIRMED")

	date := repo.ap.ScheduledTime.Format("2006-01-02")

	// The only window on the day is the appointment's own; moving half an
	// hour later overlaps it, which must not block the move.
	repo.sched = schedule.DaySchedule{{
		AppointmentID: repo.ap.ID,
		Start:         repo.ap.ScheduledTime,
		End:           repo.ap.EndTime,
		Status:        schedule.StatusConfirmed,
	}}

	cache := newFakeCache()
	trail := &fakeTrail{}
	uc := NewRescheduleAppointment(repo, cache, trail)

	ap, err := uc.Execute(context.Background(), RescheduleInput{
		ClinicID:      1,
		DentistID:     2,
		AppointmentID: 10,
		Date:          date,
		Time:          "14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 14, ap.ScheduledTime.UTC().Hour())
	assert.Equal(t, 60*time.Minute, ap.EndTime.Sub(ap.ScheduledTime))
	require.NotNil(t, repo.updated)

	assert.Equal(t, "appointment_rescheduled", trail.lastAction())
	assert.NotEmpty(t, cache.invalidated)
}

func TestRescheduleAppointment_OtherWindowBlocks(t *testing.T) {
	repo := newFakeRepo()
	repo.ap = storedAppointment("PENDING")

	date := repo.ap.ScheduledTime.Format("2006-01-02")
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	require.NoError(t, err)

	repo.sched = schedule.DaySchedule{{
		AppointmentID: 11,
		Start:         day.Add(14 * time.Hour),
		End:           day.Add(15 * time.Hour),
		Status:        schedule.StatusPending,
	}}

	uc := NewRescheduleAppointment(repo, newFakeCache(), &fakeTrail{})
	_, err = uc.Execute(context.Background(), RescheduleInput{
		ClinicID:      1,
		DentistID:     2,
		AppointmentID: 10,
		Date:          date,
		Time:          "14:30",
	})

	var rej schedule.RejectionError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, schedule.ReasonSlotConflict, rej.Decision.Reason)
	assert.Nil(t, repo.updated)
}

func TestRescheduleAppointment_SwapsProcedure(t *testing.T) {
	repo := newFakeRepo()
	repo.ap = storedAppointment("PENDING")
	repo.procedure.ID = 8
	repo.procedure.DurationMin = 90

	date := repo.ap.ScheduledTime.Format("2006-01-02")

	uc := NewRescheduleAppointment(repo, newFakeCache(), &fakeTrail{})
	ap, err := uc.Execute(context.Background(), RescheduleInput{
		ClinicID:      1,
		DentistID:     2,
		AppointmentID: 10,
		Date:          date,
		Time:          "09:00",
		ProcedureID:   8,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(8), ap.ProcedureID)
	assert.Equal(t, 90*time.Minute, ap.EndTime.Sub(ap.ScheduledTime))
}

func TestRescheduleAppointment_FinalizedRejects(t *testing.T) {
	repo := newFakeRepo()
	repo.ap = storedAppointment("COMPLETE")

	uc := NewRescheduleAppointment(repo, newFakeCache(), &fakeTrail{})
	_, err := uc.Execute(context.Background(), RescheduleInput{
		ClinicID:      1,
		DentistID:     2,
		AppointmentID: 10,
		Date:          futureDate(7),
		Time:          "10:00",
	})
	assert.True(t, httperr.IsBusiness(err, "appointment_finalized"))
}
