package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmileHubSystems/dental-scheduler/internal/httperr"
	"github.com/SmileHubSystems/dental-scheduler/internal/models"
	"github.com/SmileHubSystems/dental-scheduler/internal/schedule"
)

func storedAppointment(status string) *models.Appointment {
	start := time.Now().UTC().AddDate(0, 0, 3).Truncate(time.Hour)
	return &models.Appointment{
		ID:            10,
		ClinicID:      1,
		DentistID:     2,
		ProcedureID:   7,
		ScheduledTime: start,
		EndTime:       start.Add(time.Hour),
		Status:        status,
	}
}

func TestConfirmAppointment(t *testing.T) {
	repo := newFakeRepo()
	repo.ap = storedAppointment("PENDING")
	cache := newFakeCache()
	trail := &fakeTrail{}

	uc := NewConfirmAppointment(repo, cache, trail)
	ap, err := uc.Execute(context.Background(), 1, 2, 10)
	require.NoError(t, err)

	assert.Equal(t, string(schedule.StatusConfirmed), ap.Status)
	require.NotNil(t, ap.ConfirmedAt)
	require.NotNil(t, repo.updated)

	assert.Equal(t, "appointment_confirmed", trail.lastAction())
	assert.Len(t, cache.invalidated, 1)
}

func TestConfirmAppointment_NormalizesLegacyStatus(t *testing.T) {
	repo := newFakeRepo()
	repo.ap = storedAppointment("  pend ")

	uc := NewConfirmAppointment(repo, newFakeCache(), &fakeTrail{})
	ap, err := uc.Execute(context.Background(), 1, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, string(schedule.StatusConfirmed), ap.Status)
}

func TestConfirmAppointment_FinalizedRejects(t *testing.T) {
	repo := newFakeRepo()
	repo.ap = storedAppointment("COMPLETED")
	trail := &fakeTrail{}

	uc := NewConfirmAppointment(repo, newFakeCache(), trail)
	_, err := uc.Execute(context.Background(), 1, 2, 10)

	assert.True(t, httperr.IsBusiness(err, "appointment_finalized"))
	assert.Nil(t, repo.updated)
	assert.Empty(t, trail.events)
}

func TestCompleteAppointment(t *testing.T) {
	repo := newFakeRepo()
	repo.ap = storedAppointment("CONFIRMED")
	trail := &fakeTrail{}

	uc := NewCompleteAppointment(repo, newFakeCache(), trail)
	ap, err := uc.Execute(context.Background(), 1, 2, 10)
	require.NoError(t, err)

	assert.Equal(t, string(schedule.StatusComplete), ap.Status)
	require.NotNil(t, ap.CompletedAt)
	assert.Equal(t, "appointment_completed", trail.lastAction())
}

func TestCompleteAppointment_FromPendingRejects(t *testing.T) {
	repo := newFakeRepo()
	repo.ap = storedAppointment("PENDING")

	uc := NewCompleteAppointment(repo, newFakeCache(), &fakeTrail{})
	_, err := uc.Execute(context.Background(), 1, 2, 10)
	assert.True(t, httperr.IsBusiness(err, "illegal_transition"))
}

func TestCancelAppointment(t *testing.T) {
	repo := newFakeRepo()
	repo.ap = storedAppointment("CONFIRMED")
	trail := &fakeTrail{}

	uc := NewCancelAppointment(repo, newFakeCache(), trail)
	ap, err := uc.Execute(context.Background(), 1, 2, 10)
	require.NoError(t, err)

	assert.Equal(t, string(schedule.StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)
	assert.Equal(t, "appointment_cancelled", trail.lastAction())
}

func TestReopenAppointment(t *testing.T) {
	repo := newFakeRepo()
	cancelled := time.Now()
	repo.ap = storedAppointment("CANCELLED")
	repo.ap.CancelledAt = &cancelled

	trail := &fakeTrail{}
	uc := NewReopenAppointment(repo, newFakeCache(), trail)

	ap, err := uc.Execute(context.Background(), 1, 2, 10)
	require.NoError(t, err)

	assert.Equal(t, string(schedule.StatusPending), ap.Status)
	assert.Nil(t, ap.CancelledAt)
	assert.Equal(t, "appointment_reopened", trail.lastAction())
}

func TestReopenAppointment_SlotTakenMeanwhile(t *testing.T) {
	repo := newFakeRepo()
	repo.ap = storedAppointment("CANCELLED")

	// Someone else booked the released slot.
	repo.sched = schedule.DaySchedule{{
		AppointmentID: 11,
		Start:         repo.ap.ScheduledTime,
		End:           repo.ap.EndTime,
		Status:        schedule.StatusPending,
	}}

	uc := NewReopenAppointment(repo, newFakeCache(), &fakeTrail{})
	_, err := uc.Execute(context.Background(), 1, 2, 10)

	assert.True(t, httperr.IsBusiness(err, "slot_conflict"))
	assert.Nil(t, repo.updated)
}

func TestReopenAppointment_CompleteNeverReopens(t *testing.T) {
	repo := newFakeRepo()
	repo.ap = storedAppointment("COMPLETE")

	uc := NewReopenAppointment(repo, newFakeCache(), &fakeTrail{})
	_, err := uc.Execute(context.Background(), 1, 2, 10)
	assert.True(t, httperr.IsBusiness(err, "appointment_finalized"))
}
