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

func baseInput(date string) CreateAppointmentInput {
	return CreateAppointmentInput{
		ClinicID:     1,
		DentistID:    2,
		PatientName:  "Maria Souza",
		PatientPhone: "+5511999990000",
		ProcedureID:  7,
		Date:         date,
		Time:         "10:00",
	}
}

func TestCreateAppointment_AdmitsAndReserves(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	trail := &fakeTrail{}
	uc := NewCreateAppointment(repo, cache, trail)

	date := futureDate(7)
	ap, err := uc.Execute(context.Background(), baseInput(date))
	require.NoError(t, err)

	assert.Equal(t, string(schedule.StatusPending), ap.Status)
	assert.Equal(t, 60*time.Minute, ap.EndTime.Sub(ap.ScheduledTime))
	assert.Empty(t, ap.Reference)

	require.NotNil(t, repo.reserved)
	assert.Equal(t, uint(42), repo.reserved.PatientID)

	assert.Equal(t, "appointment_created", trail.lastAction())
	assert.Contains(t, cache.invalidated, "2:"+date)
}

func TestCreateAppointment_PublicBookingGetsReference(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, newFakeCache(), &fakeTrail{})

	in := baseInput(futureDate(7))
	in.Public = true

	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.NotEmpty(t, ap.Reference)
}

func TestCreateAppointment_SlotConflict(t *testing.T) {
	repo := newFakeRepo()

	date := futureDate(7)
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	require.NoError(t, err)

	taken := schedule.Window{
		AppointmentID: 5,
		Start:         day.Add(10 * time.Hour),
		End:           day.Add(11 * time.Hour),
		Status:        schedule.StatusConfirmed,
	}
	repo.sched = schedule.DaySchedule{taken}

	uc := NewCreateAppointment(repo, newFakeCache(), &fakeTrail{})

	in := baseInput(date)
	in.Time = "10:30"

	_, err = uc.Execute(context.Background(), in)

	var rej schedule.RejectionError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, schedule.ReasonSlotConflict, rej.Decision.Reason)
	require.NotNil(t, rej.Decision.Conflict)
	assert.Equal(t, uint(5), rej.Decision.Conflict.AppointmentID)
	assert.Nil(t, repo.reserved)
}

func TestCreateAppointment_RejectionReasons(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateAppointmentInput)
		want   schedule.Reason
	}{
		{
			name:   "after closing time",
			mutate: func(in *CreateAppointmentInput) { in.Time = "20:30" },
			want:   schedule.ReasonOutsideBusinessHours,
		},
		{
			name:   "in the past",
			mutate: func(in *CreateAppointmentInput) { in.Date = futureDate(-7) },
			want:   schedule.ReasonInPast,
		},
		{
			name:   "beyond the horizon",
			mutate: func(in *CreateAppointmentInput) { in.Date = futureDate(200) },
			want:   schedule.ReasonTooFarInFuture,
		},
		{
			name:   "garbled date",
			mutate: func(in *CreateAppointmentInput) { in.Date = "07/09/2026" },
			want:   schedule.ReasonMalformedInput,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			uc := NewCreateAppointment(repo, newFakeCache(), &fakeTrail{})

			in := baseInput(futureDate(7))
			tc.mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			require.Error(t, err)
			assert.EqualError(t, err, string(tc.want))
			assert.Nil(t, repo.reserved)
		})
	}
}

func TestCreateAppointment_OutsideWorkingHours(t *testing.T) {
	repo := newFakeRepo()
	repo.withinHours = false
	uc := NewCreateAppointment(repo, newFakeCache(), &fakeTrail{})

	_, err := uc.Execute(context.Background(), baseInput(futureDate(7)))
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
}

func TestCreateAppointment_UnknownProcedure(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, newFakeCache(), &fakeTrail{})

	in := baseInput(futureDate(7))
	in.ProcedureID = 123

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "procedure_not_found"))
}
