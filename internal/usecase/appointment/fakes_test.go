package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/SmileHubSystems/dental-scheduler/internal/audit"
	"github.com/SmileHubSystems/dental-scheduler/internal/models"
	"github.com/SmileHubSystems/dental-scheduler/internal/schedule"
)

// ======================================================
// TEST DOUBLES
// ======================================================

type fakeRepo struct {
	clinic    *models.Clinic
	procedure *models.Procedure
	ap        *models.Appointment

	sched         schedule.DaySchedule
	withinHours   bool
	reserveErr    error
	scheduleCalls int

	reserved *models.Appointment
	updated  *models.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clinic: &models.Clinic{
			ID:              1,
			Name:            "Bright Smile",
			Slug:            "bright-smile",
			Timezone:        "UTC",
			OpenTime:        "08:00",
			CloseTime:       "20:00",
			SlotIntervalMin: 30,
			HorizonMonths:   3,
		},
		procedure: &models.Procedure{
			ID:          7,
			ClinicID:    1,
			Name:        "Cleaning",
			DurationMin: 60,
			Active:      true,
		},
		withinHours: true,
	}
}

func (r *fakeRepo) GetClinicByID(_ context.Context, id uint) (*models.Clinic, error) {
	if r.clinic == nil || r.clinic.ID != id {
		return nil, fmt.Errorf("clinic %d not found", id)
	}
	return r.clinic, nil
}

func (r *fakeRepo) GetClinicBySlug(_ context.Context, slug string) (*models.Clinic, error) {
	if r.clinic == nil || r.clinic.Slug != slug {
		return nil, fmt.Errorf("clinic %q not found", slug)
	}
	return r.clinic, nil
}

func (r *fakeRepo) GetProcedure(_ context.Context, _ uint, procedureID uint) (*models.Procedure, error) {
	if r.procedure == nil || r.procedure.ID != procedureID {
		return nil, fmt.Errorf("procedure %d not found", procedureID)
	}
	return r.procedure, nil
}

func (r *fakeRepo) GetOrCreatePatient(_ context.Context, clinicID uint, name, phone, email string) (*models.Patient, error) {
	return &models.Patient{ID: 42, ClinicID: clinicID, Name: name, Phone: phone, Email: email}, nil
}

func (r *fakeRepo) Reserve(_ context.Context, ap *models.Appointment) error {
	if r.reserveErr != nil {
		return r.reserveErr
	}
	ap.ID = 99
	r.reserved = ap
	return nil
}

func (r *fakeRepo) GetAppointmentForDentist(_ context.Context, appointmentID, dentistID uint) (*models.Appointment, error) {
	if r.ap == nil || r.ap.ID != appointmentID || r.ap.DentistID != dentistID {
		return nil, fmt.Errorf("appointment %d not found", appointmentID)
	}
	return r.ap, nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.updated = ap
	return nil
}

func (r *fakeRepo) GetWorkingHours(_ context.Context, _ uint, _ int) (*models.WorkingHours, error) {
	return nil, nil
}

func (r *fakeRepo) IsWithinWorkingHours(_ context.Context, _ uint, _, _ time.Time) (bool, error) {
	return r.withinHours, nil
}

func (r *fakeRepo) ListDaySchedule(_ context.Context, _ uint, _, _ time.Time) (schedule.DaySchedule, error) {
	r.scheduleCalls++
	return r.sched, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, _ uint, _, _ time.Time) ([]models.Appointment, error) {
	if r.ap == nil {
		return nil, nil
	}
	return []models.Appointment{*r.ap}, nil
}

var _ schedule.Repository = (*fakeRepo)(nil)

type fakeCache struct {
	grids       map[string][]schedule.SlotView
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{grids: map[string][]schedule.SlotView{}}
}

func (c *fakeCache) key(dentistID uint, date string) string {
	return fmt.Sprintf("%d:%s", dentistID, date)
}

func (c *fakeCache) GetGrid(_ context.Context, dentistID uint, date string) ([]schedule.SlotView, bool) {
	grid, ok := c.grids[c.key(dentistID, date)]
	return grid, ok
}

func (c *fakeCache) SetGrid(_ context.Context, dentistID uint, date string, grid []schedule.SlotView) {
	c.grids[c.key(dentistID, date)] = grid
}

func (c *fakeCache) InvalidateDay(_ context.Context, dentistID uint, date string) {
	key := c.key(dentistID, date)
	delete(c.grids, key)
	c.invalidated = append(c.invalidated, key)
}

type fakeTrail struct {
	events []audit.Event
}

func (t *fakeTrail) Dispatch(ev audit.Event) {
	t.events = append(t.events, ev)
}

func (t *fakeTrail) lastAction() string {
	if len(t.events) == 0 {
		return ""
	}
	return t.events[len(t.events)-1].Action
}

// futureDate returns a bookable date n days from now, in UTC.
func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}
