package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SmileHubSystems/dental-scheduler/internal/httperr"
	"github.com/SmileHubSystems/dental-scheduler/internal/models"
	"github.com/SmileHubSystems/dental-scheduler/internal/schedule"
)

// Statuses that occupy the dentist's calendar. Cancelled and completed
// rows never block a new booking.
var activeStatuses = []string{
	string(schedule.StatusPending),
	string(schedule.StatusConfirmed),
}

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Clinic
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClinicByID(
	ctx context.Context,
	id uint,
) (*models.Clinic, error) {

	var clinic models.Clinic
	if err := r.db.WithContext(ctx).First(&clinic, id).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (r *AppointmentGormRepository) GetClinicBySlug(
	ctx context.Context,
	slug string,
) (*models.Clinic, error) {

	var clinic models.Clinic
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&clinic).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

// --------------------------------------------------
// Procedure
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProcedure(
	ctx context.Context,
	clinicID uint,
	procedureID uint,
) (*models.Procedure, error) {

	var proc models.Procedure
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", procedureID, clinicID).
		First(&proc).Error; err != nil {
		return nil, err
	}
	return &proc, nil
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreatePatient(
	ctx context.Context,
	clinicID uint,
	name string,
	phone string,
	email string,
) (*models.Patient, error) {

	var patient models.Patient
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND phone = ?", clinicID, phone).
		First(&patient).Error

	if err == nil {
		return &patient, nil
	}

	patient = models.Patient{
		ClinicID: clinicID,
		Name:     name,
		Phone:    phone,
		Email:    email,
	}

	if err := r.db.WithContext(ctx).Create(&patient).Error; err != nil {
		return nil, err
	}

	return &patient, nil
}

// --------------------------------------------------
// Appointment (reserve / state change)
// --------------------------------------------------

// Reserve locks the dentist's overlapping active rows, re-checks the
// conflict and inserts, all inside one transaction. The evaluator already
// admitted the request once; this is where the check-then-act race is
// actually settled. The table's exclusion constraint is the backstop if
// two transactions still race past the lock.
func (r *AppointmentGormRepository) Reserve(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"dentist_id = ? AND status IN ? AND scheduled_time < ? AND end_time > ?",
				ap.DentistID,
				activeStatuses,
				ap.EndTime,
				ap.ScheduledTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("slot_conflict")
		}

		return tx.Create(ap).Error
	})
}

func (r *AppointmentGormRepository) GetAppointmentForDentist(
	ctx context.Context,
	appointmentID uint,
	dentistID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND dentist_id = ?", appointmentID, dentistID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	dentistID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("dentist_id = ? AND weekday = ?", dentistID, weekday).
		First(&wh).Error; err != nil {
		return nil, err
	}

	return &wh, nil
}

// IsWithinWorkingHours checks the dentist's own weekday window on top of
// the clinic-wide business hours, lunch break included. No row or an
// inactive day means the dentist is simply not working.
func (r *AppointmentGormRepository) IsWithinWorkingHours(
	ctx context.Context,
	dentistID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	weekday := int(start.Weekday())
	loc := start.Location()

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("dentist_id = ? AND weekday = ?", dentistID, weekday).
		First(&wh).Error; err != nil {
		return false, nil
	}

	if !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return false, nil
	}

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	at := func(hm string) (time.Time, bool) {
		t, err := schedule.ParseTimeOfDay(hm)
		if err != nil {
			return time.Time{}, false
		}
		return t.At(day), true
	}

	workStart, ok1 := at(wh.StartTime)
	workEnd, ok2 := at(wh.EndTime)
	if !ok1 || !ok2 {
		return false, nil
	}

	if start.Before(workStart) || end.After(workEnd) {
		return false, nil
	}

	if wh.LunchStart != "" && wh.LunchEnd != "" {
		lunchStart, okA := at(wh.LunchStart)
		lunchEnd, okB := at(wh.LunchEnd)
		if okA && okB && start.Before(lunchEnd) && end.After(lunchStart) {
			return false, nil
		}
	}

	return true, nil
}

func (r *AppointmentGormRepository) ListDaySchedule(
	ctx context.Context,
	dentistID uint,
	start time.Time,
	end time.Time,
) (schedule.DaySchedule, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "scheduled_time", "end_time", "status").
		Where(
			"dentist_id = ? AND status IN ? AND scheduled_time >= ? AND scheduled_time < ?",
			dentistID, activeStatuses, start, end,
		).
		Order("scheduled_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	sched := make(schedule.DaySchedule, 0, len(apps))
	for _, ap := range apps {
		sched = append(sched, schedule.Window{
			AppointmentID: ap.ID,
			Start:         ap.ScheduledTime,
			End:           ap.EndTime,
			Status:        schedule.Normalize(ap.Status),
		})
	}

	return sched, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	dentistID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Procedure").
		Where(
			"dentist_id = ? AND scheduled_time >= ? AND scheduled_time < ?",
			dentistID,
			start,
			end,
		).
		Order("scheduled_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ schedule.Repository = (*AppointmentGormRepository)(nil)
