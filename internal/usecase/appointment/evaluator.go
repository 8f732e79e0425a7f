package appointment

import (
	"context"
	"time"

	"github.com/SmileHubSystems/dental-scheduler/internal/audit"
	"github.com/SmileHubSystems/dental-scheduler/internal/models"
	"github.com/SmileHubSystems/dental-scheduler/internal/schedule"
	"github.com/SmileHubSystems/dental-scheduler/internal/timezone"
)

// AuditTrail is the slice of the audit dispatcher the use cases touch.
type AuditTrail interface {
	Dispatch(ev audit.Event)
}

// GridCache is what the booking use cases need from the redis layer.
// A nil implementation is fine; every method degrades to a miss.
type GridCache interface {
	GetGrid(ctx context.Context, dentistID uint, date string) ([]schedule.SlotView, bool)
	SetGrid(ctx context.Context, dentistID uint, date string, grid []schedule.SlotView)
	InvalidateDay(ctx context.Context, dentistID uint, date string)
}

// evaluatorFor builds the scheduling evaluator from the clinic's stored
// settings, falling back to the defaults when a row predates a column.
func evaluatorFor(clinic *models.Clinic) schedule.Evaluator {
	policy := schedule.DefaultPolicy()

	if open, err := schedule.ParseTimeOfDay(clinic.OpenTime); err == nil {
		policy.Open = open
	}
	if closeAt, err := schedule.ParseTimeOfDay(clinic.CloseTime); err == nil {
		policy.Close = closeAt
	}
	if clinic.HorizonMonths > 0 {
		policy.HorizonMonths = clinic.HorizonMonths
	}

	interval := clinic.SlotIntervalMin
	if interval <= 0 {
		interval = 30
	}

	return schedule.NewEvaluator(policy, interval, timezone.Location(clinic.Timezone))
}

// invalidateDay drops the cached grid for the day the appointment sits
// on, in the clinic's timezone.
func invalidateDay(ctx context.Context, cache GridCache, clinic *models.Clinic, ap *models.Appointment) {
	if cache == nil {
		return
	}
	date := ap.ScheduledTime.In(timezone.Location(clinic.Timezone)).Format("2006-01-02")
	cache.InvalidateDay(ctx, ap.DentistID, date)
}

// dayBounds resolves dateStr to [midnight, midnight+24h) in the
// clinic's timezone.
func dayBounds(clinic *models.Clinic, dateStr string) (time.Time, time.Time, error) {
	day, err := schedule.ParseDate(dateStr, timezone.Location(clinic.Timezone))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return day, day.Add(24 * time.Hour), nil
}
