package schedule

import (
	"time"

	"github.com/SmileHubSystems/dental-scheduler/internal/httperr"
	"github.com/SmileHubSystems/dental-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Every mutation passes the stored status through Normalize before the
// state machine sees it; the store holds legacy spellings.

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := Transition(Normalize(ap.Status), StatusConfirmed); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := Transition(Normalize(ap.Status), StatusComplete); err != nil {
		return err
	}

	ap.Status = string(StatusComplete)
	ap.CompletedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := Transition(Normalize(ap.Status), StatusCancelled); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// Reopen resets a non-complete appointment back to PENDING, clearing the
// lifecycle timestamps of the path it is leaving.
func Reopen(ap *models.Appointment) error {
	if err := Transition(Normalize(ap.Status), StatusPending); err != nil {
		return err
	}

	ap.Status = string(StatusPending)
	ap.ConfirmedAt = nil
	ap.CancelledAt = nil
	return nil
}

// EnsureEditable rejects any field edit on a finalized appointment,
// uniformly, whatever field is being changed.
func EnsureEditable(ap *models.Appointment) error {
	if !CanEdit(Normalize(ap.Status)) {
		return httperr.ErrBusiness("appointment_finalized")
	}
	return nil
}
