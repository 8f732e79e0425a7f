package schedule

import (
	"strings"

	"github.com/SmileHubSystems/dental-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusComplete  Status = "COMPLETE"
	StatusCancelled Status = "CANCELLED"
	StatusUnknown   Status = "UNKNOWN"
)

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Normalization
// ===============================

var synonyms = map[string]Status{
	"PEND":      StatusPending,
	"PENDING":   StatusPending,
	"CONFIRM":   StatusConfirmed,
	"CONFIRMED": StatusConfirmed,
	"COMPLET":   StatusComplete,
	"COMPLETE":  StatusComplete,
	"COMPLETED": StatusComplete,
	"CANCEL":    StatusCancelled,
	"CANCELLED": StatusCancelled,
	"CANCELED":  StatusCancelled,
}

// Normalize maps whatever spelling the store holds onto the canonical
// set. Unknown non-empty values pass through uppercased so statuses this
// service does not know yet survive a round trip; empty means UNKNOWN.
// Idempotent: canonical values map to themselves.
func Normalize(raw string) Status {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	if cleaned == "" {
		return StatusUnknown
	}
	if s, ok := synonyms[cleaned]; ok {
		return s
	}
	return Status(cleaned)
}

// ===============================
// State machine
// ===============================

var transitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusPending:   true, // no-op self transition
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusConfirmed: true,
		StatusComplete:  true,
		StatusPending:   true,
		StatusCancelled: true,
	},
	StatusComplete: {
		StatusComplete: true, // terminal; only the no-op survives
	},
	StatusCancelled: {
		StatusCancelled: true,
		StatusPending:   true, // observed re-open path
	},
}

// CanTransition reports whether from may move to to. Statuses outside
// the canonical set allow only the self no-op and the reset to PENDING.
func CanTransition(from, to Status) bool {
	allowed, ok := transitions[from]
	if !ok {
		return to == from || to == StatusPending
	}
	return allowed[to]
}

// CanEdit reports whether an appointment in this status may still be
// modified at all. False only for COMPLETE: a finished visit is frozen.
func CanEdit(s Status) bool {
	return s != StatusComplete
}

// Transition validates a requested status change. The caller applies the
// change; time passing never transitions anything here.
func Transition(from, to Status) error {
	if from == StatusComplete && to != StatusComplete {
		return httperr.ErrBusiness("appointment_finalized")
	}
	if !CanTransition(from, to) {
		return httperr.ErrBusiness("illegal_transition")
	}
	return nil
}
