package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/SmileHubSystems/dental-scheduler/internal/httperr"
	"github.com/SmileHubSystems/dental-scheduler/internal/schedule"
)

// mapSchedulingError turns a use-case error into the HTTP shape the
// booking screens expect. Rejection reasons and business codes travel
// as-is in error_code so the frontend can branch on them.
func mapSchedulingError(c *gin.Context, err error) {
	var rej schedule.RejectionError
	if errors.As(err, &rej) {
		if rej.Decision.Reason == schedule.ReasonSlotConflict {
			msg := "The slot is already booked."
			if w := rej.Decision.Conflict; w != nil {
				msg = fmt.Sprintf("The slot is already booked (status %s).", w.Status)
			}
			httperr.Conflict(c, string(schedule.ReasonSlotConflict), msg)
			return
		}
		httperr.BadRequest(c, string(rej.Decision.Reason), "The requested time cannot be booked.")
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		switch be.Code {
		case "appointment_not_found", "clinic_not_found":
			httperr.NotFound(c, be.Code, "Not found.")
		case "slot_conflict":
			httperr.Conflict(c, be.Code, "The slot is already booked.")
		default:
			httperr.BadRequest(c, be.Code, "The request cannot be applied.")
		}
		return
	}

	// Two racing bookings that both passed the in-memory check trip the
	// database exclusion constraint.
	if httperr.IsExclusionConflict(err) {
		httperr.Conflict(c, "slot_conflict", "The slot is already booked.")
		return
	}

	httperr.Internal(c, "internal_error", "Something went wrong.")
}
