package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SmileHubSystems/dental-scheduler/internal/httperr"
	"github.com/SmileHubSystems/dental-scheduler/internal/httpresp"
	"github.com/SmileHubSystems/dental-scheduler/internal/middleware"
	"github.com/SmileHubSystems/dental-scheduler/internal/models"
	"github.com/SmileHubSystems/dental-scheduler/internal/schedule"
	"github.com/SmileHubSystems/dental-scheduler/internal/timezone"
)

type ClinicHandler struct {
	db *gorm.DB
}

func NewClinicHandler(db *gorm.DB) *ClinicHandler {
	return &ClinicHandler{db: db}
}

type UpdateClinicConfigRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`

	Timezone        *string `json:"timezone"`
	OpenTime        *string `json:"open_time"`
	CloseTime       *string `json:"close_time"`
	SlotIntervalMin *int    `json:"slot_interval_min"`
	HorizonMonths   *int    `json:"horizon_months"`
}

func (h *ClinicHandler) GetMeClinic(c *gin.Context) {
	clinicIDVal, _ := c.Get(middleware.ContextClinicID)
	clinicID := clinicIDVal.(uint)

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "clinic_not_found", "Clinic not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_clinic", "Could not load clinic data.")
		return
	}

	httpresp.OK(c, clinic)
}

func (h *ClinicHandler) UpdateMeClinic(c *gin.Context) {
	clinicIDVal, _ := c.Get(middleware.ContextClinicID)
	clinicID := clinicIDVal.(uint)

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "clinic_not_found", "Clinic not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_clinic", "Could not load clinic data.")
		return
	}

	var req UpdateClinicConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if req.Name != nil {
		clinic.Name = *req.Name
	}
	if req.Phone != nil {
		clinic.Phone = *req.Phone
	}
	if req.Address != nil {
		clinic.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown IANA timezone.")
			return
		}
		clinic.Timezone = *req.Timezone
	}

	if req.OpenTime != nil {
		if _, err := schedule.ParseTimeOfDay(*req.OpenTime); err != nil {
			httperr.BadRequest(c, "invalid_open_time", "Opening time must be HH:MM.")
			return
		}
		clinic.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		if _, err := schedule.ParseTimeOfDay(*req.CloseTime); err != nil {
			httperr.BadRequest(c, "invalid_close_time", "Closing time must be HH:MM.")
			return
		}
		clinic.CloseTime = *req.CloseTime
	}
	if req.SlotIntervalMin != nil {
		clinic.SlotIntervalMin = *req.SlotIntervalMin
	}
	if req.HorizonMonths != nil {
		if *req.HorizonMonths < 1 {
			httperr.BadRequest(c, "invalid_horizon", "Booking horizon must be at least one month.")
			return
		}
		clinic.HorizonMonths = *req.HorizonMonths
	}

	// The three settings must hold together: the interval has to tile
	// the working window, whichever of them changed.
	open, _ := schedule.ParseTimeOfDay(clinic.OpenTime)
	closeAt, _ := schedule.ParseTimeOfDay(clinic.CloseTime)
	if _, err := schedule.GenerateSlots(open, closeAt, clinic.SlotIntervalMin); err != nil {
		httperr.BadRequest(c, err.Error(), "Scheduling settings are inconsistent.")
		return
	}

	if err := h.db.Save(&clinic).Error; err != nil {
		httperr.Internal(c, "failed_to_update_clinic", "Could not save clinic settings.")
		return
	}

	c.JSON(http.StatusOK, clinic)
}
