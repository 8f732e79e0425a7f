package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SmileHubSystems/dental-scheduler/internal/httperr"
	"github.com/SmileHubSystems/dental-scheduler/internal/httpresp"
	"github.com/SmileHubSystems/dental-scheduler/internal/middleware"
	"github.com/SmileHubSystems/dental-scheduler/internal/models"
	ucAppointment "github.com/SmileHubSystems/dental-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *ucAppointment.CreateAppointment
	confirmUC      *ucAppointment.ConfirmAppointment
	completeUC     *ucAppointment.CompleteAppointment
	cancelUC       *ucAppointment.CancelAppointment
	reopenUC       *ucAppointment.ReopenAppointment
	rescheduleUC   *ucAppointment.RescheduleAppointment
	availabilityUC *ucAppointment.GetAvailability
	listByDateUC   *ucAppointment.ListAppointmentsByDate
	listByMonthUC  *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	confirmUC *ucAppointment.ConfirmAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	reopenUC *ucAppointment.ReopenAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	availabilityUC *ucAppointment.GetAvailability,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listByMonthUC *ucAppointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		confirmUC:      confirmUC,
		completeUC:     completeUC,
		cancelUC:       cancelUC,
		reopenUC:       reopenUC,
		rescheduleUC:   rescheduleUC,
		availabilityUC: availabilityUC,
		listByDateUC:   listByDateUC,
		listByMonthUC:  listByMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientName  string `json:"patient_name" binding:"required"`
	PatientPhone string `json:"patient_phone" binding:"required"`
	PatientEmail string `json:"patient_email"`
	ProcedureID  uint   `json:"procedure_id" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	Notes        string `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	Date        string  `json:"date" binding:"required"`
	Time        string  `json:"time" binding:"required"`
	ProcedureID uint    `json:"procedure_id"`
	Notes       *string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	dentistID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClinicID:     clinicID,
		DentistID:    dentistID,
		PatientName:  req.PatientName,
		PatientPhone: req.PatientPhone,
		PatientEmail: req.PatientEmail,
		ProcedureID:  req.ProcedureID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		mapSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dentistID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	items, err := h.listByDateUC.Execute(c.Request.Context(), dentistID, clinicID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	dentistID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	items, err := h.listByMonthUC.Execute(c.Request.Context(), dentistID, clinicID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": items,
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	dentistID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	grid, err := h.availabilityUC.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		ClinicID:  clinicID,
		DentistID: dentistID,
		Date:      dateStr,
	})
	if err != nil {
		mapSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": grid,
	})
}

// ======================================================
// STATUS CHANGES
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.changeStatus(c, h.confirmUC.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.changeStatus(c, h.completeUC.Execute)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.cancelUC.Execute)
}

func (h *AppointmentHandler) Reopen(c *gin.Context) {
	h.changeStatus(c, h.reopenUC.Execute)
}

func (h *AppointmentHandler) changeStatus(
	c *gin.Context,
	execute func(ctx context.Context, clinicID, dentistID, appointmentID uint) (*models.Appointment, error),
) {
	dentistID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := execute(c.Request.Context(), clinicID, dentistID, uint(id))
	if err != nil {
		mapSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	dentistID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucAppointment.RescheduleInput{
		ClinicID:      clinicID,
		DentistID:     dentistID,
		AppointmentID: uint(id),
		Date:          req.Date,
		Time:          req.Time,
		ProcedureID:   req.ProcedureID,
		Notes:         req.Notes,
	})
	if err != nil {
		mapSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}
