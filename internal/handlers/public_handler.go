package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SmileHubSystems/dental-scheduler/internal/httperr"
	"github.com/SmileHubSystems/dental-scheduler/internal/models"
	"github.com/SmileHubSystems/dental-scheduler/internal/schedule"
	ucAppointment "github.com/SmileHubSystems/dental-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db             *gorm.DB
	createUC       *ucAppointment.CreateAppointment
	availabilityUC *ucAppointment.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	createUC *ucAppointment.CreateAppointment,
	availabilityUC *ucAppointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		createUC:       createUC,
		availabilityUC: availabilityUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	PatientName  string `json:"patient_name" binding:"required"`
	PatientPhone string `json:"patient_phone" binding:"required"`
	PatientEmail string `json:"patient_email"`
	ProcedureID  uint   `json:"procedure_id" binding:"required"`
	Date         string `json:"date" binding:"required"` // YYYY-MM-DD
	Time         string `json:"time" binding:"required"` // HH:mm
	Notes        string `json:"notes"`
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

// The public page books against the clinic's owner chair. Multi-chair
// public booking would take a dentist picker in the page first.
func (h *PublicHandler) resolveClinic(c *gin.Context) (*models.Clinic, *models.User, bool) {
	slug := c.Param("slug")

	var clinic models.Clinic
	if err := h.db.Where("slug = ?", slug).First(&clinic).Error; err != nil {
		httperr.NotFound(c, "clinic_not_found", "Clinic not found.")
		return nil, nil, false
	}

	var dentist models.User
	if err := h.db.
		Where("clinic_id = ? AND role = ?", clinic.ID, "owner").
		First(&dentist).Error; err != nil {

		httperr.BadRequest(c, "dentist_not_found", "Dentist not found.")
		return nil, nil, false
	}

	return &clinic, &dentist, true
}

////////////////////////////////////////////////////////
// PROCEDURES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListProcedures(c *gin.Context) {
	slug := c.Param("slug")

	var clinic models.Clinic
	if err := h.db.Where("slug = ?", slug).First(&clinic).Error; err != nil {
		httperr.NotFound(c, "clinic_not_found", "Clinic not found.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("clinic_id = ? AND active = true", clinic.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var procedures []models.Procedure
	if err := q.Order("id ASC").Find(&procedures).Error; err != nil {
		httperr.Internal(c, "failed_to_list_procedures", "Could not list procedures.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clinic":     clinic,
		"procedures": procedures,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	clinic, dentist, ok := h.resolveClinic(c)
	if !ok {
		return
	}

	grid, err := h.availabilityUC.Execute(
		c.Request.Context(),
		ucAppointment.AvailabilityInput{
			ClinicID:  clinic.ID,
			DentistID: dentist.ID,
			Date:      dateStr,
		},
	)
	if err != nil {
		mapSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": grid,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	clinic, dentist, ok := h.resolveClinic(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateAppointmentInput{
			ClinicID:     clinic.ID,
			DentistID:    dentist.ID,
			PatientName:  req.PatientName,
			PatientPhone: req.PatientPhone,
			PatientEmail: req.PatientEmail,
			ProcedureID:  req.ProcedureID,
			Date:         req.Date,
			Time:         req.Time,
			Notes:        req.Notes,
			Public:       true,
		},
	)
	if err != nil {
		mapSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"reference":      ap.Reference,
		"scheduled_time": ap.ScheduledTime,
		"end_time":       ap.EndTime,
		"status":         ap.Status,
	})
}

////////////////////////////////////////////////////////
// LOOKUP BY REFERENCE
////////////////////////////////////////////////////////

func (h *PublicHandler) GetByReference(c *gin.Context) {
	clinic, _, ok := h.resolveClinic(c)
	if !ok {
		return
	}

	reference := c.Param("reference")

	var ap models.Appointment
	if err := h.db.
		Preload("Procedure").
		Where("clinic_id = ? AND reference = ?", clinic.ID, reference).
		First(&ap).Error; err != nil {

		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reference":      ap.Reference,
		"scheduled_time": ap.ScheduledTime,
		"end_time":       ap.EndTime,
		"status":         string(schedule.Normalize(ap.Status)),
		"procedure":      ap.Procedure.Name,
	})
}
