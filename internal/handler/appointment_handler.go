package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/prhdev222/CHEMO-FINAL/internal/models"
	"github.com/prhdev222/CHEMO-FINAL/internal/service"
	"github.com/prhdev222/CHEMO-FINAL/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

type CreateAppointmentRequest struct {
	PatientID     uint   `json:"patientId" binding:"required"`
	Date          string `json:"date" binding:"required"`
	ChemoRegimen  string `json:"chemoRegimen"`
	AdmitStatus   string `json:"admitStatus"`
	AdmitDate     string `json:"admitDate"`
	DischargeDate string `json:"dischargeDate"`
	Note          string `json:"note"`
	ReferHospital string `json:"referHospital"`
	ReferDate     string `json:"referDate"`
}

type UpdateAppointmentRequest struct {
	Date          *string `json:"date"`
	ChemoRegimen  *string `json:"chemoRegimen"`
	AdmitStatus   *string `json:"admitStatus"`
	Note          *string `json:"note"`
	ReferHospital *string `json:"referHospital"`
	ReferDate     *string `json:"referDate"`
}

type UpdateStatusRequest struct {
	AdmitStatus   string  `json:"admitStatus" binding:"required"`
	AdmitDate     string  `json:"admitDate"`
	DischargeDate string  `json:"dischargeDate"`
	Note          *string `json:"note"`
}

type RescheduleRequest struct {
	NewDate string `json:"newDate" binding:"required"`
	Note    string `json:"note"`
}

type CancelRequest struct {
	Note string `json:"note"`
}

type AddHistoryRequest struct {
	Action  string `json:"action" binding:"required"`
	Date    string `json:"date" binding:"required"`
	NewDate string `json:"newDate"`
	Note    string `json:"note"`
}

// List returns all non-deleted appointments with their patient joined
func (h *AppointmentHandler) List(c *gin.Context) {
	appointments, err := h.appointmentService.ListAppointments()
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.SuccessResponse(c, appointments)
}

// Statuses returns the distinct admit statuses and history actions present
func (h *AppointmentHandler) Statuses(c *gin.Context) {
	statuses, err := h.appointmentService.AvailableStatuses()
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.SuccessResponse(c, statuses)
}

// Create creates a new appointment for an existing patient
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	referDate, err := utils.ParseOptionalDate(req.ReferDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	admitDate, err := utils.ParseOptionalDate(req.AdmitDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	dischargeDate, err := utils.ParseOptionalDate(req.DischargeDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var status models.AdmitStatus
	if req.AdmitStatus != "" {
		if status, err = service.ParseAdmitStatus(req.AdmitStatus); err != nil {
			utils.ErrorFrom(c, err)
			return
		}
	}

	appointment, err := h.appointmentService.CreateAppointment(service.CreateAppointmentInput{
		PatientID:     req.PatientID,
		Date:          date,
		ChemoRegimen:  req.ChemoRegimen,
		AdmitStatus:   status,
		AdmitDate:     admitDate,
		DischargeDate: dischargeDate,
		Note:          req.Note,
		ReferHospital: req.ReferHospital,
		ReferDate:     referDate,
	})
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.CreatedResponse(c, appointment)
}

// Update applies an unguarded partial field patch
func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	input := service.UpdateAppointmentInput{
		ChemoRegimen:  req.ChemoRegimen,
		Note:          req.Note,
		ReferHospital: req.ReferHospital,
	}

	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		input.Date = &date
	}
	if req.ReferDate != nil {
		referDate, err := utils.ParseDate(*req.ReferDate)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		input.ReferDate = &referDate
	}
	if req.AdmitStatus != nil {
		status, err := service.ParseAdmitStatus(*req.AdmitStatus)
		if err != nil {
			utils.ErrorFrom(c, err)
			return
		}
		input.AdmitStatus = &status
	}

	appointment, err := h.appointmentService.UpdateAppointment(id, input)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.SuccessResponse(c, appointment)
}

// UpdateStatus applies a guarded admit-status transition
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	status, err := service.ParseAdmitStatus(req.AdmitStatus)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	admitDate, err := utils.ParseOptionalDate(req.AdmitDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	dischargeDate, err := utils.ParseOptionalDate(req.DischargeDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	appointment, err := h.appointmentService.UpdateStatus(id, service.UpdateStatusInput{
		AdmitStatus:   status,
		AdmitDate:     admitDate,
		DischargeDate: dischargeDate,
		Note:          req.Note,
	})
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.SuccessResponse(c, appointment)
}

// Reschedule moves an appointment to a new date and records the action
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "newDate is required")
		return
	}

	newDate, err := utils.ParseDate(req.NewDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	appointment, err := h.appointmentService.Reschedule(id, newDate, req.Note, userName(c))
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.SuccessResponse(c, appointment)
}

// Cancel terminates an appointment and records the action
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	// An empty body means cancel with no note.
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	appointment, err := h.appointmentService.Cancel(id, req.Note, userName(c))
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.SuccessResponse(c, appointment)
}

// Delete soft-deletes an appointment (admin only)
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var actorID *uint
	if v, exists := c.Get("userID"); exists {
		uid := v.(uint)
		actorID = &uid
	}

	if err := h.appointmentService.SoftDelete(id, actorID); err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.MessageResponse(c, "Appointment deleted successfully")
}

// AddHistory appends a manually recorded reschedule/cancel audit entry
func (h *AppointmentHandler) AddHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req AddHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "action and date are required")
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	newDate, err := utils.ParseOptionalDate(req.NewDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	history, err := h.appointmentService.AddHistory(id, service.AddHistoryInput{
		Action:    models.RescheduleAction(req.Action),
		Date:      date,
		NewDate:   newDate,
		Note:      req.Note,
		CreatedBy: userName(c),
	})
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.CreatedResponse(c, history)
}

// GetHistory returns the ordered audit trail of an appointment
func (h *AppointmentHandler) GetHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	history, err := h.appointmentService.GetHistory(id)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.SuccessResponse(c, history)
}

// parseID reads the :id path parameter. On failure it writes the error
// response and returns ok=false.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// userName returns the authenticated user's display name from the context.
func userName(c *gin.Context) string {
	if v, exists := c.Get("userName"); exists {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}
