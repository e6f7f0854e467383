package handler

import (
	"net/http"

	"github.com/prhdev222/CHEMO-FINAL/internal/models"
	"github.com/prhdev222/CHEMO-FINAL/internal/service"
	"github.com/prhdev222/CHEMO-FINAL/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	patientService *service.PatientService
}

func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
	}
}

type PatientRequest struct {
	HN             string                `json:"hn" binding:"required"`
	FirstName      string                `json:"firstName" binding:"required"`
	LastName       string                `json:"lastName" binding:"required"`
	BirthDate      string                `json:"birthDate"`
	Phone          string                `json:"phone"`
	LineID         string                `json:"lineId"`
	Address        string                `json:"address"`
	Status         string                `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE DECEASED"`
	Diagnosis      string                `json:"diagnosis"`
	TreatmentRight string                `json:"treatmentRight"`
	TreatmentPlan  *models.TreatmentPlan `json:"treatmentPlan"`
}

func (r *PatientRequest) toInput() (service.PatientInput, error) {
	birthDate, err := utils.ParseOptionalDate(r.BirthDate)
	if err != nil {
		return service.PatientInput{}, err
	}

	return service.PatientInput{
		HN:             r.HN,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		BirthDate:      birthDate,
		Phone:          r.Phone,
		LineID:         r.LineID,
		Address:        r.Address,
		Status:         models.PatientStatus(r.Status),
		Diagnosis:      r.Diagnosis,
		TreatmentRight: r.TreatmentRight,
		TreatmentPlan:  r.TreatmentPlan,
	}, nil
}

// List returns all registered patients
func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.patientService.ListPatients()
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.SuccessResponse(c, patients)
}

// Get returns a single patient by id
func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	patient, err := h.patientService.GetPatient(id)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.SuccessResponse(c, patient)
}

// Create registers a new patient
func (h *PatientHandler) Create(c *gin.Context) {
	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	patient, err := h.patientService.CreatePatient(input)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.CreatedResponse(c, patient)
}

// Update replaces the mutable fields of a patient
func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	patient, err := h.patientService.UpdatePatient(id, input)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.SuccessResponse(c, patient)
}

// Delete flips the patient status to INACTIVE; the record is retained
func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.patientService.DeactivatePatient(id); err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.MessageResponse(c, "Patient deactivated successfully")
}
