package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/prhdev222/CHEMO-FINAL/internal/models"
	"github.com/prhdev222/CHEMO-FINAL/internal/repository"
	"github.com/prhdev222/CHEMO-FINAL/pkg/apperror"
)

type PatientService struct {
	patientRepo *repository.PatientRepository
}

func NewPatientService(patientRepo *repository.PatientRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo}
}

// PatientInput carries the fields of a patient record. Used for both create
// and full update.
type PatientInput struct {
	HN             string
	FirstName      string
	LastName       string
	BirthDate      *time.Time
	Phone          string
	LineID         string
	Address        string
	Status         models.PatientStatus // empty means ACTIVE
	Diagnosis      string
	TreatmentRight string
	TreatmentPlan  *models.TreatmentPlan
}

// ListPatients returns all patients ordered by HN.
func (s *PatientService) ListPatients() ([]models.Patient, error) {
	patients, err := s.patientRepo.GetAllPatients()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return patients, nil
}

// GetPatient returns one patient by id.
func (s *PatientService) GetPatient(id uint) (*models.Patient, error) {
	patient, err := s.patientRepo.GetPatientByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("patient not found")
		}
		return nil, apperror.Internal(err)
	}
	return patient, nil
}

// CreatePatient registers a new patient. HN must be unique.
func (s *PatientService) CreatePatient(input PatientInput) (*models.Patient, error) {
	status := input.Status
	if status == "" {
		status = models.PatientActive
	}
	if !status.IsValid() {
		return nil, apperror.Validation("invalid patient status: " + string(status))
	}

	existing, err := s.patientRepo.GetPatientByHN(input.HN)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("a patient with HN " + input.HN + " already exists")
	}

	patient := &models.Patient{
		HN:             input.HN,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		BirthDate:      input.BirthDate,
		Phone:          input.Phone,
		LineID:         input.LineID,
		Address:        input.Address,
		Status:         status,
		Diagnosis:      input.Diagnosis,
		TreatmentRight: input.TreatmentRight,
		TreatmentPlan:  input.TreatmentPlan,
	}

	if err := s.patientRepo.CreatePatient(patient); err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to create patient: %w", err))
	}

	return patient, nil
}

// UpdatePatient replaces the mutable fields of an existing patient.
func (s *PatientService) UpdatePatient(id uint, input PatientInput) (*models.Patient, error) {
	patient, err := s.GetPatient(id)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = patient.Status
	}
	if !status.IsValid() {
		return nil, apperror.Validation("invalid patient status: " + string(status))
	}

	if input.HN != "" && input.HN != patient.HN {
		existing, err := s.patientRepo.GetPatientByHN(input.HN)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Internal(err)
		}
		if existing != nil {
			return nil, apperror.Conflict("a patient with HN " + input.HN + " already exists")
		}
		patient.HN = input.HN
	}

	patient.FirstName = input.FirstName
	patient.LastName = input.LastName
	patient.BirthDate = input.BirthDate
	patient.Phone = input.Phone
	patient.LineID = input.LineID
	patient.Address = input.Address
	patient.Status = status
	patient.Diagnosis = input.Diagnosis
	patient.TreatmentRight = input.TreatmentRight
	patient.TreatmentPlan = input.TreatmentPlan

	if err := s.patientRepo.SavePatient(patient); err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to update patient: %w", err))
	}

	return patient, nil
}

// DeactivatePatient is the delete operation for patients: the row is kept
// and the status flips to INACTIVE.
func (s *PatientService) DeactivatePatient(id uint) error {
	if _, err := s.GetPatient(id); err != nil {
		return err
	}

	if err := s.patientRepo.UpdatePatientStatus(id, models.PatientInactive); err != nil {
		return apperror.Internal(err)
	}

	return nil
}
