package repository

import (
	"errors"

	"github.com/prhdev222/CHEMO-FINAL/internal/models"

	"gorm.io/gorm"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepo(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// GetAllPatients retrieves all patients ordered by HN
func (r *PatientRepository) GetAllPatients() ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.Order("hn ASC").Find(&patients).Error
	return patients, err
}

// GetPatientByID retrieves a patient by primary key
func (r *PatientRepository) GetPatientByID(id uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.First(&patient, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &patient, nil
}

// GetPatientByHN retrieves a patient by hospital number
func (r *PatientRepository) GetPatientByHN(hn string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.Where("hn = ?", hn).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &patient, nil
}

// CreatePatient creates a new patient record
func (r *PatientRepository) CreatePatient(patient *models.Patient) error {
	return r.db.Create(patient).Error
}

// SavePatient persists all fields of an existing patient record
func (r *PatientRepository) SavePatient(patient *models.Patient) error {
	return r.db.Save(patient).Error
}

// UpdatePatientStatus updates only the soft lifecycle status
func (r *PatientRepository) UpdatePatientStatus(id uint, status models.PatientStatus) error {
	return r.db.Model(&models.Patient{}).
		Where("id = ?", id).
		Update("status", status).Error
}
