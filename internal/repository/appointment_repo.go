package repository

import (
	"errors"

	"github.com/prhdev222/CHEMO-FINAL/internal/models"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// GetAllAppointments retrieves all non-deleted appointments with their
// patient joined, ordered by appointment date ascending
func (r *AppointmentRepository) GetAllAppointments() ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Where("is_deleted = ?", false).
		Preload("Patient").
		Order("date ASC").
		Find(&appointments).Error
	return appointments, err
}

// GetAppointmentByID retrieves an appointment by primary key. Soft-deleted
// rows are still reachable by id; they are only excluded from listings.
func (r *AppointmentRepository) GetAppointmentByID(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.First(&appointment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

// CreateAppointment creates a new appointment
func (r *AppointmentRepository) CreateAppointment(appointment *models.Appointment) error {
	return r.db.Create(appointment).Error
}

// UpdateAppointment applies a partial column update to an appointment
func (r *AppointmentRepository) UpdateAppointment(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// SoftDeleteAppointment flags an appointment as deleted; the row and its
// history are retained for audit
func (r *AppointmentRepository) SoftDeleteAppointment(id uint) error {
	return r.db.Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

// CreateHistory appends a reschedule/cancel audit entry
func (r *AppointmentRepository) CreateHistory(history *models.RescheduleHistory) error {
	return r.db.Create(history).Error
}

// GetHistory retrieves all audit entries for an appointment ordered by the
// time the action was recorded
func (r *AppointmentRepository) GetHistory(appointmentID uint) ([]models.RescheduleHistory, error) {
	var history []models.RescheduleHistory
	err := r.db.Where("appointment_id = ?", appointmentID).
		Order("date ASC").
		Find(&history).Error
	return history, err
}

// UpdateWithHistory applies an appointment update and appends a history entry
// in a single transaction, so a failure leaves neither write visible
func (r *AppointmentRepository) UpdateWithHistory(id uint, updates map[string]interface{}, history *models.RescheduleHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(history).Error; err != nil {
			return err
		}
		return tx.Model(&models.Appointment{}).
			Where("id = ?", id).
			Updates(updates).Error
	})
}

// DistinctStatuses returns the distinct admit statuses present in the
// appointments table
func (r *AppointmentRepository) DistinctStatuses() ([]string, error) {
	var statuses []string
	err := r.db.Model(&models.Appointment{}).
		Distinct("admit_status").
		Pluck("admit_status", &statuses).Error
	return statuses, err
}

// DistinctActions returns the distinct actions present in the history table
func (r *AppointmentRepository) DistinctActions() ([]string, error) {
	var actions []string
	err := r.db.Model(&models.RescheduleHistory{}).
		Distinct("action").
		Pluck("action", &actions).Error
	return actions, err
}
