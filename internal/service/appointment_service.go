package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/prhdev222/CHEMO-FINAL/internal/models"
	"github.com/prhdev222/CHEMO-FINAL/internal/repository"
	"github.com/prhdev222/CHEMO-FINAL/pkg/apperror"
)

// AppointmentService owns the admit-status lifecycle of appointments and the
// reschedule/cancel audit trail.
type AppointmentService struct {
	appointmentRepo *repository.AppointmentRepository
	patientRepo     *repository.PatientRepository
	auditRepo       *repository.AuditRepository
}

func NewAppointmentService(
	appointmentRepo *repository.AppointmentRepository,
	patientRepo *repository.PatientRepository,
	auditRepo *repository.AuditRepository,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		auditRepo:       auditRepo,
	}
}

// ParseAdmitStatus parses a client-supplied admit status. The legacy
// alternate spelling "canceled" is accepted and normalized to "cancelled".
func ParseAdmitStatus(s string) (models.AdmitStatus, error) {
	if s == "canceled" {
		s = string(models.StatusCancelled)
	}
	status := models.AdmitStatus(s)
	if !status.IsValid() {
		return "", apperror.Validation("invalid admit status: " + s)
	}
	return status, nil
}

// CreateAppointmentInput carries the validated fields for a new appointment.
// AdmitDate and DischargeDate allow retroactive entry of an admission that
// already happened.
type CreateAppointmentInput struct {
	PatientID     uint
	Date          time.Time
	ChemoRegimen  string
	AdmitStatus   models.AdmitStatus // empty means waiting
	AdmitDate     *time.Time
	DischargeDate *time.Time
	Note          string
	ReferHospital string
	ReferDate     *time.Time
}

// CreateAppointment persists a new appointment after checking the target
// patient exists.
func (s *AppointmentService) CreateAppointment(input CreateAppointmentInput) (*models.Appointment, error) {
	if _, err := s.patientRepo.GetPatientByID(input.PatientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Validation("patientId does not reference an existing patient")
		}
		return nil, apperror.Internal(err)
	}

	status := input.AdmitStatus
	if status == "" {
		status = models.StatusWaiting
	}
	if !status.IsValid() {
		return nil, apperror.Validation("invalid admit status: " + string(status))
	}

	appointment := &models.Appointment{
		PatientID:     input.PatientID,
		Date:          input.Date,
		ChemoRegimen:  input.ChemoRegimen,
		AdmitStatus:   status,
		AdmitDate:     input.AdmitDate,
		DischargeDate: input.DischargeDate,
		Note:          input.Note,
		ReferHospital: input.ReferHospital,
		ReferDate:     input.ReferDate,
	}

	if err := s.appointmentRepo.CreateAppointment(appointment); err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to create appointment: %w", err))
	}

	return appointment, nil
}

// ListAppointments returns all non-deleted appointments with their patient
// joined, ordered by date ascending.
func (s *AppointmentService) ListAppointments() ([]models.Appointment, error) {
	appointments, err := s.appointmentRepo.GetAllAppointments()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return appointments, nil
}

// UpdateAppointmentInput carries an unguarded partial field patch. Nil fields
// are left untouched.
type UpdateAppointmentInput struct {
	Date          *time.Time
	ChemoRegimen  *string
	AdmitStatus   *models.AdmitStatus
	ReferHospital *string
	ReferDate     *time.Time
	Note          *string
}

// UpdateAppointment applies a direct field patch with no transition guard.
// Guarded changes go through UpdateStatus, Reschedule or Cancel instead.
func (s *AppointmentService) UpdateAppointment(id uint, input UpdateAppointmentInput) (*models.Appointment, error) {
	if _, err := s.getAppointment(id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Date != nil {
		updates["date"] = *input.Date
	}
	if input.ChemoRegimen != nil {
		updates["chemo_regimen"] = *input.ChemoRegimen
	}
	if input.AdmitStatus != nil {
		if !input.AdmitStatus.IsValid() {
			return nil, apperror.Validation("invalid admit status: " + string(*input.AdmitStatus))
		}
		updates["admit_status"] = *input.AdmitStatus
	}
	if input.ReferHospital != nil {
		updates["refer_hospital"] = *input.ReferHospital
	}
	if input.ReferDate != nil {
		updates["refer_date"] = *input.ReferDate
	}
	if input.Note != nil {
		updates["note"] = *input.Note
	}

	if len(updates) == 0 {
		return nil, apperror.Validation("no fields to update")
	}

	if err := s.appointmentRepo.UpdateAppointment(id, updates); err != nil {
		return nil, apperror.Internal(err)
	}

	return s.getAppointment(id)
}

// UpdateStatusInput carries a guarded admit-status transition.
type UpdateStatusInput struct {
	AdmitStatus   models.AdmitStatus
	AdmitDate     *time.Time
	DischargeDate *time.Time
	Note          *string
}

// UpdateStatus applies a guarded admit-status transition and maintains the
// derived admit/discharge dates.
func (s *AppointmentService) UpdateStatus(id uint, input UpdateStatusInput) (*models.Appointment, error) {
	appointment, err := s.getAppointment(id)
	if err != nil {
		return nil, err
	}

	next := input.AdmitStatus
	if !next.IsValid() {
		return nil, apperror.Validation("invalid admit status: " + string(next))
	}

	if err := checkTransition(appointment.AdmitStatus, next); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"admit_status": next,
	}
	if input.Note != nil {
		updates["note"] = *input.Note
	}

	now := time.Now()
	switch next {
	case models.StatusAdmit:
		admitDate := now
		if input.AdmitDate != nil {
			admitDate = *input.AdmitDate
		}
		updates["admit_date"] = admitDate
	case models.StatusDischarged:
		dischargeDate := now
		if input.DischargeDate != nil {
			dischargeDate = *input.DischargeDate
		}
		updates["discharge_date"] = dischargeDate
	}

	if err := s.appointmentRepo.UpdateAppointment(id, updates); err != nil {
		return nil, apperror.Internal(err)
	}

	return s.getAppointment(id)
}

// checkTransition enforces the admit-status guard table.
func checkTransition(current, next models.AdmitStatus) error {
	if current == models.StatusCancelled {
		return apperror.InvalidTransition("appointment is cancelled; no further status change is allowed")
	}
	if current == models.StatusAdmit && next == models.StatusAdmit {
		return apperror.InvalidTransition("appointment is already admitted")
	}
	if current == models.StatusDischarged && next == models.StatusAdmit {
		return apperror.InvalidTransition("cannot change discharged back to admit; create a new appointment for the next admission cycle")
	}
	return nil
}

// Reschedule moves an appointment to a new date, reverts its status to
// waiting, and appends a reschedule entry to the audit trail. Both writes
// happen in one transaction.
func (s *AppointmentService) Reschedule(id uint, newDate time.Time, note, createdBy string) (*models.Appointment, error) {
	if newDate.IsZero() {
		return nil, apperror.Validation("newDate is required")
	}

	appointment, err := s.getAppointment(id)
	if err != nil {
		return nil, err
	}

	if appointment.AdmitStatus.IsTerminal() {
		return nil, apperror.InvalidTransition(
			fmt.Sprintf("cannot reschedule a %s appointment", appointment.AdmitStatus))
	}

	history := &models.RescheduleHistory{
		AppointmentID: id,
		Action:        models.ActionReschedule,
		Date:          time.Now(),
		NewDate:       &newDate,
		Note:          note,
		CreatedBy:     actor(createdBy),
	}

	updates := map[string]interface{}{
		"date":         newDate,
		"admit_status": models.StatusWaiting,
	}
	if note != "" {
		updates["note"] = note
	}

	if err := s.appointmentRepo.UpdateWithHistory(id, updates, history); err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to reschedule appointment: %w", err))
	}

	return s.getAppointment(id)
}

// Cancel terminates an appointment and appends a cancel entry to the audit
// trail. Both writes happen in one transaction. Cancelled is terminal.
func (s *AppointmentService) Cancel(id uint, note, createdBy string) (*models.Appointment, error) {
	appointment, err := s.getAppointment(id)
	if err != nil {
		return nil, err
	}

	if appointment.AdmitStatus.IsTerminal() {
		return nil, apperror.InvalidTransition(
			fmt.Sprintf("cannot cancel a %s appointment", appointment.AdmitStatus))
	}

	history := &models.RescheduleHistory{
		AppointmentID: id,
		Action:        models.ActionCancel,
		Date:          time.Now(),
		Note:          note,
		CreatedBy:     actor(createdBy),
	}

	updates := map[string]interface{}{
		"admit_status": models.StatusCancelled,
	}
	if note != "" {
		updates["note"] = note
	}

	if err := s.appointmentRepo.UpdateWithHistory(id, updates, history); err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to cancel appointment: %w", err))
	}

	return s.getAppointment(id)
}

// SoftDelete flags an appointment as deleted. History entries are retained.
func (s *AppointmentService) SoftDelete(id uint, actorID *uint) error {
	if _, err := s.getAppointment(id); err != nil {
		return err
	}

	if err := s.appointmentRepo.SoftDeleteAppointment(id); err != nil {
		return apperror.Internal(err)
	}

	_ = s.auditRepo.CreateAuditLog(actorID, models.AuditAppointmentDelete, fmt.Sprintf("Appointment %d soft-deleted", id))

	return nil
}

// AddHistoryInput carries a manual audit-trail append.
type AddHistoryInput struct {
	Action    models.RescheduleAction
	Date      time.Time
	NewDate   *time.Time
	Note      string
	CreatedBy string
}

// AddHistory appends a manually recorded reschedule/cancel entry. The
// dashboard uses this for retroactively dated actions; the appointment
// itself is not modified.
func (s *AppointmentService) AddHistory(appointmentID uint, input AddHistoryInput) (*models.RescheduleHistory, error) {
	if !input.Action.IsValid() {
		return nil, apperror.Validation("action must be reschedule or cancel")
	}
	if input.Date.IsZero() {
		return nil, apperror.Validation("date is required")
	}

	if _, err := s.getAppointment(appointmentID); err != nil {
		return nil, err
	}

	history := &models.RescheduleHistory{
		AppointmentID: appointmentID,
		Action:        input.Action,
		Date:          input.Date,
		NewDate:       input.NewDate,
		Note:          input.Note,
		CreatedBy:     actor(input.CreatedBy),
	}

	if err := s.appointmentRepo.CreateHistory(history); err != nil {
		return nil, apperror.Internal(err)
	}

	return history, nil
}

// GetHistory returns the audit trail of an appointment ordered by date.
func (s *AppointmentService) GetHistory(appointmentID uint) ([]models.RescheduleHistory, error) {
	if _, err := s.getAppointment(appointmentID); err != nil {
		return nil, err
	}

	history, err := s.appointmentRepo.GetHistory(appointmentID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return history, nil
}

// AvailableStatuses returns the distinct union of admit statuses present on
// appointments and actions present in the audit trail. Used to populate the
// dashboard filter options.
func (s *AppointmentService) AvailableStatuses() ([]string, error) {
	statuses, err := s.appointmentRepo.DistinctStatuses()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	actions, err := s.appointmentRepo.DistinctActions()
	if err != nil {
		return nil, apperror.Internal(err)
	}

	seen := map[string]bool{}
	union := []string{}
	for _, v := range append(statuses, actions...) {
		if v != "" && !seen[v] {
			seen[v] = true
			union = append(union, v)
		}
	}
	return union, nil
}

func (s *AppointmentService) getAppointment(id uint) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetAppointmentByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("appointment not found")
		}
		return nil, apperror.Internal(err)
	}
	return appointment, nil
}

// actor normalizes the recorded author of a history entry.
func actor(createdBy string) string {
	if createdBy == "" {
		return "System"
	}
	return createdBy
}
