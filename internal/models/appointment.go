package models

import "time"

// AdmitStatus is the admit lifecycle status of an appointment.
//
// Allowed transitions:
//
//	waiting → admit → discharged
//	any non-terminal → waiting (reschedule, with history entry)
//	any non-terminal → cancelled (with history entry)
//
// cancelled is terminal. discharged never returns to admit; a new admission
// cycle requires a new appointment. missed is only ever set manually through
// the unguarded field patch, and followup marks an OPD visit with no chemo
// regimen.
type AdmitStatus string

const (
	StatusWaiting     AdmitStatus = "waiting"
	StatusAdmit       AdmitStatus = "admit"
	StatusDischarged  AdmitStatus = "discharged"
	StatusRescheduled AdmitStatus = "rescheduled"
	StatusCancelled   AdmitStatus = "cancelled"
	StatusMissed      AdmitStatus = "missed"
	StatusFollowup    AdmitStatus = "followup"
)

// IsValid reports whether s is one of the defined admit statuses.
func (s AdmitStatus) IsValid() bool {
	switch s {
	case StatusWaiting, StatusAdmit, StatusDischarged, StatusRescheduled,
		StatusCancelled, StatusMissed, StatusFollowup:
		return true
	}
	return false
}

// IsTerminal reports whether no further guarded transition may leave s.
// discharged is terminal for the admit cycle; cancelled is terminal outright.
func (s AdmitStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusDischarged
}

// Appointment represents the appointments table: one scheduled chemotherapy
// engagement (or OPD follow-up) for a patient.
type Appointment struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	PatientID     uint        `gorm:"not null;index" json:"patientId"`
	Date          time.Time   `gorm:"not null;index" json:"date"`
	ChemoRegimen  string      `gorm:"size:255" json:"chemoRegimen,omitempty"`
	AdmitStatus   AdmitStatus `gorm:"size:20;default:'waiting'" json:"admitStatus"`
	AdmitDate     *time.Time  `json:"admitDate,omitempty"`
	DischargeDate *time.Time  `json:"dischargeDate,omitempty"`
	ReferHospital string      `gorm:"size:255" json:"referHospital,omitempty"`
	ReferDate     *time.Time  `json:"referDate,omitempty"`
	Note          string      `gorm:"type:text" json:"note,omitempty"`
	IsDeleted     bool        `gorm:"default:false;index" json:"isDeleted"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// RescheduleAction is the kind of audit event recorded against an appointment.
type RescheduleAction string

const (
	ActionReschedule RescheduleAction = "reschedule"
	ActionCancel     RescheduleAction = "cancel"
)

// IsValid reports whether a is one of the defined history actions.
func (a RescheduleAction) IsValid() bool {
	return a == ActionReschedule || a == ActionCancel
}

// RescheduleHistory represents the reschedule_histories table: an append-only
// audit record of reschedule/cancel actions on an appointment. Rows are never
// updated or removed, even when the owning appointment is soft-deleted.
type RescheduleHistory struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	AppointmentID uint             `gorm:"not null;index" json:"appointmentId"`
	Action        RescheduleAction `gorm:"size:20;not null" json:"action"`
	Date          time.Time        `gorm:"not null" json:"date"`
	NewDate       *time.Time       `json:"newDate,omitempty"`
	Note          string           `gorm:"type:text" json:"note,omitempty"`
	CreatedBy     string           `gorm:"size:100" json:"createdBy,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// TableName specifies the table name for RescheduleHistory model
func (RescheduleHistory) TableName() string {
	return "reschedule_histories"
}
