package models

import "time"

// Actions recorded in the audit trail. Account events and appointment
// deletions are the privileged operations the ward tracks.
const (
	AuditUserRegistration  = "user_registration"
	AuditUserLogin         = "user_login"
	AuditAppointmentDelete = "appointment_delete"
)

// AuditLog is one recorded privileged action. UserID is nil when the acting
// account is unknown.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	Action    string    `gorm:"size:100;not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
