package models

import "time"

// PatientStatus is the soft lifecycle status of a patient record.
// Patients are never physically deleted; deletion flips the status instead.
type PatientStatus string

const (
	PatientActive   PatientStatus = "ACTIVE"
	PatientInactive PatientStatus = "INACTIVE"
	PatientDeceased PatientStatus = "DECEASED"
)

// IsValid reports whether s is one of the defined patient statuses.
func (s PatientStatus) IsValid() bool {
	switch s {
	case PatientActive, PatientInactive, PatientDeceased:
		return true
	}
	return false
}

// TreatmentPlan holds the free-form treatment plan attached to a patient.
// Stored as a single JSON column.
type TreatmentPlan struct {
	DiagnosisGroup string `json:"diagnosisGroup,omitempty"`
	Details        string `json:"details,omitempty"`
	CurrentStatus  string `json:"currentStatus,omitempty"`
	RelapsedNumber int    `json:"relapsedNumber,omitempty"`
}

// Patient represents the patients table
type Patient struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	HN             string         `gorm:"column:hn;uniqueIndex;not null;size:20" json:"hn"`
	FirstName      string         `gorm:"not null;size:100" json:"firstName"`
	LastName       string         `gorm:"not null;size:100" json:"lastName"`
	BirthDate      *time.Time     `json:"birthDate,omitempty"`
	Phone          string         `gorm:"size:20" json:"phone,omitempty"`
	LineID         string         `gorm:"column:line_id;size:50" json:"lineId,omitempty"`
	Address        string         `gorm:"type:text" json:"address,omitempty"`
	Status         PatientStatus  `gorm:"size:20;default:'ACTIVE'" json:"status"`
	Diagnosis      string         `gorm:"size:255" json:"diagnosis,omitempty"`
	TreatmentRight string         `gorm:"size:100" json:"treatmentRight,omitempty"`
	TreatmentPlan  *TreatmentPlan `gorm:"serializer:json" json:"treatmentPlan,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TableName specifies the table name for Patient model
func (Patient) TableName() string {
	return "patients"
}
