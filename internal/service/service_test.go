package service

import (
	"testing"
	"time"

	"github.com/prhdev222/CHEMO-FINAL/internal/database"
	"github.com/prhdev222/CHEMO-FINAL/internal/models"
	"github.com/prhdev222/CHEMO-FINAL/internal/repository"
	"github.com/prhdev222/CHEMO-FINAL/pkg/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testTokens is the fixed-secret token manager injected into services under test.
var testTokens = utils.NewTokenManager("test-secret", time.Hour, 24*time.Hour)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// The in-memory database lives on a single connection.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}

func newAppointmentService(t *testing.T) (*AppointmentService, *PatientService) {
	t.Helper()
	db := newTestDB(t)
	patientRepo := repository.NewPatientRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	return NewAppointmentService(appointmentRepo, patientRepo, auditRepo),
		NewPatientService(patientRepo)
}

func seedPatient(t *testing.T, patients *PatientService, hn string) *models.Patient {
	t.Helper()
	patient, err := patients.CreatePatient(PatientInput{
		HN:        hn,
		FirstName: "Somchai",
		LastName:  "Jaidee",
	})
	if err != nil {
		t.Fatalf("failed to seed patient: %v", err)
	}
	return patient
}

func seedAppointment(t *testing.T, svc *AppointmentService, patientID uint, date time.Time) *models.Appointment {
	t.Helper()
	appointment, err := svc.CreateAppointment(CreateAppointmentInput{
		PatientID: patientID,
		Date:      date,
	})
	if err != nil {
		t.Fatalf("failed to seed appointment: %v", err)
	}
	return appointment
}
