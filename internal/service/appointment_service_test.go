package service

import (
	"testing"
	"time"

	"github.com/prhdev222/CHEMO-FINAL/internal/models"
	"github.com/prhdev222/CHEMO-FINAL/pkg/apperror"
)

func TestCreateAppointment_UnknownPatient(t *testing.T) {
	svc, _ := newAppointmentService(t)

	_, err := svc.CreateAppointment(CreateAppointmentInput{
		PatientID: 999,
		Date:      time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for unknown patient, got %v", err)
	}
}

func TestCreateAppointment_DefaultsToWaiting(t *testing.T) {
	svc, patients := newAppointmentService(t)
	patient := seedPatient(t, patients, "00123")

	appointment := seedAppointment(t, svc, patient.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	if appointment.AdmitStatus != models.StatusWaiting {
		t.Errorf("expected waiting status, got %s", appointment.AdmitStatus)
	}

	listed, err := svc.ListAppointments()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != appointment.ID {
		t.Fatalf("expected new appointment in listing, got %d entries", len(listed))
	}
	if listed[0].Patient == nil || listed[0].Patient.HN != "00123" {
		t.Error("expected patient joined on listing")
	}
}

func TestUpdateStatus_WaitingToAdmitSetsAdmitDate(t *testing.T) {
	svc, patients := newAppointmentService(t)
	patient := seedPatient(t, patients, "00123")
	appointment := seedAppointment(t, svc, patient.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	updated, err := svc.UpdateStatus(appointment.ID, UpdateStatusInput{
		AdmitStatus: models.StatusAdmit,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.AdmitStatus != models.StatusAdmit {
		t.Errorf("expected admit status, got %s", updated.AdmitStatus)
	}
	if updated.AdmitDate == nil {
		t.Fatal("expected admitDate to be set")
	}
	if since := time.Since(*updated.AdmitDate); since < 0 || since > 5*time.Second {
		t.Errorf("expected admitDate close to now, got %v", updated.AdmitDate)
	}
}

func TestUpdateStatus_AdmitToAdmitRejected(t *testing.T) {
	svc, patients := newAppointmentService(t)
	patient := seedPatient(t, patients, "00123")
	appointment := seedAppointment(t, svc, patient.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	if _, err := svc.UpdateStatus(appointment.ID, UpdateStatusInput{AdmitStatus: models.StatusAdmit}); err != nil {
		t.Fatalf("first admit failed: %v", err)
	}

	_, err := svc.UpdateStatus(appointment.ID, UpdateStatusInput{AdmitStatus: models.StatusAdmit})
	if !apperror.IsKind(err, apperror.KindInvalidTransition) {
		t.Fatalf("expected invalid transition for admit->admit, got %v", err)
	}
}

func TestUpdateStatus_DischargedToAdmitRejected(t *testing.T) {
	svc, patients := newAppointmentService(t)
	patient := seedPatient(t, patients, "00123")
	appointment := seedAppointment(t, svc, patient.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	if _, err := svc.UpdateStatus(appointment.ID, UpdateStatusInput{AdmitStatus: models.StatusAdmit}); err != nil {
		t.Fatalf("admit failed: %v", err)
	}
	discharged, err := svc.UpdateStatus(appointment.ID, UpdateStatusInput{AdmitStatus: models.StatusDischarged})
	if err != nil {
		t.Fatalf("discharge failed: %v", err)
	}
	if discharged.DischargeDate == nil {
		t.Error("expected dischargeDate to be set")
	}

	_, err = svc.UpdateStatus(appointment.ID, UpdateStatusInput{AdmitStatus: models.StatusAdmit})
	if !apperror.IsKind(err, apperror.KindInvalidTransition) {
		t.Fatalf("expected invalid transition for discharged->admit, got %v", err)
	}
}

func TestUpdateStatus_SuppliedAdmitDateWins(t *testing.T) {
	svc, patients := newAppointmentService(t)
	patient := seedPatient(t, patients, "00123")
	appointment := seedAppointment(t, svc, patient.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	supplied := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)
	updated, err := svc.UpdateStatus(appointment.ID, UpdateStatusInput{
		AdmitStatus: models.StatusAdmit,
		AdmitDate:   &supplied,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.AdmitDate == nil || !updated.AdmitDate.Equal(supplied) {
		t.Errorf("expected supplied admitDate %v, got %v", supplied, updated.AdmitDate)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc, _ := newAppointmentService(t)

	_, err := svc.UpdateStatus(42, UpdateStatusInput{AdmitStatus: models.StatusAdmit})
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReschedule_AppendsHistoryAndResetsToWaiting(t *testing.T) {
	svc, patients := newAppointmentService(t)
	patient := seedPatient(t, patients, "00123")
	appointment := seedAppointment(t, svc, patient.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	newDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Reschedule(appointment.ID, newDate, "patient request", "Dr. Somsak")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !updated.Date.Equal(newDate) {
		t.Errorf("expected date %v, got %v", newDate, updated.Date)
	}
	if updated.AdmitStatus != models.StatusWaiting {
		t.Errorf("expected status waiting after reschedule, got %s", updated.AdmitStatus)
	}

	history, err := svc.GetHistory(appointment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected exactly one history entry, got %d", len(history))
	}
	entry := history[0]
	if entry.Action != models.ActionReschedule {
		t.Errorf("expected reschedule action, got %s", entry.Action)
	}
	if entry.NewDate == nil || !entry.NewDate.Equal(newDate) {
		t.Errorf("expected newDate %v, got %v", newDate, entry.NewDate)
	}
	if entry.Note != "patient request" {
		t.Errorf("expected note to be recorded, got %q", entry.Note)
	}
	if entry.CreatedBy != "Dr. Somsak" {
		t.Errorf("expected createdBy from caller, got %q", entry.CreatedBy)
	}
}

func TestReschedule_MissingDate(t *testing.T) {
	svc, patients := newAppointmentService(t)
	patient := seedPatient(t, patients, "00123")
	appointment := seedAppointment(t, svc, patient.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Reschedule(appointment.ID, time.Time{}, "", "")
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for missing newDate, got %v", err)
	}
}

func TestCancel_IsTerminal(t *testing.T) {
	svc, patients := newAppointmentService(t)
	patient := seedPatient(t, patients, "00123")
	appointment := seedAppointment(t, svc, patient.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	cancelled, err := svc.Cancel(appointment.ID, "patient deceased", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled.AdmitStatus != models.StatusCancelled {
		t.Errorf("expected cancelled status, got %s", cancelled.AdmitStatus)
	}

	history, err := svc.GetHistory(appointment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 || history[0].Action != models.ActionCancel {
		t.Fatalf("expected exactly one cancel history entry, got %+v", history)
	}
	if history[0].CreatedBy != "System" {
		t.Errorf("expected createdBy to default to System, got %q", history[0].CreatedBy)
	}

	// No transition leaves cancelled.
	if _, err := svc.UpdateStatus(appointment.ID, UpdateStatusInput{AdmitStatus: models.StatusAdmit}); !apperror.IsKind(err, apperror.KindInvalidTransition) {
		t.Errorf("expected invalid transition out of cancelled, got %v", err)
	}
	if _, err := svc.Reschedule(appointment.ID, time.Now(), "", ""); !apperror.IsKind(err, apperror.KindInvalidTransition) {
		t.Errorf("expected reschedule of cancelled to fail, got %v", err)
	}
	if _, err := svc.Cancel(appointment.ID, "", ""); !apperror.IsKind(err, apperror.KindInvalidTransition) {
		t.Errorf("expected cancel of cancelled to fail, got %v", err)
	}
}

func TestSoftDelete_ExcludedFromListingHistoryRetained(t *testing.T) {
	svc, patients := newAppointmentService(t)
	patient := seedPatient(t, patients, "00123")
	appointment := seedAppointment(t, svc, patient.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	if _, err := svc.Reschedule(appointment.ID, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "", ""); err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}

	if err := svc.SoftDelete(appointment.ID, nil); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	listed, err := svc.ListAppointments()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("expected soft-deleted appointment excluded from listing, got %d entries", len(listed))
	}

	history, err := svc.GetHistory(appointment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("expected history retained after soft delete, got %d entries", len(history))
	}
}

func TestAvailableStatuses_UnionOfStatusesAndActions(t *testing.T) {
	svc, patients := newAppointmentService(t)
	patient := seedPatient(t, patients, "00123")
	first := seedAppointment(t, svc, patient.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	seedAppointment(t, svc, patient.ID, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))

	if _, err := svc.Cancel(first.ID, "", ""); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	statuses, err := svc.AvailableStatuses()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]bool{"waiting": false, "cancelled": false, "cancel": false}
	for _, s := range statuses {
		if _, ok := want[s]; ok {
			want[s] = true
		}
	}
	for value, found := range want {
		if !found {
			t.Errorf("expected %q in available statuses %v", value, statuses)
		}
	}
}

func TestAddHistory_ManualAppendDoesNotTouchAppointment(t *testing.T) {
	svc, patients := newAppointmentService(t)
	patient := seedPatient(t, patients, "00123")
	appointment := seedAppointment(t, svc, patient.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.AddHistory(appointment.ID, AddHistoryInput{
		Action: models.ActionCancel,
		Date:   time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
		Note:   "recorded retroactively",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	listed, err := svc.ListAppointments()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listed[0].AdmitStatus != models.StatusWaiting {
		t.Errorf("manual history append must not change appointment status, got %s", listed[0].AdmitStatus)
	}
}

func TestAddHistory_Validation(t *testing.T) {
	svc, patients := newAppointmentService(t)
	patient := seedPatient(t, patients, "00123")
	appointment := seedAppointment(t, svc, patient.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.AddHistory(appointment.ID, AddHistoryInput{Action: "postpone", Date: time.Now()})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("expected validation error for unknown action, got %v", err)
	}

	_, err = svc.AddHistory(appointment.ID, AddHistoryInput{Action: models.ActionCancel})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("expected validation error for missing date, got %v", err)
	}
}

func TestGetHistory_OrderedByDate(t *testing.T) {
	svc, patients := newAppointmentService(t)
	patient := seedPatient(t, patients, "00123")
	appointment := seedAppointment(t, svc, patient.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	later := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	for _, d := range []time.Time{later, earlier} {
		if _, err := svc.AddHistory(appointment.ID, AddHistoryInput{
			Action: models.ActionReschedule,
			Date:   d,
		}); err != nil {
			t.Fatalf("add history failed: %v", err)
		}
	}

	history, err := svc.GetHistory(appointment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if !history[0].Date.Equal(earlier) {
		t.Errorf("expected history ordered by date ascending, got %v first", history[0].Date)
	}
}

func TestParseAdmitStatus_NormalizesLegacySpelling(t *testing.T) {
	status, err := ParseAdmitStatus("canceled")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != models.StatusCancelled {
		t.Errorf("expected canceled to normalize to cancelled, got %s", status)
	}

	if _, err := ParseAdmitStatus("unknown"); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("expected validation error for unknown status, got %v", err)
	}
}

func TestCreateAppointment_RetroactiveAdmissionDates(t *testing.T) {
	svc, patients := newAppointmentService(t)
	patient := seedPatient(t, patients, "00123")

	admitDate := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	dischargeDate := time.Date(2024, 4, 3, 16, 0, 0, 0, time.UTC)
	appointment, err := svc.CreateAppointment(CreateAppointmentInput{
		PatientID:     patient.ID,
		Date:          admitDate,
		AdmitStatus:   models.StatusDischarged,
		AdmitDate:     &admitDate,
		DischargeDate: &dischargeDate,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appointment.AdmitDate == nil || !appointment.AdmitDate.Equal(admitDate) {
		t.Errorf("expected admitDate %v, got %v", admitDate, appointment.AdmitDate)
	}
	if appointment.DischargeDate == nil || !appointment.DischargeDate.Equal(dischargeDate) {
		t.Errorf("expected dischargeDate %v, got %v", dischargeDate, appointment.DischargeDate)
	}
}
