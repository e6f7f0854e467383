package service

import (
	"testing"

	"github.com/prhdev222/CHEMO-FINAL/internal/models"
	"github.com/prhdev222/CHEMO-FINAL/internal/repository"
	"github.com/prhdev222/CHEMO-FINAL/pkg/apperror"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(repository.NewUserRepo(db), repository.NewAuditRepo(db), testTokens)
}

func TestRegister_InvalidRole(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register("Nurse Noi", "noi@ward.test", "secret1", "JANITOR")
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for unknown role, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register("Nurse Noi", "noi@ward.test", "secret1", models.RoleNurse); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err := svc.Register("Other Noi", "noi@ward.test", "secret2", models.RoleDoctor)
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}
}

func TestRegister_ReturnsPublicSummary(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register("Dr. Somsak", "somsak@ward.test", "secret1", models.RoleDoctor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == 0 || user.Email != "somsak@ward.test" || user.Role != models.RoleDoctor {
		t.Errorf("unexpected public summary: %+v", user)
	}
}

func TestLogin_WrongPasswordDoesNotLeakEmailExistence(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register("Nurse Noi", "noi@ward.test", "secret1", models.RoleNurse); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	_, wrongPassword := mustFailLogin(t, svc, "noi@ward.test", "wrong")
	_, unknownEmail := mustFailLogin(t, svc, "nobody@ward.test", "secret1")

	if wrongPassword != unknownEmail {
		t.Errorf("error messages differ, leaking email existence: %q vs %q", wrongPassword, unknownEmail)
	}
}

func mustFailLogin(t *testing.T, svc *AuthService, email, password string) (*LoginResponse, string) {
	t.Helper()
	resp, err := svc.Login(email, password)
	if resp != nil {
		t.Fatalf("expected login to fail for %s", email)
	}
	if !apperror.IsKind(err, apperror.KindAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	return resp, err.Error()
}

func TestLogin_IssuesTokenWithClaims(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register("Dr. Somsak", "somsak@ward.test", "secret1", models.RoleDoctor); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	resp, err := svc.Login("somsak@ward.test", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Token == "" || resp.RefreshToken == "" {
		t.Fatal("expected access and refresh tokens")
	}

	claims, err := testTokens.ValidateAccessToken(resp.Token)
	if err != nil {
		t.Fatalf("token validation failed: %v", err)
	}
	if claims.UserID != resp.User.ID || claims.Role != string(models.RoleDoctor) || claims.Name != "Dr. Somsak" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestRefreshAndLogout(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register("Dr. Somsak", "somsak@ward.test", "secret1", models.RoleDoctor); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	resp, err := svc.Login("somsak@ward.test", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	token, err := svc.RefreshAccessToken(resp.RefreshToken)
	if err != nil || token == "" {
		t.Fatalf("refresh failed: %v", err)
	}

	if err := svc.Logout(resp.RefreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, err := svc.RefreshAccessToken(resp.RefreshToken); !apperror.IsKind(err, apperror.KindAuth) {
		t.Errorf("expected revoked refresh token to be rejected, got %v", err)
	}
}

func TestLogin_WritesAuditTrail(t *testing.T) {
	db := newTestDB(t)
	auditRepo := repository.NewAuditRepo(db)
	svc := NewAuthService(repository.NewUserRepo(db), auditRepo, testTokens)

	if _, err := svc.Register("Nurse Noi", "noi@ward.test", "secret1", models.RoleNurse); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if _, err := svc.Login("noi@ward.test", "secret1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	entries, err := auditRepo.ListAuditLogs(models.AuditUserLogin)
	if err != nil {
		t.Fatalf("failed to list audit trail: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one login entry, got %d", len(entries))
	}
	if entries[0].UserID == nil {
		t.Error("expected login entry to carry the acting user id")
	}
}
