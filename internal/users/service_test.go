package users

import (
	"context"
	"errors"
	"testing"
)

func newTestService() *Service {
	return &Service{
		Repo:         NewMemoryRepo(),
		IsAdminEmail: func(email string) bool { return email == "boss@example.com" },
	}
}

func TestSignUpAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	user, token, err := svc.SignUp(ctx, "Staff@Example.com", "hunter2hunter2", "Staff One")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a session token")
	}
	if user.Email != "staff@example.com" {
		t.Fatalf("expected lower-cased email, got %s", user.Email)
	}
	if user.Role != RoleSubadmin {
		t.Fatalf("expected default subadmin role, got %s", user.Role)
	}

	got, token, err := svc.Login(ctx, "staff@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("login returned wrong user")
	}
	if token == "" {
		t.Fatalf("expected a session token on login")
	}
}

func TestSignUpAdminEmailGetsAdminRole(t *testing.T) {
	svc := newTestService()

	user, _, err := svc.SignUp(context.Background(), "boss@example.com", "hunter2hunter2", "")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if user.Role != RoleAdmin {
		t.Fatalf("expected admin role, got %s", user.Role)
	}
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, _, err := svc.SignUp(ctx, "a@example.com", "hunter2hunter2", ""); err != nil {
		t.Fatalf("first SignUp: %v", err)
	}
	_, _, err := svc.SignUp(ctx, "A@example.com", "hunter2hunter2", "")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, _, err := svc.SignUp(ctx, "a@example.com", "hunter2hunter2", ""); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	_, _, err := svc.Login(ctx, "a@example.com", "wrong-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, _, err = svc.Login(ctx, "nobody@example.com", "whatever-pass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, _, err := svc.SignUp(ctx, "a@example.com", "hunter2hunter2", ""); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	token, err := svc.RequestPasswordReset(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a raw reset token")
	}

	if err := svc.ConfirmPasswordReset(ctx, token, "new-password-1"); err != nil {
		t.Fatalf("ConfirmPasswordReset: %v", err)
	}

	if _, _, err := svc.Login(ctx, "a@example.com", "hunter2hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should no longer work, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "a@example.com", "new-password-1"); err != nil {
		t.Fatalf("new password should work: %v", err)
	}

	// Tokens are single-use: UpdatePassword clears them.
	if err := svc.ConfirmPasswordReset(ctx, token, "another-pass-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected reused token to fail, got %v", err)
	}
}

func TestUpsertFromOAuthDefaultsToSubadmin(t *testing.T) {
	svc := newTestService()

	user, token, err := svc.UpsertFromOAuth(context.Background(), "google:123", "ext@example.com", "Ext User")
	if err != nil {
		t.Fatalf("UpsertFromOAuth: %v", err)
	}
	if user.Role != RoleSubadmin {
		t.Fatalf("expected subadmin role, got %s", user.Role)
	}
	if token == "" {
		t.Fatalf("expected a session token")
	}
}
