package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	claims := Claims{
		Email: "user@example.com",
		Role:  "subadmin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "user-1",
		},
	}

	token, err := SignJWT(claims)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	got, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if got.Subject != "user-1" {
		t.Fatalf("expected sub user-1, got %s", got.Subject)
	}
	if got.Email != "user@example.com" {
		t.Fatalf("expected email to round-trip, got %s", got.Email)
	}
	if got.Role != "subadmin" {
		t.Fatalf("expected role subadmin, got %s", got.Role)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	past := time.Now().UTC().Add(-2 * time.Hour)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
	}

	token, err := SignJWT(claims)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	if _, err := VerifyJWT(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := VerifyJWT("not.a.token"); err == nil {
		t.Fatalf("expected malformed token to be rejected")
	}
}

func TestHashPasswordPolicy(t *testing.T) {
	if _, err := HashPassword("short"); err == nil {
		t.Fatalf("expected weak password to be rejected")
	}

	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "correct-horse") {
		t.Fatalf("expected password to verify against its hash")
	}
	if CheckPassword(hash, "wrong-horse") {
		t.Fatalf("expected mismatched password to fail")
	}
}
