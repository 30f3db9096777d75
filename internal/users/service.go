package users

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"records-backend/internal/shared/auth"
)

const resetTokenTTL = time.Hour

// ErrInvalidInput marks request-level validation failures.
var ErrInvalidInput = errors.New("invalid input")

// Service contains account and session logic.
type Service struct {
	Repo Repo
	// IsAdminEmail decides whether a new account is provisioned as admin.
	IsAdminEmail func(email string) bool
}

// SignUp registers a new account and returns it with a session token.
func (s *Service) SignUp(ctx context.Context, email, password, name string) (User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, "", fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrWeakPassword) {
			return User{}, "", fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
		return User{}, "", err
	}

	role := RoleSubadmin
	if s.IsAdminEmail != nil && s.IsAdminEmail(email) {
		role = RoleAdmin
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a session token.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}
	if user.PasswordHash == "" || !auth.CheckPassword(user.PasswordHash, password) {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// GetByID returns the user for an authenticated session.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID)
}

// UpsertFromOAuth persists an externally authenticated identity and returns a
// session token for it. New accounts default to the subadmin role.
func (s *Service) UpsertFromOAuth(ctx context.Context, id, email, name string) (User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if id == "" || email == "" {
		return User{}, "", fmt.Errorf("%w: id and email are required", ErrInvalidInput)
	}

	role := RoleSubadmin
	if s.IsAdminEmail != nil && s.IsAdminEmail(email) {
		role = RoleAdmin
	}

	now := time.Now().UTC()
	user := User{
		ID:        id,
		Email:     email,
		Name:      strings.TrimSpace(name),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return User{}, "", err
	}

	stored, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return User{}, "", err
	}
	token, err := s.issueToken(stored)
	if err != nil {
		return User{}, "", err
	}
	return stored, token, nil
}

// RequestPasswordReset issues a one-hour reset token for the account. The raw
// token is returned for delivery; only its hash is stored. Unknown emails
// yield ErrNotFound so the handler can respond uniformly.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	raw, err := randomToken()
	if err != nil {
		return "", err
	}
	expires := time.Now().UTC().Add(resetTokenTTL)
	if err := s.Repo.SetResetToken(ctx, user.ID, hashToken(raw), expires); err != nil {
		return "", err
	}
	return raw, nil
}

// ConfirmPasswordReset exchanges a valid reset token for a new password.
func (s *Service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}
	user, err := s.Repo.GetByResetToken(ctx, hashToken(token))
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		if errors.Is(err, auth.ErrWeakPassword) {
			return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
		return err
	}
	return s.Repo.UpdatePassword(ctx, user.ID, hash)
}

func (s *Service) issueToken(user User) (string, error) {
	return auth.SignJWT(auth.Claims{
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.ID,
		},
	})
}

func randomToken() (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
