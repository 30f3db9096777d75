package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, email, name, role, password_hash, reset_token_hash, reset_token_expires, created_at, updated_at`

// Create inserts a new user.
func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, name, role, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		strings.ToLower(user.Email),
		nullableString(user.Name),
		string(user.Role),
		nullableString(user.PasswordHash),
	)
	if err != nil && strings.Contains(err.Error(), "users_email_key") {
		return ErrEmailTaken
	}
	return err
}

// Upsert inserts or updates a user by ID, preserving password and role when
// the incoming value is empty.
func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, name, role, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  name = COALESCE(NULLIF(EXCLUDED.name, ''), users.name),
  role = COALESCE(NULLIF(EXCLUDED.role, ''), users.role),
  password_hash = COALESCE(NULLIF(EXCLUDED.password_hash, ''), users.password_hash),
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		strings.ToLower(user.Email),
		nullableString(user.Name),
		string(user.Role),
		nullableString(user.PasswordHash),
	)
	return err
}

// GetByID returns a user by ID.
func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

// GetByEmail returns a user by lower-cased email.
func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, strings.ToLower(email)))
}

// UpdatePassword replaces the password hash and clears any reset token.
func (r *PGRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	const query = `
UPDATE users
SET password_hash = $1, reset_token_hash = NULL, reset_token_expires = NULL, updated_at = now()
WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, passwordHash, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetResetToken stores a hashed reset token with its expiry.
func (r *PGRepo) SetResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error {
	const query = `
UPDATE users SET reset_token_hash = $1, reset_token_expires = $2, updated_at = now() WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, tokenHash, expires, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetByResetToken finds the user holding an unexpired reset token hash.
func (r *PGRepo) GetByResetToken(ctx context.Context, tokenHash string) (User, error) {
	const query = `SELECT ` + userColumns + ` FROM users
WHERE reset_token_hash = $1 AND reset_token_expires > now()`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, tokenHash))
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	var u User
	var name, passwordHash, resetHash sql.NullString
	var resetExpires sql.NullTime
	var role string
	err := row.Scan(
		&u.ID,
		&u.Email,
		&name,
		&role,
		&passwordHash,
		&resetHash,
		&resetExpires,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	u.Role = Role(role)
	if name.Valid {
		u.Name = name.String
	}
	if passwordHash.Valid {
		u.PasswordHash = passwordHash.String
	}
	if resetHash.Valid {
		u.ResetTokenHash = resetHash.String
	}
	if resetExpires.Valid {
		t := resetExpires.Time
		u.ResetTokenExpires = &t
	}
	return u, nil
}

func nullableString(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
