package users

import "time"

// Role gates record visibility: admins see their own records plus every
// subadmin's; subadmins see only their own.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSubadmin Role = "subadmin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSubadmin
}

// User is an account that can sign in and own records and entries.
type User struct {
	ID                string
	Email             string
	Name              string
	Role              Role
	PasswordHash      string
	ResetTokenHash    string
	ResetTokenExpires *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
