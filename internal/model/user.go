package model

import "time"

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleStudent UserRole = "student" // Default - browses and joins clubs
	UserRoleOwner   UserRole = "owner"   // Manages the clubs they own
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return r == UserRoleStudent || r == UserRoleOwner
}

// User represents a user account. Role never changes after creation.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"` // Never expose password hash
	Name         string    `db:"name" json:"name"`
	Role         UserRole  `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// IsOwner returns true if the user has the owner role
func (u *User) IsOwner() bool {
	return u.Role == UserRoleOwner
}

// Identity returns the caller identity encoded into this user's tokens.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// Identity is the authenticated caller decoded from a bearer token.
// It is passed explicitly from handlers to services.
type Identity struct {
	ID    int64    `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Role  UserRole `json:"role"`
}

// IsOwner returns true if the caller holds the owner role
func (i Identity) IsOwner() bool {
	return i.Role == UserRoleOwner
}

// Validation constants
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxNameLength     = 100
	MaxEmailLength    = 254
)
