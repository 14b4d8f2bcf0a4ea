// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account entity. Besides the profile fields carried over
// from registration it owns the two security-relevant fields of the system:
// the bcrypt credential hash and the single refresh-token session slot.
type User struct {
	ID        uuid.UUID // The unique identifier for the account.
	FirstName string
	LastName  string
	Username  string // Derived from the email local part at registration; unique.
	FullName  string // Derived display name: "FirstName LastName".
	Avatar    string // Public URL of the uploaded avatar image.
	Email     string // Login identifier; unique.
	// CredentialHash stores the bcrypt hash of the password. It is never the
	// plaintext password and is excluded from every sanitized view.
	CredentialHash  string
	AddressLine1    string
	AddressLine2    string
	Phone           string
	Role            Role
	IsEmailVerified bool
	IsPhoneVerified bool
	// RefreshToken is the single session slot: at most one refresh token is
	// outstanding per account. A refresh succeeds only when the presented
	// token exactly equals this value. Empty means no active session.
	RefreshToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasSession reports whether the account currently holds an active session slot.
func (u *User) HasSession() bool {
	return u.RefreshToken != ""
}
