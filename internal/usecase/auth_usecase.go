// Package usecase defines the application's business interfaces and their
// input/output types. Handlers depend on these interfaces, never on the
// implementations in impl.
package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// RegisterInput carries everything the registration operation needs,
// including the avatar file content read from the multipart request.
type RegisterInput struct {
	FirstName    string `json:"firstName" form:"firstName"`
	LastName     string `json:"lastName" form:"lastName"`
	Email        string `json:"email" form:"email"`
	Password     string `json:"password" form:"password"`
	AddressLine1 string `json:"addressLine1" form:"addressLine1"`
	AddressLine2 string `json:"addressLine2" form:"addressLine2"`
	Phone        string `json:"phone" form:"phone"`
	Role         string `json:"role" form:"role"`

	// Avatar is the uploaded file content; nil when no file was attached.
	Avatar         io.Reader `json:"-" form:"-"`
	AvatarFilename string    `json:"-" form:"-"`
}

// LoginInput carries the login credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordInput carries a password change for an authenticated user.
type ChangePasswordInput struct {
	UserID      uuid.UUID `json:"-"`
	OldPassword string    `json:"oldPassword" validate:"required"`
	NewPassword string    `json:"newPassword" validate:"required,min=6"`
}

// UserView is the sanitized user record returned by every operation:
// the credential hash and the refresh token are never part of it.
type UserView struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Username        string    `json:"username"`
	FullName        string    `json:"fullName"`
	Avatar          string    `json:"avatar"`
	Email           string    `json:"email"`
	AddressLine1    string    `json:"addressLine1"`
	AddressLine2    string    `json:"addressLine2"`
	Phone           string    `json:"phone"`
	Role            string    `json:"role"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	IsPhoneVerified bool      `json:"isPhoneVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// LoginOutput carries the freshly issued token pair plus the sanitized user.
type LoginOutput struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	User         *UserView `json:"user"`
}

// RefreshOutput carries the rotated token pair.
type RefreshOutput struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthUsecase drives the account state machine: register, login, refresh,
// logout and change-password, plus the sanitized current-user read.
type AuthUsecase interface {
	// Register validates the input, requires a successful avatar upload and
	// creates the user with a hashed credential.
	Register(ctx context.Context, input *RegisterInput) (*UserView, error)

	// Login verifies credentials and issues a new token pair, overwriting
	// the stored refresh token (the rotation step).
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Refresh exchanges a presented refresh token for a new pair. The
	// presented token must exactly equal the stored one.
	Refresh(ctx context.Context, presentedToken string) (*RefreshOutput, error)

	// Logout unconditionally clears the user's refresh-token slot. Idempotent.
	Logout(ctx context.Context, userID uuid.UUID) error

	// ChangePassword verifies the old password and persists a new hash.
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error

	// CurrentUser returns the sanitized record for the given account.
	CurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error)
}
