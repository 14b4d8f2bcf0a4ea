package service

import (
	"errors"
	"time"

	"shopkart/internal/domain/entity"

	"github.com/google/uuid"
)

// Verification failures are collapsed into two sentinel values so callers can
// only distinguish "too late" from "not yours"; nothing leaks about which part
// of a token was wrong.
var (
	// ErrTokenExpired is returned when the clock has passed the token's embedded expiry.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid is returned for signature mismatch, malformed tokens or the wrong secret.
	ErrTokenInvalid = errors.New("token is invalid")
)

// AccessClaims are the identity claims embedded in a short-lived access token.
type AccessClaims struct {
	UserID   uuid.UUID
	Role     entity.Role
	Username string
	Email    string
	FullName string
}

// RefreshClaims are the minimal claims embedded in a long-lived refresh token.
type RefreshClaims struct {
	UserID uuid.UUID
	Role   entity.Role
}

// TokenCodec signs and verifies the two token kinds. Access and refresh
// tokens use independent secrets and TTLs so that compromise of one kind
// cannot be used to mint the other.
type TokenCodec interface {
	// IssueAccessToken produces a signed access token for the user.
	IssueAccessToken(user *entity.User) (string, error)

	// IssueRefreshToken produces a signed refresh token for the user.
	IssueRefreshToken(user *entity.User) (string, error)

	// VerifyAccessToken checks an access token and returns its claims,
	// failing with ErrTokenExpired or ErrTokenInvalid.
	VerifyAccessToken(token string) (*AccessClaims, error)

	// VerifyRefreshToken checks a refresh token and returns its claims,
	// failing with ErrTokenExpired or ErrTokenInvalid.
	VerifyRefreshToken(token string) (*RefreshClaims, error)

	// AccessTokenTTL returns the configured access token lifetime.
	AccessTokenTTL() time.Duration

	// RefreshTokenTTL returns the configured refresh token lifetime.
	RefreshTokenTTL() time.Duration
}
