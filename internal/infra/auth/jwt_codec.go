// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"shopkart/config"
	"shopkart/internal/domain/entity"
	"shopkart/internal/domain/service"
)

// jwtCodec is a concrete implementation of the TokenCodec interface using the JWT standard.
// Access and refresh tokens are signed with independent secrets so one kind
// can never be presented in place of the other.
type jwtCodec struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// accessTokenClaims is the access-token payload. The subject carries the user id.
type accessTokenClaims struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// refreshTokenClaims is the slimmer refresh-token payload.
type refreshTokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTCodec is the constructor for jwtCodec.
// It takes configuration values to create a new token codec instance.
func NewJWTCodec(cfg *config.Config) (service.TokenCodec, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	return &jwtCodec{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     cfg.Auth.AccessTokenTTL,
		refreshTTL:    cfg.Auth.RefreshTokenTTL,
	}, nil
}

// IssueAccessToken signs a short-lived access token carrying the identity claims.
func (c *jwtCodec) IssueAccessToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := accessTokenClaims{
		Role:     user.Role.String(),
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.accessSecret))
}

// IssueRefreshToken signs a longer-lived refresh token with its own secret.
func (c *jwtCodec) IssueRefreshToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := refreshTokenClaims{
		Role: user.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.refreshTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.refreshSecret))
}

// VerifyAccessToken parses and validates an access token.
func (c *jwtCodec) VerifyAccessToken(tokenString string) (*service.AccessClaims, error) {
	var claims accessTokenClaims
	if err := c.parse(tokenString, &claims, c.accessSecret); err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, service.ErrTokenInvalid
	}

	return &service.AccessClaims{
		UserID:   userID,
		Role:     entity.Role(claims.Role),
		Username: claims.Username,
		Email:    claims.Email,
		FullName: claims.FullName,
	}, nil
}

// VerifyRefreshToken parses and validates a refresh token.
func (c *jwtCodec) VerifyRefreshToken(tokenString string) (*service.RefreshClaims, error) {
	var claims refreshTokenClaims
	if err := c.parse(tokenString, &claims, c.refreshSecret); err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, service.ErrTokenInvalid
	}

	return &service.RefreshClaims{
		UserID: userID,
		Role:   entity.Role(claims.Role),
	}, nil
}

// AccessTokenTTL returns the configured lifetime for access tokens.
func (c *jwtCodec) AccessTokenTTL() time.Duration {
	return c.accessTTL
}

// RefreshTokenTTL returns the configured lifetime for refresh tokens.
func (c *jwtCodec) RefreshTokenTTL() time.Duration {
	return c.refreshTTL
}

// parse validates the signature and timestamps, collapsing library errors
// into the two sentinel kinds the domain distinguishes.
func (c *jwtCodec) parse(tokenString string, claims jwt.Claims, secret string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return service.ErrTokenExpired
		}

		return service.ErrTokenInvalid
	}
	if !token.Valid {
		return service.ErrTokenInvalid
	}

	return nil
}
