package auth

import (
	"testing"
	"time"

	"shopkart/config"
	"shopkart/internal/domain/entity"
	"shopkart/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCodecConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func testUser() *entity.User {
	return &entity.User{
		ID:       uuid.New(),
		Username: "ada",
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Role:     entity.RoleSeller,
	}
}

func TestJWTCodec_IssueAndVerify(t *testing.T) {
	codec, err := NewJWTCodec(testCodecConfig())
	require.NoError(t, err)

	user := testUser()

	accessToken, err := codec.IssueAccessToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	refreshToken, err := codec.IssueRefreshToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshToken)

	accessClaims, err := codec.VerifyAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, accessClaims.UserID)
	assert.Equal(t, entity.RoleSeller, accessClaims.Role)
	assert.Equal(t, "ada", accessClaims.Username)
	assert.Equal(t, "ada@example.com", accessClaims.Email)
	assert.Equal(t, "Ada Lovelace", accessClaims.FullName)

	refreshClaims, err := codec.VerifyRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refreshClaims.UserID)
	assert.Equal(t, entity.RoleSeller, refreshClaims.Role)
}

func TestJWTCodec_CrossSecretRejection(t *testing.T) {
	codec, err := NewJWTCodec(testCodecConfig())
	require.NoError(t, err)

	user := testUser()

	accessToken, err := codec.IssueAccessToken(user)
	require.NoError(t, err)

	refreshToken, err := codec.IssueRefreshToken(user)
	require.NoError(t, err)

	// An access token must never verify as a refresh token, and vice versa.
	_, err = codec.VerifyRefreshToken(accessToken)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)

	_, err = codec.VerifyAccessToken(refreshToken)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestJWTCodec_MalformedToken(t *testing.T) {
	codec, err := NewJWTCodec(testCodecConfig())
	require.NoError(t, err)

	claims, err := codec.VerifyAccessToken("clearly-not-a-jwt-token-format")
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
	assert.Nil(t, claims)
}

func TestJWTCodec_ExpiredToken(t *testing.T) {
	cfg := testCodecConfig()
	cfg.Auth.AccessTokenTTL = -time.Minute

	codec, err := NewJWTCodec(cfg)
	require.NoError(t, err)

	accessToken, err := codec.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = codec.VerifyAccessToken(accessToken)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestJWTCodec_EmptySecrets(t *testing.T) {
	cfg := testCodecConfig()
	cfg.SecretKey.Access = ""
	cfg.SecretKey.Refresh = ""

	codec, err := NewJWTCodec(cfg)
	assert.Error(t, err)
	assert.Nil(t, codec)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}

func TestJWTCodec_TTLs(t *testing.T) {
	codec, err := NewJWTCodec(testCodecConfig())
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, codec.AccessTokenTTL())
	assert.Equal(t, 7*24*time.Hour, codec.RefreshTokenTTL())
}
