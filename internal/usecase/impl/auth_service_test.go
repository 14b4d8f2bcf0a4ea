package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	domainerrors "shopkart/internal/domain/errors"
	"shopkart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	service usecase.AuthUsecase
	users   *fakeUserRepo
	codec   *fakeCodec
	storage *fakeStorage
}

func newAuthFixture(t *testing.T, revokeOnPasswordChange bool) *authFixture {
	t.Helper()

	factory := newFakeRepoFactory()
	codec := newFakeCodec()
	storage := &fakeStorage{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAuthService(
		&fakeTxManager{factory: factory},
		fakeHasher{},
		codec,
		storage,
		revokeOnPasswordChange,
		logger,
	)

	return &authFixture{
		service: service,
		users:   factory.userRepo,
		codec:   codec,
		storage: storage,
	}
}

func validRegisterInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		Password:       "s3cret-pass",
		AddressLine1:   "12 Analytical Way",
		Phone:          "+886912345678",
		Role:           "user",
		Avatar:         strings.NewReader("fake png bytes"),
		AvatarFilename: "ada.png",
	}
}

func TestRegister_Success(t *testing.T) {
	fixture := newAuthFixture(t, false)

	view, err := fixture.service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, view.ID)
	assert.Equal(t, "ada", view.Username)
	assert.Equal(t, "Ada Lovelace", view.FullName)
	assert.Equal(t, "user", view.Role)
	assert.Equal(t, "https://cdn.example.com/avatars/ada.png", view.Avatar)

	stored := fixture.users.stored(view.ID)
	require.NotNil(t, stored)
	assert.Equal(t, "hashed:s3cret-pass", stored.CredentialHash)
	assert.Empty(t, stored.RefreshToken, "no session should exist right after registration")
}

func TestRegister_InvalidRole(t *testing.T) {
	fixture := newAuthFixture(t, false)

	input := validRegisterInput()
	input.Role = "buyer"

	_, err := fixture.service.Register(context.Background(), input)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidRole))
}

func TestRegister_ShortPassword(t *testing.T) {
	fixture := newAuthFixture(t, false)

	input := validRegisterInput()
	input.Password = "five5"

	_, err := fixture.service.Register(context.Background(), input)
	assert.True(t, errors.Is(err, domainerrors.ErrWeakPassword))
}

func TestRegister_BlankFieldAfterTrim(t *testing.T) {
	fixture := newAuthFixture(t, false)

	input := validRegisterInput()
	input.FirstName = "   "

	_, err := fixture.service.Register(context.Background(), input)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	fixture := newAuthFixture(t, false)

	_, err := fixture.service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	again := validRegisterInput()
	again.Phone = "+886987654321"

	_, err = fixture.service.Register(context.Background(), again)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestRegister_MissingAvatar(t *testing.T) {
	fixture := newAuthFixture(t, false)

	input := validRegisterInput()
	input.Avatar = nil

	_, err := fixture.service.Register(context.Background(), input)
	assert.True(t, errors.Is(err, domainerrors.ErrAvatarUploadFailed))
}

func TestRegister_AvatarUploadFailure(t *testing.T) {
	fixture := newAuthFixture(t, false)
	fixture.storage.fail = true

	_, err := fixture.service.Register(context.Background(), validRegisterInput())
	assert.True(t, errors.Is(err, domainerrors.ErrAvatarUploadFailed))
}

func TestLogin_Success(t *testing.T) {
	fixture := newAuthFixture(t, false)

	view, err := fixture.service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	out, err := fixture.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "ada@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, view.ID, out.User.ID)

	stored := fixture.users.stored(view.ID)
	assert.Equal(t, out.RefreshToken, stored.RefreshToken,
		"returned refresh token must match the persisted one")
}

func TestLogin_OverwritesPreviousSession(t *testing.T) {
	fixture := newAuthFixture(t, false)

	view, err := fixture.service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	creds := &usecase.LoginInput{Email: "ada@example.com", Password: "s3cret-pass"}

	first, err := fixture.service.Login(context.Background(), creds)
	require.NoError(t, err)

	second, err := fixture.service.Login(context.Background(), creds)
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, second.RefreshToken, fixture.users.stored(view.ID).RefreshToken)

	// The first session's token no longer matches the stored slot.
	_, err = fixture.service.Refresh(context.Background(), first.RefreshToken)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorizedSession))
}

func TestLogin_UnknownEmail(t *testing.T) {
	fixture := newAuthFixture(t, false)

	_, err := fixture.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestLogin_WrongPassword(t *testing.T) {
	fixture := newAuthFixture(t, false)

	_, err := fixture.service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	_, err = fixture.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "ada@example.com",
		Password: "not-the-password",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestRefresh_RotatesToken(t *testing.T) {
	fixture := newAuthFixture(t, false)

	view, err := fixture.service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	login, err := fixture.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "ada@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	refreshed, err := fixture.service.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)

	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, refreshed.RefreshToken, fixture.users.stored(view.ID).RefreshToken)

	// Reusing the pre-rotation token must fail.
	_, err = fixture.service.Refresh(context.Background(), login.RefreshToken)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorizedSession))

	// The rotated token keeps working.
	_, err = fixture.service.Refresh(context.Background(), refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_EmptyToken(t *testing.T) {
	fixture := newAuthFixture(t, false)

	_, err := fixture.service.Refresh(context.Background(), "")
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorizedSession))
}

func TestRefresh_MalformedToken(t *testing.T) {
	fixture := newAuthFixture(t, false)

	_, err := fixture.service.Refresh(context.Background(), "not-a-token")
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorizedSession))
}

func TestLogout_InvalidatesRefresh(t *testing.T) {
	fixture := newAuthFixture(t, false)

	view, err := fixture.service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	login, err := fixture.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "ada@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	require.NoError(t, fixture.service.Logout(context.Background(), view.ID))
	assert.Empty(t, fixture.users.stored(view.ID).RefreshToken)

	_, err = fixture.service.Refresh(context.Background(), login.RefreshToken)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorizedSession))
}

func TestLogout_Idempotent(t *testing.T) {
	fixture := newAuthFixture(t, false)

	view, err := fixture.service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	require.NoError(t, fixture.service.Logout(context.Background(), view.ID))
	require.NoError(t, fixture.service.Logout(context.Background(), view.ID))

	// Unknown accounts are also a no-op.
	assert.NoError(t, fixture.service.Logout(context.Background(), uuid.New()))
}

func TestChangePassword_Flow(t *testing.T) {
	fixture := newAuthFixture(t, false)

	view, err := fixture.service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	err = fixture.service.ChangePassword(context.Background(), &usecase.ChangePasswordInput{
		UserID:      view.ID,
		OldPassword: "wrong-old",
		NewPassword: "brand-new-pass",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	err = fixture.service.ChangePassword(context.Background(), &usecase.ChangePasswordInput{
		UserID:      view.ID,
		OldPassword: "s3cret-pass",
		NewPassword: "brand-new-pass",
	})
	require.NoError(t, err)

	_, err = fixture.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "ada@example.com",
		Password: "s3cret-pass",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials), "old password must stop working")

	_, err = fixture.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "ada@example.com",
		Password: "brand-new-pass",
	})
	assert.NoError(t, err)
}

func TestChangePassword_KeepsSessionByDefault(t *testing.T) {
	fixture := newAuthFixture(t, false)

	view, err := fixture.service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	login, err := fixture.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "ada@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	err = fixture.service.ChangePassword(context.Background(), &usecase.ChangePasswordInput{
		UserID:      view.ID,
		OldPassword: "s3cret-pass",
		NewPassword: "brand-new-pass",
	})
	require.NoError(t, err)

	_, err = fixture.service.Refresh(context.Background(), login.RefreshToken)
	assert.NoError(t, err, "the live session survives a password change unless revocation is enabled")
}

func TestChangePassword_RevokesSessionWhenConfigured(t *testing.T) {
	fixture := newAuthFixture(t, true)

	view, err := fixture.service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	login, err := fixture.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "ada@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	err = fixture.service.ChangePassword(context.Background(), &usecase.ChangePasswordInput{
		UserID:      view.ID,
		OldPassword: "s3cret-pass",
		NewPassword: "brand-new-pass",
	})
	require.NoError(t, err)

	_, err = fixture.service.Refresh(context.Background(), login.RefreshToken)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorizedSession))
}

func TestChangePassword_UnknownUser(t *testing.T) {
	fixture := newAuthFixture(t, false)

	err := fixture.service.ChangePassword(context.Background(), &usecase.ChangePasswordInput{
		UserID:      uuid.New(),
		OldPassword: "whatever",
		NewPassword: "long-enough",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestCurrentUser(t *testing.T) {
	fixture := newAuthFixture(t, false)

	view, err := fixture.service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	got, err := fixture.service.CurrentUser(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.Email, got.Email)

	_, err = fixture.service.CurrentUser(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
