// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "shopkart/internal/delivery/context"
	"shopkart/internal/domain/entity"
	domainerrors "shopkart/internal/domain/errors"
	"shopkart/internal/domain/repository"
	"shopkart/internal/domain/service"
	"shopkart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager              repository.TransactionManager
	hasher                 service.PasswordHasher
	codec                  service.TokenCodec
	avatarStorage          service.ImageStorage
	revokeOnPasswordChange bool
	logger                 *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	codec service.TokenCodec,
	avatarStorage service.ImageStorage,
	revokeOnPasswordChange bool,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager:              txManager,
		hasher:                 hasher,
		codec:                  codec,
		avatarStorage:          avatarStorage,
		revokeOnPasswordChange: revokeOnPasswordChange,
		logger:                 logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

const minPasswordLength = 6

// Register validates the submission, uploads the avatar and creates the
// account with a hashed credential. The refresh-token slot starts empty.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.UserView, error) {
	srv.log(ctx).Info("Registering user", slog.String("email", input.Email))

	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)
	input.AddressLine1 = strings.TrimSpace(input.AddressLine1)
	input.AddressLine2 = strings.TrimSpace(input.AddressLine2)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Role = strings.TrimSpace(input.Role)

	if input.FirstName == "" || input.LastName == "" || input.Email == "" ||
		input.Password == "" || input.AddressLine1 == "" || input.Phone == "" {
		return nil, errors.Wrap(domainerrors.ErrInvalidInput, "missing required registration fields")
	}

	role := entity.Role(input.Role)
	if !role.IsValid() {
		return nil, errors.Wrapf(domainerrors.ErrInvalidRole, "role %q is not allowed", input.Role)
	}

	if len(input.Password) < minPasswordLength {
		return nil, errors.Wrap(domainerrors.ErrWeakPassword, "password is too short")
	}

	// The avatar upload must succeed before the record is created.
	if input.Avatar == nil {
		return nil, errors.Wrap(domainerrors.ErrAvatarUploadFailed, "no avatar file supplied")
	}

	avatarURL, err := srv.avatarStorage.Upload(ctx, input.AvatarFilename, input.Avatar)
	if err != nil {
		srv.log(ctx).Error("Avatar upload failed", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrAvatarUploadFailed, err.Error())
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	user := &entity.User{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Username:       usernameFromEmail(input.Email),
		FullName:       input.FirstName + " " + input.LastName,
		Avatar:         avatarURL,
		Email:          input.Email,
		CredentialHash: hash,
		AddressLine1:   input.AddressLine1,
		AddressLine2:   input.AddressLine2,
		Phone:          input.Phone,
		Role:           role,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		existing, err := userRepo.FindByEmailOrPhone(ctx, input.Email, input.Phone)
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check for existing user")
		}
		if existing != nil {
			return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email or phone already registered")
		}

		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to register user", slog.Any("error", err), slog.String("email", input.Email))

		return nil, err
	}
	srv.log(ctx).Info("Successfully registered user", slog.Any("user_id", user.ID))

	return toUserView(user), nil
}

// Login verifies the credentials and issues a fresh token pair. The new
// refresh token overwrites whatever was stored before, so any earlier
// session token stops working.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Info("Logging in user", slog.String("email", input.Email))

	var out *usecase.LoginOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "no account for email")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if !srv.hasher.Check(input.Password, user.CredentialHash) {
			return errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
		}

		refreshToken, err := srv.codec.IssueRefreshToken(user)
		if err != nil {
			return errors.Wrap(domainerrors.ErrTokenGeneration, err.Error())
		}

		if err := userRepo.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
			return errors.Wrap(err, "failed to store refresh token")
		}

		accessToken, err := srv.codec.IssueAccessToken(user)
		if err != nil {
			return errors.Wrap(domainerrors.ErrTokenGeneration, err.Error())
		}

		out = &usecase.LoginOutput{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			User:         toUserView(user),
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to log in user", slog.Any("error", err), slog.String("email", input.Email))

		return nil, err
	}
	srv.log(ctx).Info("Successfully logged in user", slog.Any("user_id", out.User.ID))

	return out, nil
}

// Refresh exchanges a presented refresh token for a new pair. Every failure
// mode collapses to the same unauthorized error so a caller cannot probe
// which check rejected the token.
func (srv *authService) Refresh(ctx context.Context, presentedToken string) (*usecase.RefreshOutput, error) {
	srv.log(ctx).Debug("Refreshing session")

	if presentedToken == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthorizedSession, "no refresh token presented")
	}

	claims, err := srv.codec.VerifyRefreshToken(presentedToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthorizedSession, "refresh token rejected")
	}

	var out *usecase.RefreshOutput

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUnauthorizedSession, "no account for token")
			}

			return errors.Wrap(err, "failed to find user")
		}

		// The presented token must exactly equal the stored one. A token
		// from before the last rotation fails here.
		if !user.HasSession() || user.RefreshToken != presentedToken {
			return errors.Wrap(domainerrors.ErrUnauthorizedSession, "refresh token is stale")
		}

		newRefreshToken, err := srv.codec.IssueRefreshToken(user)
		if err != nil {
			return errors.Wrap(domainerrors.ErrTokenGeneration, err.Error())
		}

		if err := userRepo.UpdateRefreshToken(ctx, user.ID, newRefreshToken); err != nil {
			return errors.Wrap(err, "failed to rotate refresh token")
		}

		accessToken, err := srv.codec.IssueAccessToken(user)
		if err != nil {
			return errors.Wrap(domainerrors.ErrTokenGeneration, err.Error())
		}

		out = &usecase.RefreshOutput{
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to refresh session", slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Debug("Successfully refreshed session", slog.Any("user_id", claims.UserID))

	return out, nil
}

// Logout clears the refresh-token slot. Repeated calls are harmless.
func (srv *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	srv.log(ctx).Info("Logging out user", slog.Any("user_id", userID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().ClearRefreshToken(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to clear refresh token")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to log out user", slog.Any("error", err), slog.Any("user_id", userID))

		return err
	}

	return nil
}

// ChangePassword verifies the old password and persists a hash of the new
// one. The live refresh token is only revoked when the service was
// configured to do so.
func (srv *authService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	srv.log(ctx).Info("Changing password", slog.Any("user_id", input.UserID))

	if len(input.NewPassword) < minPasswordLength {
		return errors.Wrap(domainerrors.ErrWeakPassword, "new password is too short")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if !srv.hasher.Check(input.OldPassword, user.CredentialHash) {
			return errors.Wrap(domainerrors.ErrInvalidCredentials, "old password mismatch")
		}

		hash, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}

		if err := userRepo.UpdateCredentialHash(ctx, user.ID, hash); err != nil {
			return errors.Wrap(err, "failed to update credential hash")
		}

		if srv.revokeOnPasswordChange {
			if err := userRepo.ClearRefreshToken(ctx, user.ID); err != nil {
				return errors.Wrap(err, "failed to revoke session")
			}
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to change password", slog.Any("error", err), slog.Any("user_id", input.UserID))

		return err
	}
	srv.log(ctx).Info("Successfully changed password", slog.Any("user_id", input.UserID))

	return nil
}

// CurrentUser returns the sanitized record for the given account.
func (srv *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*usecase.UserView, error) {
	srv.log(ctx).Debug("Getting current user", slog.Any("user_id", userID))

	var view *usecase.UserView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		view = toUserView(user)

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to get current user", slog.Any("error", err), slog.Any("user_id", userID))

		return nil, err
	}

	return view, nil
}

// usernameFromEmail derives the account's username from the email local part.
func usernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}

	return email
}

// toUserView strips the credential hash and refresh token from the entity.
func toUserView(user *entity.User) *usecase.UserView {
	return &usecase.UserView{
		ID:              user.ID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Username:        user.Username,
		FullName:        user.FullName,
		Avatar:          user.Avatar,
		Email:           user.Email,
		AddressLine1:    user.AddressLine1,
		AddressLine2:    user.AddressLine2,
		Phone:           user.Phone,
		Role:            user.Role.String(),
		IsEmailVerified: user.IsEmailVerified,
		IsPhoneVerified: user.IsPhoneVerified,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}
