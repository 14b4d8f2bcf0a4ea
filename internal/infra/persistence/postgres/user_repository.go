// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"shopkart/internal/domain/entity"
	domainerrors "shopkart/internal/domain/errors"
	"shopkart/internal/domain/repository"
	"shopkart/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// FindByEmailOrPhone retrieves a user matching either contact field. Used by
// registration to detect duplicate accounts.
func (repo *userRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).
		Where("email = ? OR phone = ?", email, phone).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email or phone")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email or phone already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// UpdateRefreshToken overwrites the user's refresh-token slot.
// The write is a plain UPDATE: concurrent writers race and the last one
// wins, which matches the single-session design.
func (repo *userRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("refresh_token", token)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update refresh token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// ClearRefreshToken empties the user's refresh-token slot. A missing user
// is not an error so the operation stays idempotent.
func (repo *userRepository) ClearRefreshToken(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("refresh_token", "").Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear refresh token")
	}

	return nil
}

// UpdateCredentialHash replaces the user's stored credential hash.
func (repo *userRepository) UpdateCredentialHash(ctx context.Context, id uuid.UUID, hash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("credential_hash", hash)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update credential hash")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:              data.ID,
		FirstName:       data.FirstName,
		LastName:        data.LastName,
		Username:        data.Username,
		FullName:        data.FullName,
		Avatar:          data.Avatar,
		Email:           data.Email,
		CredentialHash:  data.CredentialHash,
		AddressLine1:    data.AddressLine1,
		AddressLine2:    data.AddressLine2,
		Phone:           data.Phone,
		Role:            entity.Role(data.Role),
		IsEmailVerified: data.IsEmailVerified,
		IsPhoneVerified: data.IsPhoneVerified,
		RefreshToken:    data.RefreshToken,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:              data.ID,
		FirstName:       data.FirstName,
		LastName:        data.LastName,
		Username:        data.Username,
		FullName:        data.FullName,
		Avatar:          data.Avatar,
		Email:           data.Email,
		CredentialHash:  data.CredentialHash,
		AddressLine1:    data.AddressLine1,
		AddressLine2:    data.AddressLine2,
		Phone:           data.Phone,
		Role:            data.Role.String(),
		IsEmailVerified: data.IsEmailVerified,
		IsPhoneVerified: data.IsPhoneVerified,
		RefreshToken:    data.RefreshToken,
	}
}
