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

// brandRepository implements the domain.BrandRepository interface using GORM.
type brandRepository struct {
	db *gorm.DB
}

// NewBrandRepository is the constructor for brandRepository.
func NewBrandRepository(db *gorm.DB) repository.BrandRepository {
	return &brandRepository{db: db}
}

// Create persists a new brand.
func (repo *brandRepository) Create(ctx context.Context, brand *entity.Brand) error {
	brandM := fromBrandDomain(brand)

	if err := repo.db.WithContext(ctx).Create(brandM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrBrandAlreadyExists.WrapMessage("brand name already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create brand")
	}

	brand.ID = brandM.ID
	brand.CreatedAt = brandM.CreatedAt
	brand.UpdatedAt = brandM.UpdatedAt

	return nil
}

// FindByID retrieves a single brand by its unique ID.
func (repo *brandRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Brand, error) {
	var brandM model.BrandModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&brandM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBrandNotFound
		}

		return nil, errors.Wrap(err, "failed to find brand by id")
	}

	return toBrandDomain(&brandM), nil
}

// List returns every brand ordered by name.
func (repo *brandRepository) List(ctx context.Context) ([]*entity.Brand, error) {
	var brandMs []model.BrandModel
	if err := repo.db.WithContext(ctx).Order("name").Find(&brandMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list brands")
	}

	brands := make([]*entity.Brand, 0, len(brandMs))
	for i := range brandMs {
		brands = append(brands, toBrandDomain(&brandMs[i]))
	}

	return brands, nil
}

// toBrandDomain converts a GORM BrandModel to a domain Brand entity.
func toBrandDomain(data *model.BrandModel) *entity.Brand {
	if data == nil {
		return nil
	}

	return &entity.Brand{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Image:       data.Image,
		Website:     data.Website,
		Phone:       data.Phone,
		Email:       data.Email,
		Address:     data.Address,
		Status:      entity.BrandStatus(data.Status),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromBrandDomain converts a domain Brand entity to a GORM BrandModel for persistence.
func fromBrandDomain(data *entity.Brand) *model.BrandModel {
	if data == nil {
		return nil
	}

	return &model.BrandModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Image:       data.Image,
		Website:     data.Website,
		Phone:       data.Phone,
		Email:       data.Email,
		Address:     data.Address,
		Status:      string(data.Status),
	}
}
