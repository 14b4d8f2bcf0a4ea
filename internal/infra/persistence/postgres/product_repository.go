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

// productRepository implements the domain.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// Create persists a new product together with its image rows.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrBrandNotFound.WrapMessage("brand reference is invalid")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// FindByID retrieves a single product by its unique ID, preloading its images.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).
		Preload("Images").
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// List returns a page of products, newest first.
func (repo *productRepository) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := repo.db.WithContext(ctx).
		Preload("Images").
		Order("created_at DESC").
		Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var productMs []model.ProductModel
	if err := query.Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for i := range productMs {
		products = append(products, toProductDomain(&productMs[i]))
	}

	return products, nil
}

// UpdateRatingStats writes the denormalized rating aggregates.
func (repo *productRepository) UpdateRatingStats(ctx context.Context, id uuid.UUID, rating float64, numReviews int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"rating":      rating,
			"num_reviews": numReviews,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update rating stats")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	images := make([]entity.ProductImage, 0, len(data.Images))
	for _, img := range data.Images {
		images = append(images, entity.ProductImage{
			URL:      img.URL,
			PublicID: img.PublicID,
		})
	}

	return &entity.Product{
		ID:           data.ID,
		Title:        data.Title,
		Description:  data.Description,
		BrandID:      data.BrandID,
		Images:       images,
		Price:        data.Price,
		Discount:     data.Discount,
		CountInStock: data.CountInStock,
		Rating:       data.Rating,
		NumReviews:   data.NumReviews,
		IsFeatured:   data.IsFeatured,
		OwnerID:      data.OwnerID,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel for persistence.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	images := make([]model.ProductImageModel, 0, len(data.Images))
	for _, img := range data.Images {
		images = append(images, model.ProductImageModel{
			URL:      img.URL,
			PublicID: img.PublicID,
		})
	}

	return &model.ProductModel{
		ID:           data.ID,
		Title:        data.Title,
		Description:  data.Description,
		BrandID:      data.BrandID,
		Images:       images,
		Price:        data.Price,
		Discount:     data.Discount,
		CountInStock: data.CountInStock,
		Rating:       data.Rating,
		NumReviews:   data.NumReviews,
		IsFeatured:   data.IsFeatured,
		OwnerID:      data.OwnerID,
	}
}
