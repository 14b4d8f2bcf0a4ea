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

// ratingRepository implements the domain.RatingRepository interface using GORM.
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository is the constructor for ratingRepository.
func NewRatingRepository(db *gorm.DB) repository.RatingRepository {
	return &ratingRepository{db: db}
}

// Create persists a new rating.
func (repo *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	ratingM := fromRatingDomain(rating)

	if err := repo.db.WithContext(ctx).Create(ratingM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductNotFound.WrapMessage("product reference is invalid")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create rating")
	}

	rating.ID = ratingM.ID
	rating.CreatedAt = ratingM.CreatedAt

	return nil
}

// ListByProduct returns every rating for a product, newest first.
func (repo *ratingRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Rating, error) {
	var ratingMs []model.RatingModel
	if err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&ratingMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list ratings")
	}

	ratings := make([]*entity.Rating, 0, len(ratingMs))
	for i := range ratingMs {
		ratings = append(ratings, toRatingDomain(&ratingMs[i]))
	}

	return ratings, nil
}

// toRatingDomain converts a GORM RatingModel to a domain Rating entity.
func toRatingDomain(data *model.RatingModel) *entity.Rating {
	if data == nil {
		return nil
	}

	return &entity.Rating{
		ID:        data.ID,
		UserID:    data.UserID,
		ProductID: data.ProductID,
		Score:     data.Score,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
	}
}

// fromRatingDomain converts a domain Rating entity to a GORM RatingModel for persistence.
func fromRatingDomain(data *entity.Rating) *model.RatingModel {
	if data == nil {
		return nil
	}

	return &model.RatingModel{
		ID:        data.ID,
		UserID:    data.UserID,
		ProductID: data.ProductID,
		Score:     data.Score,
		Comment:   data.Comment,
	}
}
