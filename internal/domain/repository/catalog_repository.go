// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"shopkart/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrBrandNotFound is returned when a brand is not found.
	ErrBrandNotFound = errors.New("brand not found")
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
)

// BrandRepository defines the standard operations for brand persistence.
type BrandRepository interface {
	// Create persists a new brand.
	Create(ctx context.Context, brand *entity.Brand) error

	// FindByID retrieves a single brand by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Brand, error)

	// List retrieves all brands ordered by name.
	List(ctx context.Context) ([]*entity.Brand, error)
}

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// Create persists a new product with its image references.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List retrieves products, newest first.
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)

	// UpdateRatingStats writes the denormalized rating aggregates.
	UpdateRatingStats(ctx context.Context, id uuid.UUID, rating float64, numReviews int) error
}

// RatingRepository defines the standard operations for rating persistence.
type RatingRepository interface {
	// Create persists a new rating.
	Create(ctx context.Context, rating *entity.Rating) error

	// ListByProduct retrieves all ratings for a product, newest first.
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Rating, error)
}
