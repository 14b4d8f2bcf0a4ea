package usecase

import (
	"context"

	"github.com/google/uuid"

	"shopkart/internal/domain/entity"
)

// CreateBrandInput carries a new brand submission.
type CreateBrandInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Website     string `json:"website"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Status      string `json:"status"`
}

// CreateProductInput carries a new product submission from a seller or admin.
type CreateProductInput struct {
	OwnerID      uuid.UUID `json:"-"`
	OwnerRole    string    `json:"-"`
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description"`
	BrandID      uuid.UUID `json:"brandId" validate:"required"`
	ImageURLs    []string  `json:"imageUrls"`
	Price        float64   `json:"price" validate:"gte=0"`
	Discount     float64   `json:"discount" validate:"gte=0"`
	CountInStock int       `json:"countInStock" validate:"gte=0"`
	IsFeatured   bool      `json:"isFeatured"`
}

// RateProductInput carries a rating submission for a product.
type RateProductInput struct {
	UserID    uuid.UUID `json:"-"`
	ProductID uuid.UUID `json:"-"`
	Score     int       `json:"score" validate:"gte=0,lte=5"`
	Comment   string    `json:"comment" validate:"required"`
}

// CatalogUsecase covers the brand, product and rating operations plus the
// product share QR code.
type CatalogUsecase interface {
	CreateBrand(ctx context.Context, input *CreateBrandInput) (*entity.Brand, error)
	ListBrands(ctx context.Context) ([]*entity.Brand, error)
	GetBrand(ctx context.Context, id uuid.UUID) (*entity.Brand, error)

	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)
	ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// ProductQRCode renders a PNG that links to the product's public page.
	ProductQRCode(ctx context.Context, id uuid.UUID) ([]byte, error)

	// RateProduct stores the rating and refreshes the product's aggregate
	// rating fields within one transaction.
	RateProduct(ctx context.Context, input *RateProductInput) (*entity.Rating, error)
	ListProductRatings(ctx context.Context, productID uuid.UUID) ([]*entity.Rating, error)
}
