// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// BrandStatus marks whether a brand is visible in the catalog.
type BrandStatus string

const (
	// BrandStatusActive marks a brand as visible.
	BrandStatusActive BrandStatus = "active"
	// BrandStatusInactive hides a brand without deleting it.
	BrandStatusInactive BrandStatus = "inactive"
)

// IsValid checks if the BrandStatus is a valid value.
func (s BrandStatus) IsValid() bool {
	return s == BrandStatusActive || s == BrandStatusInactive
}

// Brand is a catalog record grouping products under a manufacturer.
type Brand struct {
	ID          uuid.UUID
	Name        string // Unique within the catalog.
	Description string
	Image       string
	Website     string
	Phone       string
	Email       string
	Address     string
	Status      BrandStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductImage is one stored image reference on a product.
type ProductImage struct {
	URL      string
	PublicID string
}

// Product is a catalog record owned by a seller account.
type Product struct {
	ID           uuid.UUID
	Title        string
	Description  string
	BrandID      uuid.UUID
	Images       []ProductImage
	Price        float64
	Discount     float64
	CountInStock int
	// Rating and NumReviews are denormalized aggregates maintained when
	// ratings are created.
	Rating     float64
	NumReviews int
	IsFeatured bool
	OwnerID    uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Rating is a single review of a product by a user. Score is in [0, 5].
type Rating struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	Score     int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
