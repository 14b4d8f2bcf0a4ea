package model

import (
	"time"

	"github.com/google/uuid"
)

// BrandModel mirrors the 'brands' table.
type BrandModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(100);unique;not null"`
	Description string    `gorm:"type:text"`
	Image       string    `gorm:"type:varchar(512)"`
	Website     string    `gorm:"type:varchar(255)"`
	Phone       string    `gorm:"type:varchar(32)"`
	Email       string    `gorm:"type:varchar(255)"`
	Address     string    `gorm:"type:varchar(255)"`
	Status      string    `gorm:"type:varchar(16);not null;default:'active'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (BrandModel) TableName() string {
	return "brands"
}

// ProductModel mirrors the 'products' table. Price and discount are stored
// in minor currency units.
type ProductModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title        string    `gorm:"type:varchar(255);not null"`
	Description  string    `gorm:"type:text"`
	BrandID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Price        float64   `gorm:"type:numeric(12,2);not null;default:0"`
	Discount     float64   `gorm:"type:numeric(12,2);not null;default:0"`
	CountInStock int       `gorm:"not null;default:0"`
	Rating       float64   `gorm:"not null;default:0"`
	NumReviews   int       `gorm:"not null;default:0"`
	IsFeatured   bool      `gorm:"not null;default:false"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Images []ProductImageModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// ProductImageModel mirrors the 'product_images' table.
type ProductImageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:varchar(512);not null"`
	PublicID  string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductImageModel) TableName() string {
	return "product_images"
}

// RatingModel mirrors the 'ratings' table.
type RatingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Score     int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RatingModel) TableName() string {
	return "ratings"
}
