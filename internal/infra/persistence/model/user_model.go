// Package model contains the GORM persistence models mirroring the database tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// RefreshToken is the single session slot: empty means no active session.
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	FirstName      string    `gorm:"type:varchar(100);not null"`
	LastName       string    `gorm:"type:varchar(100);not null"`
	Username       string    `gorm:"type:varchar(255);not null"`
	FullName       string    `gorm:"type:varchar(200);not null"`
	Avatar         string    `gorm:"type:varchar(512)"`
	Email          string    `gorm:"type:varchar(255);unique;not null"`
	CredentialHash string    `gorm:"type:varchar(255);not null"`
	AddressLine1   string    `gorm:"type:varchar(255);not null"`
	AddressLine2   string    `gorm:"type:varchar(255)"`
	Phone          string    `gorm:"type:varchar(32);unique;not null"`
	Role           string    `gorm:"type:varchar(16);not null;default:'user'"`

	IsEmailVerified bool `gorm:"not null;default:false"`
	IsPhoneVerified bool `gorm:"not null;default:false"`

	RefreshToken string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
