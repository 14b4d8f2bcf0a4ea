package service

import "github.com/google/uuid"

// QRCodeService generates scannable share codes for catalog records.
type QRCodeService interface {
	// GenerateProductQRCode returns a PNG image encoding the public product URL.
	GenerateProductQRCode(productID uuid.UUID) ([]byte, error)
}
