package qrcode

import (
	"fmt"
	"strings"

	"shopkart/config"
	"shopkart/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const (
	defaultSize    = 256
	defaultBaseURL = "https://shopkart.example.com/products"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := defaultSize
	level := qrcode.Medium
	baseURL := defaultBaseURL

	if qrCfg := cfg.QRCode; qrCfg != nil {
		if qrCfg.Size > 0 {
			size = qrCfg.Size
		}
		level = recoveryLevel(qrCfg.ErrorCorrectionLevel)
		if qrCfg.BaseURL != "" {
			baseURL = strings.TrimSuffix(qrCfg.BaseURL, "/")
		}
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              baseURL,
	}
}

func recoveryLevel(errorCorrectionLevel string) qrcode.RecoveryLevel {
	switch errorCorrectionLevel {
	case "L":
		return qrcode.Low
	case "M":
		return qrcode.Medium
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GenerateProductQRCode renders a PNG QR code linking to the product's
// public page.
func (s *qrcodeService) GenerateProductQRCode(productID uuid.UUID) ([]byte, error) {
	link := s.baseURL + "/" + productID.String()

	qrCode, err := qrcode.New(link, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
