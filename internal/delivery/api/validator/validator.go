package validator

import (
	domainerrors "shopkart/internal/domain/errors"
	"shopkart/internal/errors"

	"github.com/go-playground/validator/v10"
)

// EchoValidator adapts go-playground/validator to echo's Validator interface.
type EchoValidator struct {
	validate *validator.Validate
}

// New creates a validator for request payloads.
func New() *EchoValidator {
	return &EchoValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errors.Wrap(domainerrors.ErrInvalidInput, err.Error())
	}

	return nil
}
