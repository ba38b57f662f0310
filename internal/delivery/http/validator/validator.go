// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	domainerrors "github.com/hasaanhameed/TrackCraft/internal/domain/errors"

	validatorv10 "github.com/go-playground/validator/v10"
)

// CustomValidator wraps a validator instance for use as echo.Validator.
type CustomValidator struct {
	validate *validatorv10.Validate
}

// New creates a CustomValidator with struct tag validation enabled.
func New() *CustomValidator {
	return &CustomValidator{validate: validatorv10.New(validatorv10.WithRequiredStructEnabled())}
}

// Validate checks the bound request payload against its struct tags.
// Failures surface as the domain's validation error so the error
// middleware renders them as 400 responses.
func (v *CustomValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return nil
}
