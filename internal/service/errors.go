package service

import (
	"errors"
	"fmt"
)

// Errors surfaced to API callers. Messages are shown to admins as-is.
var (
	ErrBookingNotFound      = errors.New("Booking not found")
	ErrMultipleContingents  = errors.New("Multiple contingents not supported yet")
	ErrProvinceNotFound     = errors.New("Province not found")
	ErrBookingCodeExhausted = errors.New("Could not allocate a unique booking code, please retry")
	ErrInvalidCredentials   = errors.New("Invalid email or password")
	ErrExportDisabled       = errors.New("Booking export is not configured")
)

// ValidationError reports an invalid input field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}
