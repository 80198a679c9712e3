package service

import (
	"errors"
	"fmt"

	"github.com/promptvault/promptvault/internal/store"
)

var (
	// ErrNotFound covers unknown ids and resources hidden by visibility.
	ErrNotFound = errors.New("not found")
	// ErrForbidden covers system-resource and ownership violations.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports a missing or malformed field. It maps to a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// fromStore translates storage sentinels into service errors.
func fromStore(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
