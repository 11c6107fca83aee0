package core

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a record does not exist for the calling seller.
// A record owned by another seller is reported identically, so callers
// cannot probe for the existence of foreign-tenant data.
var ErrNotFound = errors.New("not found")

// ValidationError reports input rejected before any write happened.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
