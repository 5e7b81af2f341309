package identity

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel for all request validation failures.
var ErrValidation = errors.New("validation failed")

// FieldError reports the first offending field and why it was rejected.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}
