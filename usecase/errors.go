package usecase

import "errors"

// ErrNotFound reports that the aggregate, or the addressed note/screenshot
// index, does not exist. Nothing was mutated.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed input, always raised before any I/O
// with side effects.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
