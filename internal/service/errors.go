package service

import (
	"errors"
	"strings"

	"waste-bi-backend/internal/validate"
)

var (
	ErrNotFound       = errors.New("truck not found")
	ErrDuplicateEntry = errors.New("duplicate entry for plate and day")
	ErrAlreadySorted  = errors.New("truck already sorted")
	ErrInvalidInput   = errors.New("invalid input")
)

// ValidationError carries the per-field business-rule violations so the
// caller can route each message to the right form field.
type ValidationError struct {
	Fields []validate.FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
