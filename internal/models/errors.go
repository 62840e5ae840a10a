package models

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError describes a single invalid or missing attribute of a payload.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// DataValidationError is returned for malformed input and for every failed
// write against the store.
type DataValidationError struct {
	Message string
	Fields  []FieldError
	Err     error
}

// NewValidationError creates a DataValidationError with an optional cause.
func NewValidationError(message string, cause error) *DataValidationError {
	return &DataValidationError{Message: message, Err: cause}
}

func (e *DataValidationError) Error() string {
	if len(e.Fields) == 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return e.Message
	}

	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(msgs, "; "))
}

func (e *DataValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err (or anything it wraps) is a
// DataValidationError.
func IsValidationError(err error) bool {
	var ve *DataValidationError
	return errors.As(err, &ve)
}

// NotFoundError reports a missing entity, or a child that does not belong to
// the parent named in the request.
type NotFoundError struct {
	Resource string
	ID       int64
	Name     string
	Parent   int64
}

func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s named '%s' was not found in Wishlist '%d'.", e.Resource, e.Name, e.Parent)
	}
	if e.Parent != 0 {
		return fmt.Sprintf("%s with id '%d' was not found in Wishlist '%d'.", e.Resource, e.ID, e.Parent)
	}
	return fmt.Sprintf("%s with id '%d' could not be found.", e.Resource, e.ID)
}

// IsNotFoundError reports whether err (or anything it wraps) is a
// NotFoundError.
func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
