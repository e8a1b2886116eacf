package user

import (
	"errors"
	"fmt"
)

// Service errors
var (
	ErrNotFound         = errors.New("user not found")
	ErrValidation       = errors.New("validation error")
	ErrBelowMinimumAge  = errors.New("user below minimum age")
	ErrInvalidDateRange = errors.New("'From' date must be less than 'To' date")
)

// NotFoundError reports a missing user id. It matches ErrNotFound.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("User with id: %d does not exist.", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AgeError reports a birth date that is too recent. It matches ErrBelowMinimumAge.
type AgeError struct {
	MinimumAge int
}

func (e *AgeError) Error() string {
	return fmt.Sprintf("User must be at least %d years old.", e.MinimumAge)
}

func (e *AgeError) Is(target error) bool {
	return target == ErrBelowMinimumAge
}

// ValidationError maps JSON field names to messages. It matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "Validation error"
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrBelowMinimumAge):
		return "below_minimum_age"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal_error"
	}
}
