package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("identity not found")
	ErrDuplicateKey       = errors.New("phone number already registered")
	ErrCustomerNotFound   = errors.New("customer not found, ask them to register first")
	ErrBusinessNotFound   = errors.New("business not found")
	ErrRewardNotFound     = errors.New("reward not found")
	ErrRewardInactive     = errors.New("reward is not active")
	ErrInsufficientPoints = errors.New("not enough points")
	ErrPersistence        = errors.New("persistence failure")
	ErrValidation         = errors.New("validation failed")
)

// ValidationError reports malformed input. It matches ErrValidation with
// errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
