package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrInsightNotFound = fmt.Errorf("%w: insight", ErrNotFound)
	ErrSignalNotFound  = fmt.Errorf("%w: raw signal", ErrNotFound)

	// Validation errors
	ErrInvalidInsight   = errors.New("invalid insight record")
	ErrScoreOutOfRange  = errors.New("score out of range")
	ErrInvalidTimestamp = errors.New("invalid timestamp format")
	ErrInvalidURL       = errors.New("invalid URL")
	ErrInvalidEnum      = errors.New("value outside closed enum set")

	// Collector errors
	ErrUpstreamRejected = errors.New("upstream record rejected")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidInsight, field, reason)
}

func NewRangeError(field string, value float64, lo, hi float64) error {
	return fmt.Errorf("%w: %s=%v outside [%v,%v]", ErrScoreOutOfRange, field, value, lo, hi)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInsight) ||
		errors.Is(err, ErrScoreOutOfRange) ||
		errors.Is(err, ErrInvalidTimestamp) ||
		errors.Is(err, ErrInvalidURL) ||
		errors.Is(err, ErrInvalidEnum)
}
