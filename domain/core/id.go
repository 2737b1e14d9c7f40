package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// IsUUID reports whether the ID is a well-formed UUID string.
func (id ID) IsUUID() bool {
	_, err := uuid.Parse(string(id))
	return err == nil
}

// Domain-specific ID types
type (
	InsightID ID
	SignalID  ID
)

func (id InsightID) String() string { return ID(id).String() }
func (id SignalID) String() string  { return ID(id).String() }

// ParseInsightID parses a string into InsightID, requiring UUID form
func ParseInsightID(s string) (InsightID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("insight ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("insight ID must be a UUID: %w", err)
	}
	return InsightID(s), nil
}

// ParseSignalID parses a string into SignalID, requiring UUID form
func ParseSignalID(s string) (SignalID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("signal ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("signal ID must be a UUID: %w", err)
	}
	return SignalID(s), nil
}
