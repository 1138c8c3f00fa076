package storage

import (
	"fmt"

	"github.com/google/uuid"
)

// NewRunID generates a new unique run id.
func NewRunID() string {
	return uuid.New().String()
}

// ParseRunID validates a run id string.
func ParseRunID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid run id %q: %w", s, err)
	}
	return id.String(), nil
}
