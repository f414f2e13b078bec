package utils

import (
	"github.com/google/uuid"
)

var newUUIDv7 = uuid.NewV7

// GenerateUUIDv7 generates a time-ordered id, falling back to v4
func GenerateUUIDv7() uuid.UUID {
	id, err := newUUIDv7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// NewRequestID returns a fresh request correlation id
func NewRequestID() string {
	return GenerateUUIDv7().String()
}
