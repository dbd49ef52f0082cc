package idgen

import (
	"github.com/google/uuid"
)

// Generator produces unique identifiers that can be mocked for testing
type Generator interface {
	// NewID returns a new unique identifier. IDs from the real generator
	// sort by creation time.
	NewID() string
}

// UUIDGenerator issues version 7 UUIDs
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a time-ordered UUID, falling back to a random one if the
// monotonic source fails
func (g *UUIDGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
