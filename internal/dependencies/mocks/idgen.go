package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/catan-leaderboard/internal/dependencies/idgen"
)

// MockIDGenerator returns queued IDs, then sequential ones once the queue is empty
type MockIDGenerator struct {
	mu      sync.Mutex
	queue   []string
	counter int
}

// Ensure MockIDGenerator implements Generator
var _ idgen.Generator = (*MockIDGenerator)(nil)

// NewMockIDGenerator creates a new MockIDGenerator
func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

// NewID returns the next queued ID, or "id-<n>" if none remain
func (g *MockIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.queue) > 0 {
		id := g.queue[0]
		g.queue = g.queue[1:]
		return id
	}
	g.counter++
	return fmt.Sprintf("id-%d", g.counter)
}

// Queue adds IDs to be returned by NewID
func (g *MockIDGenerator) Queue(ids ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.queue = append(g.queue, ids...)
}
