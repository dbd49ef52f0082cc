package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/catan-leaderboard/internal/assets"
	"github.com/mcoot/catan-leaderboard/internal/dependencies/mocks"
	"github.com/mcoot/catan-leaderboard/internal/services/auth"
	"github.com/mcoot/catan-leaderboard/internal/storage"
	"github.com/mcoot/catan-leaderboard/internal/storage/memory"
	"github.com/mcoot/catan-leaderboard/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIDs   *mocks.MockIDGenerator
}

// NewTestApp creates an in-memory App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithStorage(memory.New(), nil)
}

// NewTestAppWithStorage creates a test App on top of the given storage.
// uploads may be nil to leave profile uploads disabled.
func NewTestAppWithStorage(store storage.Storage, uploads assets.Presigner) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockIDs := mocks.NewMockIDGenerator()

	app := newWithDependencies(store, mockClock, mockIDs, uploads,
		auth.Config{BcryptCost: bcrypt.MinCost}, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIDs:   mockIDs,
	}
}
