package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// Network timeouts, applied by the client to every command
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// OpTimeout bounds one storage operation end to end, including retries
	OpTimeout time.Duration

	// MaxTxRetries is how often an optimistic transaction is retried when a
	// watched key changes underneath it
	MaxTxRetries int

	// DeleteSweeps is how often a board deletion attempts its leftover sweep
	// before reporting a partial delete
	DeleteSweeps int

	// ScanCount is the COUNT hint passed to SCAN
	ScanCount int64
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		OpTimeout:    10 * time.Second,
		MaxTxRetries: 5,
		DeleteSweeps: 5,
		ScanCount:    100,
	}
}
