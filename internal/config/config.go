package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/mcoot/catan-leaderboard/internal/api"
	"github.com/mcoot/catan-leaderboard/internal/assets"
	redisstorage "github.com/mcoot/catan-leaderboard/internal/storage/redis"
)

// Config is the server configuration, read from the environment at startup
type Config struct {
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`

	HTTPHost string `env:"HTTP_HOST"`
	HTTPPort int    `env:"HTTP_PORT" envDefault:"8080"`

	StorageType  string        `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL     string        `env:"REDIS_URL"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"10s"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	S3 S3Config `envPrefix:"S3_"`

	OTelEndpoint string `env:"OTEL_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"catan-leaderboard"`
}

// S3Config configures presigned profile uploads. Uploads are disabled while
// Bucket is empty.
type S3Config struct {
	Bucket          string        `env:"BUCKET"`
	Region          string        `env:"REGION" envDefault:"us-east-1"`
	Endpoint        string        `env:"ENDPOINT"`
	AccessKeyID     string        `env:"ACCESS_KEY_ID"`
	SecretAccessKey string        `env:"SECRET_ACCESS_KEY"`
	PublicBaseURL   string        `env:"PUBLIC_BASE_URL"`
	UploadExpiry    time.Duration `env:"UPLOAD_EXPIRY" envDefault:"15m"`
}

// Load parses the environment into a Config and checks it
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StorageType {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("STORAGE_TYPE must be memory or redis, got %q", c.StorageType)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort)
	}
	return nil
}

// Redis returns the Redis storage settings, or nil for in-memory storage
func (c Config) Redis() *redisstorage.Config {
	if c.StorageType != "redis" {
		return nil
	}
	cfg := redisstorage.DefaultConfig()
	cfg.URL = c.RedisURL
	if c.StoreTimeout > 0 {
		cfg.OpTimeout = c.StoreTimeout
	}
	return &cfg
}

// Assets returns the upload settings, or nil when no bucket is configured
func (c Config) Assets() *assets.Config {
	if c.S3.Bucket == "" {
		return nil
	}
	return &assets.Config{
		Bucket:          c.S3.Bucket,
		Region:          c.S3.Region,
		Endpoint:        c.S3.Endpoint,
		AccessKeyID:     c.S3.AccessKeyID,
		SecretAccessKey: c.S3.SecretAccessKey,
		PublicBaseURL:   c.S3.PublicBaseURL,
		UploadExpiry:    c.S3.UploadExpiry,
	}
}

// Server returns the HTTP server settings
func (c Config) Server() api.ServerConfig {
	cfg := api.DefaultServerConfig()
	cfg.Host = c.HTTPHost
	cfg.Port = c.HTTPPort
	return cfg
}
