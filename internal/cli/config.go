package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL    string
	Password     string
	PasswordFile string
	Output       string
	Verbose      bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:    getEnvOrDefault("CATANLB_SERVER", "http://localhost:8080"),
		Password:     os.Getenv("CATANLB_PASSWORD"),
		PasswordFile: getEnvOrDefault("CATANLB_PASSWORD_FILE", defaultPasswordFile()),
		Output:       "text",
		Verbose:      false,
	}
}

// LoadPassword loads the board password from file if not already set
func (c *Config) LoadPassword() error {
	if c.Password != "" {
		return nil
	}

	data, err := os.ReadFile(c.PasswordFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No password file is fine for read-only commands
		}
		return err
	}

	c.Password = strings.TrimSpace(string(data))
	return nil
}

// SavePassword saves the board password to the password file
func (c *Config) SavePassword(password string) error {
	c.Password = password

	dir := filepath.Dir(c.PasswordFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.PasswordFile, []byte(password), 0600)
}

func defaultPasswordFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".catanlb/password"
	}
	return filepath.Join(home, ".catanlb", "password")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
