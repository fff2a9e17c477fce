package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// Environment variables consulted when the config file carries no credentials.
const (
	EnvAPIKey       = "PINATA_API_KEY"
	EnvSecretAPIKey = "PINATA_SECRET_API_KEY"
)

// Config represents the CLI configuration.
type Config struct {
	Loglevel string       `toml:"loglevel"`
	Pinata   PinataConfig `toml:"pinata"`
}

// PinataConfig holds the Pinata API credentials.
type PinataConfig struct {
	APIKey       string `toml:"api_key"`
	SecretAPIKey string `toml:"secret_api_key"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Loglevel: "info",
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "go-pinata", "config.toml"), nil
}

// Load loads configuration from a TOML file. A missing file is not an error:
// the defaults are returned so credentials can still come from the
// environment.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv fills in credentials from the environment when the file left
// them empty.
func (c *Config) ApplyEnv() {
	if c.Pinata.APIKey == "" {
		c.Pinata.APIKey = os.Getenv(EnvAPIKey)
	}
	if c.Pinata.SecretAPIKey == "" {
		c.Pinata.SecretAPIKey = os.Getenv(EnvSecretAPIKey)
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Pinata.APIKey == "" {
		return fmt.Errorf("pinata.api_key is required (or set %s)", EnvAPIKey)
	}
	if c.Pinata.SecretAPIKey == "" {
		return fmt.Errorf("pinata.secret_api_key is required (or set %s)", EnvSecretAPIKey)
	}
	if _, err := logrus.ParseLevel(c.Loglevel); err != nil {
		return fmt.Errorf("loglevel must be one of: panic, fatal, error, warn, info, debug, trace")
	}

	return nil
}
