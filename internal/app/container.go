package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	pinata "github.com/substratelabs/go-pinata"
	"github.com/substratelabs/go-pinata/internal/config"
)

// Container centralizes the core dependencies used across the CLI.
// It is intentionally small and uses the pinata.API interface so commands
// (and tests) can substitute implementations easily.
type Container struct {
	Config       *config.Config
	Logger       *logrus.Logger
	Pinata       pinata.API
	ValidateAuth bool
}

// Option allows customizing the container during construction.
type Option func(*Container) error

// WithLogger overrides the default logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Container) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.Logger = logger
		return nil
	}
}

// WithClient overrides the default Pinata client.
func WithClient(client pinata.API) Option {
	return func(c *Container) error {
		if client == nil {
			return fmt.Errorf("pinata client cannot be nil")
		}
		c.Pinata = client
		return nil
	}
}

// WithAuthValidation enables or disables credential validation against the
// API at construction time (default: enabled).
func WithAuthValidation(validate bool) Option {
	return func(c *Container) error {
		c.ValidateAuth = validate
		return nil
	}
}

// NewContainer builds a Container with sensible defaults derived from cfg.
// Options can be supplied to override specific dependencies (useful in tests).
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	container := &Container{
		Config:       cfg,
		Logger:       buildDefaultLogger(cfg.Loglevel),
		ValidateAuth: true,
	}

	// Apply options early so tests can inject mocks before defaults are created.
	for _, opt := range opts {
		if err := opt(container); err != nil {
			return nil, err
		}
	}

	if container.Pinata == nil {
		client, err := pinata.NewClient(
			cfg.Pinata.APIKey,
			cfg.Pinata.SecretAPIKey,
			pinata.WithLogger(container.Logger),
		)
		if err != nil {
			return nil, err
		}
		container.Pinata = client
	}

	if container.ValidateAuth {
		if err := container.Pinata.TestAuthentication(ctx); err != nil {
			return nil, fmt.Errorf("failed to verify pinata credentials: %w", err)
		}
	}

	return container, nil
}

func buildDefaultLogger(levelStr string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
