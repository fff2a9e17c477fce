package retry

import (
	"context"
	"time"
)

// Config controls backoff behavior for polling loops.
type Config struct {
	// MaxAttempts is the total number of attempts (including the first).
	// If zero or negative, DefaultMaxAttempts is used.
	MaxAttempts int

	// BaseDelay is the starting delay. Each attempt doubles it (exponential
	// backoff). If zero, DefaultBaseDelay is used.
	BaseDelay time.Duration

	// ShouldRetry, if provided, determines whether to retry based on the
	// returned error. If nil, any non-nil error is retried (until attempts
	// are exhausted).
	ShouldRetry func(error) bool
}

const (
	DefaultMaxAttempts = 5
	DefaultBaseDelay   = 500 * time.Millisecond
)

// Do executes op with exponential backoff. It retries up to MaxAttempts
// times, sleeping BaseDelay * 2^attempt between attempts. If ctx is canceled,
// the context error is returned immediately.
func Do(ctx context.Context, cfg Config, op func(attempt int) error) error {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	base := cfg.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}

	shouldRetry := cfg.ShouldRetry
	if shouldRetry == nil {
		shouldRetry = func(err error) bool { return err != nil }
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		// Honor cancellation before each attempt.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := op(attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		// Stop if we shouldn't retry this error or we're out of attempts.
		if attempt == maxAttempts-1 || !shouldRetry(err) {
			return lastErr
		}

		// No jitter, for determinism in tests.
		delay := base * time.Duration(1<<attempt)

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}

	return lastErr
}
