package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxRetries = 3

	initialInterval = 500 * time.Millisecond
	maxInterval     = 5 * time.Second
)

// Operation is a retryable unit of work. It returns nil on success.
type Operation func() error

// ShouldRetryFunc reports whether the given error is worth retrying.
type ShouldRetryFunc func(error) bool

// Config tunes the backoff behaviour.
type Config struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultConfig returns the recommended settings.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      DefaultMaxRetries,
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
	}
}

// Do runs op with exponential backoff. Errors rejected by shouldRetry are
// treated as permanent and returned immediately.
func Do(ctx context.Context, cfg Config, name string, op Operation, shouldRetry ShouldRetryFunc) error {
	b := backoff.NewExponentialBackOff()
	if cfg.InitialInterval > 0 {
		b.InitialInterval = cfg.InitialInterval
	}
	if cfg.MaxInterval > 0 {
		b.MaxInterval = cfg.MaxInterval
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(b, cfg.MaxRetries), ctx)

	// backoff.Retry unwraps Permanent errors before returning, so track
	// permanence here to keep the failure modes distinguishable.
	var permanentErr error
	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if shouldRetry != nil && !shouldRetry(err) {
			permanentErr = err
			return backoff.Permanent(err)
		}
		return err
	}

	err := backoff.Retry(wrapped, bo)
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", name, err)
	}

	if permanentErr != nil {
		return fmt.Errorf("%s: %w", name, permanentErr)
	}

	return fmt.Errorf("%s: retries exhausted: %w", name, err)
}
