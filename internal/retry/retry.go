// Package retry runs an operation under a bounded, fixed-delay retry policy.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrExhausted is returned (wrapping the last failure) when every attempt
// failed with a transient error.
var ErrExhausted = errors.New("retry attempts exhausted")

// Policy retries transient failures up to MaxAttempts times, waiting Delay
// between attempts. There is no jitter and no backoff growth.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	// Transient reports whether err is worth another attempt. A nil
	// classifier treats every error as fatal.
	Transient func(err error) bool
	// Sleep waits between attempts. Defaults to SleepContext.
	Sleep func(ctx context.Context, d time.Duration) error
}

// SleepContext blocks for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do calls op until it succeeds, fails fatally, or MaxAttempts is reached.
// attempt is 1-based.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var zero T

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = SleepContext
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		v, err := op(ctx, attempt)
		if err == nil {
			return v, nil
		}
		if p.Transient == nil || !p.Transient(err) {
			return zero, err
		}
		lastErr = err

		if attempt == attempts {
			break
		}

		log.WithFields(log.Fields{
			"attempt":  attempt,
			"max":      attempts,
			"delay_ms": p.Delay.Milliseconds(),
		}).WithError(err).Warn("transient failure, retrying")

		if err := sleep(ctx, p.Delay); err != nil {
			return zero, err
		}
	}

	return zero, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempts, lastErr)
}
