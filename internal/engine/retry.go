package engine

import (
	"context"
	"log/slog"
	"math"
	"time"
)

// RetryConfig controls retry behavior. Every error is retried until the
// attempts run out or the context is done.
type RetryConfig struct {
	MaxRetries  int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64

	// Immediate reports errors after which the next attempt starts without
	// pausing; nil means every retry waits.
	Immediate func(error) bool
	// Sleep pauses between attempts; nil means a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// FixedRetryConfig returns a policy of attempts total tries with a constant
// pause between them.
func FixedRetryConfig(attempts int, pause time.Duration) RetryConfig {
	if attempts < 1 {
		attempts = 1
	}
	return RetryConfig{
		MaxRetries:  attempts - 1,
		InitialWait: pause,
		MaxWait:     pause,
		Multiplier:  1,
	}
}

// Attempts returns the total number of calls the policy allows.
func (rc RetryConfig) Attempts() int { return rc.MaxRetries + 1 }

// Wait returns the pause after the given zero-based attempt.
func (rc RetryConfig) Wait(attempt int) time.Duration {
	mult := rc.Multiplier
	if mult <= 0 {
		mult = 1
	}
	wait := time.Duration(float64(rc.InitialWait) * math.Pow(mult, float64(attempt)))
	if rc.MaxWait > 0 && wait > rc.MaxWait {
		wait = rc.MaxWait
	}
	return wait
}

// RetryDo calls fn up to MaxRetries+1 times, pausing between failed attempts.
// It returns the last error once attempts are exhausted, or the context error
// as soon as ctx is done.
func RetryDo[T any](ctx context.Context, rc RetryConfig, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	sleep := rc.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	for attempt := 0; attempt <= rc.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == rc.MaxRetries {
			break
		}
		if rc.Immediate != nil && rc.Immediate(err) {
			slog.Debug("retrying immediately", slog.Int("attempt", attempt+1), slog.Any("error", err))
			continue
		}
		wait := rc.Wait(attempt)
		slog.Debug("retrying", slog.Int("attempt", attempt+1), slog.Duration("wait", wait), slog.Any("error", err))
		if err := sleep(ctx, wait); err != nil {
			return zero, err
		}
	}
	return zero, lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
