package request

import (
	"context"
	"math"
	"time"
)

// RetryConfig governs retry attempt scheduling.
type RetryConfig struct {
	// MaxRetries is the number of retry attempts, not counting the initial one.
	MaxRetries int
	// BackoffFactor controls exponential growth of the inter-attempt delay.
	BackoffFactor float64
	// MinTimeout is the delay before the first retry.
	MinTimeout time.Duration
	// MaxTimeout caps the delay between retries.
	MaxTimeout time.Duration
}

// DefaultRetryConfig matches the analysis call site: up to 3 retries with
// delays of 1s, 2s, 4s capped at 5s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		BackoffFactor: 2.0,
		MinTimeout:    time.Second,
		MaxTimeout:    5 * time.Second,
	}
}

// Delay returns the inter-attempt delay after the given zero-based attempt:
// min(MaxTimeout, MinTimeout * BackoffFactor^attempt). No jitter.
func (c RetryConfig) Delay(attempt int) time.Duration {
	d := time.Duration(float64(c.MinTimeout) * math.Pow(c.BackoffFactor, float64(attempt)))
	if d > c.MaxTimeout || d < 0 {
		d = c.MaxTimeout
	}
	return d
}

// Retrier re-invokes a failing operation up to MaxRetries times. Only errors
// whose classified kind is retryable consume a retry slot; credential and
// schema errors are terminal on first occurrence.
type Retrier struct {
	cfg RetryConfig
}

// NewRetrier creates a Retrier. Zero-value fields fall back to defaults,
// except MaxRetries=0 which is honored as "execute exactly once".
func NewRetrier(cfg RetryConfig) *Retrier {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BackoffFactor <= 1 {
		cfg.BackoffFactor = DefaultRetryConfig().BackoffFactor
	}
	if cfg.MinTimeout <= 0 {
		cfg.MinTimeout = DefaultRetryConfig().MinTimeout
	}
	if cfg.MaxTimeout < cfg.MinTimeout {
		cfg.MaxTimeout = cfg.MinTimeout
	}
	return &Retrier{cfg: cfg}
}

// Do runs op, retrying on retryable classified errors with exponential
// backoff. The attempt number passed to op is zero-based. The returned error
// is always a *Error (the last classified failure) or nil.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context, attempt int) error) error {
	var last *Error
	for attempt := 0; ; attempt++ {
		err := op(ctx, attempt)
		if err == nil {
			return nil
		}

		last = Classify(err)
		if !r.retry(last, attempt) {
			return last
		}

		if err := r.sleep(ctx, r.cfg.Delay(attempt)); err != nil {
			return NewError(KindUnknown, "retry aborted", err)
		}
	}
}

// retry reports whether another attempt should be scheduled: attempts must
// remain and the error must be retryable.
func (r *Retrier) retry(err *Error, attempt int) bool {
	if attempt >= r.cfg.MaxRetries {
		return false
	}
	return err.Retryable()
}

// sleep waits for the backoff delay or until the context is cancelled.
func (r *Retrier) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
