package request

import (
	"context"
	"time"
)

// RequestFn performs one attempt against the provider and returns the raw
// JSON-decoded payload.
type RequestFn func(ctx context.Context) (map[string]any, error)

// Options configures a MakeAPIRequest invocation.
type Options struct {
	// RateLimit schedules every attempt, retries included. When nil a
	// dedicated limiter is created from RateLimitConfig.
	RateLimit       *Limiter
	RateLimitConfig RateLimiterConfig
	Retry           RetryConfig
	ResponseSchema  ResponseSchema
	// AttemptTimeout bounds a single attempt's duration. Zero means no
	// per-attempt deadline beyond the caller's context.
	AttemptTimeout time.Duration
}

// MakeAPIRequest is the single entry point callers use for outbound provider
// calls. Each attempt is admitted through the rate limiter, failures are
// classified, and the retrier decides whether to re-attempt. Exactly one of
// formatted-result or terminal *Error is returned.
func MakeAPIRequest(ctx context.Context, fn RequestFn, opts Options) (map[string]any, error) {
	limiter := opts.RateLimit
	if limiter == nil {
		limiter = NewLimiter(opts.RateLimitConfig)
	}

	var formatted map[string]any
	retrier := NewRetrier(opts.Retry)
	err := retrier.Do(ctx, func(ctx context.Context, attempt int) error {
		return limiter.Schedule(ctx, func(ctx context.Context) error {
			attemptCtx := ctx
			if opts.AttemptTimeout > 0 {
				var cancel context.CancelFunc
				attemptCtx, cancel = context.WithTimeout(ctx, opts.AttemptTimeout)
				defer cancel()
			}

			raw, err := fn(attemptCtx)
			if err != nil {
				return err
			}

			result, err := Format(raw, opts.ResponseSchema)
			if err != nil {
				return err
			}
			formatted = result
			return nil
		})
	})
	if err != nil {
		return nil, Classify(err)
	}
	return formatted, nil
}
