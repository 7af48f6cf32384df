package request

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// RateLimiterConfig governs a single limiter's admission policy.
type RateLimiterConfig struct {
	MaxConcurrent int           // Maximum tasks in flight at once (> 0)
	MinTime       time.Duration // Minimum spacing between task starts (>= 0)
}

// Limiter bounds how many tasks run concurrently and enforces a minimum
// spacing between task starts. Tasks are admitted in FIFO submission order;
// completion order is not guaranteed. The limiter never drops tasks and never
// raises its own errors: a task's error propagates untouched to the caller.
type Limiter struct {
	sem     *semaphore.Weighted
	minTime time.Duration

	mu        sync.Mutex
	nextStart time.Time
}

// NewLimiter creates a limiter. A non-positive MaxConcurrent defaults to 1.
func NewLimiter(cfg RateLimiterConfig) *Limiter {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Limiter{
		sem:     semaphore.NewWeighted(int64(maxConcurrent)),
		minTime: cfg.MinTime,
	}
}

// Schedule runs task once the concurrency and spacing constraints allow.
// A cancelled context aborts a still-queued task; a task already admitted
// runs to completion with the caller's context.
func (l *Limiter) Schedule(ctx context.Context, task func(ctx context.Context) error) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer l.sem.Release(1)

	if err := l.waitForSlot(ctx); err != nil {
		return err
	}

	return task(ctx)
}

// waitForSlot reserves the next admissible start time and sleeps until it.
// Reservation happens under the mutex so concurrent callers are spaced in
// the order they acquired the semaphore.
func (l *Limiter) waitForSlot(ctx context.Context) error {
	if l.minTime <= 0 {
		return nil
	}

	l.mu.Lock()
	now := time.Now()
	start := l.nextStart
	if start.Before(now) {
		start = now
	}
	l.nextStart = start.Add(l.minTime)
	l.mu.Unlock()

	delay := time.Until(start)
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
