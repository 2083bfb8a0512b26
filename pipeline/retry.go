package pipeline

import (
	"context"
	"time"
)

// DefaultRetryDelays returns the backoff delays for transient page-load
// retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// withRetry runs fn with retries spaced by delays. One initial attempt
// plus one retry per delay; the last error wins.
func withRetry[T any](ctx context.Context, delays []time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delays[attempt-1]):
			}
		}
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return zero, lastErr
}
