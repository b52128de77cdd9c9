package retry

import (
	"context"
	"fmt"
	"log"
	"time"
)

// OnRetryFunc is invoked before each retry attempt (not before the first
// attempt), with the 1-based number of the attempt about to run.
type OnRetryFunc func(attempt int, lastErr error)

// Do runs op up to attempts times with a fixed delay between attempts,
// returning the first successful value or the last error once attempts are
// exhausted. The context is checked between attempts; an expired context
// ends the loop with the context error wrapped over the last failure.
func Do[T any](ctx context.Context, attempts int, delay time.Duration, op func(context.Context) (T, error), onRetry OnRetryFunc) (T, error) {
	var zero T
	var lastErr error

	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if onRetry != nil {
				onRetry(attempt, lastErr)
			}
			select {
			case <-ctx.Done():
				return zero, fmt.Errorf("retry aborted: %w (last error: %v)", ctx.Err(), lastErr)
			case <-time.After(delay):
			}
		}

		value, err := op(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err
		log.Printf("Retry: attempt %d/%d failed: %v", attempt, attempts, err)
	}

	return zero, lastErr
}
