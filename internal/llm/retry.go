package llm

import (
	"context"
	"errors"
	"log"
	"time"
)

const (
	// maxRetries is the number of additional attempts after the first call.
	maxRetries = 3

	// retryBaseDelay is the first backoff interval; it doubles per attempt.
	retryBaseDelay = 2 * time.Second
)

// completeWithRetry runs fn, retrying only rate-limit failures with
// exponential backoff (2s, 4s, 8s). Exhausting the retries propagates the
// last error; any non-retryable error is returned immediately.
func completeWithRetry(ctx context.Context, op string, fn func() (string, error)) (string, error) {
	delay := retryBaseDelay
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("LLM: %s rate limited, retry %d/%d in %s", op, attempt, maxRetries, delay)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !errors.Is(err, ErrRateLimited) {
			return "", err
		}
	}
	return "", lastErr
}
