package providers

import (
	"context"
	"errors"
	"time"
)

type rateLimitError struct{}

func (e *rateLimitError) Error() string { return "rate limited" }

type authError struct {
	message string
}

func (e *authError) Error() string {
	return "authentication error: " + e.message
}

// IsAuthError reports whether err is an authentication failure, so callers
// can map it to a dedicated exit code.
func IsAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

// retryWithBackoff retries fn with exponential back-off. Only rate-limit
// errors are retried; auth and other errors return immediately.
func retryWithBackoff(ctx context.Context, maxRetries int, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		var rl *rateLimitError
		if !errors.As(lastErr, &rl) {
			return lastErr
		}

		if attempt < maxRetries {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return lastErr
}
