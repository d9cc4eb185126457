package providers

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryWithBackoff_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), 3, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_DoesNotRetryAuthErrors(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), 3, func() error {
		calls++
		return &authError{message: "bad key"}
	})
	if !IsAuthError(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_DoesNotRetryGenericErrors(t *testing.T) {
	calls := 0
	sentinel := errors.New("boom")
	err := retryWithBackoff(context.Background(), 3, func() error {
		calls++
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_RetriesRateLimits(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), 2, func() error {
		calls++
		if calls < 2 {
			return &rateLimitError{}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryWithBackoff_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retryWithBackoff(ctx, 3, func() error {
		return &rateLimitError{}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRetryWithBackoff_ExhaustsRetries(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	calls := 0
	err := retryWithBackoff(ctx, 1, func() error {
		calls++
		return &rateLimitError{}
	})
	var rl *rateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestIsAuthError(t *testing.T) {
	if IsAuthError(errors.New("plain")) {
		t.Error("plain error should not be an auth error")
	}
	wrapped := errors.Join(errors.New("outer"), &authError{message: "inner"})
	if !IsAuthError(wrapped) {
		t.Error("wrapped auth error should be detected")
	}
}
