package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithTimeout_CompletesInTime(t *testing.T) {
	result, err := WithTimeout(context.Background(), "extract", time.Second,
		func(ctx context.Context) (string, error) {
			return "done", nil
		})
	if err != nil {
		t.Fatalf("WithTimeout() unexpected error = %v", err)
	}
	if result != "done" {
		t.Errorf("WithTimeout() result = %q, want %q", result, "done")
	}
}

func TestWithTimeout_Expires(t *testing.T) {
	_, err := WithTimeout(context.Background(), "extract", 10*time.Millisecond,
		func(ctx context.Context) (string, error) {
			select {
			case <-time.After(time.Minute):
				return "too late", nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		})
	if !IsCode(err, ErrCodeProcessingTimeout) {
		t.Errorf("WithTimeout() error = %v, want code %s", err, ErrCodeProcessingTimeout)
	}
}

func TestWithTimeout_OperationErrorPassesThrough(t *testing.T) {
	opErr := errors.New("provider rejected request")
	_, err := WithTimeout(context.Background(), "generate", time.Second,
		func(ctx context.Context) (int, error) {
			return 0, opErr
		})
	if !errors.Is(err, opErr) {
		t.Errorf("WithTimeout() error = %v, want the operation error", err)
	}
}

func TestWithTimeout_ParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithTimeout(ctx, "embed", time.Second,
		func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("WithTimeout() error = %v, want context.Canceled", err)
	}
}

func TestWithTimeout_TimedOutAttemptIsRetryable(t *testing.T) {
	// A timed-out attempt should feed the retry policy rather than
	// terminate it: the default predicate retries ProcessingTimeout.
	calls := 0
	r := testRetrier(2)

	result, err := Do(context.Background(), r, "generate", func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return WithTimeout(ctx, "generate", time.Millisecond,
				func(ctx context.Context) (string, error) {
					select {
					case <-time.After(time.Minute):
						return "", nil
					case <-ctx.Done():
						return "", ctx.Err()
					}
				})
		}
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("Do() unexpected error = %v", err)
	}
	if result != "recovered" {
		t.Errorf("Do() result = %q, want %q", result, "recovered")
	}
	if calls != 2 {
		t.Errorf("Do() attempts = %d, want 2", calls)
	}
}
