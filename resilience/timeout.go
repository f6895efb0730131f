package resilience

import (
	"context"
	"time"
)

// WithTimeout bounds a single attempt of fn by the given duration. When
// the envelope fires, the in-flight call is abandoned (its goroutine is
// left to observe the canceled context) and the attempt fails with
// ProcessingTimeout, which the retry policy may choose to retry.
func WithTimeout[T any](ctx context.Context, op string, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if timeout <= 0 {
		return fn(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		result T
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		result, err := fn(ctx)
		done <- outcome{result: result, err: err}
	}()

	select {
	case out := <-done:
		return out.result, out.err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return zero, ErrProcessingTimeout(op, timeout)
		}
		return zero, ctx.Err()
	}
}
