package resilience

import (
	"context"
	"log/slog"
	"time"
)

// Retrier retries an operation with exponential backoff. It is stateless
// across calls and safe to share between call sites.
type Retrier struct {
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
	retryIf    func(error) bool
	logger     *slog.Logger
}

// RetrierOption is a function type to modify a Retrier
type RetrierOption func(*Retrier)

// WithMaxRetries sets how many additional attempts follow the first one.
func WithMaxRetries(n int) RetrierOption {
	return func(r *Retrier) {
		r.maxRetries = n
	}
}

// WithBaseDelay sets the delay before the first retry.
func WithBaseDelay(d time.Duration) RetrierOption {
	return func(r *Retrier) {
		r.baseDelay = d
	}
}

// WithMaxDelay caps the exponential backoff delay.
func WithMaxDelay(d time.Duration) RetrierOption {
	return func(r *Retrier) {
		r.maxDelay = d
	}
}

// WithRetryIf sets the predicate deciding whether an error is worth
// retrying. Errors it rejects propagate immediately, unwrapped.
func WithRetryIf(pred func(error) bool) RetrierOption {
	return func(r *Retrier) {
		r.retryIf = pred
	}
}

// WithLogger sets the logger used for attempt warnings.
func WithLogger(logger *slog.Logger) RetrierOption {
	return func(r *Retrier) {
		r.logger = logger
	}
}

// NewRetrier creates a retrier with up to 3 retries, a 1s base delay, and
// a 60s cap.
func NewRetrier(opts ...RetrierOption) *Retrier {
	r := &Retrier{
		maxRetries: 3,
		baseDelay:  time.Second,
		maxDelay:   60 * time.Second,
		retryIf:    func(error) bool { return true },
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// backoff returns the delay before the retry following attempt (0-based).
func (r *Retrier) backoff(attempt int) time.Duration {
	delay := r.baseDelay << uint(attempt)
	if delay > r.maxDelay || delay <= 0 {
		delay = r.maxDelay
	}
	return delay
}

// Do runs op up to maxRetries+1 times. Between attempts it sleeps with
// exponential backoff, honoring ctx cancellation. Non-retryable errors
// propagate as-is; exhaustion returns RetryExhausted wrapping the last
// error.
func Do[T any](ctx context.Context, r *Retrier, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := r.maxRetries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := r.backoff(attempt - 1)
			r.logger.Warn("retrying operation",
				"op", op, "attempt", attempt+1, "of", attempts, "backoff", delay)
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				r.logger.Info("operation recovered", "op", op, "attempt", attempt+1)
			}
			return result, nil
		}

		if !r.retryIf(err) {
			return zero, err
		}
		lastErr = err
		r.logger.Warn("operation failed", "op", op, "attempt", attempt+1, "error", err)
	}

	return zero, ErrRetryExhausted(op, attempts, lastErr)
}
