package asset

import (
	"context"
	"errors"
	"time"

	"github.com/MohdOwais22/subaku-backend/internal/config"
	domainAsset "github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	"github.com/MohdOwais22/subaku-backend/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	attemptFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_operation_attempt_failures_total",
			Help: "Total number of failed object store attempts",
		},
		[]string{"operation"},
	)

	operationsExhausted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_operation_exhausted_total",
			Help: "Total number of object store operations that failed after all attempts",
		},
		[]string{"operation"},
	)
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RetryPolicy controls Retry. The wait after the n-th failed attempt is
// BaseBackoff * 2^(n-1), with no jitter and no cap.
type RetryPolicy struct {
	MaxAttempts    int
	BaseBackoff    time.Duration
	AttemptTimeout time.Duration
	Sleep          SleepFunc
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		BaseBackoff:    2 * time.Second,
		AttemptTimeout: 5 * time.Minute,
	}
}

func NewRetryPolicy(cfg config.UploadConfig) RetryPolicy {
	policy := DefaultRetryPolicy()
	if cfg.MaxAttempts > 0 {
		policy.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.BaseBackoff > 0 {
		policy.BaseBackoff = cfg.BaseBackoff
	}
	if cfg.AttemptTimeout > 0 {
		policy.AttemptTimeout = cfg.AttemptTimeout
	}
	return policy
}

// maxBackoffShift keeps BaseBackoff * 2^shift far from overflowing.
const maxBackoffShift = 20

// Backoff returns the wait after the given failed attempt (1-based).
func (p RetryPolicy) Backoff(failedAttempt int) time.Duration {
	shift := min(max(failedAttempt-1, 0), maxBackoffShift)
	return p.BaseBackoff * time.Duration(1<<uint(shift))
}

// Retry runs fn until it succeeds or MaxAttempts is reached, returning the
// last error unchanged. Payload-too-large failures are returned immediately.
func Retry[T any](ctx context.Context, policy RetryPolicy, operation string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := policy.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := runAttempt(ctx, policy.AttemptTimeout, fn)
		if err == nil {
			return result, nil
		}
		lastErr = err
		attemptFailures.WithLabelValues(operation).Inc()

		if errors.Is(err, domainAsset.ErrPayloadTooLarge) || attempt == attempts {
			break
		}

		backoff := policy.Backoff(attempt)
		logger.Warn("Object store attempt failed, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
			zap.String("event", "upload_retry"),
		)

		if err := sleep(ctx, backoff); err != nil {
			return zero, lastErr
		}
	}

	operationsExhausted.WithLabelValues(operation).Inc()
	logger.Error("Object store operation failed",
		zap.String("operation", operation),
		zap.Error(lastErr),
		zap.String("event", "upload_failed"),
	)
	return zero, lastErr
}

func runAttempt[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		return fn(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(attemptCtx)
}
