package inventory

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/erp/lpcore/internal/domain/shared"
)

// RetryPolicy bounds how often a unit of work is re-run after a ConcurrencyConflict
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy returns the default retry policy
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: 20 * time.Millisecond,
		MaxInterval:     500 * time.Millisecond,
	}
}

// Do runs op until it succeeds, fails with a non-retryable error, or the
// attempts are used up. Only ConcurrencyConflict errors are retried.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	if p.MaxAttempts <= 1 {
		return op()
	}

	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	b.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.MaxAttempts-1)), ctx)
	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if shared.IsConcurrencyConflict(err) {
			return err
		}
		return backoff.Permanent(err)
	}, policy)
}
