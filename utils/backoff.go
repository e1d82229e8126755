package utils

import (
	"context"
	"math/rand"
	"time"
)

// BackOff computes the next back-off duration
type BackOff func(currentRetryCount int) time.Duration

// ExponentialBackOff computes an exponential back-off
func ExponentialBackOff(minTimeout time.Duration) BackOff {
	return func(currentRetryCount int) time.Duration {
		jitter := rand.Float64()
		strategy := 1 << currentRetryCount
		backoff := (1 + float64(strategy)*jitter) * minTimeout.Seconds() * float64(time.Second)

		return time.Duration(backoff)
	}
}

// Retry runs f until it succeeds, returns an error that is not retryable, or the attempts are used up.
// The last error is returned.
func Retry(ctx context.Context, attempts int, backOff BackOff, retryable func(error) bool, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil || !retryable(err) {
			return err
		}

		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return err
		case <-time.After(backOff(i)):
		}
	}

	return err
}
