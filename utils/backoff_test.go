package utils_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/uniongov/union-core/utils"
)

func TestExponentialBackOff(t *testing.T) {
	backOff := utils.ExponentialBackOff(time.Millisecond)

	for i := 0; i < 5; i++ {
		d := backOff(i)
		assert.GreaterOrEqual(t, d, time.Millisecond)
		assert.LessOrEqual(t, d, time.Duration(1+(1<<i))*time.Millisecond)
	}
}

func TestRetry(t *testing.T) {
	transient := errors.New("transient")
	permanent := errors.New("permanent")
	isTransient := func(err error) bool { return errors.Is(err, transient) }
	noWait := func(int) time.Duration { return 0 }

	t.Run("stops on success", func(t *testing.T) {
		calls := 0
		err := utils.Retry(context.Background(), 5, noWait, isTransient, func() error {
			calls++
			if calls < 3 {
				return transient
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on errors that are not retryable", func(t *testing.T) {
		calls := 0
		err := utils.Retry(context.Background(), 5, noWait, isTransient, func() error {
			calls++
			return permanent
		})

		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("returns the last error once attempts are used up", func(t *testing.T) {
		calls := 0
		err := utils.Retry(context.Background(), 3, noWait, isTransient, func() error {
			calls++
			return transient
		})

		assert.ErrorIs(t, err, transient)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops when the context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		err := utils.Retry(ctx, 3, func(int) time.Duration { return time.Hour }, isTransient, func() error {
			calls++
			return transient
		})

		assert.ErrorIs(t, err, transient)
		assert.Equal(t, 1, calls)
	})
}
