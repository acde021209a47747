package common

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetryEventualSuccess(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), 3, func() error {
		attempts++
		if attempts < 3 {
			return fmt.Errorf("%w: slow down", ErrRateLimited)
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryProviderUnavailableIsPermanent(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), 5, func() error {
		attempts++
		return fmt.Errorf("%w: backend down", ErrProviderUnavailable)
	})
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Equal(t, 1, attempts, "unavailable backend should not be retried")
}

func TestRetryRespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := Retry(ctx, 3, func() error {
		attempts++
		return fmt.Errorf("transient")
	})
	assert.Error(t, err)
	assert.LessOrEqual(t, attempts, 1)
}
