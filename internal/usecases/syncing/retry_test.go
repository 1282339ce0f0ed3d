package syncing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 0, want: 500 * time.Millisecond},
		{attempt: 1, want: time.Second},
		{attempt: 2, want: 2 * time.Second},
		{attempt: 5, want: 16 * time.Second},
		{attempt: 6, want: maxRetryDelay},
		{attempt: 40, want: maxRetryDelay},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, backoff(500*time.Millisecond, tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestSleepWithJitter_RespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := sleepWithJitter(ctx, time.Minute)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSleepWithJitter_ZeroDelay(t *testing.T) {
	assert.NoError(t, sleepWithJitter(context.Background(), 0))
}
