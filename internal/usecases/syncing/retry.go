package syncing

import (
	"context"
	"math/rand"
	"time"
)

const maxRetryDelay = 30 * time.Second

// backoff dobra a espera a cada tentativa, até maxRetryDelay
func backoff(base time.Duration, attempt int) time.Duration {
	delay := base
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= maxRetryDelay {
			return maxRetryDelay
		}
	}
	return delay
}

// sleepWithJitter espera base + até 50% de jitter, respeitando o cancelamento do contexto
func sleepWithJitter(ctx context.Context, base time.Duration) error {
	if base <= 0 {
		return nil
	}

	wait := base
	if half := int64(base / 2); half > 0 {
		wait += time.Duration(rand.Int63n(half))
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
