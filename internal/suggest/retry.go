package suggest

import (
	"context"
	"time"
)

// MaxBackoff caps a single retry wait.
const MaxBackoff = 30 * time.Second

// Backoff returns the wait before retry number n (0-based): base doubled n times.
func Backoff(base time.Duration, n int) time.Duration {
	if base <= 0 {
		return 0
	}

	d := base
	for i := 0; i < n; i++ {
		d *= 2
		if d >= MaxBackoff {
			return MaxBackoff
		}
	}

	return min(d, MaxBackoff)
}

// sleepWithCtx waits for d or until ctx is done, returning ctx.Err() in the
// latter case.
func sleepWithCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
