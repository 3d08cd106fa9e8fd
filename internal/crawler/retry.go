package crawler

import (
	"context"
	"time"
)

// RetryPolicy spaces repeated attempts at the same id. MaxAttempts of zero
// retries forever.
type RetryPolicy struct {
	Interval    time.Duration
	MaxAttempts int
}

// Next reports the wait before retry number attempt (1-based) and whether
// another attempt is allowed.
func (p RetryPolicy) Next(attempt int) (time.Duration, bool) {
	if p.MaxAttempts > 0 && attempt > p.MaxAttempts {
		return 0, false
	}
	return p.Interval, true
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
