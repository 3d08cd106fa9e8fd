package crawler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy_Unbounded(t *testing.T) {
	p := RetryPolicy{Interval: time.Second}
	for _, attempt := range []int{1, 10, 10000} {
		wait, ok := p.Next(attempt)
		assert.True(t, ok)
		assert.Equal(t, time.Second, wait)
	}
}

func TestRetryPolicy_Bounded(t *testing.T) {
	p := RetryPolicy{Interval: time.Second, MaxAttempts: 2}
	_, ok := p.Next(2)
	assert.True(t, ok)
	_, ok = p.Next(3)
	assert.False(t, ok)
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	started := time.Now()
	err := Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(started), time.Second)
}

func TestSleep_Elapses(t *testing.T) {
	assert.NoError(t, Sleep(context.Background(), 5*time.Millisecond))
	assert.NoError(t, Sleep(context.Background(), 0))
}
