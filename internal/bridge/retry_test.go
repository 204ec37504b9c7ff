package bridge_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/dragkit/internal/bridge"
	"github.com/bnema/dragkit/internal/infrastructure/scheduler"
)

var epoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestRetry_ExhaustsAfterFiveChecks(t *testing.T) {
	clock := scheduler.NewVirtual(epoch)
	probes := 0

	v, found, attempts := bridge.Retry(context.Background(), clock, bridge.DefaultRetryPolicy(), func() (string, bool) {
		probes++
		return "", false
	})

	assert.False(t, found)
	assert.Empty(t, v)
	assert.Equal(t, 5, attempts)
	assert.Equal(t, 5, probes)
	assert.Equal(t, []time.Duration{5 * time.Millisecond, 5 * time.Millisecond, 5 * time.Millisecond, 5 * time.Millisecond}, clock.Sleeps())
	assert.Equal(t, 20*time.Millisecond, clock.Now().Sub(epoch))
}

func TestRetry_StopsOnFirstHit(t *testing.T) {
	clock := scheduler.NewVirtual(epoch)
	probes := 0

	v, found, attempts := bridge.Retry(context.Background(), clock, bridge.DefaultRetryPolicy(), func() (int, bool) {
		probes++
		return probes * 10, probes == 3
	})

	assert.True(t, found)
	assert.Equal(t, 30, v)
	assert.Equal(t, 3, attempts)
	assert.Len(t, clock.Sleeps(), 2)
}

func TestRetry_ImmediateHitNeverSleeps(t *testing.T) {
	clock := scheduler.NewVirtual(epoch)

	_, found, attempts := bridge.Retry(context.Background(), clock, bridge.DefaultRetryPolicy(), func() (bool, bool) {
		return true, true
	})

	assert.True(t, found)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, clock.Sleeps())
}

func TestRetry_CancelledContextStopsWaiting(t *testing.T) {
	clock := scheduler.NewVirtual(epoch)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, found, attempts := bridge.Retry(ctx, clock, bridge.RetryPolicy{Attempts: 10, Delay: time.Second}, func() (string, bool) {
		return "", false
	})

	assert.False(t, found)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, clock.Sleeps())
}

func TestRetry_NonPositiveAttemptsProbesOnce(t *testing.T) {
	clock := scheduler.NewVirtual(epoch)
	probes := 0

	_, _, attempts := bridge.Retry(context.Background(), clock, bridge.RetryPolicy{}, func() (string, bool) {
		probes++
		return "", false
	})

	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, probes)
}
