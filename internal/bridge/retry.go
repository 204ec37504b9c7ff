package bridge

import (
	"context"
	"time"

	"github.com/bnema/dragkit/internal/application/port"
)

const (
	DefaultRetryAttempts = 5
	DefaultRetryDelay    = 5 * time.Millisecond
)

// RetryPolicy bounds a polling lookup.
type RetryPolicy struct {
	// Attempts is the total number of probes, the first one immediate.
	Attempts int
	// Delay is the fixed wait between two probes.
	Delay time.Duration
}

// DefaultRetryPolicy checks once, then four more times 5ms apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: DefaultRetryAttempts, Delay: DefaultRetryDelay}
}

// Retry calls probe until it reports success or the policy is exhausted.
// It returns the value, whether it was found, and how many probes ran.
// Waiting goes through clock so tests never sleep for real.
func Retry[T any](ctx context.Context, clock port.Clock, policy RetryPolicy, probe func() (T, bool)) (T, bool, int) {
	var zero T

	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if v, ok := probe(); ok {
			return v, true, attempt
		}
		if attempt == attempts {
			break
		}
		if err := clock.Sleep(ctx, policy.Delay); err != nil {
			return zero, false, attempt
		}
	}
	return zero, false, attempts
}
