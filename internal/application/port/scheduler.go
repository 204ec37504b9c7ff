package port

import (
	"context"
	"time"
)

// FrameHandle identifies a pending frame callback.
type FrameHandle uint64

// FrameScheduler runs callbacks on the display's next frame.
// It abstracts the platform animation-frame API.
type FrameScheduler interface {
	RequestFrame(fn func(now time.Time)) FrameHandle
	CancelFrame(h FrameHandle)
}

// Timer is a pending AfterFunc callback.
type Timer interface {
	// Stop prevents the callback from firing. Returns false if it already fired or was stopped.
	Stop() bool
}

// Clock provides time and timers to the engine.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
	// Sleep waits for d or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
}
