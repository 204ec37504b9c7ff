// Package scheduler provides the frame and timer capabilities the engine
// runs on: a cooperative single-goroutine event loop for real use, and a
// virtual clock for deterministic tests.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/logging"
)

// DefaultFrameInterval approximates a 60Hz display.
const DefaultFrameInterval = 16 * time.Millisecond

type frameEntry struct {
	handle port.FrameHandle
	fn     func(time.Time)
}

// Loop is a cooperative event loop. Every callback (posted task, timer,
// frame) runs on the goroutine that called Run, one at a time.
type Loop struct {
	tasks         chan func()
	frameInterval time.Duration
	stopped       chan struct{}
	stopOnce      sync.Once

	mu     sync.Mutex
	frames []frameEntry
	next   port.FrameHandle
}

var (
	_ port.FrameScheduler = (*Loop)(nil)
	_ port.Clock          = (*Loop)(nil)
)

// NewLoop creates a loop that flushes frame callbacks every frameInterval.
func NewLoop(frameInterval time.Duration) *Loop {
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	return &Loop{
		tasks:         make(chan func(), 256),
		frameInterval: frameInterval,
		stopped:       make(chan struct{}),
	}
}

// Post queues fn to run on the loop goroutine. Safe from any goroutine.
// Once Run has returned, fn is dropped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.stopped:
		return
	default:
	}
	select {
	case <-l.stopped:
	case l.tasks <- fn:
	}
}

// RequestFrame schedules fn for the next frame flush.
func (l *Loop) RequestFrame(fn func(time.Time)) port.FrameHandle {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.next++
	l.frames = append(l.frames, frameEntry{handle: l.next, fn: fn})
	return l.next
}

// CancelFrame drops a pending frame callback.
func (l *Loop) CancelFrame(h port.FrameHandle) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, f := range l.frames {
		if f.handle == h {
			l.frames = append(l.frames[:i], l.frames[i+1:]...)
			return
		}
	}
}

// Now returns the wall clock time.
func (*Loop) Now() time.Time {
	return time.Now()
}

type loopTimer struct {
	t *time.Timer
}

func (lt loopTimer) Stop() bool { return lt.t.Stop() }

// AfterFunc runs fn on the loop goroutine after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) port.Timer {
	return loopTimer{t: time.AfterFunc(d, func() { l.Post(fn) })}
}

// Sleep blocks the calling goroutine. It must not be called from the loop goroutine.
func (*Loop) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run processes tasks and frames until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	ticker := time.NewTicker(l.frameInterval)
	defer ticker.Stop()
	defer l.stopOnce.Do(func() { close(l.stopped) })

	log.Debug().Dur("frame_interval", l.frameInterval).Msg("event loop started")

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("event loop stopped")
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		case now := <-ticker.C:
			l.flushFrames(now)
		}
	}
}

func (l *Loop) flushFrames(now time.Time) {
	l.mu.Lock()
	pending := l.frames
	l.frames = nil
	l.mu.Unlock()

	for _, f := range pending {
		f.fn(now)
	}
}
