package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bnema/dragkit/internal/application/port"
)

// Virtual is a manually driven clock and frame scheduler.
// Time only moves through Advance and Sleep; frames only run through Frame.
type Virtual struct {
	mu     sync.Mutex
	now    time.Time
	timers []*virtualTimer
	frames []frameEntry
	next   port.FrameHandle
	seq    uint64
	sleeps []time.Duration
}

var (
	_ port.FrameScheduler = (*Virtual)(nil)
	_ port.Clock          = (*Virtual)(nil)
)

type virtualTimer struct {
	v       *Virtual
	when    time.Time
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

func (t *virtualTimer) Stop() bool {
	t.v.mu.Lock()
	defer t.v.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewVirtual returns a virtual clock starting at start.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

// Now returns the virtual time.
func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// AfterFunc registers fn to fire once virtual time reaches now+d.
func (v *Virtual) AfterFunc(d time.Duration, fn func()) port.Timer {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.seq++
	t := &virtualTimer{v: v, when: v.now.Add(d), seq: v.seq, fn: fn}
	v.timers = append(v.timers, t)
	return t
}

// Sleep advances virtual time by d without firing timers and records the sleep.
func (v *Virtual) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	v.now = v.now.Add(d)
	v.sleeps = append(v.sleeps, d)
	return nil
}

// Sleeps returns every duration passed to Sleep.
func (v *Virtual) Sleeps() []time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]time.Duration(nil), v.sleeps...)
}

// Advance moves time forward by d, firing due timers in deadline order.
func (v *Virtual) Advance(d time.Duration) {
	v.mu.Lock()
	target := v.now.Add(d)
	v.mu.Unlock()

	for {
		t := v.popDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	v.mu.Lock()
	if v.now.Before(target) {
		v.now = target
	}
	v.mu.Unlock()
}

func (v *Virtual) popDue(target time.Time) *virtualTimer {
	v.mu.Lock()
	defer v.mu.Unlock()

	live := v.timers[:0]
	for _, t := range v.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	v.timers = live

	sort.Slice(v.timers, func(i, j int) bool {
		if v.timers[i].when.Equal(v.timers[j].when) {
			return v.timers[i].seq < v.timers[j].seq
		}
		return v.timers[i].when.Before(v.timers[j].when)
	})

	if len(v.timers) == 0 || v.timers[0].when.After(target) {
		return nil
	}
	t := v.timers[0]
	t.fired = true
	v.timers = v.timers[1:]
	if t.when.After(v.now) {
		v.now = t.when
	}
	return t
}

// RequestFrame queues fn for the next Frame call.
func (v *Virtual) RequestFrame(fn func(time.Time)) port.FrameHandle {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.next++
	v.frames = append(v.frames, frameEntry{handle: v.next, fn: fn})
	return v.next
}

// CancelFrame drops a pending frame callback.
func (v *Virtual) CancelFrame(h port.FrameHandle) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, f := range v.frames {
		if f.handle == h {
			v.frames = append(v.frames[:i], v.frames[i+1:]...)
			return
		}
	}
}

// PendingFrames returns the number of queued frame callbacks.
func (v *Virtual) PendingFrames() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.frames)
}

// Frame runs the callbacks queued before the call and returns how many ran.
// Callbacks requested while the frame runs wait for the next Frame.
func (v *Virtual) Frame() int {
	v.mu.Lock()
	pending := v.frames
	v.frames = nil
	now := v.now
	v.mu.Unlock()

	for _, f := range pending {
		f.fn(now)
	}
	return len(pending)
}
