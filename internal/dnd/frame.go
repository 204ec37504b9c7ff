package dnd

import (
	"time"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/domain/entity"
)

// FrameState is the per-zone render scheduling state.
type FrameState int

const (
	FrameIdle FrameState = iota
	FrameScheduled
	FrameRendering
)

// String returns the state name.
func (s FrameState) String() string {
	switch s {
	case FrameScheduled:
		return "scheduled"
	case FrameRendering:
		return "rendering"
	default:
		return "idle"
	}
}

// frameRecord coalesces pointer updates into at most one render per frame.
// The latest pointer wins.
type frameRecord struct {
	state   FrameState
	handle  port.FrameHandle
	pointer entity.Point
}

// request stores pointer and schedules render unless a frame is already pending.
func (f *frameRecord) request(frames port.FrameScheduler, pointer entity.Point, render func()) {
	f.pointer = pointer
	if f.state == FrameScheduled {
		return
	}
	f.state = FrameScheduled
	f.handle = frames.RequestFrame(func(time.Time) {
		f.state = FrameRendering
		render()
		if f.state == FrameRendering {
			f.state = FrameIdle
		}
	})
}

// cancel drops a pending render.
func (f *frameRecord) cancel(frames port.FrameScheduler) {
	if f.state == FrameScheduled {
		frames.CancelFrame(f.handle)
	}
	f.state = FrameIdle
	f.handle = 0
}
