package dnd

import (
	"context"
	"math"
	"time"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/logging"
)

// SourceState is the per-source gesture state.
type SourceState int

const (
	SourceIdle SourceState = iota
	SourceDragging
	SourceSettling
)

// String returns the state name.
func (s SourceState) String() string {
	switch s {
	case SourceDragging:
		return "dragging"
	case SourceSettling:
		return "settling"
	default:
		return "idle"
	}
}

const (
	DefaultTickInterval   = 300 * time.Millisecond
	DefaultSettleDuration = 150 * time.Millisecond
	DefaultVelocityDecay  = 0.6
	DefaultVelocityWeight = 9.0

	maxTilt = 10.0
)

// SourceOptions configures a drag source.
type SourceOptions struct {
	// ID defaults to the element's source attribute, then to its element id.
	ID       entity.SourceID
	Zone     entity.ZoneID
	Payload  entity.Payload
	Previews port.PreviewFactory

	TickInterval   time.Duration
	Animations     bool
	SettleDuration time.Duration
	VelocityDecay  float64
	VelocityWeight float64
}

// Source wraps a draggable element and owns its floating preview.
type Source struct {
	id   entity.SourceID
	el   port.Element
	orch *Orchestrator
	opts SourceOptions

	state SourceState

	origin     entity.Rect
	grabOffset entity.Point
	pointer    entity.Point
	velocity   entity.Point
	preview    port.Preview
	frame      frameRecord
	ticker     port.Timer
	tickCtx    context.Context
	gesture    uint64
}

// NewSource wraps el and registers it with orch.
func NewSource(_ context.Context, orch *Orchestrator, el port.Element, opts SourceOptions) *Source {
	id := opts.ID
	if id == "" {
		if v, ok := el.Attr(entity.AttrSource); ok && v != "" {
			id = entity.SourceID(v)
		} else {
			id = entity.SourceID(el.ID())
		}
	}
	el.SetAttr(entity.AttrSource, string(id))

	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.SettleDuration <= 0 {
		opts.SettleDuration = DefaultSettleDuration
	}
	if opts.VelocityDecay <= 0 || opts.VelocityDecay >= 1 {
		opts.VelocityDecay = DefaultVelocityDecay
	}
	if opts.VelocityWeight <= 0 {
		opts.VelocityWeight = DefaultVelocityWeight
	}

	s := &Source{id: id, el: el, orch: orch, opts: opts}
	orch.registerSource(s)
	return s
}

// ID returns the source id.
func (s *Source) ID() entity.SourceID { return s.id }

// State returns the gesture state.
func (s *Source) State() SourceState { return s.state }

// Velocity returns the smoothed pointer velocity.
func (s *Source) Velocity() entity.Point { return s.velocity }

// OnDragStart moves idle → dragging: creates the operation, marks the
// element, schedules the preview and starts the periodic Drag re-emit.
func (s *Source) OnDragStart(ctx context.Context, ev *entity.NativeEvent) error {
	log := logging.FromContext(ctx)
	if s.state != SourceIdle {
		log.Debug().Str("source", string(s.id)).Str("state", s.state.String()).Msg("dragstart ignored")
		return nil
	}

	op, err := s.orch.Begin(ctx, s.id, s.opts.Zone, s.opts.Payload)
	if err != nil {
		log.Error().Err(err).Str("source", string(s.id)).Msg("cannot start drag")
		return err
	}
	if ev.Transfer != nil {
		op.SetTransfer(ev.Transfer)
	}

	s.origin = s.el.Bounds()
	s.pointer = ev.Client
	s.grabOffset = ev.Client.Sub(entity.Point{X: s.origin.X, Y: s.origin.Y})
	s.velocity = entity.Point{}
	s.gesture++
	s.state = SourceDragging

	s.el.SetAttr(entity.AttrDragging, "true")
	s.schedulePreview()

	s.tickCtx = ctx
	s.armTicker(s.gesture)

	s.orch.publish(ctx, entity.EventDragStart, "", ev.Client, ev)
	return nil
}

// OnDrag updates the pointer and the smoothed velocity used for tilt.
func (s *Source) OnDrag(ctx context.Context, ev *entity.NativeEvent) {
	if s.state != SourceDragging {
		return
	}
	// Platforms report (0,0) on the final drag event of a gesture.
	if ev.Client == (entity.Point{}) && ev.Screen == (entity.Point{}) {
		return
	}

	delta := ev.Client.Sub(s.pointer)
	decay := s.opts.VelocityDecay
	s.velocity = entity.Point{
		X: s.velocity.X*decay + (delta.X/s.opts.VelocityWeight)*(1-decay),
		Y: s.velocity.Y*decay + (delta.Y/s.opts.VelocityWeight)*(1-decay),
	}
	s.pointer = ev.Client

	s.schedulePreview()
	s.orch.publish(ctx, entity.EventDrag, s.currentZone(), ev.Client, ev)
}

// OnDragEnd moves dragging → settling. A drop with no target zone, or
// back onto the origin zone, is a cancellation and animates back to the origin.
func (s *Source) OnDragEnd(ctx context.Context, ev *entity.NativeEvent) {
	if s.state != SourceDragging {
		return
	}
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}

	op, _ := s.orch.End(ctx, ev)
	cancelled := op == nil || op.Cancelled()

	s.state = SourceSettling
	s.frame.cancel(s.orch.frames)

	target := s.origin
	if !cancelled {
		pos := s.orch.Pointer().Sub(s.grabOffset)
		target = entity.Rect{X: pos.X, Y: pos.Y, Width: s.origin.Width, Height: s.origin.Height}
	}

	logging.FromContext(ctx).Debug().
		Str("source", string(s.id)).
		Bool("cancelled", cancelled).
		Msg("drag source settling")

	if s.opts.Animations && s.preview != nil {
		gesture := s.gesture
		s.preview.Animate(target, s.opts.SettleDuration, func() {
			if s.gesture == gesture {
				s.finish()
			}
		})
	}
	s.el.RemoveAttr(entity.AttrDragging)

	if !s.opts.Animations || s.preview == nil {
		s.finish()
	}
}

// finish moves settling → idle.
func (s *Source) finish() {
	if s.state != SourceSettling {
		return
	}
	if s.preview != nil {
		s.preview.Destroy()
	}
	s.preview = nil
	s.frame = frameRecord{}
	s.pointer = entity.Point{}
	s.velocity = entity.Point{}
	s.grabOffset = entity.Point{}
	s.origin = entity.Rect{}
	s.tickCtx = nil
	s.state = SourceIdle
}

func (s *Source) schedulePreview() {
	s.frame.request(s.orch.frames, s.pointer, s.renderPreview)
}

func (s *Source) renderPreview() {
	if s.state != SourceDragging {
		return
	}
	if s.preview == nil {
		if s.opts.Previews == nil {
			return
		}
		s.preview = s.opts.Previews.NewPreview(s.el, s.origin)
	}
	pos := s.frame.pointer.Sub(s.grabOffset)
	s.preview.MoveTo(pos, s.tilt())
}

func (s *Source) tilt() float64 {
	return math.Max(-maxTilt, math.Min(maxTilt, s.velocity.X))
}

func (s *Source) armTicker(gesture uint64) {
	s.ticker = s.orch.clock.AfterFunc(s.opts.TickInterval, func() {
		if s.state != SourceDragging || s.gesture != gesture {
			return
		}
		s.orch.publish(s.tickCtx, entity.EventDrag, s.currentZone(), s.pointer, nil)
		s.armTicker(gesture)
	})
}

func (s *Source) currentZone() entity.ZoneID {
	if op := s.orch.Active(); op != nil {
		return op.ToZone()
	}
	return ""
}
