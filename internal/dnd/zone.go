package dnd

import (
	"context"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/logging"
)

// ZoneOptions configures a drop zone.
type ZoneOptions struct {
	// ID defaults to the element's zone attribute, then to its element id.
	ID     entity.ZoneID
	Layout Layout
	// Kinds restricts the default policy to payloads carrying one of them.
	Kinds []entity.PayloadKind
	// Policy replaces the kinds check when set.
	Policy    port.AcceptPolicy
	Indicator port.Indicator
	Resolve   ResolveOptions
}

// Zone wraps a droppable region. With a layout other than LayoutNone it
// also computes an insertion index for its children.
type Zone struct {
	id        entity.ZoneID
	el        port.Element
	orch      *Orchestrator
	layout    Layout
	policy    port.AcceptPolicy
	indicator port.Indicator
	resolve   ResolveOptions
	area      *Area

	depth    int
	claimed  bool
	snapshot *Snapshot
	frame    frameRecord

	last      Placement
	lastValid bool
}

// NewZone creates a zone over el and registers it with orch.
func NewZone(ctx context.Context, orch *Orchestrator, el port.Element, opts ZoneOptions) *Zone {
	id := opts.ID
	if id == "" {
		if v, ok := el.Attr(entity.AttrZone); ok && v != "" {
			id = entity.ZoneID(v)
		} else {
			id = entity.ZoneID(el.ID())
		}
	}
	el.SetAttr(entity.AttrZone, string(id))

	policy := opts.Policy
	if policy == nil {
		policy = KindsPolicy(opts.Kinds...)
	}

	z := &Zone{
		id:        id,
		el:        el,
		orch:      orch,
		layout:    opts.Layout,
		policy:    policy,
		indicator: opts.Indicator,
		resolve:   opts.Resolve,
	}
	orch.registerZone(ctx, z)
	return z
}

// ID returns the zone id.
func (z *Zone) ID() entity.ZoneID { return z.id }

// Element returns the wrapped element.
func (z *Zone) Element() port.Element { return z.el }

// Layout returns the zone's layout strategy.
func (z *Zone) Layout() Layout { return z.layout }

// Area returns the area the zone belongs to, or nil.
func (z *Zone) Area() *Area { return z.area }

// Depth returns the current enter/leave nesting depth.
func (z *Zone) Depth() int { return z.depth }

// FrameState returns the render scheduling state.
func (z *Zone) FrameState() FrameState { return z.frame.state }

// Snapshot returns the cached geometry, nil outside enter..leave.
func (z *Zone) Snapshot() *Snapshot { return z.snapshot }

func (z *Zone) areaID() entity.AreaID {
	if z.area == nil {
		return ""
	}
	return z.area.id
}

// Accepts reports whether the zone accepts op in its current state.
func (z *Zone) Accepts(op *entity.Operation) bool {
	if op == nil {
		return false
	}
	if z.area != nil && !z.area.Accepts(op) {
		return false
	}
	return z.policy(op)
}

// OnDragEnter counts an enter. Only the 0→1 transition is a semantic enter.
func (z *Zone) OnDragEnter(ctx context.Context, op *entity.Operation, ev *entity.NativeEvent) {
	z.depth++
	if z.depth != 1 || op == nil {
		return
	}
	if !z.Accepts(op) {
		logging.FromContext(ctx).Debug().Str("zone_id", string(z.id)).Msg("zone rejected drag")
		return
	}

	z.claimed = true
	z.snapshot = TakeSnapshot(z.el)
	z.lastValid = false
	op.SetTarget(z.id, z.areaID())

	pointer := entity.Point{}
	if ev != nil {
		pointer = ev.Client
		ev.PreventDefault()
	}
	z.orch.publish(ctx, entity.EventDragTargetEnter, z.id, pointer, ev)
}

// OnDragOver records the pointer and schedules an index update on the next frame.
func (z *Zone) OnDragOver(ctx context.Context, op *entity.Operation, ev *entity.NativeEvent) {
	if !z.claimed || op == nil || ev == nil {
		return
	}
	ev.PreventDefault()
	if z.layout == LayoutNone {
		return
	}
	z.frame.request(z.orch.frames, ev.Client, func() { z.render(ctx, op) })
}

// OnDragLeave counts a leave. Only the 1→0 transition is a semantic leave.
func (z *Zone) OnDragLeave(ctx context.Context, op *entity.Operation, ev *entity.NativeEvent) {
	z.depth--
	if z.depth < 0 {
		z.depth = 0
	}
	if z.depth != 0 || !z.claimed {
		return
	}

	z.reset()
	if op != nil && op.ToZone() == z.id {
		op.SetTarget("", "")
	}

	pointer := entity.Point{}
	if ev != nil {
		pointer = ev.Client
	}
	z.orch.publish(ctx, entity.EventDragTargetLeave, z.id, pointer, ev)
}

// OnDrop resolves the final placement synchronously and releases the zone.
// It returns false when the zone did not claim the drag.
func (z *Zone) OnDrop(ctx context.Context, op *entity.Operation, ev *entity.NativeEvent) (Placement, bool) {
	defer func() {
		z.depth = 0
		z.reset()
	}()

	if !z.claimed || op == nil {
		return Placement{}, false
	}
	if ev != nil {
		ev.PreventDefault()
		if ev.Transfer != nil {
			op.SetTransfer(ev.Transfer)
		}
	}

	if z.layout == LayoutNone {
		return Placement{}, true
	}

	pointer := z.frame.pointer
	if ev != nil {
		pointer = ev.Client
	}
	pl := ResolveIndex(z.layout, z.snapshot, pointer, z.resolve)
	if !z.probe(op, pl) {
		logging.FromContext(ctx).Debug().
			Str("zone_id", string(z.id)).
			Int("index", pl.Index).
			Msg("drop index rejected by policy")
		op.SetTarget("", "")
		return pl, false
	}
	op.SetIndex(pl.Index, pl.Position)
	return pl, true
}

// Resolve computes the placement for a client-space pointer, measuring the
// zone when no snapshot is cached.
func (z *Zone) Resolve(pointer entity.Point) Placement {
	snap := z.snapshot
	if snap == nil {
		snap = TakeSnapshot(z.el)
	}
	return ResolveIndex(z.layout, snap, pointer, z.resolve)
}

// probe asks the policy whether op is acceptable at pl by setting the
// index temporarily, then restores the previous value.
func (z *Zone) probe(op *entity.Operation, pl Placement) bool {
	prevIndex, hadIndex := op.Index()
	prevPos := op.DropPosition()

	op.SetIndex(pl.Index, pl.Position)
	ok := z.Accepts(op)

	if hadIndex {
		op.SetIndex(prevIndex, prevPos)
	} else {
		op.ClearIndex()
	}
	return ok
}

func (z *Zone) render(ctx context.Context, op *entity.Operation) {
	if !z.claimed || op.Finished() {
		return
	}
	pl := ResolveIndex(z.layout, z.snapshot, z.frame.pointer, z.resolve)

	if !z.probe(op, pl) {
		op.ClearIndex()
		if z.lastValid && z.indicator != nil {
			z.indicator.Hide()
		}
		z.lastValid = false
		return
	}

	op.SetIndex(pl.Index, pl.Position)
	if z.lastValid && z.last == pl {
		return
	}
	z.last = pl
	z.lastValid = true

	if z.indicator != nil {
		z.indicator.Show(IndicatorRect(z.layout, z.snapshot, pl), pl.Position)
	}
	logging.FromContext(ctx).Trace().
		Str("zone_id", string(z.id)).
		Int("index", pl.Index).
		Str("position", pl.Position.String()).
		Msg("insertion point changed")
}

// reset clears per-gesture state; the snapshot never outlives a leave or drop.
func (z *Zone) reset() {
	z.frame.cancel(z.orch.frames)
	if z.lastValid && z.indicator != nil {
		z.indicator.Hide()
	}
	z.claimed = false
	z.snapshot = nil
	z.lastValid = false
}
