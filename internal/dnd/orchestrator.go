// Package dnd is the drag-and-drop orchestration engine: the single
// in-flight operation, drag sources, drop zones with index resolution,
// and the lifecycle event bus.
package dnd

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/logging"
)

// Options holds the capabilities injected into an orchestrator.
type Options struct {
	Clock  port.Clock
	Frames port.FrameScheduler
	// NewID mints operation ids; defaults to random UUIDs.
	NewID func() entity.OperationID
}

// Orchestrator owns the active operation, the zone and source registries,
// and the event bus. It is the only component that creates or finishes
// an operation. All methods must be called from the event loop goroutine.
type Orchestrator struct {
	clock  port.Clock
	frames port.FrameScheduler
	newID  func() entity.OperationID
	bus    *Bus

	active  *entity.Operation
	pointer entity.Point

	zones   []*Zone
	sources map[entity.SourceID]*Source
	hovered *Zone
}

// NewOrchestrator creates an orchestrator with no active operation.
func NewOrchestrator(ctx context.Context, opts Options) *Orchestrator {
	if opts.NewID == nil {
		opts.NewID = func() entity.OperationID { return entity.OperationID(uuid.NewString()) }
	}
	logging.FromContext(ctx).Debug().Msg("creating drag orchestrator")

	return &Orchestrator{
		clock:   opts.Clock,
		frames:  opts.Frames,
		newID:   opts.NewID,
		bus:     NewBus(),
		sources: make(map[entity.SourceID]*Source),
	}
}

// Bus returns the lifecycle event bus.
func (o *Orchestrator) Bus() *Bus { return o.bus }

// Active returns the in-flight operation, or nil.
func (o *Orchestrator) Active() *entity.Operation { return o.active }

// Pointer returns the last pointer position seen by any component.
func (o *Orchestrator) Pointer() entity.Point { return o.pointer }

// Begin creates the operation for a new gesture. It fails with
// ErrDragInProgress while another operation is active.
func (o *Orchestrator) Begin(ctx context.Context, source entity.SourceID, fromZone entity.ZoneID, payload entity.Payload) (*entity.Operation, error) {
	if o.active != nil {
		return nil, fmt.Errorf("begin drag from %s: %w (active %s)", source, entity.ErrDragInProgress, o.active.ID())
	}
	op := entity.NewOperation(o.newID(), source, fromZone, payload, o.clock.Now())
	o.active = op

	logging.FromContext(ctx).Debug().
		Str("operation_id", string(op.ID())).
		Str("source", string(source)).
		Str("from_zone", string(fromZone)).
		Msg("drag operation started")
	return op, nil
}

// End finishes and clears the active operation, publishing DragEnd.
// It returns false when there was nothing to end.
func (o *Orchestrator) End(ctx context.Context, native *entity.NativeEvent) (*entity.Operation, bool) {
	op := o.active
	if op == nil {
		return nil, false
	}
	if o.hovered != nil {
		o.hovered.OnDragLeave(ctx, op, native)
		o.hovered = nil
	}

	op.Finish(op.IsCancellation())
	o.active = nil

	logging.FromContext(ctx).Debug().
		Str("operation_id", string(op.ID())).
		Str("to_zone", string(op.ToZone())).
		Bool("cancelled", op.Cancelled()).
		Msg("drag operation ended")

	o.bus.Publish(ctx, entity.DragEvent{
		Kind:      entity.EventDragEnd,
		Operation: op.Snapshot(),
		Pointer:   o.pointer,
		Native:    native,
	})
	return op, true
}

func (o *Orchestrator) publish(ctx context.Context, kind entity.EventKind, zone entity.ZoneID, pointer entity.Point, native *entity.NativeEvent) {
	o.pointer = pointer
	o.bus.Publish(ctx, entity.DragEvent{
		Kind:      kind,
		Operation: o.active.Snapshot(),
		Zone:      zone,
		Pointer:   pointer,
		Native:    native,
	})
}

func (o *Orchestrator) registerZone(ctx context.Context, z *Zone) {
	o.zones = append(o.zones, z)
	logging.FromContext(ctx).Debug().Str("zone_id", string(z.id)).Str("layout", z.layout.String()).Msg("zone registered")
}

// UnregisterZone removes a zone from geometry routing.
func (o *Orchestrator) UnregisterZone(id entity.ZoneID) {
	for i, z := range o.zones {
		if z.id == id {
			if o.hovered == z {
				o.hovered = nil
			}
			o.zones = append(o.zones[:i], o.zones[i+1:]...)
			return
		}
	}
}

// Zone returns a registered zone by id.
func (o *Orchestrator) Zone(id entity.ZoneID) *Zone {
	for _, z := range o.zones {
		if z.id == id {
			return z
		}
	}
	return nil
}

func (o *Orchestrator) registerSource(s *Source) {
	o.sources[s.id] = s
}

// UnregisterSource removes a source from event routing.
func (o *Orchestrator) UnregisterSource(id entity.SourceID) {
	delete(o.sources, id)
}

// Source returns a registered source by id.
func (o *Orchestrator) Source(id entity.SourceID) *Source {
	return o.sources[id]
}

// ZoneAt returns the innermost zone whose bounds contain p. Among
// overlapping zones the smallest wins; equal sizes go to the later registration.
func (o *Orchestrator) ZoneAt(p entity.Point) *Zone {
	var best *Zone
	bestArea := 0.0
	for _, z := range o.zones {
		b := z.el.Bounds()
		if !b.Contains(p) {
			continue
		}
		area := b.Width * b.Height
		if best == nil || area <= bestArea {
			best, bestArea = z, area
		}
	}
	return best
}

// Dispatch is the global native-event listener. Source events are routed
// by target id; enter/over/leave/drop are routed to zones by geometry,
// synthesising one enter and one leave per zone boundary crossed. A leave
// whose pointer is still inside the hovered zone is ignored.
func (o *Orchestrator) Dispatch(ctx context.Context, ev *entity.NativeEvent) error {
	switch ev.Type {
	case entity.EventTypeDragStart:
		src := o.sources[entity.SourceID(ev.TargetID)]
		if src == nil {
			return fmt.Errorf("dragstart on unknown source %q", ev.TargetID)
		}
		return src.OnDragStart(ctx, ev)

	case entity.EventTypeDrag:
		if src := o.activeSource(); src != nil {
			src.OnDrag(ctx, ev)
		}

	case entity.EventTypeDragEnd:
		if src := o.activeSource(); src != nil {
			src.OnDragEnd(ctx, ev)
			return nil
		}
		o.End(ctx, ev)

	case entity.EventTypeDragEnter, entity.EventTypeDragOver:
		o.pointer = ev.Client
		o.route(ctx, ev)

	case entity.EventTypeDragLeave:
		// Native leaves also fire when crossing child boundaries inside a zone.
		if o.hovered != nil && o.ZoneAt(ev.Client) != o.hovered {
			o.pointer = ev.Client
			o.hovered.OnDragLeave(ctx, o.active, ev)
			o.hovered = nil
		}

	case entity.EventTypeDrop:
		o.pointer = ev.Client
		o.route(ctx, ev)
		if o.hovered != nil {
			z := o.hovered
			o.hovered = nil
			z.OnDrop(ctx, o.active, ev)
		}
	}
	return nil
}

func (o *Orchestrator) route(ctx context.Context, ev *entity.NativeEvent) {
	if o.active == nil {
		return
	}
	target := o.ZoneAt(ev.Client)
	if target != o.hovered {
		if o.hovered != nil {
			o.hovered.OnDragLeave(ctx, o.active, ev)
		}
		o.hovered = target
		if target != nil {
			target.OnDragEnter(ctx, o.active, ev)
		}
	}
	if target != nil && ev.Type != entity.EventTypeDrop {
		target.OnDragOver(ctx, o.active, ev)
	}
}

func (o *Orchestrator) activeSource() *Source {
	if o.active == nil {
		return nil
	}
	return o.sources[o.active.Source()]
}
