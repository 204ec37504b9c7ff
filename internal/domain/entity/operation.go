package entity

import "time"

// OperationID uniquely identifies one drag gesture.
type OperationID string

// SourceID is the stable id carried by a draggable element.
type SourceID string

// ZoneID identifies a drop zone.
type ZoneID string

// AreaID identifies a group of zones.
type AreaID string

// Markup attributes of the declarative contract.
const (
	AttrSource   = "data-drag-source"
	AttrZone     = "data-drop-zone"
	AttrArea     = "data-drop-area"
	AttrDragging = "data-dragging"
)

// DropPosition tells on which side of the child at Index the indicator
// is drawn. It is derived from the index, never set independently.
type DropPosition int

const (
	PositionNone DropPosition = iota
	PositionBefore
	PositionAfter
)

// String returns the position name.
func (p DropPosition) String() string {
	switch p {
	case PositionBefore:
		return "before"
	case PositionAfter:
		return "after"
	default:
		return "none"
	}
}

// ParseDropPosition is the inverse of DropPosition.String.
func ParseDropPosition(s string) DropPosition {
	switch s {
	case "before":
		return PositionBefore
	case "after":
		return PositionAfter
	default:
		return PositionNone
	}
}

// Operation is the single mutable record of an in-flight drag.
// Only the orchestrator creates and finishes it; zones mutate the
// target fields through SetTarget, SetIndex and SetTransfer.
type Operation struct {
	id        OperationID
	source    SourceID
	fromZone  ZoneID
	payload   Payload
	startedAt time.Time

	toZone    ZoneID
	area      AreaID
	index     int
	hasIndex  bool
	position  DropPosition
	transfer  *Transfer
	cancelled bool
	finished  bool
}

// NewOperation creates an operation for a gesture started at startedAt.
func NewOperation(id OperationID, source SourceID, fromZone ZoneID, payload Payload, startedAt time.Time) *Operation {
	return &Operation{
		id:        id,
		source:    source,
		fromZone:  fromZone,
		payload:   payload,
		startedAt: startedAt,
	}
}

func (o *Operation) ID() OperationID      { return o.id }
func (o *Operation) Source() SourceID     { return o.source }
func (o *Operation) FromZone() ZoneID     { return o.fromZone }
func (o *Operation) ToZone() ZoneID       { return o.toZone }
func (o *Operation) Area() AreaID         { return o.area }
func (o *Operation) Payload() Payload     { return o.payload }
func (o *Operation) StartedAt() time.Time { return o.startedAt }
func (o *Operation) Transfer() *Transfer  { return o.transfer }
func (o *Operation) Cancelled() bool      { return o.cancelled }
func (o *Operation) Finished() bool       { return o.finished }

// Index returns the computed insertion index, if any.
func (o *Operation) Index() (int, bool) { return o.index, o.hasIndex }

// DropPosition returns the indicator side for the current index.
func (o *Operation) DropPosition() DropPosition { return o.position }

// SetTarget records the zone (and its area) currently claiming the pointer.
// An empty zone clears the target along with the index.
func (o *Operation) SetTarget(zone ZoneID, area AreaID) {
	o.toZone = zone
	o.area = area
	if zone == "" {
		o.ClearIndex()
	}
}

// SetIndex records the insertion index and its drop position.
func (o *Operation) SetIndex(index int, position DropPosition) {
	o.index = index
	o.hasIndex = true
	o.position = position
}

// ClearIndex forgets the insertion index.
func (o *Operation) ClearIndex() {
	o.index = 0
	o.hasIndex = false
	o.position = PositionNone
}

// SetTransfer records the native transfer handle.
func (o *Operation) SetTransfer(t *Transfer) { o.transfer = t }

// IsCancellation reports whether dropping now would be a cancellation:
// no target zone, or the zone the drag started from.
func (o *Operation) IsCancellation() bool {
	return o.toZone == "" || o.toZone == o.fromZone
}

// Finish freezes the operation and records whether it was cancelled.
func (o *Operation) Finish(cancelled bool) {
	o.cancelled = cancelled
	o.finished = true
}

// OperationSnapshot is a value copy of an operation for event consumers.
type OperationSnapshot struct {
	ID        OperationID
	Source    SourceID
	FromZone  ZoneID
	ToZone    ZoneID
	Area      AreaID
	Index     int
	HasIndex  bool
	Position  DropPosition
	Kinds     []PayloadKind
	Cancelled bool
	StartedAt time.Time
}

// Snapshot returns a value copy of the operation state.
func (o *Operation) Snapshot() OperationSnapshot {
	if o == nil {
		return OperationSnapshot{}
	}
	return OperationSnapshot{
		ID:        o.id,
		Source:    o.source,
		FromZone:  o.fromZone,
		ToZone:    o.toZone,
		Area:      o.area,
		Index:     o.index,
		HasIndex:  o.hasIndex,
		Position:  o.position,
		Kinds:     o.payload.Kinds(),
		Cancelled: o.cancelled,
		StartedAt: o.startedAt,
	}
}
