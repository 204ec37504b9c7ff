package entity

// EventKind identifies a published drag lifecycle event.
type EventKind int

const (
	EventDragStart EventKind = iota
	EventDrag
	EventDragTargetEnter
	EventDragTargetLeave
	EventDragEnd
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventDragStart:
		return "DragStart"
	case EventDrag:
		return "Drag"
	case EventDragTargetEnter:
		return "DragTargetEnter"
	case EventDragTargetLeave:
		return "DragTargetLeave"
	case EventDragEnd:
		return "DragEnd"
	default:
		return "Unknown"
	}
}

// DragEvent is delivered to bus subscribers.
type DragEvent struct {
	Kind      EventKind
	Operation OperationSnapshot
	// Zone is the zone entered or left for target events.
	Zone ZoneID
	// Pointer is the last known pointer position.
	Pointer Point
	// Native is the originating platform event, nil for timer-driven events.
	Native *NativeEvent
}
