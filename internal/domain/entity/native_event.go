package entity

// NativeEventType is the name of a platform drag/drop event.
type NativeEventType string

const (
	EventTypeDragStart NativeEventType = "dragstart"
	EventTypeDrag      NativeEventType = "drag"
	EventTypeDragEnd   NativeEventType = "dragend"
	EventTypeDragEnter NativeEventType = "dragenter"
	EventTypeDragOver  NativeEventType = "dragover"
	EventTypeDragLeave NativeEventType = "dragleave"
	EventTypeDrop      NativeEventType = "drop"
	EventTypePaste     NativeEventType = "paste"
)

// Modifiers holds the keyboard modifier state of an event.
type Modifiers struct {
	Alt   bool
	Ctrl  bool
	Meta  bool
	Shift bool
}

// NativeEvent is a platform drag/drop event with the standard fields.
type NativeEvent struct {
	Type      NativeEventType
	Client    Point
	Page      Point
	Screen    Point
	Modifiers Modifiers
	Transfer  *Transfer
	// TargetID identifies the element the event was dispatched to.
	TargetID string
	// Synthetic is set on events re-dispatched by the bridge.
	Synthetic bool

	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault marks the event's default action as cancelled.
func (e *NativeEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *NativeEvent) DefaultPrevented() bool { return e.defaultPrevented }

// StopImmediatePropagation stops delivery to any further listener.
func (e *NativeEvent) StopImmediatePropagation() { e.propagationStopped = true }

// PropagationStopped reports whether StopImmediatePropagation was called.
func (e *NativeEvent) PropagationStopped() bool { return e.propagationStopped }

// Redispatch returns a fresh synthetic copy of e of the given type carrying
// transfer, with the original pointer coordinates and modifiers.
func (e *NativeEvent) Redispatch(typ NativeEventType, transfer *Transfer) *NativeEvent {
	return &NativeEvent{
		Type:      typ,
		Client:    e.Client,
		Page:      e.Page,
		Screen:    e.Screen,
		Modifiers: e.Modifiers,
		Transfer:  transfer,
		TargetID:  e.TargetID,
		Synthetic: true,
	}
}
