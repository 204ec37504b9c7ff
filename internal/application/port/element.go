package port

import "github.com/bnema/dragkit/internal/domain/entity"

// Element is the engine's view of a rendered element.
// Implementations adapt the host toolkit (DOM, GTK widget tree, scene graph).
type Element interface {
	ID() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)

	// Bounds returns the element's bounding box in client coordinates.
	Bounds() entity.Rect
	// Scroll returns the scroll offset of the element's content.
	Scroll() entity.Point
	Children() []Element
}
