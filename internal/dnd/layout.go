package dnd

import (
	"fmt"
	"strings"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/domain/entity"
)

// Layout selects how a zone turns a pointer position into an insertion index.
type Layout int

const (
	// LayoutNone zones accept drops but do not order their children.
	LayoutNone Layout = iota
	LayoutHorizontal
	LayoutVertical
	LayoutGrid
)

// String returns the layout name.
func (l Layout) String() string {
	switch l {
	case LayoutHorizontal:
		return "horizontal"
	case LayoutVertical:
		return "vertical"
	case LayoutGrid:
		return "grid"
	default:
		return "none"
	}
}

// ParseLayout parses a layout name. "both" is accepted as an alias of grid.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return LayoutNone, nil
	case "horizontal":
		return LayoutHorizontal, nil
	case "vertical":
		return LayoutVertical, nil
	case "grid", "both":
		return LayoutGrid, nil
	default:
		return LayoutNone, fmt.Errorf("unknown layout %q", s)
	}
}

// Snapshot is the cached geometry of a zone, valid between enter and leave/drop.
// Item rectangles are in container content space: relative to the
// container's top-left corner and shifted by its scroll offset.
type Snapshot struct {
	Container entity.Rect
	Scroll    entity.Point
	Items     []entity.Rect
	IDs       []string
}

// TakeSnapshot measures container and its eligible children: elements
// carrying the source attribute that are not currently being dragged.
func TakeSnapshot(container port.Element) *Snapshot {
	bounds := container.Bounds()
	scroll := container.Scroll()
	origin := entity.Point{X: bounds.X - scroll.X, Y: bounds.Y - scroll.Y}

	snap := &Snapshot{Container: bounds, Scroll: scroll}
	for _, child := range container.Children() {
		if _, ok := child.Attr(entity.AttrSource); !ok {
			continue
		}
		if _, dragging := child.Attr(entity.AttrDragging); dragging {
			continue
		}
		snap.Items = append(snap.Items, child.Bounds().RelativeTo(origin))
		snap.IDs = append(snap.IDs, child.ID())
	}
	return snap
}

// ToLocal converts a client-space point to container content space.
func (s *Snapshot) ToLocal(p entity.Point) entity.Point {
	return entity.Point{
		X: p.X - s.Container.X + s.Scroll.X,
		Y: p.Y - s.Container.Y + s.Scroll.Y,
	}
}

// ToClient converts a content-space rectangle back to client space.
func (s *Snapshot) ToClient(r entity.Rect) entity.Rect {
	return r.Translate(entity.Point{
		X: s.Container.X - s.Scroll.X,
		Y: s.Container.Y - s.Scroll.Y,
	})
}
