package dnd

import (
	"math"

	"github.com/bnema/dragkit/internal/domain/entity"
)

// DefaultRowTolerance is how far apart, in pixels, two vertical centers may
// be while still belonging to the same grid row.
const DefaultRowTolerance = 10.0

// Placement is a resolved insertion point.
type Placement struct {
	Index    int
	Position entity.DropPosition
}

// ResolveOptions tunes index resolution.
type ResolveOptions struct {
	RowTolerance float64
	// IndexColumnWidth is subtracted from the pointer's x in horizontal
	// layouts whose items are preceded by a list-marker column.
	IndexColumnWidth float64
}

// ResolveIndex maps a client-space pointer to an insertion index in [0, len(Items)].
//
// Every distance comparison uses strict "<", so among equal candidates the
// first one in item order wins.
func ResolveIndex(layout Layout, snap *Snapshot, pointer entity.Point, opts ResolveOptions) Placement {
	if snap == nil || len(snap.Items) == 0 {
		return Placement{Index: 0, Position: entity.PositionBefore}
	}
	p := snap.ToLocal(pointer)

	switch layout {
	case LayoutHorizontal:
		return resolveAxis(snap.Items, p.X-opts.IndexColumnWidth, horizontalSpan)
	case LayoutVertical:
		return resolveAxis(snap.Items, p.Y, verticalSpan)
	case LayoutGrid:
		tol := opts.RowTolerance
		if tol <= 0 {
			tol = DefaultRowTolerance
		}
		return resolveGrid(snap.Items, p, tol)
	default:
		return Placement{Index: 0, Position: entity.PositionNone}
	}
}

func horizontalSpan(r entity.Rect) (float64, float64) { return r.Left(), r.Right() }
func verticalSpan(r entity.Rect) (float64, float64)   { return r.Top(), r.Bottom() }

func resolveAxis(items []entity.Rect, v float64, span func(entity.Rect) (float64, float64)) Placement {
	for i, r := range items {
		lead, trail := span(r)
		if v < lead || v > trail {
			continue
		}
		if v < (lead+trail)/2 {
			return Placement{Index: i, Position: entity.PositionBefore}
		}
		return Placement{Index: i + 1, Position: entity.PositionAfter}
	}

	best := math.Inf(1)
	var out Placement
	for i, r := range items {
		lead, trail := span(r)
		if d := math.Abs(v - lead); d < best {
			best = d
			out = Placement{Index: i, Position: entity.PositionBefore}
		}
		if d := math.Abs(v - trail); d < best {
			best = d
			out = Placement{Index: i + 1, Position: entity.PositionAfter}
		}
	}
	return out
}

// splitAtMidX places before or after item i depending on which horizontal half p is in.
func splitAtMidX(items []entity.Rect, i int, p entity.Point) Placement {
	if p.X < items[i].Center().X {
		return Placement{Index: i, Position: entity.PositionBefore}
	}
	return Placement{Index: i + 1, Position: entity.PositionAfter}
}

// gridRows groups consecutive items whose vertical centers lie within tol
// of the row's first item. Each row is a [first, last] index pair.
func gridRows(items []entity.Rect, tol float64) [][2]int {
	var rows [][2]int
	start := 0
	for i := 1; i <= len(items); i++ {
		if i == len(items) || math.Abs(items[i].Center().Y-items[start].Center().Y) > tol {
			rows = append(rows, [2]int{start, i - 1})
			start = i
		}
	}
	return rows
}

func rowBand(items []entity.Rect, row [2]int) (top, bottom float64) {
	top, bottom = math.Inf(1), math.Inf(-1)
	for i := row[0]; i <= row[1]; i++ {
		top = math.Min(top, items[i].Top())
		bottom = math.Max(bottom, items[i].Bottom())
	}
	return top, bottom
}

func resolveGrid(items []entity.Rect, p entity.Point, tol float64) Placement {
	n := len(items)
	first, last := items[0], items[n-1]

	if p.Y < first.Top() || (p.Y <= first.Bottom() && p.X < first.Left()) {
		return Placement{Index: 0, Position: entity.PositionBefore}
	}
	if p.Y > last.Bottom() || (p.Y >= last.Top() && p.X > last.Right()) {
		return Placement{Index: n, Position: entity.PositionAfter}
	}

	for i := range items {
		if items[i].Contains(p) {
			return splitAtMidX(items, i, p)
		}
	}

	rows := gridRows(items, tol)
	for r, row := range rows {
		top, bottom := rowBand(items, row)

		if p.Y >= top && p.Y <= bottom {
			if p.X < items[row[0]].Left() {
				return Placement{Index: row[0], Position: entity.PositionBefore}
			}
			for i := row[0]; i < row[1]; i++ {
				if p.X > items[i].Right() && p.X < items[i+1].Left() {
					return Placement{Index: i + 1, Position: entity.PositionBefore}
				}
			}
			if p.X > items[row[1]].Right() {
				return Placement{Index: row[1] + 1, Position: entity.PositionAfter}
			}
		}

		if r+1 < len(rows) {
			next := rows[r+1]
			nextTop, _ := rowBand(items, next)
			if p.Y > bottom && p.Y < nextTop {
				for j := next[0]; j <= next[1]; j++ {
					if p.X < items[j].Center().X {
						return Placement{Index: j, Position: entity.PositionBefore}
					}
				}
				return Placement{Index: next[1] + 1, Position: entity.PositionAfter}
			}
		}
	}

	best := math.Inf(1)
	closest := 0
	for i, r := range items {
		if d := p.Distance(r.Center()); d < best {
			best = d
			closest = i
		}
	}
	return splitAtMidX(items, closest, p)
}

// IndicatorRect returns the client-space line where the indicator for pl is drawn.
// Single-axis and grid zones draw a line across the item edge; empty zones
// draw along the container's leading edge.
func IndicatorRect(layout Layout, snap *Snapshot, pl Placement) entity.Rect {
	if snap == nil {
		return entity.Rect{}
	}
	if len(snap.Items) == 0 {
		c := snap.Container
		if layout == LayoutHorizontal {
			return entity.Rect{X: c.X, Y: c.Y, Height: c.Height}
		}
		return entity.Rect{X: c.X, Y: c.Y, Width: c.Width}
	}

	var item entity.Rect
	before := pl.Position != entity.PositionAfter
	switch {
	case before && pl.Index < len(snap.Items):
		item = snap.Items[pl.Index]
	case pl.Index > 0:
		item = snap.Items[min(pl.Index, len(snap.Items))-1]
		before = false
	default:
		item = snap.Items[0]
		before = true
	}

	var line entity.Rect
	if layout == LayoutVertical {
		y := item.Bottom()
		if before {
			y = item.Top()
		}
		line = entity.Rect{X: item.X, Y: y, Width: item.Width}
	} else {
		x := item.Right()
		if before {
			x = item.Left()
		}
		line = entity.Rect{X: x, Y: item.Y, Height: item.Height}
	}
	return snap.ToClient(line)
}
