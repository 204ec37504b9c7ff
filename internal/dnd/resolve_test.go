package dnd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dragkit/internal/dnd"
	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/infrastructure/scene"
)

func rects(spans ...[2]float64) []entity.Rect {
	out := make([]entity.Rect, len(spans))
	for i, s := range spans {
		out[i] = entity.Rect{X: s[0], Width: s[1] - s[0], Height: 20}
	}
	return out
}

func pt(x, y float64) entity.Point { return entity.Point{X: x, Y: y} }

func TestResolveIndex_HorizontalInsideChild(t *testing.T) {
	snap := &dnd.Snapshot{Items: rects([2]float64{0, 50}, [2]float64{50, 100}, [2]float64{100, 150})}

	tests := []struct {
		name string
		x    float64
		want dnd.Placement
	}{
		{"third child left half", 110, dnd.Placement{Index: 2, Position: entity.PositionBefore}},
		{"third child just before midpoint", 120, dnd.Placement{Index: 2, Position: entity.PositionBefore}},
		{"third child right half", 130, dnd.Placement{Index: 3, Position: entity.PositionAfter}},
		{"first child left half", 5, dnd.Placement{Index: 0, Position: entity.PositionBefore}},
		{"shared edge goes to first child", 50, dnd.Placement{Index: 1, Position: entity.PositionAfter}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dnd.ResolveIndex(dnd.LayoutHorizontal, snap, pt(tt.x, 10), dnd.ResolveOptions{})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveIndex_NearestEdgeFallback(t *testing.T) {
	snap := &dnd.Snapshot{Items: rects([2]float64{0, 50}, [2]float64{100, 150})}

	got := dnd.ResolveIndex(dnd.LayoutHorizontal, snap, pt(70, 10), dnd.ResolveOptions{})
	assert.Equal(t, dnd.Placement{Index: 1, Position: entity.PositionAfter}, got)

	got = dnd.ResolveIndex(dnd.LayoutHorizontal, snap, pt(80, 10), dnd.ResolveOptions{})
	assert.Equal(t, dnd.Placement{Index: 1, Position: entity.PositionBefore}, got)

	// Equidistant from both edges: the first candidate in item order wins.
	got = dnd.ResolveIndex(dnd.LayoutHorizontal, snap, pt(75, 10), dnd.ResolveOptions{})
	assert.Equal(t, dnd.Placement{Index: 1, Position: entity.PositionAfter}, got)

	got = dnd.ResolveIndex(dnd.LayoutHorizontal, snap, pt(400, 10), dnd.ResolveOptions{})
	assert.Equal(t, dnd.Placement{Index: 2, Position: entity.PositionAfter}, got)
}

func TestResolveIndex_VerticalEmptyZone(t *testing.T) {
	snap := &dnd.Snapshot{Container: entity.Rect{Width: 100, Height: 100}}

	for _, p := range []entity.Point{pt(0, 0), pt(50, 500), pt(-10, -10)} {
		got := dnd.ResolveIndex(dnd.LayoutVertical, snap, p, dnd.ResolveOptions{})
		assert.Equal(t, dnd.Placement{Index: 0, Position: entity.PositionBefore}, got)
	}
}

func TestResolveIndex_Vertical(t *testing.T) {
	snap := &dnd.Snapshot{Items: []entity.Rect{
		{Y: 0, Width: 100, Height: 30},
		{Y: 30, Width: 100, Height: 30},
	}}

	assert.Equal(t, dnd.Placement{Index: 1, Position: entity.PositionAfter},
		dnd.ResolveIndex(dnd.LayoutVertical, snap, pt(10, 20), dnd.ResolveOptions{}))
	assert.Equal(t, dnd.Placement{Index: 1, Position: entity.PositionBefore},
		dnd.ResolveIndex(dnd.LayoutVertical, snap, pt(10, 40), dnd.ResolveOptions{}))
	assert.Equal(t, dnd.Placement{Index: 2, Position: entity.PositionAfter},
		dnd.ResolveIndex(dnd.LayoutVertical, snap, pt(10, 200), dnd.ResolveOptions{}))
}

func TestResolveIndex_IndexColumnCorrection(t *testing.T) {
	snap := &dnd.Snapshot{Items: rects([2]float64{0, 50}, [2]float64{50, 100}, [2]float64{100, 150})}

	got := dnd.ResolveIndex(dnd.LayoutHorizontal, snap, pt(130, 10), dnd.ResolveOptions{IndexColumnWidth: 20})
	assert.Equal(t, dnd.Placement{Index: 2, Position: entity.PositionBefore}, got)
}

func TestTakeSnapshot_ScrollAndExclusions(t *testing.T) {
	list := scene.NewNode("list", entity.Rect{X: 10, Y: 0, Width: 100, Height: 20})
	list.SetScroll(entity.Point{X: 100})
	for i, x := range []float64{10, 60, 110, 160} {
		list.Append(scene.NewNode(string(rune('a'+i)), entity.Rect{X: x, Width: 50, Height: 20}).
			WithAttr(entity.AttrSource, string(rune('a'+i))))
	}
	list.Append(scene.NewNode("decoration", entity.Rect{X: 0, Width: 5, Height: 5}))
	list.Find("b").SetAttr(entity.AttrDragging, "true")

	snap := dnd.TakeSnapshot(list)

	require.Equal(t, []string{"a", "c", "d"}, snap.IDs)
	assert.Equal(t, 0.0, snap.Items[0].X)
	assert.Equal(t, 100.0, snap.Items[1].X)

	// Client x=20 is content x=110: inside "c" (100..150), left half.
	got := dnd.ResolveIndex(dnd.LayoutHorizontal, snap, pt(20, 10), dnd.ResolveOptions{})
	assert.Equal(t, dnd.Placement{Index: 1, Position: entity.PositionBefore}, got)
}

// gridSnap is a 3-column grid of 40x40 cells on a 50px pitch with 5 items.
func gridSnap() *dnd.Snapshot {
	return &dnd.Snapshot{Items: []entity.Rect{
		{X: 0, Y: 0, Width: 40, Height: 40},
		{X: 50, Y: 0, Width: 40, Height: 40},
		{X: 100, Y: 0, Width: 40, Height: 40},
		{X: 0, Y: 50, Width: 40, Height: 40},
		{X: 50, Y: 50, Width: 40, Height: 40},
	}}
}

func TestResolveIndex_Grid(t *testing.T) {
	tests := []struct {
		name string
		p    entity.Point
		want dnd.Placement
	}{
		{"far above and left", pt(-100, -100), dnd.Placement{Index: 0, Position: entity.PositionBefore}},
		{"left of first item", pt(-5, 20), dnd.Placement{Index: 0, Position: entity.PositionBefore}},
		{"far below", pt(10, 500), dnd.Placement{Index: 5, Position: entity.PositionAfter}},
		{"right of last item", pt(300, 70), dnd.Placement{Index: 5, Position: entity.PositionAfter}},
		{"inside item left half", pt(55, 20), dnd.Placement{Index: 1, Position: entity.PositionBefore}},
		{"inside item right half", pt(85, 20), dnd.Placement{Index: 2, Position: entity.PositionAfter}},
		{"gap between row neighbours", pt(45, 20), dnd.Placement{Index: 1, Position: entity.PositionBefore}},
		{"end of first row", pt(200, 20), dnd.Placement{Index: 3, Position: entity.PositionAfter}},
		{"between rows picks column of next row", pt(60, 45), dnd.Placement{Index: 4, Position: entity.PositionBefore}},
		{"between rows past next row end", pt(130, 45), dnd.Placement{Index: 5, Position: entity.PositionAfter}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dnd.ResolveIndex(dnd.LayoutGrid, gridSnap(), tt.p, dnd.ResolveOptions{}))
		})
	}
}

func TestResolveIndex_GridNearestCenterFallback(t *testing.T) {
	// The second item is shorter than its row, leaving a hole below it.
	snap := &dnd.Snapshot{Items: []entity.Rect{
		{X: 0, Y: 0, Width: 40, Height: 40},
		{X: 50, Y: 0, Width: 40, Height: 20},
		{X: 0, Y: 60, Width: 40, Height: 40},
	}}

	got := dnd.ResolveIndex(dnd.LayoutGrid, snap, pt(65, 30), dnd.ResolveOptions{})
	assert.Equal(t, dnd.Placement{Index: 1, Position: entity.PositionBefore}, got)

	got = dnd.ResolveIndex(dnd.LayoutGrid, snap, pt(75, 30), dnd.ResolveOptions{})
	assert.Equal(t, dnd.Placement{Index: 2, Position: entity.PositionAfter}, got)
}

func TestIndicatorRect(t *testing.T) {
	snap := &dnd.Snapshot{
		Container: entity.Rect{X: 10, Y: 100, Width: 150, Height: 20},
		Items:     rects([2]float64{0, 50}, [2]float64{50, 100}),
	}

	before := dnd.IndicatorRect(dnd.LayoutHorizontal, snap, dnd.Placement{Index: 1, Position: entity.PositionBefore})
	assert.Equal(t, entity.Rect{X: 60, Y: 100, Height: 20}, before)

	after := dnd.IndicatorRect(dnd.LayoutHorizontal, snap, dnd.Placement{Index: 2, Position: entity.PositionAfter})
	assert.Equal(t, entity.Rect{X: 110, Y: 100, Height: 20}, after)

	empty := dnd.IndicatorRect(dnd.LayoutVertical, &dnd.Snapshot{Container: snap.Container}, dnd.Placement{})
	assert.Equal(t, entity.Rect{X: 10, Y: 100, Width: 150}, empty)
}

func TestParseLayout(t *testing.T) {
	l, err := dnd.ParseLayout("both")
	require.NoError(t, err)
	assert.Equal(t, dnd.LayoutGrid, l)

	_, err = dnd.ParseLayout("diagonal")
	assert.Error(t, err)
}
