package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dragkit/internal/domain/entity"
)

func newOp() *entity.Operation {
	payload := entity.NewPayload(map[entity.PayloadKind]any{entity.KindResource: "res-1"})
	return entity.NewOperation("op-1", "src-1", "zone-a", payload, time.Unix(0, 0))
}

func TestOperation_IsCancellation(t *testing.T) {
	op := newOp()
	assert.True(t, op.IsCancellation(), "no target zone is a cancellation")

	op.SetTarget("zone-a", "")
	assert.True(t, op.IsCancellation(), "dropping back on the origin zone is a cancellation")

	op.SetTarget("zone-b", "")
	assert.False(t, op.IsCancellation())
}

func TestOperation_SetTargetEmptyClearsIndex(t *testing.T) {
	op := newOp()
	op.SetTarget("zone-b", "area-1")
	op.SetIndex(3, entity.PositionAfter)

	idx, ok := op.Index()
	require.True(t, ok)
	assert.Equal(t, 3, idx)
	assert.Equal(t, entity.AreaID("area-1"), op.Area())

	op.SetTarget("", "")
	_, ok = op.Index()
	assert.False(t, ok)
	assert.Equal(t, entity.PositionNone, op.DropPosition())
}

func TestOperation_Snapshot(t *testing.T) {
	op := newOp()
	op.SetTarget("zone-b", "")
	op.SetIndex(1, entity.PositionBefore)
	op.Finish(false)

	snap := op.Snapshot()
	assert.Equal(t, entity.OperationID("op-1"), snap.ID)
	assert.Equal(t, entity.ZoneID("zone-b"), snap.ToZone)
	assert.Equal(t, 1, snap.Index)
	assert.Equal(t, "before", snap.Position.String())
	assert.Equal(t, []entity.PayloadKind{entity.KindResource}, snap.Kinds)
	assert.True(t, op.Finished())
}

func TestPayload_IsACopy(t *testing.T) {
	entries := map[entity.PayloadKind]any{entity.KindString: "hello"}
	p := entity.NewPayload(entries)
	entries[entity.KindURL] = "https://example.com"

	assert.False(t, p.Has(entity.KindURL))
	s, ok := p.String(entity.KindString)
	require.True(t, ok)
	assert.Equal(t, "hello", s)
}

func TestTransfer_TypesAndClone(t *testing.T) {
	tr := entity.NewTransfer()
	assert.True(t, tr.IsEmpty())

	tr.SetData(entity.MIMEText, "a")
	tr.SetData(entity.MIMEHTML, "<b>a</b>")
	tr.SetData(entity.MIMEText, "b")
	tr.AddFile(entity.File{Name: "x.bin", Data: []byte{1, 2}})

	assert.Equal(t, []string{entity.MIMEText, entity.MIMEHTML, "Files"}, tr.Types())
	assert.Equal(t, "b", tr.GetData(entity.MIMEText))

	c := tr.Clone()
	c.SetData(entity.MIMEText, "c")
	assert.Equal(t, "b", tr.GetData(entity.MIMEText))
	assert.Len(t, c.Files(), 1)
}

func TestRect_Geometry(t *testing.T) {
	r := entity.Rect{X: 10, Y: 20, Width: 30, Height: 40}
	assert.Equal(t, 40.0, r.Right())
	assert.Equal(t, 60.0, r.Bottom())
	assert.Equal(t, entity.Point{X: 25, Y: 40}, r.Center())
	assert.True(t, r.Contains(entity.Point{X: 10, Y: 60}))
	assert.False(t, r.Contains(entity.Point{X: 9, Y: 30}))
	assert.Equal(t, entity.Rect{X: 0, Y: 0, Width: 30, Height: 40}, r.RelativeTo(entity.Point{X: 10, Y: 20}))
}
