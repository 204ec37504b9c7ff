package scene_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/infrastructure/scene"
)

func TestNode_BoundsFollowAncestorScroll(t *testing.T) {
	list := scene.NewNode("list", entity.Rect{Width: 100, Height: 100})
	item := scene.NewNode("item", entity.Rect{Y: 150, Width: 100, Height: 30})
	list.Append(item)

	list.SetScroll(entity.Point{Y: 120})

	assert.Equal(t, entity.Rect{Y: 30, Width: 100, Height: 30}, item.Bounds())
}

func TestNode_InsertAndFind(t *testing.T) {
	root := scene.NewNode("root", entity.Rect{})
	a := scene.NewNode("a", entity.Rect{})
	b := scene.NewNode("b", entity.Rect{})
	c := scene.NewNode("c", entity.Rect{})
	root.Append(a, b)

	root.Insert(1, c)
	ids := []string{}
	for _, ch := range root.Children() {
		ids = append(ids, ch.ID())
	}
	assert.Equal(t, []string{"a", "c", "b"}, ids)

	root.Insert(99, a)
	require.NotNil(t, root.Find("a"))
	assert.Equal(t, "a", root.Children()[2].ID())
	assert.Nil(t, root.Find("missing"))
}

func TestNode_Attributes(t *testing.T) {
	n := scene.NewNode("n", entity.Rect{}).WithAttr(entity.AttrSource, "s1")
	v, ok := n.Attr(entity.AttrSource)
	require.True(t, ok)
	assert.Equal(t, "s1", v)

	n.RemoveAttr(entity.AttrSource)
	_, ok = n.Attr(entity.AttrSource)
	assert.False(t, ok)
}
