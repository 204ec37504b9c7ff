// Package scene is an in-memory element tree implementing the markup
// contract. The simulator and tests use it in place of a real toolkit.
package scene

import (
	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/domain/entity"
)

// Node is one element of the tree.
type Node struct {
	id       string
	attrs    map[string]string
	bounds   entity.Rect
	scroll   entity.Point
	parent   *Node
	children []*Node
}

var _ port.Element = (*Node)(nil)

// NewNode creates a detached node with the given client bounds.
func NewNode(id string, bounds entity.Rect) *Node {
	return &Node{id: id, attrs: make(map[string]string), bounds: bounds}
}

// ID returns the node id.
func (n *Node) ID() string { return n.id }

// Attr returns an attribute value.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr sets an attribute.
func (n *Node) SetAttr(name, value string) { n.attrs[name] = value }

// RemoveAttr removes an attribute.
func (n *Node) RemoveAttr(name string) { delete(n.attrs, name) }

// WithAttr sets an attribute and returns n for chaining.
func (n *Node) WithAttr(name, value string) *Node {
	n.SetAttr(name, value)
	return n
}

// Bounds returns the client bounds, shifted by the scroll offsets of all ancestors.
func (n *Node) Bounds() entity.Rect {
	r := n.bounds
	for p := n.parent; p != nil; p = p.parent {
		r = r.Translate(entity.Point{X: -p.scroll.X, Y: -p.scroll.Y})
	}
	return r
}

// SetBounds replaces the unscrolled layout bounds.
func (n *Node) SetBounds(r entity.Rect) { n.bounds = r }

// Scroll returns the content scroll offset.
func (n *Node) Scroll() entity.Point { return n.scroll }

// SetScroll sets the content scroll offset.
func (n *Node) SetScroll(p entity.Point) { n.scroll = p }

// Children returns the child elements in document order.
func (n *Node) Children() []port.Element {
	out := make([]port.Element, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// Parent returns the parent node, nil for roots.
func (n *Node) Parent() *Node { return n.parent }

// Append adds children and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Remove detaches child from n.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Insert places child at index, clamped to the child count.
func (n *Node) Insert(index int, child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	if index < 0 {
		index = 0
	}
	if index > len(n.children) {
		index = len(n.children)
	}
	child.parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
}

// Find returns the descendant (or n itself) with the given id.
func (n *Node) Find(id string) *Node {
	if n.id == id {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits n and its descendants depth-first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}
