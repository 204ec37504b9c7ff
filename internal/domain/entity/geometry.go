// Package entity contains the domain types of the drag-and-drop engine.
// These entities are pure Go types with no infrastructure dependencies.
package entity

import "math"

// Point is a position in CSS-pixel space.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect is an axis-aligned rectangle; X/Y is the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Left returns the leading horizontal edge.
func (r Rect) Left() float64 { return r.X }

// Right returns the trailing horizontal edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns the leading vertical edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the trailing vertical edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// RelativeTo expresses r in the coordinate space whose origin is origin.
func (r Rect) RelativeTo(origin Point) Rect {
	return r.Translate(Point{X: -origin.X, Y: -origin.Y})
}

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}
