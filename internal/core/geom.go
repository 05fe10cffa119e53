// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Point is a position in playfield coordinates.
type Point struct {
	X, Y int
}

// Add returns the component-wise sum of two points.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Rect represents an axis-aligned rectangle in playfield coordinates.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains returns true if the point (x, y) is inside this rectangle.
// The left and top edges are inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Interior returns true if (x, y) lies strictly inside the rectangle.
// Points on any edge are outside.
func (r Rect) Interior(x, y int) bool {
	return x > r.X && x < r.Right() && y > r.Y && y < r.Bottom()
}

// Within reports whether other lies entirely inside r.
func (r Rect) Within(other Rect) bool {
	return r.X >= other.X && r.Y >= other.Y && r.Right() <= other.Right() && r.Bottom() <= other.Bottom()
}

// Bounds is an inclusive coordinate range [MinX, MaxX] x [MinY, MaxY].
type Bounds struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Inset returns the bounds of a width x height area shrunk by margin on every side.
func Inset(width, height, margin int) Bounds {
	return Bounds{
		MinX: margin,
		MinY: margin,
		MaxX: width - margin,
		MaxY: height - margin,
	}
}

// Valid reports whether the bounds describe a non-empty range.
func (b Bounds) Valid() bool {
	return b.MinX <= b.MaxX && b.MinY <= b.MaxY
}

// Clamp restricts a point to the bounds.
func (b Bounds) Clamp(p Point) Point {
	return Point{
		X: Clamp(p.X, b.MinX, b.MaxX),
		Y: Clamp(p.Y, b.MinY, b.MaxY),
	}
}

// Has reports whether the point lies within the bounds.
func (b Bounds) Has(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Scale maps v from the range [0, from) onto [0, to).
func Scale(v, from, to int) int {
	if from <= 0 {
		return 0
	}
	return v * to / from
}
