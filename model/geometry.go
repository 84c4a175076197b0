package model

import "math"

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// BBox represents a bounding box in image coordinates: X grows to the
// right and Y grows downward from the top-left corner of the page.
type BBox struct {
	X      float64 // Left
	Y      float64 // Top
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from coordinates
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromPixels creates a bounding box from inclusive pixel bounds.
func NewBBoxFromPixels(c1, r1, c2, r2 int) BBox {
	return BBox{
		X:      float64(c1),
		Y:      float64(r1),
		Width:  float64(c2 - c1 + 1),
		Height: float64(r2 - r1 + 1),
	}
}

// Left returns the left edge X coordinate
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Top returns the top edge Y coordinate
func (b BBox) Top() float64 {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// Contains checks if a point is inside the bounding box
func (b BBox) Contains(p Point) bool {
	return p.X >= b.Left() && p.X <= b.Right() &&
		p.Y >= b.Top() && p.Y <= b.Bottom()
}

// Intersects checks if two bounding boxes intersect
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right() < other.Left() ||
		b.Left() > other.Right() ||
		b.Bottom() < other.Top() ||
		b.Top() > other.Bottom())
}

// Union returns the union of two bounding boxes
func (b BBox) Union(other BBox) BBox {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Top(), other.Top())
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Translate moves the box by (dx, dy).
func (b BBox) Translate(dx, dy float64) BBox {
	b.X += dx
	b.Y += dy
	return b
}

// Scale multiplies every coordinate by s.
func (b BBox) Scale(s float64) BBox {
	return BBox{X: b.X * s, Y: b.Y * s, Width: b.Width * s, Height: b.Height * s}
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}
