package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGeometry is returned when a rectangle is inverted or has
// non-finite coordinates.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect is an axis-aligned rectangle in top-down page coordinates: X0,Y0 is
// the top-left corner and X1,Y1 the bottom-right corner.
type Rect struct {
	X0 float64 `json:"x0"` // Left
	Y0 float64 `json:"y0"` // Top
	X1 float64 `json:"x1"` // Right
	Y1 float64 `json:"y1"` // Bottom
}

// EmptyRect is the canonical empty rectangle. Union treats it as identity.
var EmptyRect = Rect{}

// NewRect creates a rectangle from its corner coordinates
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// NewRectFromPoints creates the rectangle spanned by two points
func NewRectFromPoints(p1, p2 Point) Rect {
	return Rect{
		X0: math.Min(p1.X, p2.X),
		Y0: math.Min(p1.Y, p2.Y),
		X1: math.Max(p1.X, p2.X),
		Y1: math.Max(p1.Y, p2.Y),
	}
}

// Width returns the horizontal extent
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Area returns the area of the rectangle, or 0 if it is empty
func (r Rect) Area() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Width() * r.Height()
}

// Center returns the center point
func (r Rect) Center() Point {
	return Point{
		X: (r.X0 + r.X1) / 2,
		Y: (r.Y0 + r.Y1) / 2,
	}
}

// IsEmpty returns true if the rectangle has non-positive area
func (r Rect) IsEmpty() bool {
	return r.X0 >= r.X1 || r.Y0 >= r.Y1
}

// Intersects reports whether the two rectangles overlap with positive area.
// Rectangles that merely touch along an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return !r.Intersect(other).IsEmpty()
}

// Intersect returns the overlapping region, or EmptyRect if there is none
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		X0: math.Max(r.X0, other.X0),
		Y0: math.Max(r.Y0, other.Y0),
		X1: math.Min(r.X1, other.X1),
		Y1: math.Min(r.Y1, other.Y1),
	}
	if out.IsEmpty() {
		return EmptyRect
	}
	return out
}

// Union returns the smallest rectangle enclosing both rectangles. An empty
// operand contributes nothing.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rect{
		X0: math.Min(r.X0, other.X0),
		Y0: math.Min(r.Y0, other.Y0),
		X1: math.Max(r.X1, other.X1),
		Y1: math.Max(r.Y1, other.Y1),
	}
}

// Contains reports whether inner lies entirely within r.
// An empty rectangle contains nothing.
func (r Rect) Contains(inner Rect) bool {
	if r.IsEmpty() {
		return false
	}
	return inner.X0 >= r.X0 && inner.Y0 >= r.Y0 &&
		inner.X1 <= r.X1 && inner.Y1 <= r.Y1
}

// ContainsPoint checks if a point is inside the rectangle
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X0 && p.X <= r.X1 && p.Y >= r.Y0 && p.Y <= r.Y1
}

// Round snaps the rectangle outward to integer coordinates
func (r Rect) Round() Rect {
	return Rect{
		X0: math.Floor(r.X0),
		Y0: math.Floor(r.Y0),
		X1: math.Ceil(r.X1),
		Y1: math.Ceil(r.Y1),
	}
}

// Expand grows the rectangle by dx on the left and right and dy on the top
// and bottom. Negative values shrink it.
func (r Rect) Expand(dx, dy float64) Rect {
	return Rect{X0: r.X0 - dx, Y0: r.Y0 - dy, X1: r.X1 + dx, Y1: r.Y1 + dy}
}

// FlipY mirrors the rectangle vertically within a page of the given height,
// converting between bottom-up PDF user space and top-down coordinates.
func (r Rect) FlipY(height float64) Rect {
	return Rect{X0: r.X0, Y0: height - r.Y1, X1: r.X1, Y1: height - r.Y0}
}

// Validate returns ErrInvalidGeometry if the rectangle is inverted or has a
// NaN or infinite coordinate.
func (r Rect) Validate() error {
	for _, v := range [4]float64{r.X0, r.Y0, r.X1, r.Y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinate in %s", ErrInvalidGeometry, r)
		}
	}
	if r.X0 > r.X1 || r.Y0 > r.Y1 {
		return fmt.Errorf("%w: inverted rectangle %s", ErrInvalidGeometry, r)
	}
	return nil
}

// String formats the rectangle as "Rect(x0, y0, x1, y1)"
func (r Rect) String() string {
	return fmt.Sprintf("Rect(%g, %g, %g, %g)", r.X0, r.Y0, r.X1, r.Y1)
}

// BoundingRect returns the union of all rectangles
func BoundingRect(rects []Rect) Rect {
	out := EmptyRect
	for _, r := range rects {
		out = out.Union(r)
	}
	return out
}
