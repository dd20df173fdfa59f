// Package geometry provides the rectangle and point primitives shared by the
// table reconstruction engine.
//
// All coordinates live in one canonical page space: origin at the top-left
// corner, x growing to the right and y growing downward.
package geometry

import (
	"fmt"
	"math"
	"sort"

	"github.com/pkg/errors"
)

// DefaultTolerance is the distance below which two coordinates are treated
// as equal. It absorbs rasterization and line-extension jitter.
const DefaultTolerance = 5.0

// ErrMalformedRect is returned when a rectangle violates X0<=X1, Y0<=Y1 or
// carries a non-finite coordinate.
var ErrMalformedRect = errors.New("malformed rectangle")

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Rect represents a rectangular area with coordinates
type Rect struct {
	X0 float64 // Left
	Y0 float64 // Top
	X1 float64 // Right
	Y1 float64 // Bottom
}

// NewRect creates a validated rectangle.
func NewRect(x0, y0, x1, y1 float64) (Rect, error) {
	r := Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
	if err := r.Validate(); err != nil {
		return Rect{}, err
	}
	return r, nil
}

// FromCorners builds a rectangle from two opposite corners in any order.
func FromCorners(ax, ay, bx, by float64) Rect {
	return Rect{
		X0: math.Min(ax, bx),
		Y0: math.Min(ay, by),
		X1: math.Max(ax, bx),
		Y1: math.Max(ay, by),
	}
}

// Validate reports whether the rectangle is well formed.
func (r Rect) Validate() error {
	for _, v := range [4]float64{r.X0, r.Y0, r.X1, r.Y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrMalformedRect, "non-finite coordinate in %s", r)
		}
	}
	if r.X0 > r.X1 || r.Y0 > r.Y1 {
		return errors.Wrapf(ErrMalformedRect, "inverted corners in %s", r)
	}
	return nil
}

// Width returns the width of the rectangle
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the height of the rectangle
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// IsEmpty returns true if the rectangle has zero area
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Center returns the midpoint of the rectangle
func (r Rect) Center() Point {
	return Point{X: (r.X0 + r.X1) / 2, Y: (r.Y0 + r.Y1) / 2}
}

// Contains checks if a point lies within the closed rectangle
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X0 && p.X <= r.X1 && p.Y >= r.Y0 && p.Y <= r.Y1
}

// Intersects checks if two rectangles intersect
func (r Rect) Intersects(other Rect) bool {
	return !(r.X1 < other.X0 || r.X0 > other.X1 || r.Y1 < other.Y0 || r.Y0 > other.Y1)
}

// Encloses reports whether other lies entirely inside r.
func (r Rect) Encloses(other Rect) bool {
	return other.X0 >= r.X0 && other.X1 <= r.X1 && other.Y0 >= r.Y0 && other.Y1 <= r.Y1
}

// NearEqual reports whether all four coordinate deltas are strictly below tol.
func (r Rect) NearEqual(other Rect, tol float64) bool {
	return math.Abs(r.X0-other.X0) < tol &&
		math.Abs(r.Y0-other.Y0) < tol &&
		math.Abs(r.X1-other.X1) < tol &&
		math.Abs(r.Y1-other.Y1) < tol
}

// NearEqualOrigin reports whether the top-left corners are within tol.
func (r Rect) NearEqualOrigin(other Rect, tol float64) bool {
	return math.Abs(r.X0-other.X0) < tol && math.Abs(r.Y0-other.Y0) < tol
}

// Translate shifts the rectangle by dx, dy
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X0: r.X0 + dx, Y0: r.Y0 + dy, X1: r.X1 + dx, Y1: r.Y1 + dy}
}

// Scale multiplies every coordinate by s
func (r Rect) Scale(s float64) Rect {
	return Rect{X0: r.X0 * s, Y0: r.Y0 * s, X1: r.X1 * s, Y1: r.Y1 * s}
}

// Union returns the smallest rectangle covering both
func (r Rect) Union(other Rect) Rect {
	return Rect{
		X0: math.Min(r.X0, other.X0),
		Y0: math.Min(r.Y0, other.Y0),
		X1: math.Max(r.X1, other.X1),
		Y1: math.Max(r.Y1, other.Y1),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g %g %g %g]", r.X0, r.Y0, r.X1, r.Y1)
}

// TopLeftLess orders rectangles by top edge, then left edge.
func TopLeftLess(a, b Rect) bool {
	if a.Y0 != b.Y0 {
		return a.Y0 < b.Y0
	}
	return a.X0 < b.X0
}

// SortTopLeft returns a sorted copy of rects ordered top-to-bottom,
// left-to-right.
func SortTopLeft(rects []Rect) []Rect {
	sorted := make([]Rect, len(rects))
	copy(sorted, rects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return TopLeftLess(sorted[i], sorted[j])
	})
	return sorted
}

// IsSortedTopLeft reports whether rects are already in top-left order.
func IsSortedTopLeft(rects []Rect) bool {
	return sort.SliceIsSorted(rects, func(i, j int) bool {
		return TopLeftLess(rects[i], rects[j])
	})
}
