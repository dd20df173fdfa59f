package pdf

import (
	"cmp"
	"math"
	"slices"
)

// FloatTolerance is the distance under which two drawn coordinates are the
// same. Producers often paint a ruling twice, once per adjacent cell.
const FloatTolerance = 0.1

// near reports whether two coordinates are within FloatTolerance
func near(a, b float64) bool {
	return math.Abs(a-b) < FloatTolerance
}

// compareNear orders coordinates, treating near ones as equal
func compareNear(a, b float64) int {
	if near(a, b) {
		return 0
	}
	return cmp.Compare(a, b)
}

// endpoints returns a line's ends with the top-left one first, so a line
// and its reversed twin share a key.
func endpoints(l LineObject) (x0, y0, x1, y1 float64) {
	if l.Y0 > l.Y1 || (l.Y0 == l.Y1 && l.X0 > l.X1) {
		return l.X1, l.Y1, l.X0, l.Y0
	}
	return l.X0, l.Y0, l.X1, l.Y1
}

// DeduplicateLines returns the distinct lines of a page, ordered top to
// bottom then left to right. Lines drawn in either direction between the
// same ends count once. The input slice is left untouched.
func DeduplicateLines(lines []LineObject) []LineObject {
	if len(lines) == 0 {
		return nil
	}

	sorted := slices.Clone(lines)
	slices.SortStableFunc(sorted, func(a, b LineObject) int {
		ax0, ay0, ax1, ay1 := endpoints(a)
		bx0, by0, bx1, by1 := endpoints(b)
		return cmp.Or(
			compareNear(ay0, by0),
			compareNear(ax0, bx0),
			compareNear(ay1, by1),
			compareNear(ax1, bx1),
		)
	})

	out := sorted[:1]
	for _, l := range sorted[1:] {
		if !linesEqual(out[len(out)-1], l) {
			out = append(out, l)
		}
	}
	return out
}

// linesEqual matches lines with the same ends in either direction
func linesEqual(a, b LineObject) bool {
	ax0, ay0, ax1, ay1 := endpoints(a)
	bx0, by0, bx1, by1 := endpoints(b)
	return near(ax0, bx0) && near(ay0, by0) && near(ax1, bx1) && near(ay1, by1)
}

// DeduplicateRectangles returns the distinct rectangles of a page, ordered
// by their top-left corner. The input slice is left untouched.
func DeduplicateRectangles(rects []RectObject) []RectObject {
	if len(rects) == 0 {
		return nil
	}

	sorted := slices.Clone(rects)
	slices.SortStableFunc(sorted, func(a, b RectObject) int {
		return cmp.Or(
			compareNear(a.Y0, b.Y0),
			compareNear(a.X0, b.X0),
			compareNear(a.Y1, b.Y1),
			compareNear(a.X1, b.X1),
		)
	})

	out := sorted[:1]
	for _, r := range sorted[1:] {
		if !rectsEqual(out[len(out)-1], r) {
			out = append(out, r)
		}
	}
	return out
}

func rectsEqual(a, b RectObject) bool {
	return near(a.X0, b.X0) && near(a.Y0, b.Y0) && near(a.X1, b.X1) && near(a.Y1, b.Y1)
}
