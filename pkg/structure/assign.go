package structure

import (
	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
)

// partition splits pool into the items whose center lies in region and the
// rest, preserving pool order in both halves.
//
// pool must be sorted by (top, left). Once an item's top edge is below the
// region's bottom edge every later item is too, so scanning stops and the
// tail is carried over unscanned. This never changes the result compared to
// a full scan.
//
// The stop test uses the top edge rather than the center. A tall fragment
// sorted before a short one can have its center below the region while the
// short fragment after it still has its center inside; stopping on the
// center would drop the short one.
func partition[T any](pool []T, region geometry.Rect, rectOf func(T) geometry.Rect) (inside, outside []T) {
	outside = make([]T, 0, len(pool))
	for i, item := range pool {
		r := rectOf(item)
		if r.Y0 > region.Y1 {
			outside = append(outside, pool[i:]...)
			return inside, outside
		}
		if region.Contains(r.Center()) {
			inside = append(inside, item)
		} else {
			outside = append(outside, item)
		}
	}
	return inside, outside
}

func fragmentRect(f TextFragment) geometry.Rect { return f.Rect }

// Partition returns the fragments of pool whose center lies inside region,
// and the remaining pool. pool must be sorted by (top, left).
func Partition(pool []TextFragment, region geometry.Rect) (assigned, remaining []TextFragment) {
	return partition(pool, region, fragmentRect)
}

// AssignFragments distributes pool over regions in order. groups[i] holds
// the fragments assigned to regions[i]; a fragment is given to the first
// region containing its center and never to a later one. Fragments that
// fall in no region are returned as remaining.
func AssignFragments(pool []TextFragment, regions []geometry.Rect) (groups [][]TextFragment, remaining []TextFragment) {
	groups = make([][]TextFragment, len(regions))
	remaining = pool
	for i, region := range regions {
		groups[i], remaining = Partition(remaining, region)
	}
	return groups, remaining
}

// BuildCells creates one cell per rectangle and fills it with the fragments
// whose center it contains. Rectangles are visited top-to-bottom,
// left-to-right regardless of the order given.
func BuildCells(pool []TextFragment, rects []geometry.Rect) (cells []*Cell, remaining []TextFragment) {
	sorted := geometry.SortTopLeft(rects)
	groups, remaining := AssignFragments(pool, sorted)

	cells = make([]*Cell, len(sorted))
	for i, r := range sorted {
		cells[i] = NewCell(r, groups[i])
	}
	return cells, remaining
}
