package raster

import (
	"image"
	"sort"
)

// Components returns the bounding boxes of the 8-connected free regions of
// the mask. A region whose box lies inside another region's box is treated
// as nested and dropped, so only outermost regions are reported. Boxes are
// half-open pixel rectangles sorted by top, then left.
func (m *Mask) Components() []image.Rectangle {
	w, h := m.Width(), m.Height()
	seen := make([]bool, w*h)
	var boxes []image.Rectangle
	var stack []image.Point

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if seen[y*w+x] || !m.Free(x, y) {
				continue
			}
			box := image.Rect(x, y, x+1, y+1)
			seen[y*w+x] = true
			stack = append(stack[:0], image.Point{X: x, Y: y})
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				box = box.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := p.X+dx, p.Y+dy
						if !m.Free(nx, ny) || seen[ny*w+nx] {
							continue
						}
						seen[ny*w+nx] = true
						stack = append(stack, image.Point{X: nx, Y: ny})
					}
				}
			}
			boxes = append(boxes, box)
		}
	}
	return outermost(boxes)
}

// outermost drops boxes contained in a larger box and sorts the rest by
// (top, left).
func outermost(boxes []image.Rectangle) []image.Rectangle {
	bySize := make([]image.Rectangle, len(boxes))
	copy(bySize, boxes)
	sort.SliceStable(bySize, func(i, j int) bool {
		return area(bySize[i]) > area(bySize[j])
	})

	var kept []image.Rectangle
	for _, b := range bySize {
		nested := false
		for _, k := range kept {
			if b.In(k) {
				nested = true
				break
			}
		}
		if !nested {
			kept = append(kept, b)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Min.Y != kept[j].Min.Y {
			return kept[i].Min.Y < kept[j].Min.Y
		}
		return kept[i].Min.X < kept[j].Min.X
	})
	return kept
}

func area(r image.Rectangle) int { return r.Dx() * r.Dy() }
