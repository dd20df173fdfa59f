package raster

import (
	"image"
)

// FloodFillBorder inks every free pixel 4-connected to the mask border.
// Free space left afterwards is enclosed by ink.
func (m *Mask) FloodFillBorder() {
	w, h := m.Width(), m.Height()
	stack := make([]image.Point, 0, 2*(w+h))
	push := func(x, y int) {
		if m.Free(x, y) {
			m.SetInk(x, y)
			stack = append(stack, image.Point{X: x, Y: y})
		}
	}

	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.X+1, p.Y)
		push(p.X-1, p.Y)
		push(p.X, p.Y+1)
		push(p.X, p.Y-1)
	}
}

// Erode shrinks free space by one pixel with a 3×3 square. Pixels beyond
// the border count as free, so the border itself never erodes.
func (m *Mask) Erode() {
	m.morph(func(a, b, c bool) bool { return a && b && c }, true)
}

// Dilate grows free space by one pixel with a 3×3 square. Pixels beyond the
// border count as ink.
func (m *Mask) Dilate() {
	m.morph(func(a, b, c bool) bool { return a || b || c }, false)
}

// Open erodes then dilates free space n times each, removing free specks
// and slivers narrower than the kernel.
func (m *Mask) Open(n int) {
	for i := 0; i < n; i++ {
		m.Erode()
	}
	for i := 0; i < n; i++ {
		m.Dilate()
	}
}

// Close dilates then erodes free space n times each, erasing ink lines
// thinner than the kernel.
func (m *Mask) Close(n int) {
	for i := 0; i < n; i++ {
		m.Dilate()
	}
	for i := 0; i < n; i++ {
		m.Erode()
	}
}

// morph applies a separable 3×3 operator: combine over each row window,
// then over each column window of the intermediate result.
func (m *Mask) morph(combine func(a, b, c bool) bool, outside bool) {
	w, h := m.Width(), m.Height()
	if w == 0 || h == 0 {
		return
	}

	at := func(buf []bool, x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return outside
		}
		return buf[y*w+x]
	}

	src := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src[y*w+x] = m.img.Pix[m.offset(x, y)] == freeValue
		}
	}

	tmp := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tmp[y*w+x] = combine(at(src, x-1, y), at(src, x, y), at(src, x+1, y))
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := inkValue
			if combine(at(tmp, x, y-1), at(tmp, x, y), at(tmp, x, y+1)) {
				v = freeValue
			}
			m.img.Pix[m.offset(x, y)] = uint8(v)
		}
	}
}
