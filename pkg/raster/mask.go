// Package raster traces table geometry from a page's ruling lines.
//
// Lines and rectangle outlines are drawn as ink onto a page-sized [Mask].
// Everything reachable from the page border is then inked too, so the only
// free pixels left are the interiors enclosed by ruling lines. Connected
// free regions are the cells of the page; closing the thin lines between
// them merges each table into a single region.
package raster

import (
	"image"
	"image/color"
)

const (
	inkValue  = 0x00
	freeValue = 0xff
)

// Mask is a binary bitmap of ink and free pixels backed by an *image.Gray.
// Ink is black and free space is white.
type Mask struct {
	img *image.Gray
}

// NewMask creates a mask of the given size with every pixel free.
func NewMask(width, height int) *Mask {
	img := image.NewGray(image.Rect(0, 0, max(width, 0), max(height, 0)))
	for i := range img.Pix {
		img.Pix[i] = freeValue
	}
	return &Mask{img: img}
}

// MaskFromImage thresholds img into a mask: pixels darker than mid gray are
// ink. The mask origin is moved to (0, 0).
func MaskFromImage(img image.Image) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if g.Y < 0x80 {
				m.SetInk(x-b.Min.X, y-b.Min.Y)
			}
		}
	}
	return m
}

// Width returns the mask width in pixels
func (m *Mask) Width() int { return m.img.Rect.Dx() }

// Height returns the mask height in pixels
func (m *Mask) Height() int { return m.img.Rect.Dy() }

// Bounds returns the mask rectangle, always anchored at (0, 0)
func (m *Mask) Bounds() image.Rectangle { return m.img.Rect }

// Gray returns the backing image. Changes to it are visible in the mask.
func (m *Mask) Gray() *image.Gray { return m.img }

func (m *Mask) offset(x, y int) int { return y*m.img.Stride + x }

func (m *Mask) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width() && y < m.Height()
}

// Free reports whether (x, y) is free space. Pixels outside the mask are not.
func (m *Mask) Free(x, y int) bool {
	return m.inside(x, y) && m.img.Pix[m.offset(x, y)] == freeValue
}

// SetInk marks (x, y) as ink. Pixels outside the mask are ignored.
func (m *Mask) SetInk(x, y int) {
	if m.inside(x, y) {
		m.img.Pix[m.offset(x, y)] = inkValue
	}
}

// InkColumn inks the whole column x
func (m *Mask) InkColumn(x int) {
	for y := 0; y < m.Height(); y++ {
		m.SetInk(x, y)
	}
}

// InkRow inks the whole row y
func (m *Mask) InkRow(y int) {
	for x := 0; x < m.Width(); x++ {
		m.SetInk(x, y)
	}
}

// Clone returns a deep copy of the mask
func (m *Mask) Clone() *Mask {
	img := image.NewGray(m.img.Rect)
	copy(img.Pix, m.img.Pix)
	return &Mask{img: img}
}

// Crop copies the part of the mask inside r into a new mask anchored at
// (0, 0).
func (m *Mask) Crop(r image.Rectangle) *Mask {
	r = r.Intersect(m.img.Rect)
	out := NewMask(r.Dx(), r.Dy())
	for y := 0; y < r.Dy(); y++ {
		src := m.offset(r.Min.X, r.Min.Y+y)
		copy(out.img.Pix[y*out.img.Stride:y*out.img.Stride+r.Dx()], m.img.Pix[src:src+r.Dx()])
	}
	return out
}

// FreeCount returns the number of free pixels
func (m *Mask) FreeCount() int {
	n := 0
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.img.Pix[m.offset(x, y)] == freeValue {
				n++
			}
		}
	}
	return n
}
