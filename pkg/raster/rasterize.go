package raster

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
)

// Line is a straight ruling line in page units
type Line struct {
	From, To geometry.Point
}

// penWidth is the stroke width in pixels.
const penWidth = 1.0

// Rasterize draws lines and rectangle outlines onto a mask covering a page
// of width×height page units. scale is the number of pixels per page unit.
func Rasterize(width, height, scale float64, lines []Line, outlines []geometry.Rect) *Mask {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(width * scale))
	h := int(math.Ceil(height * scale))
	m := NewMask(w, h)
	if w == 0 || h == 0 {
		return m
	}

	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	for _, l := range lines {
		addStroke(z, l.From.X*scale, l.From.Y*scale, l.To.X*scale, l.To.Y*scale)
	}
	for _, r := range outlines {
		x0, y0, x1, y1 := r.X0*scale, r.Y0*scale, r.X1*scale, r.Y1*scale
		addStroke(z, x0, y0, x1, y0)
		addStroke(z, x1, y0, x1, y1)
		addStroke(z, x1, y1, x0, y1)
		addStroke(z, x0, y1, x0, y0)
	}

	coverage := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(coverage, coverage.Bounds(), image.Opaque, image.Point{})

	for y := 0; y < h; y++ {
		row := coverage.Pix[y*coverage.Stride : y*coverage.Stride+w]
		for x, a := range row {
			if a > 0 {
				m.SetInk(x, y)
			}
		}
	}
	return m
}

// addStroke adds the quadrilateral of a penWidth stroke from (ax, ay) to
// (bx, by). Every quad winds the same way so overlapping strokes add up
// instead of cancelling. A zero-length stroke becomes a pen-sized square.
func addStroke(z *vector.Rasterizer, ax, ay, bx, by float64) {
	dx, dy := bx-ax, by-ay
	length := math.Hypot(dx, dy)
	half := penWidth / 2
	if length == 0 {
		dx, dy, length = 1, 0, 1
		ax -= half
		bx += half
	}
	// normal scaled to half the pen width
	nx, ny := -dy/length*half, dx/length*half
	// extend both ends by half a pen so corners close
	ex, ey := dx/length*half, dy/length*half
	ax, ay = ax-ex, ay-ey
	bx, by = bx+ex, by+ey

	size := z.Size()
	clamp := func(x, y float64) (float32, float32) {
		x = math.Max(0, math.Min(x, float64(size.X)))
		y = math.Max(0, math.Min(y, float64(size.Y)))
		return float32(x), float32(y)
	}
	z.MoveTo(clamp(ax+nx, ay+ny))
	z.LineTo(clamp(bx+nx, by+ny))
	z.LineTo(clamp(bx-nx, by-ny))
	z.LineTo(clamp(ax-nx, ay-ny))
	z.ClosePath()
}
