package pdf

import (
	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
)

// RotatePoint maps a point of an unrotated width x height page into the
// page as displayed with the given clockwise rotation.
func RotatePoint(p geometry.Point, width, height float64, rotation int) geometry.Point {
	switch normalizeRotation(rotation) {
	case 90:
		return geometry.Point{X: height - p.Y, Y: p.X}
	case 180:
		return geometry.Point{X: width - p.X, Y: height - p.Y}
	case 270:
		return geometry.Point{X: p.Y, Y: width - p.X}
	default:
		return p
	}
}

// RotateRect maps a rectangle the way RotatePoint maps its corners
func RotateRect(r geometry.Rect, width, height float64, rotation int) geometry.Rect {
	a := RotatePoint(geometry.Point{X: r.X0, Y: r.Y0}, width, height, rotation)
	b := RotatePoint(geometry.Point{X: r.X1, Y: r.Y1}, width, height, rotation)
	return geometry.FromCorners(a.X, a.Y, b.X, b.Y)
}

// CanonicalSize returns the displayed page size
func CanonicalSize(width, height float64, rotation int) (float64, float64) {
	switch normalizeRotation(rotation) {
	case 90, 270:
		return height, width
	default:
		return width, height
	}
}

// CanonicalPage is a page's content in displayed coordinates
type CanonicalPage struct {
	Number int
	Width  float64
	Height float64
	Words  []Word
	Lines  []LineObject
	Rects  []RectObject
}

// Canonicalize rotates chars and drawings of a page into displayed
// coordinates. Words are grouped after rotating, so text that reads
// upright on screen forms lines even when its glyphs run down the
// unrotated page.
func Canonicalize(page Page, opts ...WordExtractionOption) CanonicalPage {
	w, h, rot := page.GetWidth(), page.GetHeight(), page.GetRotation()
	cw, ch := CanonicalSize(w, h, rot)
	objects := page.GetObjects()

	cp := CanonicalPage{Number: page.GetPageNumber(), Width: cw, Height: ch}

	chars := make([]CharObject, len(objects.Chars))
	for i, c := range objects.Chars {
		r := RotateRect(c.GetBBox(), w, h, rot)
		c.X0, c.Y0, c.X1, c.Y1 = r.X0, r.Y0, r.X1, r.Y1
		chars[i] = c
	}
	cp.Words = ExtractWords(chars, opts...)

	for _, line := range objects.Lines {
		a := RotatePoint(geometry.Point{X: line.X0, Y: line.Y0}, w, h, rot)
		b := RotatePoint(geometry.Point{X: line.X1, Y: line.Y1}, w, h, rot)
		line.X0, line.Y0, line.X1, line.Y1 = a.X, a.Y, b.X, b.Y
		cp.Lines = append(cp.Lines, line)
	}

	for _, rect := range objects.Rects {
		r := RotateRect(rect.GetBBox(), w, h, rot)
		rect.X0, rect.Y0, rect.X1, rect.Y1 = r.X0, r.Y0, r.X1, r.Y1
		cp.Rects = append(cp.Rects, rect)
	}

	return cp
}
