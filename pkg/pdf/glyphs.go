package pdf

import (
	"unicode"
	"unicode/utf8"

	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
)

// ascent is the share of the font size above the baseline
const ascent = 0.8

// pageBox converts the bottom-left coordinates the text libraries report
// into top-left page space.
type pageBox struct {
	originX float64
	originY float64
	width   float64
	height  float64
}

func newPageBox(x0, y0, x1, y1 float64) pageBox {
	r := geometry.FromCorners(x0, y0, x1, y1)
	return pageBox{originX: r.X0, originY: r.Y0, width: r.Width(), height: r.Height()}
}

// glyphs splits a run of text into one CharObject per rune, sharing the
// run's advance width evenly. Whitespace advances the pen without
// producing a char.
func (b pageBox) glyphs(s, font string, fontSize, x, y, w float64) []CharObject {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return nil
	}

	charWidth := w / float64(n)
	top := b.height - (y - b.originY) - fontSize*ascent
	x -= b.originX

	chars := make([]CharObject, 0, n)
	for _, ch := range s {
		if !unicode.IsSpace(ch) {
			chars = append(chars, CharObject{
				Text:     string(ch),
				Font:     font,
				FontSize: fontSize,
				X0:       x,
				Y0:       top,
				X1:       x + charWidth,
				Y1:       top + fontSize,
			})
		}
		x += charWidth
	}
	return chars
}

// rect converts a rectangle reported by an re operator. The libraries do
// not say how it was painted, so it is treated as stroked.
func (b pageBox) rect(x0, y0, x1, y1 float64) RectObject {
	r := geometry.FromCorners(x0-b.originX, b.height-(y0-b.originY), x1-b.originX, b.height-(y1-b.originY))
	return RectObject{
		X0: r.X0, Y0: r.Y0, X1: r.X1, Y1: r.Y1,
		Width:   1,
		Stroked: true,
	}
}
