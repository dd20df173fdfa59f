package structure

import (
	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
)

func rect(x0, y0, x1, y1 float64) geometry.Rect {
	return geometry.Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func frag(x0, y0, x1, y1 float64, text string) TextFragment {
	return TextFragment{Rect: rect(x0, y0, x1, y1), Text: text}
}

// gridRects returns the rows×cols grid of w×h rectangles starting at (x, y).
func gridRects(x, y, w, h float64, rows, cols int) []geometry.Rect {
	var rects []geometry.Rect
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x0 := x + float64(j)*w
			y0 := y + float64(i)*h
			rects = append(rects, rect(x0, y0, x0+w, y0+h))
		}
	}
	return rects
}

func tableOf(r geometry.Rect, rects ...geometry.Rect) *Table {
	t := NewTable(r)
	for _, cr := range geometry.SortTopLeft(rects) {
		t.AppendCell(NewCell(cr, nil))
	}
	return t
}

type position struct{ Row, Col, RowSpan, ColSpan int }

func positions(t *Table) []position {
	out := make([]position, len(t.Cells))
	for i, c := range t.Cells {
		out[i] = position{c.Row, c.Col, c.RowSpan, c.ColSpan}
	}
	return out
}

type rect4 [][4]float64

func (rs rect4) rects() []geometry.Rect {
	out := make([]geometry.Rect, len(rs))
	for i, r := range rs {
		out[i] = rect(r[0], r[1], r[2], r[3])
	}
	return out
}
