package structure

import (
	"fmt"
	"strings"

	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
)

// Unresolved marks a row, column or span that span resolution has not set.
const Unresolved = -1

// Cell is a coarse table cell traced from ruling lines
type Cell struct {
	Rect      geometry.Rect
	Fragments []TextFragment

	Row     int
	Col     int
	RowSpan int
	ColSpan int
}

// NewCell creates an unresolved cell holding fragments
func NewCell(r geometry.Rect, fragments []TextFragment) *Cell {
	return &Cell{
		Rect:      r,
		Fragments: fragments,
		Row:       Unresolved,
		Col:       Unresolved,
		RowSpan:   Unresolved,
		ColSpan:   Unresolved,
	}
}

// Resolved reports whether the cell received a valid position and spans.
func (c *Cell) Resolved() bool {
	return c.Row >= 0 && c.Col >= 0 && c.RowSpan >= 1 && c.ColSpan >= 1
}

// reset puts the cell back into the unresolved state.
func (c *Cell) reset() {
	c.Row, c.Col = Unresolved, Unresolved
	c.RowSpan, c.ColSpan = Unresolved, Unresolved
}

// Text returns the cell text. Fragments on the same line are joined with a
// space; a fragment starting below the previous one begins a new line.
func (c *Cell) Text() string {
	if len(c.Fragments) == 0 {
		return ""
	}

	var sb strings.Builder
	prev := c.Fragments[0]
	sb.WriteString(prev.Text)
	for _, f := range c.Fragments[1:] {
		if f.Rect.Y0 >= prev.Rect.Y1 {
			sb.WriteString("\n")
		} else {
			sb.WriteString(" ")
		}
		sb.WriteString(f.Text)
		prev = f
	}
	return sb.String()
}

func (c *Cell) String() string {
	return fmt.Sprintf("cell(row=%d col=%d rowspan=%d colspan=%d rect=%s words=%d)",
		c.Row, c.Col, c.RowSpan, c.ColSpan, c.Rect, len(c.Fragments))
}
