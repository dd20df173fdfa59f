package structure

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
)

// Page is the reconstruction result of one page.
type Page struct {
	Number      int
	Tables      []*Table
	Diagnostics []Diagnostic
	// Unassigned counts the fragments that fell in no cell.
	Unassigned int
}

type rectJSON [4]float64

func toRectJSON(r geometry.Rect) rectJSON { return rectJSON{r.X0, r.Y0, r.X1, r.Y1} }

type cellJSON struct {
	Rect      rectJSON       `json:"rect"`
	Row       int            `json:"row"`
	Col       int            `json:"col"`
	RowSpan   int            `json:"rowspan"`
	ColSpan   int            `json:"colspan"`
	Text      string         `json:"text"`
	Fragments []fragmentJSON `json:"fragments,omitempty"`
}

type fragmentJSON struct {
	Rect rectJSON `json:"rect"`
	Text string   `json:"text"`
}

type tableJSON struct {
	Rect  rectJSON   `json:"rect"`
	Rows  int        `json:"rows"`
	Cols  int        `json:"cols"`
	Cells []cellJSON `json:"cells"`
}

type diagnosticJSON struct {
	Reason string   `json:"reason"`
	Cell   int      `json:"cell"`
	Atomic rectJSON `json:"atomic"`
	Row    int      `json:"row"`
	Col    int      `json:"col"`
}

type pageJSON struct {
	Page        int              `json:"page"`
	Tables      []tableJSON      `json:"tables"`
	Diagnostics []diagnosticJSON `json:"diagnostics,omitempty"`
	Unassigned  int              `json:"unassigned"`
}

// MarshalPages renders pages as indented JSON.
func MarshalPages(pages []Page) ([]byte, error) {
	out := make([]pageJSON, 0, len(pages))
	for _, p := range pages {
		pj := pageJSON{Page: p.Number, Tables: []tableJSON{}, Unassigned: p.Unassigned}
		for _, t := range p.Tables {
			rows, cols := t.Dimensions()
			tj := tableJSON{Rect: toRectJSON(t.Rect), Rows: rows, Cols: cols, Cells: []cellJSON{}}
			for _, c := range t.Cells {
				cj := cellJSON{
					Rect:    toRectJSON(c.Rect),
					Row:     c.Row,
					Col:     c.Col,
					RowSpan: c.RowSpan,
					ColSpan: c.ColSpan,
					Text:    c.Text(),
				}
				for _, f := range c.Fragments {
					cj.Fragments = append(cj.Fragments, fragmentJSON{Rect: toRectJSON(f.Rect), Text: f.Text})
				}
				tj.Cells = append(tj.Cells, cj)
			}
			pj.Tables = append(pj.Tables, tj)
		}
		for _, d := range p.Diagnostics {
			pj.Diagnostics = append(pj.Diagnostics, diagnosticJSON{
				Reason: d.Reason.String(),
				Cell:   d.CellIndex,
				Atomic: toRectJSON(d.Atomic),
				Row:    d.Row,
				Col:    d.Col,
			})
		}
		out = append(out, pj)
	}
	return json.MarshalIndent(out, "", "  ")
}

// WriteText writes a plain structural dump of pages: one block per table
// with the cell list followed by the text grid.
func WriteText(w io.Writer, pages []Page) error {
	var sb strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&sb, "=== Page %d: %d table(s) ===\n", p.Number, len(p.Tables))
		for ti, t := range p.Tables {
			rows, cols := t.Dimensions()
			fmt.Fprintf(&sb, "\nTable %d %s %dx%d\n", ti+1, t.Rect, rows, cols)
			for _, c := range t.Cells {
				fmt.Fprintf(&sb, "  (%d,%d) span %dx%d %q\n", c.Row, c.Col, c.RowSpan, c.ColSpan, c.Text())
			}
			writeGrid(&sb, t)
		}
		for _, d := range p.Diagnostics {
			fmt.Fprintf(&sb, "  ! %s\n", d)
		}
		if p.Unassigned > 0 {
			fmt.Fprintf(&sb, "  %d fragment(s) outside tables\n", p.Unassigned)
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// writeGrid draws the dense grid. Positions covered by a merged cell show
// "<" when continued from the left and "^" when continued from above.
func writeGrid(sb *strings.Builder, t *Table) {
	grid := t.Grid()
	if len(grid) == 0 {
		return
	}

	labels := make([][]string, len(grid))
	widths := make([]int, len(grid[0]))
	for i, line := range grid {
		labels[i] = make([]string, len(line))
		for j, c := range line {
			var s string
			switch {
			case c == nil:
			case c.Row == i && c.Col == j:
				s = strings.ReplaceAll(c.Text(), "\n", " ")
			case c.Row == i:
				s = "<"
			default:
				s = "^"
			}
			labels[i][j] = s
			widths[j] = max(widths[j], runewidth.StringWidth(s))
		}
	}

	for _, line := range labels {
		sb.WriteString("  |")
		for j, s := range line {
			sb.WriteString(" ")
			sb.WriteString(runewidth.FillRight(s, widths[j]))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}
}
