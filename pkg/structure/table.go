package structure

import (
	"strings"

	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
)

// Table is a ruled table region and the coarse cells inside it
type Table struct {
	Rect  geometry.Rect
	Cells []*Cell
}

// NewTable creates an empty table for a region
func NewTable(r geometry.Rect) *Table {
	return &Table{Rect: r}
}

// AppendCell adds a cell in scan order
func (t *Table) AppendCell(c *Cell) {
	t.Cells = append(t.Cells, c)
}

// Dimensions returns the number of grid rows and columns covered by the
// resolved cells. Unresolved cells do not contribute.
func (t *Table) Dimensions() (rows, cols int) {
	for _, c := range t.Cells {
		if !c.Resolved() {
			continue
		}
		rows = max(rows, c.Row+c.RowSpan)
		cols = max(cols, c.Col+c.ColSpan)
	}
	return rows, cols
}

// Grid lays the resolved cells out on the dense grid. A merged cell occupies
// every position it spans; positions covered by no cell are nil.
func (t *Table) Grid() [][]*Cell {
	rows, cols := t.Dimensions()
	grid := make([][]*Cell, rows)
	for i := range grid {
		grid[i] = make([]*Cell, cols)
	}

	for _, c := range t.Cells {
		if !c.Resolved() {
			continue
		}
		for i := c.Row; i < c.Row+c.RowSpan; i++ {
			for j := c.Col; j < c.Col+c.ColSpan; j++ {
				if grid[i][j] == nil {
					grid[i][j] = c
				}
			}
		}
	}
	return grid
}

// Rows returns the table text as a dense matrix. The text of a merged cell
// appears at its top-left position only.
func (t *Table) Rows() [][]string {
	grid := t.Grid()
	rows := make([][]string, len(grid))
	for i, line := range grid {
		rows[i] = make([]string, len(line))
		for j, c := range line {
			if c != nil && c.Row == i && c.Col == j {
				rows[i][j] = c.Text()
			}
		}
	}
	return rows
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Rows() {
		for j, text := range row {
			// Escape quotes and wrap in quotes if necessary
			if strings.ContainsAny(text, ",\"\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToMarkdown converts the table to markdown format, treating the first grid
// row as the header.
func (t *Table) ToMarkdown() string {
	rows := t.Rows()
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		for _, text := range row {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(text, "\n", " "))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	writeRow(rows[0])
	sb.WriteString(strings.Repeat("|---", len(rows[0])))
	sb.WriteString("|\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}
	return sb.String()
}
