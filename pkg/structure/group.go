package structure

import (
	"sort"

	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
)

func cellRect(c *Cell) geometry.Rect { return c.Rect }

// GroupCells places every cell into the first table whose rectangle contains
// the cell's center. Cells and tables are both visited top-to-bottom,
// left-to-right, and a placed cell is not offered to later tables. Cells
// that fall in no table are dropped. Every table rectangle yields a Table,
// even when no cell lands in it.
func GroupCells(cells []*Cell, tableRects []geometry.Rect) []*Table {
	pool := make([]*Cell, len(cells))
	copy(pool, cells)
	sort.SliceStable(pool, func(i, j int) bool {
		return geometry.TopLeftLess(pool[i].Rect, pool[j].Rect)
	})

	sorted := geometry.SortTopLeft(tableRects)
	tables := make([]*Table, len(sorted))
	for i, r := range sorted {
		var inside []*Cell
		inside, pool = partition(pool, r, cellRect)
		tables[i] = &Table{Rect: r, Cells: inside}
	}
	return tables
}
