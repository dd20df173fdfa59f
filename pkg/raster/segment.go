package raster

import (
	"image"
	"math"

	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
)

// Options controls how a line mask is segmented into cells and tables.
type Options struct {
	// Scale is the number of mask pixels per page unit.
	Scale float64
	// OpenIterations removes gaps from the cell mask.
	OpenIterations int
	// CloseIterations erases the inner lines of each table.
	CloseIterations int
	// GridIterations cleans the extended grid of one table.
	GridIterations int
}

// DefaultOptions returns one pixel per unit, two opening passes for cells,
// three closing passes for tables and three opening passes for the atomic
// grid.
func DefaultOptions() Options {
	return Options{
		Scale:           1,
		OpenIterations:  2,
		CloseIterations: 3,
		GridIterations:  3,
	}
}

// Segmentation is the traced geometry of one page. Its rectangles are in
// page units.
type Segmentation struct {
	Cells  []geometry.Rect
	Tables []geometry.Rect

	cellMask *Mask
	opts     Options
}

// Segment flood-fills the outside of the line mask and traces its cells and
// tables. The input mask is not modified.
func Segment(mask *Mask, opts Options) *Segmentation {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	cells := mask.Clone()
	cells.FloodFillBorder()
	cells.Open(opts.OpenIterations)

	tables := cells.Clone()
	tables.Close(opts.CloseIterations)

	return &Segmentation{
		Cells:    toPage(cells.Components(), image.Point{}, opts.Scale),
		Tables:   toPage(tables.Components(), image.Point{}, opts.Scale),
		cellMask: cells,
		opts:     opts,
	}
}

// Mask returns the cleaned cell mask the cells were traced from.
func (s *Segmentation) Mask() *Mask { return s.cellMask }

// CellRects returns the coarse cells of the page
func (s *Segmentation) CellRects() []geometry.Rect { return s.Cells }

// TableRects returns the tables of the page
func (s *Segmentation) TableRects() []geometry.Rect { return s.Tables }

// AtomicCells crops table out of the cell mask, inks every edge of cells
// across the whole crop and traces the resulting grid. The rectangles are
// returned in page units.
func (s *Segmentation) AtomicCells(table geometry.Rect, cells []geometry.Rect) []geometry.Rect {
	t := s.toPixels(table)
	crop := s.cellMask.Crop(t)
	if crop.Width() == 0 || crop.Height() == 0 {
		return nil
	}

	for _, c := range cells {
		r := s.toPixels(c)
		crop.InkColumn(clampInt(r.Min.X-t.Min.X, crop.Width()))
		crop.InkColumn(clampInt(r.Max.X-t.Min.X, crop.Width()))
		crop.InkRow(clampInt(r.Min.Y-t.Min.Y, crop.Height()))
		crop.InkRow(clampInt(r.Max.Y-t.Min.Y, crop.Height()))
	}
	crop.Open(s.opts.GridIterations)

	return toPage(crop.Components(), t.Min, s.opts.Scale)
}

func (s *Segmentation) toPixels(r geometry.Rect) image.Rectangle {
	px := func(v float64) int { return int(math.Round(v * s.opts.Scale)) }
	return image.Rect(px(r.X0), px(r.Y0), px(r.X1), px(r.Y1))
}

func toPage(boxes []image.Rectangle, origin image.Point, scale float64) []geometry.Rect {
	rects := make([]geometry.Rect, len(boxes))
	for i, b := range boxes {
		b = b.Add(origin)
		rects[i] = geometry.Rect{
			X0: float64(b.Min.X) / scale,
			Y0: float64(b.Min.Y) / scale,
			X1: float64(b.Max.X) / scale,
			Y1: float64(b.Max.Y) / scale,
		}
	}
	return rects
}

func clampInt(v, n int) int {
	return max(0, min(v, n-1))
}
