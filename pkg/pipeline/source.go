// Package pipeline sequences table reconstruction over the pages of a
// document.
package pipeline

import (
	"context"
	"fmt"

	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
	"github.com/pyhub-apps/pdftable-golang/pkg/structure"
)

// Layout is the ruling-line geometry of one page, as traced by a contour
// service.
type Layout interface {
	// CellRects returns the coarse cell rectangles of the page.
	CellRects() []geometry.Rect
	// TableRects returns the table rectangles of the page.
	TableRects() []geometry.Rect
	// AtomicCells extends every edge of cells across table and returns the
	// resulting finest grid.
	AtomicCells(table geometry.Rect, cells []geometry.Rect) []geometry.Rect
}

// PageInput is everything the engine needs to reconstruct one page.
type PageInput struct {
	Number    int
	Fragments []structure.TextFragment
	Layout    Layout
}

// Source yields page inputs by zero-based index.
type Source interface {
	PageCount() int
	LoadPage(ctx context.Context, index int) (PageInput, error)
}

// Pages is an in-memory Source.
type Pages []PageInput

// PageCount returns the number of pages
func (p Pages) PageCount() int {
	return len(p)
}

// LoadPage returns the page at index
func (p Pages) LoadPage(_ context.Context, index int) (PageInput, error) {
	if index < 0 || index >= len(p) {
		return PageInput{}, fmt.Errorf("page index %d out of range [0, %d)", index, len(p))
	}
	return p[index], nil
}
