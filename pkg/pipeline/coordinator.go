package pipeline

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
	"github.com/pyhub-apps/pdftable-golang/pkg/logging"
	"github.com/pyhub-apps/pdftable-golang/pkg/structure"
)

// PageResult holds the tables reconstructed from one page.
type PageResult = structure.Page

// Coordinator runs assignment, grouping and span resolution per page.
type Coordinator struct {
	resolver *structure.Resolver
	workers  int
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithTolerance sets the near-equality tolerance used by span resolution
func WithTolerance(tol float64) Option {
	return func(c *Coordinator) {
		c.resolver = structure.NewResolver(tol)
	}
}

// WithWorkers bounds the number of pages processed at once. Values below one
// mean one page at a time.
func WithWorkers(n int) Option {
	return func(c *Coordinator) {
		c.workers = max(n, 1)
	}
}

// NewCoordinator creates a coordinator with the given options
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		resolver: structure.NewResolver(geometry.DefaultTolerance),
		workers:  1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProcessPage reconstructs the tables of one page. Fragments are sorted by
// (top, left) first when they are not already.
func (c *Coordinator) ProcessPage(in PageInput) PageResult {
	fragments := in.Fragments
	if !structure.FragmentsSorted(fragments) {
		fragments = structure.SortFragments(fragments)
	}

	result := PageResult{Number: in.Number}
	if in.Layout == nil {
		result.Unassigned = len(fragments)
		return result
	}

	cells, _ := structure.BuildCells(fragments, in.Layout.CellRects())
	result.Tables = structure.GroupCells(cells, in.Layout.TableRects())

	assigned := 0
	for _, t := range result.Tables {
		rects := make([]geometry.Rect, len(t.Cells))
		for i, cell := range t.Cells {
			rects[i] = cell.Rect
			assigned += len(cell.Fragments)
		}
		atomics := in.Layout.AtomicCells(t.Rect, rects)
		result.Diagnostics = append(result.Diagnostics, c.resolver.Resolve(t, atomics)...)
	}
	result.Unassigned = len(fragments) - assigned

	logging.Logger().WithFields(logrus.Fields{
		"page":        in.Number,
		"tables":      len(result.Tables),
		"cells":       len(cells),
		"diagnostics": len(result.Diagnostics),
		"unassigned":  result.Unassigned,
	}).Debug("page processed")
	return result
}

// Run processes every page of src, one task per page, and returns the
// results in page order. The first load error cancels the remaining pages
// and is returned.
func (c *Coordinator) Run(ctx context.Context, src Source) ([]PageResult, error) {
	n := src.PageCount()
	results := make([]PageResult, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			in, err := src.LoadPage(ctx, i)
			if err != nil {
				return fmt.Errorf("failed to load page %d: %w", i+1, err)
			}
			if in.Number == 0 {
				in.Number = i + 1
			}
			results[i] = c.ProcessPage(in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
