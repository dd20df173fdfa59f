package structure

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/rtree"

	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
	"github.com/pyhub-apps/pdftable-golang/pkg/logging"
)

// Resolver infers row, column and span of the coarse cells of a table from
// its atomic grid.
type Resolver struct {
	Tolerance float64
}

// NewResolver creates a resolver. A non-positive tolerance selects
// geometry.DefaultTolerance.
func NewResolver(tolerance float64) *Resolver {
	if tolerance <= 0 {
		tolerance = geometry.DefaultTolerance
	}
	return &Resolver{Tolerance: tolerance}
}

// match is the per-cell state carried through one resolve pass.
type match struct {
	first geometry.Rect // atomic cell that started the coarse cell
	last  geometry.Rect // atomic cell matched most recently
}

// AtomicRows sorts atomics by (top, left) and splits them into rows of equal
// top coordinate.
func AtomicRows(atomics []geometry.Rect) [][]geometry.Rect {
	sorted := geometry.SortTopLeft(atomics)

	var rows [][]geometry.Rect
	for k, c := range sorted {
		if k == 0 || c.Y0 != sorted[k-1].Y0 {
			rows = append(rows, nil)
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], c)
	}
	return rows
}

// Resolve sets Row, Col, RowSpan and ColSpan on every cell of t. Cells start
// unresolved on every call, so resolving the same input twice gives the same
// result.
//
// Atomic cells are walked row by row. An atomic cell that shares its
// rectangle or its top-left corner with a coarse cell starts that cell. Any
// other atomic cell inside a started coarse cell extends it: one column when
// it sits on the cell's first row next to the previous match, one row when
// it starts where the previous match ended. Atomic cells that fit none of
// these cases are returned as diagnostics and leave the cell as it was.
// Atomic cells inside no coarse cell are ignored.
//
// ColSpan grows only for atomic cells on the coarse cell's first row; the
// atomic cells of later rows sit under columns already counted. A 2x2 block
// therefore resolves to ColSpan 2, not 3.
func (r *Resolver) Resolve(t *Table, atomics []geometry.Rect) []Diagnostic {
	tol := r.Tolerance
	log := logging.Logger()

	var index rtree.RTreeG[int]
	for k, c := range t.Cells {
		c.reset()
		index.Insert([2]float64{c.Rect.X0, c.Rect.Y0}, [2]float64{c.Rect.X1, c.Rect.Y1}, k)
	}

	state := make(map[*Cell]*match, len(t.Cells))
	var diags []Diagnostic
	var hits []int

	for i, row := range AtomicRows(atomics) {
		for j, a := range row {
			center := a.Center()

			hits = hits[:0]
			pt := [2]float64{center.X, center.Y}
			index.Search(pt, pt, func(_, _ [2]float64, k int) bool {
				hits = append(hits, k)
				return true
			})
			sort.Ints(hits)

			for _, k := range hits {
				cell := t.Cells[k]
				if !cell.Rect.Contains(center) {
					continue
				}

				if a.NearEqual(cell.Rect, tol) || a.NearEqualOrigin(cell.Rect, tol) {
					cell.Row, cell.Col = i, j
					cell.RowSpan, cell.ColSpan = 1, 1
					state[cell] = &match{first: a, last: a}
					continue
				}

				m, ok := state[cell]
				if !ok {
					diags = append(diags, r.report(log, Diagnostic{
						Cell: cell, CellIndex: k, Atomic: a, Row: i, Col: j, Reason: ReasonNoAnchor,
					}))
					continue
				}

				p := m.last
				switch {
				case math.Abs(p.Y0-a.Y0) < tol:
					if math.Abs(m.first.Y0-a.Y0) < tol {
						cell.ColSpan++
					}
					m.last = a
				case math.Abs(p.Y1-a.Y0) < tol:
					cell.RowSpan++
					m.last = a
				default:
					diags = append(diags, r.report(log, Diagnostic{
						Cell: cell, CellIndex: k, Atomic: a, Previous: &p, Row: i, Col: j, Reason: ReasonDisjoint,
					}))
				}
				break
			}
		}
	}

	log.WithFields(logrus.Fields{
		"table":       t.Rect.String(),
		"cells":       len(t.Cells),
		"atomics":     len(atomics),
		"diagnostics": len(diags),
	}).Debug("resolved table spans")
	return diags
}

func (r *Resolver) report(log *logrus.Logger, d Diagnostic) Diagnostic {
	log.WithFields(logrus.Fields{
		"row":    d.Row,
		"col":    d.Col,
		"cell":   d.CellIndex,
		"reason": d.Reason.String(),
	}).Debugf("atomic %s does not continue %s", d.Atomic, d.Cell.Rect)
	return d
}
