package structure

import (
	"fmt"

	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
)

// Reason classifies why an atomic cell could not be related to a coarse cell.
type Reason int

const (
	// ReasonNoAnchor means the atomic cell lies inside a coarse cell whose
	// top-left atomic cell has not been seen yet.
	ReasonNoAnchor Reason = iota
	// ReasonDisjoint means the atomic cell is neither on the same row as
	// nor directly below the previously matched atomic cell.
	ReasonDisjoint
)

func (r Reason) String() string {
	switch r {
	case ReasonNoAnchor:
		return "no anchor"
	case ReasonDisjoint:
		return "disjoint"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Diagnostic reports an atomic cell whose relation to its coarse cell
// matched none of the start or continuation cases. The coarse cell keeps
// whatever state it had before.
type Diagnostic struct {
	Cell      *Cell
	CellIndex int
	Atomic    geometry.Rect
	// Previous is the last atomic cell matched to Cell, nil for ReasonNoAnchor.
	Previous *geometry.Rect
	Row      int
	Col      int
	Reason   Reason
}

func (d Diagnostic) String() string {
	prev := "none"
	if d.Previous != nil {
		prev = d.Previous.String()
	}
	return fmt.Sprintf("%s: atomic %s at (%d,%d) in cell #%d %s, previous %s",
		d.Reason, d.Atomic, d.Row, d.Col, d.CellIndex, d.Cell.Rect, prev)
}

// Error lets a diagnostic be reported through error channels.
func (d Diagnostic) Error() string {
	return "unresolved span: " + d.String()
}

// DiagnosedCells returns the set of cells named by diags.
func DiagnosedCells(diags []Diagnostic) map[*Cell]bool {
	set := make(map[*Cell]bool, len(diags))
	for _, d := range diags {
		set[d.Cell] = true
	}
	return set
}
