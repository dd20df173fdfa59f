// Package structure reconstructs the logical structure of ruled tables from
// page geometry.
//
// The engine works on three inputs: text fragments with bounding boxes,
// coarse cell rectangles and table rectangles (both traced from ruling
// lines), and, per table, the atomic grid obtained by extending every cell
// edge across the table. It produces a hierarchy of [Table] → [Cell] →
// [TextFragment] where every cell carries a row, column, row span and
// column span.
//
// # Pipeline
//
//  1. [BuildCells] assigns fragments to cell rectangles by center
//     containment ([Partition] threaded over the regions).
//  2. [GroupCells] places cells into the table that contains their center.
//  3. [Resolver.Resolve] walks the atomic grid row by row and infers spans
//     from the missing internal lines of each coarse cell.
//
// # Merged cells
//
// Merges never appear explicitly in the geometry. A coarse cell that covers
// several atomic cells is detected because its first atomic cell shares its
// top-left corner, and every following atomic cell either sits on the same
// row (a column span) or starts where the previous one ended (a row span).
// Atomic cells that fit neither case produce a [Diagnostic] and leave the
// coarse cell untouched.
//
// All functions are pure computations over their inputs and do no I/O.
package structure
