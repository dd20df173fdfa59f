// Package pdftable reconstructs ruled tables, merged cells included, from
// PDF pages.
//
// A page is read by the pdf backends, rotated into its displayed
// orientation, rasterized into a line mask and traced into cell and table
// rectangles. The pipeline then fills the cells with words, groups them
// into tables and resolves every cell's row, column and spans.
package pdftable

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	"github.com/pyhub-apps/pdftable-golang/pkg/config"
	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
	"github.com/pyhub-apps/pdftable-golang/pkg/logging"
	"github.com/pyhub-apps/pdftable-golang/pkg/pdf"
	"github.com/pyhub-apps/pdftable-golang/pkg/pipeline"
	"github.com/pyhub-apps/pdftable-golang/pkg/raster"
	"github.com/pyhub-apps/pdftable-golang/pkg/structure"
)

// Re-export types for the public API
type (
	Document   = pdf.Document
	Page       = pdf.Page
	Config     = config.Config
	PageResult = pipeline.PageResult
	Table      = structure.Table
	Cell       = structure.Cell
)

// Open opens a PDF file with drawings from pdfcpu and text from
// ledongthuc/pdf or dslipak/pdf
func Open(filepath string) (Document, error) {
	return pdf.Open(filepath, "")
}

// OpenWithPassword opens a password-protected PDF file
func OpenWithPassword(filepath string, password string) (Document, error) {
	return pdf.Open(filepath, password)
}

// Extract reconstructs the tables of every page of doc
func Extract(ctx context.Context, doc Document, cfg Config) ([]PageResult, error) {
	src, err := NewSource(doc, cfg)
	if err != nil {
		return nil, err
	}

	c := pipeline.NewCoordinator(
		pipeline.WithTolerance(cfg.Tolerance),
		pipeline.WithWorkers(cfg.Workers),
	)
	return c.Run(ctx, src)
}

// ExtractFile opens a PDF file and extracts its tables
func ExtractFile(ctx context.Context, filepath string, cfg Config) ([]PageResult, error) {
	doc, err := Open(filepath)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return Extract(ctx, doc, cfg)
}

// Source adapts a Document to the pipeline. Pages are loaded
// independently, so LoadPage may run concurrently.
type Source struct {
	doc  Document
	cfg  Config
	form *norm.Form
}

// NewSource validates cfg and wraps doc
func NewSource(doc Document, cfg Config) (*Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// Validate has already rejected unknown form names.
	form, _ := pdf.UnicodeForm(cfg.UnicodeForm)
	return &Source{doc: doc, cfg: cfg, form: form}, nil
}

// PageCount returns the number of pages
func (s *Source) PageCount() int {
	return s.doc.PageCount()
}

// LoadPage reads one page, traces its ruling lines and collects its words
func (s *Source) LoadPage(ctx context.Context, index int) (pipeline.PageInput, error) {
	page, err := s.doc.GetPage(index)
	if err != nil {
		return pipeline.PageInput{}, err
	}
	if err := ctx.Err(); err != nil {
		return pipeline.PageInput{}, err
	}

	cp := s.Canonical(page)
	mask := LineMask(cp, s.cfg.Scale)
	seg := raster.Segment(mask, s.cfg.RasterOptions())

	logging.Logger().WithFields(logrus.Fields{
		"page":   cp.Number,
		"words":  len(cp.Words),
		"lines":  len(cp.Lines),
		"rects":  len(cp.Rects),
		"cells":  len(seg.Cells),
		"tables": len(seg.Tables),
	}).Debug("page traced")

	return pipeline.PageInput{
		Number:    cp.Number,
		Fragments: Fragments(cp.Words),
		Layout:    seg,
	}, nil
}

// Canonical returns the page's normalized words and drawings in displayed
// coordinates
func (s *Source) Canonical(page Page) pdf.CanonicalPage {
	cp := pdf.Canonicalize(page,
		pdf.WithXTolerance(s.cfg.WordXTolerance),
		pdf.WithYTolerance(s.cfg.WordYTolerance),
	)
	cp.Words = pdf.NormalizeWords(cp.Words, s.form)
	return cp
}

// LineMask rasterizes the drawings of a canonical page. Rectangles are
// drawn as outlines whether stroked or filled, since filled bars are how
// many producers paint rulings.
func LineMask(cp pdf.CanonicalPage, scale float64) *raster.Mask {
	lines := make([]raster.Line, 0, len(cp.Lines))
	for _, l := range pdf.DeduplicateLines(cp.Lines) {
		lines = append(lines, raster.Line{
			From: geometry.Point{X: l.X0, Y: l.Y0},
			To:   geometry.Point{X: l.X1, Y: l.Y1},
		})
	}

	outlines := make([]geometry.Rect, 0, len(cp.Rects))
	for _, r := range pdf.DeduplicateRectangles(cp.Rects) {
		outlines = append(outlines, r.GetBBox())
	}

	return raster.Rasterize(cp.Width, cp.Height, scale, lines, outlines)
}

// Fragments converts words to text fragments in reading order. Words that
// cannot form a fragment are dropped.
func Fragments(words []pdf.Word) []structure.TextFragment {
	fragments := make([]structure.TextFragment, 0, len(words))
	for _, w := range words {
		f, err := structure.NewTextFragment(w.GetBBox(), w.Text)
		if err != nil {
			logging.Logger().WithError(err).WithField("word", w.Text).Debug("word dropped")
			continue
		}
		fragments = append(fragments, f)
	}
	return structure.SortFragments(fragments)
}

// Summary formats a one-line description of a page result
func Summary(p PageResult) string {
	return fmt.Sprintf("page %d: %d table(s), %d diagnostic(s), %d unassigned", p.Number, len(p.Tables), len(p.Diagnostics), p.Unassigned)
}
