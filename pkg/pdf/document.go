package pdf

import (
	"fmt"
	"os"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// PDFDocument is the geometry backend: pdfcpu reads the page tree and each
// page's content stream is parsed for ruling lines and rectangles.
type PDFDocument struct {
	pageList
	ctx      *model.Context
	filepath string
	metadata Metadata
}

// OpenGeometry opens a PDF file with pdfcpu
func OpenGeometry(filepath string) (*PDFDocument, error) {
	return OpenGeometryWithPassword(filepath, "")
}

// OpenGeometryWithPassword opens a password-protected PDF file with pdfcpu
func OpenGeometryWithPassword(filepath string, password string) (*PDFDocument, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
		conf.OwnerPW = password
	}

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	doc := &PDFDocument{
		ctx:      ctx,
		filepath: filepath,
	}
	doc.extractMetadata()

	if err := doc.initializePages(); err != nil {
		return nil, fmt.Errorf("failed to initialize pages: %w", err)
	}

	return doc, nil
}

// extractMetadata reads the document information dictionary
func (d *PDFDocument) extractMetadata() {
	if d.ctx.Info == nil {
		return
	}

	info, err := d.ctx.DereferenceDict(*d.ctx.Info)
	if err != nil || info == nil {
		return
	}

	d.metadata = Metadata{
		Title:        getStringFromDict(info, "Title"),
		Author:       getStringFromDict(info, "Author"),
		Subject:      getStringFromDict(info, "Subject"),
		Keywords:     getStringFromDict(info, "Keywords"),
		Creator:      getStringFromDict(info, "Creator"),
		Producer:     getStringFromDict(info, "Producer"),
		CreationDate: parsePDFDate(getStringFromDict(info, "CreationDate")),
		ModDate:      parsePDFDate(getStringFromDict(info, "ModDate")),
	}
}

// initializePages initializes all pages in the document
func (d *PDFDocument) initializePages() error {
	pageCount := d.ctx.PageCount
	d.pageList = make(pageList, pageCount)

	for i := 1; i <= pageCount; i++ {
		page, err := NewPDFCPUPage(d.ctx, i)
		if err != nil {
			return fmt.Errorf("failed to create page %d: %w", i, err)
		}
		d.pageList[i-1] = page
	}

	return nil
}

// GetMetadata returns the PDF metadata
func (d *PDFDocument) GetMetadata() Metadata {
	return d.metadata
}

// Close releases resources associated with the document
func (d *PDFDocument) Close() error {
	d.ctx = nil
	d.pageList = nil
	return nil
}

// Helper functions

func getStringFromDict(dict types.Dict, key string) string {
	switch v := dict[key].(type) {
	case types.StringLiteral:
		return string(v)
	case types.HexLiteral:
		return string(v)
	default:
		return ""
	}
}

// parsePDFDate parses the D:YYYYMMDDHHmmSS prefix of a PDF date. The zone
// suffix is ignored.
func parsePDFDate(dateStr string) time.Time {
	if len(dateStr) >= 2 && dateStr[:2] == "D:" {
		dateStr = dateStr[2:]
	}
	if len(dateStr) < 14 {
		return time.Time{}
	}

	t, err := time.Parse("20060102150405", dateStr[:14])
	if err != nil {
		return time.Time{}
	}
	return t
}
