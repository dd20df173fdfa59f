package pdf

import (
	"fmt"
	"io"

	lpdf "github.com/ledongthuc/pdf"
)

// LedongthucDocument is a text backend built on ledongthuc/pdf
type LedongthucDocument struct {
	pageList
	file     io.Closer
	reader   *lpdf.Reader
	filepath string
	metadata Metadata
}

// OpenWithLedongthuc opens a PDF file using the ledongthuc/pdf library
func OpenWithLedongthuc(filepath string) (Document, error) {
	f, r, err := lpdf.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with ledongthuc: %w", err)
	}

	doc := &LedongthucDocument{
		file:     f,
		reader:   r,
		filepath: filepath,
	}

	info := r.Trailer().Key("Info")
	doc.metadata = Metadata{
		Title:        info.Key("Title").Text(),
		Author:       info.Key("Author").Text(),
		Subject:      info.Key("Subject").Text(),
		Keywords:     info.Key("Keywords").Text(),
		Creator:      info.Key("Creator").Text(),
		Producer:     info.Key("Producer").Text(),
		CreationDate: parsePDFDate(info.Key("CreationDate").Text()),
		ModDate:      parsePDFDate(info.Key("ModDate").Text()),
	}

	if err := doc.initializePages(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to initialize pages: %w", err)
	}

	return doc, nil
}

// initializePages initializes all pages in the document
func (d *LedongthucDocument) initializePages() error {
	pageCount := d.reader.NumPage()
	d.pageList = make(pageList, pageCount)

	for i := 1; i <= pageCount; i++ {
		page, err := NewLedongthucPage(d.reader, i)
		if err != nil {
			return fmt.Errorf("failed to initialize page %d: %w", i, err)
		}
		d.pageList[i-1] = page
	}

	return nil
}

// GetMetadata returns the PDF metadata
func (d *LedongthucDocument) GetMetadata() Metadata {
	return d.metadata
}

// Close releases resources associated with the document
func (d *LedongthucDocument) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// LedongthucPage holds the glyphs and re rectangles ledongthuc reports
type LedongthucPage struct {
	basePage
}

// NewLedongthucPage creates a new page using ledongthuc/pdf
func NewLedongthucPage(reader *lpdf.Reader, pageNumber int) (page Page, err error) {
	if pageNumber < 1 || pageNumber > reader.NumPage() {
		return nil, fmt.Errorf("invalid page number: %d", pageNumber)
	}

	lp := reader.Page(pageNumber)
	box := pageBox{width: 612, height: 792}

	mediaBox := lp.V.Key("MediaBox")
	if mediaBox.Kind() == lpdf.Array && mediaBox.Len() == 4 {
		box = newPageBox(
			mediaBox.Index(0).Float64(),
			mediaBox.Index(1).Float64(),
			mediaBox.Index(2).Float64(),
			mediaBox.Index(3).Float64(),
		)
	}

	p := &LedongthucPage{basePage: basePage{
		pageNumber: pageNumber,
		width:      box.width,
		height:     box.height,
	}}
	if rotate := lp.V.Key("Rotate"); rotate.Kind() == lpdf.Integer {
		p.rotation = normalizeRotation(int(rotate.Int64()))
	}

	// The content interpreter panics on malformed streams
	defer func() {
		if r := recover(); r != nil {
			page, err = nil, fmt.Errorf("failed to read content of page %d: %v", pageNumber, r)
		}
	}()

	content := lp.Content()
	for _, text := range content.Text {
		p.objects.Chars = append(p.objects.Chars,
			box.glyphs(text.S, text.Font, text.FontSize, text.X, text.Y, text.W)...)
	}
	for _, r := range content.Rect {
		p.objects.Rects = append(p.objects.Rects, box.rect(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y))
	}

	return p, nil
}
