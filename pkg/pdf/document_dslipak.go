package pdf

import (
	"fmt"

	gopdf "github.com/dslipak/pdf"
)

// DsliPakDocument is a text backend built on dslipak/pdf
type DsliPakDocument struct {
	pageList
	reader   *gopdf.Reader
	filepath string
	metadata Metadata
}

// OpenWithDslipak opens a PDF file using the dslipak/pdf library
func OpenWithDslipak(filepath string) (Document, error) {
	r, err := gopdf.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with dslipak: %w", err)
	}

	doc := &DsliPakDocument{
		reader:   r,
		filepath: filepath,
	}

	info := r.Trailer().Key("Info")
	doc.metadata = Metadata{
		Title:    info.Key("Title").Text(),
		Author:   info.Key("Author").Text(),
		Subject:  info.Key("Subject").Text(),
		Creator:  info.Key("Creator").Text(),
		Producer: info.Key("Producer").Text(),
	}

	pageCount := r.NumPage()
	doc.pageList = make(pageList, pageCount)
	for i := 1; i <= pageCount; i++ {
		page, err := NewDsliPakPage(r, i)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize pages: %w", err)
		}
		doc.pageList[i-1] = page
	}

	return doc, nil
}

func (d *DsliPakDocument) GetMetadata() Metadata {
	return d.metadata
}

func (d *DsliPakDocument) Close() error {
	d.reader = nil
	d.pageList = nil
	return nil
}

type DsliPakPage struct {
	basePage
}

func NewDsliPakPage(reader *gopdf.Reader, pageNumber int) (page Page, err error) {
	if pageNumber < 1 || pageNumber > reader.NumPage() {
		return nil, fmt.Errorf("invalid page number: %d", pageNumber)
	}

	dp := reader.Page(pageNumber)
	box := pageBox{width: 612, height: 792}
	if mb := dp.V.Key("MediaBox"); mb.Kind() == gopdf.Array && mb.Len() == 4 {
		box = newPageBox(mb.Index(0).Float64(), mb.Index(1).Float64(), mb.Index(2).Float64(), mb.Index(3).Float64())
	}

	p := &DsliPakPage{basePage: basePage{
		pageNumber: pageNumber,
		width:      box.width,
		height:     box.height,
	}}
	if rotate := dp.V.Key("Rotate"); rotate.Kind() == gopdf.Integer {
		p.rotation = normalizeRotation(int(rotate.Int64()))
	}

	defer func() {
		if r := recover(); r != nil {
			page, err = nil, fmt.Errorf("failed to read content of page %d: %v", pageNumber, r)
		}
	}()

	content := dp.Content()
	for _, text := range content.Text {
		p.objects.Chars = append(p.objects.Chars,
			box.glyphs(text.S, text.Font, text.FontSize, text.X, text.Y, text.W)...)
	}
	for _, r := range content.Rect {
		p.objects.Rects = append(p.objects.Rects, box.rect(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y))
	}

	return p, nil
}
