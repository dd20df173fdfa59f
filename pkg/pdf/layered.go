package pdf

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pyhub-apps/pdftable-golang/pkg/logging"
)

// ErrNoBackend is returned by Open when no backend can read the file.
var ErrNoBackend = errors.New("no PDF backend could open the file")

// LayeredDocument pairs a geometry document with a text document. Page
// size, rotation and drawings come from the geometry side; characters come
// from the text side.
type LayeredDocument struct {
	pageList
	geometry Document
	text     Document
}

// Layer combines two documents of the same file page by page. Text pages
// beyond the geometry page count are ignored.
func Layer(geometry, text Document) *LayeredDocument {
	d := &LayeredDocument{geometry: geometry, text: text}
	for i, gp := range geometry.GetPages() {
		lp := &basePage{
			pageNumber: gp.GetPageNumber(),
			width:      gp.GetWidth(),
			height:     gp.GetHeight(),
			rotation:   gp.GetRotation(),
			objects:    gp.GetObjects(),
		}
		lp.objects.Chars = nil
		if tp, err := text.GetPage(i); err == nil {
			lp.objects.Chars = tp.GetObjects().Chars
		}
		d.pageList = append(d.pageList, lp)
	}
	return d
}

// GetMetadata prefers the geometry backend's metadata
func (d *LayeredDocument) GetMetadata() Metadata {
	if m := d.geometry.GetMetadata(); m != (Metadata{}) {
		return m
	}
	return d.text.GetMetadata()
}

// Close closes both documents
func (d *LayeredDocument) Close() error {
	gerr := d.geometry.Close()
	terr := d.text.Close()
	if gerr != nil {
		return gerr
	}
	return terr
}

// Open opens a PDF with every backend that can read it. pdfcpu supplies the
// drawings; ledongthuc/pdf, or dslipak/pdf when that fails, supplies the
// text. With only one side available the document is returned as is: a
// geometry document without text, or a text document whose drawings are
// limited to the rectangles of re operators.
func Open(filepath, password string) (Document, error) {
	log := logging.Logger().WithField("file", filepath)

	var geometry Document
	gdoc, gerr := OpenGeometryWithPassword(filepath, password)
	if gerr != nil {
		log.WithError(gerr).Warn("geometry backend failed")
	} else {
		geometry = gdoc
	}

	text, terr := OpenWithLedongthuc(filepath)
	if terr != nil {
		log.WithError(terr).Debug("ledongthuc backend failed, trying dslipak")
		text, terr = OpenWithDslipak(filepath)
	}
	if terr != nil {
		log.WithError(terr).Warn("text backends failed")
	}

	switch {
	case geometry != nil && text != nil:
		log.WithFields(logrus.Fields{"pages": geometry.PageCount()}).Debug("opened layered document")
		return Layer(geometry, text), nil
	case geometry != nil:
		return geometry, nil
	case text != nil:
		return text, nil
	default:
		return nil, errors.Wrapf(ErrNoBackend, "%s: %v", filepath, gerr)
	}
}
