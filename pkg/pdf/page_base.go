package pdf

import (
	"fmt"
)

// basePage holds what every backend knows about a page once its objects
// are extracted.
type basePage struct {
	pageNumber int
	width      float64
	height     float64
	rotation   int
	objects    Objects
}

// GetPageNumber returns the page number (1-based)
func (p *basePage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width
func (p *basePage) GetWidth() float64 {
	return p.width
}

// GetHeight returns the page height
func (p *basePage) GetHeight() float64 {
	return p.height
}

// GetRotation returns the page rotation in degrees
func (p *basePage) GetRotation() int {
	return p.rotation
}

// GetBBox returns the page bounding box
func (p *basePage) GetBBox() BoundingBox {
	return BoundingBox{X0: 0, Y0: 0, X1: p.width, Y1: p.height}
}

// GetObjects returns all objects on the page
func (p *basePage) GetObjects() Objects {
	return p.objects
}

// ExtractText extracts text from the page
func (p *basePage) ExtractText(opts ...WordExtractionOption) string {
	return ExtractText(p.objects.Chars, opts...)
}

// ExtractWords extracts individual words from the page
func (p *basePage) ExtractWords(opts ...WordExtractionOption) []Word {
	return ExtractWords(p.objects.Chars, opts...)
}

// pageList implements the page accessors shared by every Document.
type pageList []Page

// GetPages returns all pages in the document
func (l pageList) GetPages() []Page {
	return l
}

// GetPage returns a specific page by index (0-based)
func (l pageList) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(l) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(l))
	}
	return l[index], nil
}

// PageCount returns the total number of pages
func (l pageList) PageCount() int {
	return len(l)
}

// normalizeRotation maps any multiple of 90 into 0, 90, 180 or 270.
func normalizeRotation(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg / 90 * 90
}
