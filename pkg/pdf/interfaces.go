package pdf

// Document represents a PDF document opened by one of the backends
type Document interface {
	// GetMetadata returns the PDF metadata
	GetMetadata() Metadata

	// GetPages returns all pages in the document
	GetPages() []Page

	// GetPage returns a specific page by index (0-based)
	GetPage(index int) (Page, error)

	// PageCount returns the total number of pages
	PageCount() int

	// Close releases resources associated with the document
	Close() error
}

// Page represents a single page in a PDF document. Object coordinates use a
// top-left origin in the unrotated page space.
type Page interface {
	// GetPageNumber returns the page number (1-based)
	GetPageNumber() int

	// GetWidth returns the page width
	GetWidth() float64

	// GetHeight returns the page height
	GetHeight() float64

	// GetRotation returns the page rotation in degrees
	GetRotation() int

	// GetBBox returns the page bounding box
	GetBBox() BoundingBox

	// GetObjects returns all objects on the page
	GetObjects() Objects

	// ExtractText extracts text from the page
	ExtractText(opts ...WordExtractionOption) string

	// ExtractWords groups the page characters into words
	ExtractWords(opts ...WordExtractionOption) []Word
}

// Object represents a PDF object (char, line or rect)
type Object interface {
	// GetType returns the object type
	GetType() ObjectType

	// GetBBox returns the object's bounding box
	GetBBox() BoundingBox
}
