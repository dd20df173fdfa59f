package pdf

import (
	"time"

	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
)

// ObjectType represents the type of PDF object
type ObjectType string

const (
	ObjectTypeChar ObjectType = "char"
	ObjectTypeLine ObjectType = "line"
	ObjectTypeRect ObjectType = "rect"
)

// BoundingBox represents a rectangular area with top-left origin
type BoundingBox = geometry.Rect

// Metadata represents PDF document metadata
type Metadata struct {
	Title        string
	Author       string
	Subject      string
	Keywords     string
	Creator      string
	Producer     string
	CreationDate time.Time
	ModDate      time.Time
}

// Objects represents a collection of PDF objects
type Objects struct {
	Chars []CharObject
	Lines []LineObject
	Rects []RectObject
}

// CharObject represents a character in the PDF
type CharObject struct {
	Text     string
	Font     string
	FontSize float64
	X0       float64
	Y0       float64
	X1       float64
	Y1       float64
}

// GetType returns the object type
func (c CharObject) GetType() ObjectType {
	return ObjectTypeChar
}

// GetBBox returns the character's bounding box
func (c CharObject) GetBBox() BoundingBox {
	return BoundingBox{X0: c.X0, Y0: c.Y0, X1: c.X1, Y1: c.Y1}
}

// LineObject represents a straight path segment that was painted
type LineObject struct {
	X0          float64
	Y0          float64
	X1          float64
	Y1          float64
	Width       float64
	StrokeColor Color
}

// GetType returns the object type
func (l LineObject) GetType() ObjectType {
	return ObjectTypeLine
}

// GetBBox returns the line's bounding box
func (l LineObject) GetBBox() BoundingBox {
	return geometry.FromCorners(l.X0, l.Y0, l.X1, l.Y1)
}

// RectObject represents a rectangle added with the re operator and painted
type RectObject struct {
	X0          float64
	Y0          float64
	X1          float64
	Y1          float64
	Width       float64
	StrokeColor Color
	FillColor   Color
	Stroked     bool
	Filled      bool
}

// GetType returns the object type
func (r RectObject) GetType() ObjectType {
	return ObjectTypeRect
}

// GetBBox returns the rectangle's bounding box
func (r RectObject) GetBBox() BoundingBox {
	return BoundingBox{X0: r.X0, Y0: r.Y0, X1: r.X1, Y1: r.Y1}
}

// Color represents an RGB color
type Color struct {
	R, G, B uint8
}

// Black and White are the extremes of the color range
var (
	Black = Color{}
	White = Color{R: 255, G: 255, B: 255}
)

// IsWhite reports whether the color is pure white
func (c Color) IsWhite() bool {
	return c == White
}

// Word represents a group of characters forming a word
type Word struct {
	Text       string
	X0         float64
	Y0         float64
	X1         float64
	Y1         float64
	Characters []CharObject
}

// GetBBox returns the word's bounding box
func (w Word) GetBBox() BoundingBox {
	return BoundingBox{X0: w.X0, Y0: w.Y0, X1: w.X1, Y1: w.Y1}
}

// WordExtractionOption is a function that modifies word extraction behavior
type WordExtractionOption func(*wordExtractionConfig)

type wordExtractionConfig struct {
	XTolerance float64
	YTolerance float64
}

func defaultWordConfig() *wordExtractionConfig {
	return &wordExtractionConfig{
		XTolerance: 3,
		YTolerance: 3,
	}
}

// WithXTolerance sets the horizontal gap that still joins two characters
func WithXTolerance(tolerance float64) WordExtractionOption {
	return func(c *wordExtractionConfig) {
		c.XTolerance = tolerance
	}
}

// WithYTolerance sets the vertical distance that still puts two characters
// on the same line
func WithYTolerance(tolerance float64) WordExtractionOption {
	return func(c *wordExtractionConfig) {
		c.YTolerance = tolerance
	}
}
