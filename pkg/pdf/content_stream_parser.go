package pdf

import (
	"bytes"
	"strconv"

	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
)

// ContentStreamParser extracts the painted lines and rectangles of a page
// content stream. Text and images are skipped. Output coordinates use a
// top-left origin: y is measured down from the top of the media box.
type ContentStreamParser struct {
	originX float64
	originY float64
	height  float64

	objects Objects

	// Graphics state
	graphicsState *GraphicsState
	stateStack    []*GraphicsState

	// Current path
	currentPath []PathElement
	currentX    float64
	currentY    float64
	startX      float64
	startY      float64
}

// GraphicsState represents the parts of the PDF graphics state that affect
// line geometry
type GraphicsState struct {
	CTM         Matrix // Current transformation matrix
	StrokeColor PDFColor
	FillColor   PDFColor
	LineWidth   float64
}

// Matrix represents a 2D transformation matrix
type Matrix struct {
	A, B, C, D, E, F float64
}

// PDFColor represents a color in PDF with components in [0, 1]
type PDFColor struct {
	R, G, B float64
}

// PathElement represents a segment of the current path, already mapped to
// default user space
type PathElement struct {
	Type   string // line, rect
	Points []geometry.Point
}

// NewContentStreamParser creates a parser for a page whose media box has its
// lower-left corner at (originX, originY) and the given height.
func NewContentStreamParser(originX, originY, height float64) *ContentStreamParser {
	return &ContentStreamParser{
		originX: originX,
		originY: originY,
		height:  height,
		graphicsState: &GraphicsState{
			CTM:       IdentityMatrix(),
			LineWidth: 1.0,
		},
	}
}

// Parse parses a content stream and returns the painted lines and rects
func (p *ContentStreamParser) Parse(content []byte) Objects {
	tokens := p.tokenize(content)

	operands := []string{}
	for _, token := range tokens {
		if p.isOperator(token) {
			p.processOperator(token, operands)
			operands = []string{}
		} else {
			operands = append(operands, token)
		}
	}

	return p.objects
}

// tokenize splits content stream into tokens
func (p *ContentStreamParser) tokenize(content []byte) []string {
	var tokens []string
	reader := bytes.NewReader(content)

	for reader.Len() > 0 {
		// Skip whitespace
		b, err := reader.ReadByte()
		if err != nil {
			break
		}

		if isWhitespace(b) {
			continue
		}

		// Handle different token types
		switch b {
		case '(':
			// String literal
			str := p.readStringLiteral(reader)
			tokens = append(tokens, "("+str+")")

		case '<':
			// Hex string or dictionary
			next, _ := reader.ReadByte()
			if next == '<' {
				tokens = append(tokens, "<<")
			} else {
				reader.UnreadByte()
				hex := p.readHexString(reader)
				tokens = append(tokens, "<"+hex+">")
			}

		case '>':
			// Dictionary end
			next, _ := reader.ReadByte()
			if next == '>' {
				tokens = append(tokens, ">>")
			} else {
				reader.UnreadByte()
			}

		case '[':
			tokens = append(tokens, "[")

		case ']':
			tokens = append(tokens, "]")

		case '/':
			// Name
			name := p.readName(reader)
			tokens = append(tokens, "/"+name)

		case '%':
			// Comment - skip to end of line
			p.skipComment(reader)

		default:
			// Number or operator
			reader.UnreadByte()
			token := p.readToken(reader)
			if token != "" {
				tokens = append(tokens, token)
			}
		}
	}

	return tokens
}

// readStringLiteral reads a string literal from the reader
func (p *ContentStreamParser) readStringLiteral(reader *bytes.Reader) string {
	var result []byte
	depth := 1

	for reader.Len() > 0 {
		b, err := reader.ReadByte()
		if err != nil {
			break
		}

		if b == '\\' {
			// Escape sequence
			next, _ := reader.ReadByte()
			result = append(result, '\\', next)
		} else if b == '(' {
			depth++
			result = append(result, b)
		} else if b == ')' {
			depth--
			if depth == 0 {
				break
			}
			result = append(result, b)
		} else {
			result = append(result, b)
		}
	}

	return string(result)
}

// readHexString reads a hex string from the reader
func (p *ContentStreamParser) readHexString(reader *bytes.Reader) string {
	var result []byte

	for reader.Len() > 0 {
		b, err := reader.ReadByte()
		if err != nil {
			break
		}

		if b == '>' {
			break
		}

		if !isWhitespace(b) {
			result = append(result, b)
		}
	}

	return string(result)
}

// readName reads a name from the reader
func (p *ContentStreamParser) readName(reader *bytes.Reader) string {
	var result []byte

	for reader.Len() > 0 {
		b, err := reader.ReadByte()
		if err != nil {
			break
		}

		if isDelimiter(b) || isWhitespace(b) {
			reader.UnreadByte()
			break
		}

		result = append(result, b)
	}

	return string(result)
}

// readToken reads a general token from the reader
func (p *ContentStreamParser) readToken(reader *bytes.Reader) string {
	var result []byte

	for reader.Len() > 0 {
		b, err := reader.ReadByte()
		if err != nil {
			break
		}

		if isDelimiter(b) || isWhitespace(b) {
			reader.UnreadByte()
			break
		}

		result = append(result, b)
	}

	return string(result)
}

// skipComment skips a comment line
func (p *ContentStreamParser) skipComment(reader *bytes.Reader) {
	for reader.Len() > 0 {
		b, _ := reader.ReadByte()
		if b == '\n' || b == '\r' {
			break
		}
	}
}

// isWhitespace checks if a byte is whitespace
func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

// isDelimiter checks if a byte is a delimiter
func isDelimiter(b byte) bool {
	return b == '(' || b == ')' || b == '<' || b == '>' || b == '[' || b == ']' ||
		b == '{' || b == '}' || b == '/' || b == '%'
}

// isOperator checks if a token is a PDF operator
func (p *ContentStreamParser) isOperator(token string) bool {
	_, ok := operators[token]
	return ok
}

var operators = map[string]struct{}{
	// Text operators
	"BT": {}, "ET": {}, "Td": {}, "TD": {}, "Tm": {}, "T*": {}, "Tj": {}, "TJ": {}, "'": {}, "\"": {},
	"Tc": {}, "Tw": {}, "Tz": {}, "TL": {}, "Tf": {}, "Tr": {}, "Ts": {},
	// Graphics state
	"q": {}, "Q": {}, "cm": {}, "w": {}, "J": {}, "j": {}, "M": {}, "d": {}, "ri": {}, "i": {}, "gs": {},
	// Path construction
	"m": {}, "l": {}, "c": {}, "v": {}, "y": {}, "h": {}, "re": {},
	// Path painting
	"S": {}, "s": {}, "f": {}, "F": {}, "f*": {}, "B": {}, "B*": {}, "b": {}, "b*": {}, "n": {},
	// Color
	"CS": {}, "cs": {}, "SC": {}, "SCN": {}, "sc": {}, "scn": {}, "G": {}, "g": {}, "RG": {}, "rg": {}, "K": {}, "k": {},
	// Other
	"W": {}, "W*": {}, "BX": {}, "EX": {}, "Do": {}, "MP": {}, "DP": {}, "BMC": {}, "BDC": {}, "EMC": {},
}

// processOperator processes a PDF operator with its operands
func (p *ContentStreamParser) processOperator(operator string, operands []string) {
	switch operator {
	// Graphics state
	case "q":
		p.saveGraphicsState()
	case "Q":
		p.restoreGraphicsState()
	case "cm":
		p.concatenateMatrix(operands)
	case "w":
		if len(operands) >= 1 {
			p.graphicsState.LineWidth = parseFloat(operands[0])
		}

	// Path construction
	case "m":
		p.moveTo(operands)
	case "l":
		p.lineTo(operands)
	case "c":
		p.curveTo(operands, 4)
	case "v", "y":
		p.curveTo(operands, 2)
	case "h":
		p.closePath()
	case "re":
		p.rectangle(operands)

	// Path painting
	case "S":
		p.paint(true, false)
	case "s":
		p.closePath()
		p.paint(true, false)
	case "f", "F", "f*":
		p.paint(false, true)
	case "B", "B*":
		p.paint(true, true)
	case "b", "b*":
		p.closePath()
		p.paint(true, true)
	case "n":
		p.currentPath = nil

	// Color operators
	case "RG", "SC", "SCN":
		p.graphicsState.StrokeColor = parseColor(operands, p.graphicsState.StrokeColor)
	case "rg", "sc", "scn":
		p.graphicsState.FillColor = parseColor(operands, p.graphicsState.FillColor)
	case "G", "K":
		p.graphicsState.StrokeColor = parseColor(operands, p.graphicsState.StrokeColor)
	case "g", "k":
		p.graphicsState.FillColor = parseColor(operands, p.graphicsState.FillColor)
	case "CS":
		p.graphicsState.StrokeColor = PDFColor{}
	case "cs":
		p.graphicsState.FillColor = PDFColor{}
	}
}

// Graphics state operators

func (p *ContentStreamParser) saveGraphicsState() {
	stateCopy := *p.graphicsState
	p.stateStack = append(p.stateStack, &stateCopy)
}

func (p *ContentStreamParser) restoreGraphicsState() {
	if len(p.stateStack) > 0 {
		p.graphicsState = p.stateStack[len(p.stateStack)-1]
		p.stateStack = p.stateStack[:len(p.stateStack)-1]
	}
}

func (p *ContentStreamParser) concatenateMatrix(operands []string) {
	if len(operands) < 6 {
		return
	}

	m := Matrix{
		A: parseFloat(operands[0]),
		B: parseFloat(operands[1]),
		C: parseFloat(operands[2]),
		D: parseFloat(operands[3]),
		E: parseFloat(operands[4]),
		F: parseFloat(operands[5]),
	}

	p.graphicsState.CTM = MultiplyMatrix(m, p.graphicsState.CTM)
}

// Path construction operators

func (p *ContentStreamParser) moveTo(operands []string) {
	if len(operands) < 2 {
		return
	}
	p.currentX, p.currentY = p.transformPoint(parseFloat(operands[0]), parseFloat(operands[1]))
	p.startX, p.startY = p.currentX, p.currentY
}

func (p *ContentStreamParser) lineTo(operands []string) {
	if len(operands) < 2 {
		return
	}
	x, y := p.transformPoint(parseFloat(operands[0]), parseFloat(operands[1]))
	p.addLine(x, y)
}

// curveTo only advances the current point; curves are never ruling lines.
// endAt is the index of the end point's x operand.
func (p *ContentStreamParser) curveTo(operands []string, endAt int) {
	if len(operands) < endAt+2 {
		return
	}
	p.currentX, p.currentY = p.transformPoint(parseFloat(operands[endAt]), parseFloat(operands[endAt+1]))
}

func (p *ContentStreamParser) closePath() {
	if p.currentX != p.startX || p.currentY != p.startY {
		p.addLine(p.startX, p.startY)
	}
}

func (p *ContentStreamParser) addLine(x, y float64) {
	p.currentPath = append(p.currentPath, PathElement{
		Type:   "line",
		Points: []geometry.Point{{X: p.currentX, Y: p.currentY}, {X: x, Y: y}},
	})
	p.currentX, p.currentY = x, y
}

func (p *ContentStreamParser) rectangle(operands []string) {
	if len(operands) < 4 {
		return
	}

	x := parseFloat(operands[0])
	y := parseFloat(operands[1])
	width := parseFloat(operands[2])
	height := parseFloat(operands[3])

	var corners []geometry.Point
	for _, c := range [4][2]float64{{x, y}, {x + width, y}, {x + width, y + height}, {x, y + height}} {
		tx, ty := p.transformPoint(c[0], c[1])
		corners = append(corners, geometry.Point{X: tx, Y: ty})
	}
	p.currentPath = append(p.currentPath, PathElement{Type: "rect", Points: corners})

	// re starts a new subpath at its origin
	p.currentX, p.currentY = corners[0].X, corners[0].Y
	p.startX, p.startY = p.currentX, p.currentY
}

// Path painting

// paint turns the current path into objects. Paths painted only in white
// are invisible on a white page and dropped.
func (p *ContentStreamParser) paint(stroked, filled bool) {
	defer func() { p.currentPath = nil }()

	gs := p.graphicsState
	stroke := convertPDFColorToColor(gs.StrokeColor)
	fill := convertPDFColorToColor(gs.FillColor)
	switch {
	case stroked && filled && stroke.IsWhite() && fill.IsWhite():
		return
	case stroked && !filled && stroke.IsWhite():
		return
	case filled && !stroked && fill.IsWhite():
		return
	}

	width := gs.LineWidth
	if !stroked {
		width = 0
	}

	for _, elem := range p.currentPath {
		switch elem.Type {
		case "line":
			x0, y0 := p.toTopLeft(elem.Points[0])
			x1, y1 := p.toTopLeft(elem.Points[1])
			p.objects.Lines = append(p.objects.Lines, LineObject{
				X0: x0, Y0: y0, X1: x1, Y1: y1,
				Width:       width,
				StrokeColor: stroke,
			})
		case "rect":
			var box geometry.Rect
			for i, pt := range elem.Points {
				x, y := p.toTopLeft(pt)
				if i == 0 {
					box = geometry.Rect{X0: x, Y0: y, X1: x, Y1: y}
				}
				box = box.Union(geometry.Rect{X0: x, Y0: y, X1: x, Y1: y})
			}
			p.objects.Rects = append(p.objects.Rects, RectObject{
				X0: box.X0, Y0: box.Y0, X1: box.X1, Y1: box.Y1,
				Width:       width,
				StrokeColor: stroke,
				FillColor:   fill,
				Stroked:     stroked,
				Filled:      filled,
			})
		}
	}
}

// transformPoint applies the current transformation matrix to a point
func (p *ContentStreamParser) transformPoint(x, y float64) (float64, float64) {
	ctm := p.graphicsState.CTM
	newX := ctm.A*x + ctm.C*y + ctm.E
	newY := ctm.B*x + ctm.D*y + ctm.F
	return newX, newY
}

// toTopLeft converts a default user space point to top-left page space
func (p *ContentStreamParser) toTopLeft(pt geometry.Point) (float64, float64) {
	return pt.X - p.originX, p.height - (pt.Y - p.originY)
}

// parseColor reads gray, RGB or CMYK operands. Anything else (pattern names,
// other component counts) leaves the color unchanged.
func parseColor(operands []string, prev PDFColor) PDFColor {
	switch len(operands) {
	case 1:
		gray, err := strconv.ParseFloat(operands[0], 64)
		if err != nil {
			return prev
		}
		return PDFColor{R: gray, G: gray, B: gray}
	case 3:
		return PDFColor{
			R: parseFloat(operands[0]),
			G: parseFloat(operands[1]),
			B: parseFloat(operands[2]),
		}
	case 4:
		// Convert CMYK to RGB (simplified)
		c := parseFloat(operands[0])
		m := parseFloat(operands[1])
		y := parseFloat(operands[2])
		k := parseFloat(operands[3])
		return PDFColor{
			R: (1 - c) * (1 - k),
			G: (1 - m) * (1 - k),
			B: (1 - y) * (1 - k),
		}
	default:
		return prev
	}
}

// convertPDFColorToColor converts PDFColor to Color type
func convertPDFColorToColor(pdfColor PDFColor) Color {
	clamp := func(v float64) uint8 {
		v = max(0, min(1, v))
		return uint8(v*255 + 0.5)
	}
	return Color{R: clamp(pdfColor.R), G: clamp(pdfColor.G), B: clamp(pdfColor.B)}
}

// Utility functions

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// Matrix operations

// IdentityMatrix returns the identity transformation
func IdentityMatrix() Matrix {
	return Matrix{A: 1, B: 0, C: 0, D: 1, E: 0, F: 0}
}

// MultiplyMatrix returns m1 × m2
func MultiplyMatrix(m1, m2 Matrix) Matrix {
	return Matrix{
		A: m1.A*m2.A + m1.B*m2.C,
		B: m1.A*m2.B + m1.B*m2.D,
		C: m1.C*m2.A + m1.D*m2.C,
		D: m1.C*m2.B + m1.D*m2.D,
		E: m1.E*m2.A + m1.F*m2.C + m2.E,
		F: m1.E*m2.B + m1.F*m2.D + m2.F,
	}
}
