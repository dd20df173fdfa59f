package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// PDFCPUPage is a page whose drawings come from its own content stream.
// It carries no text; see Layer.
type PDFCPUPage struct {
	basePage
	ctx      *model.Context
	pageDict types.Dict
	content  []byte
}

// NewPDFCPUPage creates a new page using pdfcpu context
func NewPDFCPUPage(ctx *model.Context, pageNumber int) (*PDFCPUPage, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}

	if pageNumber < 1 || pageNumber > ctx.PageCount {
		return nil, fmt.Errorf("page number %d out of range [1, %d]", pageNumber, ctx.PageCount)
	}

	// Get page dictionary and inherited attributes
	pageDict, _, attrs, err := ctx.PageDict(pageNumber, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get page dict: %w", err)
	}

	// Default US Letter size
	var originX, originY float64
	width, height := 612.0, 792.0
	if attrs != nil && attrs.MediaBox != nil {
		originX, originY = attrs.MediaBox.LL.X, attrs.MediaBox.LL.Y
		width = attrs.MediaBox.Width()
		height = attrs.MediaBox.Height()
	}

	page := &PDFCPUPage{
		basePage: basePage{
			pageNumber: pageNumber,
			width:      width,
			height:     height,
		},
		ctx:      ctx,
		pageDict: pageDict,
	}

	// Extract rotation from inherited attributes first, then from page dict
	if attrs != nil {
		page.rotation = normalizeRotation(attrs.Rotate)
	} else if rot, ok := pageDict["Rotate"].(types.Integer); ok {
		page.rotation = normalizeRotation(int(rot))
	}

	if err := page.extractContent(); err != nil {
		return nil, fmt.Errorf("failed to extract content: %w", err)
	}

	if len(page.content) > 0 {
		page.objects = NewContentStreamParser(originX, originY, height).Parse(page.content)
		page.objects.Lines = DeduplicateLines(page.objects.Lines)
		page.objects.Rects = DeduplicateRectangles(page.objects.Rects)
	}

	return page, nil
}

// extractContent reads and decodes the page content streams
func (p *PDFCPUPage) extractContent() error {
	var refs []types.IndirectRef
	switch v := p.pageDict["Contents"].(type) {
	case nil:
		return nil
	case *types.IndirectRef:
		refs = append(refs, *v)
	case types.IndirectRef:
		refs = append(refs, v)
	case types.Array:
		// Broken parts of a multi-stream page are skipped
		for _, item := range v {
			switch ref := item.(type) {
			case *types.IndirectRef:
				refs = append(refs, *ref)
			case types.IndirectRef:
				refs = append(refs, ref)
			}
		}
	}

	var contentStreams [][]byte
	for _, ref := range refs {
		stream, found, err := p.ctx.DereferenceStreamDict(ref)
		if err != nil {
			if len(refs) == 1 {
				return fmt.Errorf("failed to dereference content: %w", err)
			}
			continue
		}
		if !found || stream == nil {
			continue
		}
		decoded, err := decodeStream(stream)
		if err != nil {
			if len(refs) == 1 {
				return fmt.Errorf("failed to decode stream: %w", err)
			}
			continue
		}
		contentStreams = append(contentStreams, decoded)
	}

	if len(contentStreams) > 0 {
		p.content = combineContentStreams(contentStreams)
	}
	return nil
}

// decodeStream decodes a stream dictionary
func decodeStream(stream *types.StreamDict) ([]byte, error) {
	if len(stream.Content) > 0 {
		return stream.Content, nil
	}
	if err := stream.Decode(); err != nil {
		return nil, err
	}
	return stream.Content, nil
}

// combineContentStreams joins the parts of a page's content. Operators may
// not span parts, so a newline between them is safe.
func combineContentStreams(streams [][]byte) []byte {
	var combined []byte
	for _, stream := range streams {
		combined = append(combined, stream...)
		combined = append(combined, '\n')
	}
	return combined
}
