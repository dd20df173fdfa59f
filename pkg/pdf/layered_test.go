package pdf

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocument struct {
	pageList
	metadata Metadata
	closeErr error
	closed   bool
}

func (d *fakeDocument) GetMetadata() Metadata { return d.metadata }

func (d *fakeDocument) Close() error {
	d.closed = true
	return d.closeErr
}

func TestLayer(t *testing.T) {
	geo := &fakeDocument{pageList: pageList{
		&basePage{pageNumber: 1, width: 100, height: 200, rotation: 90, objects: Objects{
			Chars: []CharObject{char("x", 0, 0)},
			Lines: []LineObject{{X0: 0, Y0: 10, X1: 100, Y1: 10}},
		}},
		&basePage{pageNumber: 2, width: 100, height: 200},
	}}
	text := &fakeDocument{
		pageList: pageList{
			&basePage{pageNumber: 1, width: 612, height: 792, objects: Objects{
				Chars: []CharObject{char("a", 5, 5)},
				Rects: []RectObject{{X0: 1, Y0: 1, X1: 2, Y1: 2}},
			}},
		},
		metadata: Metadata{Title: "from text"},
	}

	doc := Layer(geo, text)

	require.Equal(t, 2, doc.PageCount())
	p, err := doc.GetPage(0)
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.GetWidth())
	assert.Equal(t, 90, p.GetRotation())
	objs := p.GetObjects()
	assert.Equal(t, "a", objs.Chars[0].Text)
	assert.Len(t, objs.Chars, 1)
	assert.Len(t, objs.Lines, 1)
	assert.Empty(t, objs.Rects)

	p, err = doc.GetPage(1)
	require.NoError(t, err)
	assert.Empty(t, p.GetObjects().Chars)

	_, err = doc.GetPage(2)
	assert.Error(t, err)

	assert.Equal(t, "from text", doc.GetMetadata().Title)
	geo.metadata.Title = "from geometry"
	assert.Equal(t, "from geometry", doc.GetMetadata().Title)
}

func TestLayerClose(t *testing.T) {
	geo := &fakeDocument{}
	text := &fakeDocument{closeErr: errors.New("boom")}

	err := Layer(geo, text).Close()

	assert.EqualError(t, err, "boom")
	assert.True(t, geo.closed)
	assert.True(t, text.closed)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.pdf"), "")
	assert.True(t, errors.Is(err, ErrNoBackend))
}
