package raster

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
	"github.com/pyhub-apps/pdftable-golang/pkg/structure"
)

func pt(x, y float64) geometry.Point { return geometry.Point{X: x, Y: y} }

// inkRect inks the half-open pixel rectangle r.
func inkRect(m *Mask, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetInk(x, y)
		}
	}
}

// mergedHeaderPage draws a 100×40 table at (10, 10) whose top row is one
// cell and whose bottom row has two.
func mergedHeaderPage() *Mask {
	return Rasterize(200, 100, 1,
		[]Line{
			{From: pt(10, 30), To: pt(110, 30)},
			{From: pt(60, 30), To: pt(60, 50)},
		},
		[]geometry.Rect{{X0: 10, Y0: 10, X1: 110, Y1: 50}},
	)
}

func TestMask_Basics(t *testing.T) {
	m := NewMask(4, 3)
	assert.Equal(t, 4, m.Width())
	assert.Equal(t, 3, m.Height())
	assert.Equal(t, 12, m.FreeCount())

	m.SetInk(1, 1)
	m.SetInk(10, 10) // ignored
	assert.False(t, m.Free(1, 1))
	assert.True(t, m.Free(0, 0))
	assert.False(t, m.Free(-1, 0))
	assert.Equal(t, 11, m.FreeCount())

	c := m.Clone()
	c.InkRow(0)
	assert.True(t, m.Free(0, 0))
	assert.Equal(t, 7, c.FreeCount())

	crop := m.Crop(image.Rect(1, 1, 3, 3))
	assert.Equal(t, 2, crop.Width())
	assert.False(t, crop.Free(0, 0))
	assert.True(t, crop.Free(1, 1))
}

func TestMaskFromImage(t *testing.T) {
	img := image.NewGray(image.Rect(5, 5, 8, 7))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetGray(6, 6, color.Gray{Y: 0x10})

	m := MaskFromImage(img)
	assert.Equal(t, 3, m.Width())
	assert.Equal(t, 2, m.Height())
	assert.False(t, m.Free(1, 1))
	assert.Equal(t, 5, m.FreeCount())
}

func TestRasterize(t *testing.T) {
	m := mergedHeaderPage()

	assert.Equal(t, 200, m.Width())
	assert.Equal(t, 100, m.Height())
	assert.False(t, m.Free(10, 20), "left border")
	assert.False(t, m.Free(50, 30), "inner horizontal line")
	assert.False(t, m.Free(60, 40), "inner vertical line")
	assert.True(t, m.Free(60, 20), "vertical line stops at the header")
	assert.True(t, m.Free(30, 20))
	assert.True(t, m.Free(5, 5))
}

func TestRasterize_Scale(t *testing.T) {
	m := Rasterize(50, 20, 2, []Line{{From: pt(0, 5), To: pt(50, 5)}}, nil)
	assert.Equal(t, 100, m.Width())
	assert.Equal(t, 40, m.Height())
	assert.False(t, m.Free(50, 10))
	assert.True(t, m.Free(50, 5))
}

func TestRasterize_OutOfPageLine(t *testing.T) {
	m := Rasterize(20, 20, 1, []Line{{From: pt(-50, 10), To: pt(500, 10)}}, nil)
	assert.False(t, m.Free(0, 10))
	assert.False(t, m.Free(19, 10))
}

func TestFloodFillBorder(t *testing.T) {
	m := mergedHeaderPage()
	m.FloodFillBorder()

	assert.False(t, m.Free(5, 5))
	assert.False(t, m.Free(150, 80))
	assert.True(t, m.Free(30, 20))
	assert.True(t, m.Free(80, 40))
}

func TestErodeDilate(t *testing.T) {
	m := NewMask(9, 9)
	m.InkRow(4)
	m.Erode()
	assert.False(t, m.Free(0, 3))
	assert.False(t, m.Free(0, 5))
	assert.True(t, m.Free(0, 0), "border does not erode")
	assert.True(t, m.Free(8, 8))

	m.Dilate()
	assert.True(t, m.Free(0, 3))
	assert.False(t, m.Free(0, 4))
}

func TestOpen_RemovesSlivers(t *testing.T) {
	m := NewMask(20, 20)
	inkRect(m, m.Bounds())
	// a 1px free sliver and an 8×8 free block
	for x := 2; x < 18; x++ {
		m.img.Pix[m.offset(x, 2)] = freeValue
	}
	for y := 8; y < 16; y++ {
		for x := 8; x < 16; x++ {
			m.img.Pix[m.offset(x, y)] = freeValue
		}
	}

	m.Open(2)

	assert.False(t, m.Free(10, 2))
	assert.Equal(t, 64, m.FreeCount())
}

func TestClose_ErasesThinLines(t *testing.T) {
	m := NewMask(50, 30)
	inkRect(m, m.Bounds())
	for y := 8; y < 16; y++ {
		for x := 8; x < 42; x++ {
			if x != 24 {
				m.img.Pix[m.offset(x, y)] = freeValue
			}
		}
	}
	require.Len(t, m.Components(), 2)

	m.Close(3)

	boxes := m.Components()
	require.Len(t, boxes, 1)
	assert.Equal(t, image.Rect(8, 8, 42, 16), boxes[0])
}

func TestComponents_DropsNested(t *testing.T) {
	m := NewMask(40, 40)
	inkRect(m, m.Bounds())
	free := func(r image.Rectangle) {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				m.img.Pix[m.offset(x, y)] = freeValue
			}
		}
	}
	free(image.Rect(2, 2, 30, 30))
	inkRect(m, image.Rect(8, 8, 20, 20))
	free(image.Rect(10, 10, 18, 18)) // island inside the hole
	free(image.Rect(32, 2, 38, 8))

	boxes := m.Components()

	assert.Equal(t, []image.Rectangle{image.Rect(2, 2, 30, 30), image.Rect(32, 2, 38, 8)}, boxes)
}

func TestSegment(t *testing.T) {
	line := mergedHeaderPage()
	seg := Segment(line, DefaultOptions())

	require.Len(t, seg.Tables, 1)
	require.Len(t, seg.Cells, 3)
	table := seg.Tables[0]
	assert.True(t, table.NearEqual(geometry.Rect{X0: 10, Y0: 10, X1: 110, Y1: 50}, 2), "table %s", table)
	assert.True(t, seg.Cells[0].NearEqual(geometry.Rect{X0: 10, Y0: 10, X1: 110, Y1: 30}, 2), "header %s", seg.Cells[0])
	assert.True(t, seg.Cells[1].NearEqual(geometry.Rect{X0: 10, Y0: 30, X1: 60, Y1: 50}, 2), "left %s", seg.Cells[1])
	assert.True(t, seg.Cells[2].NearEqual(geometry.Rect{X0: 60, Y0: 30, X1: 110, Y1: 50}, 2), "right %s", seg.Cells[2])

	assert.True(t, line.Free(5, 5), "input mask untouched")
	assert.False(t, seg.Mask().Free(5, 5))

	atomics := seg.AtomicCells(table, seg.Cells)
	require.Len(t, atomics, 4)
	rows := structure.AtomicRows(atomics)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 2)
	assert.Len(t, rows[1], 2)
}

func TestSegment_ResolvesMergedHeader(t *testing.T) {
	seg := Segment(mergedHeaderPage(), DefaultOptions())

	cells, _ := structure.BuildCells(nil, seg.CellRects())
	tables := structure.GroupCells(cells, seg.TableRects())
	require.Len(t, tables, 1)

	tbl := tables[0]
	var rects []geometry.Rect
	for _, c := range tbl.Cells {
		rects = append(rects, c.Rect)
	}
	diags := structure.NewResolver(0).Resolve(tbl, seg.AtomicCells(tbl.Rect, rects))

	require.Empty(t, diags)
	got := make([][4]int, len(tbl.Cells))
	for i, c := range tbl.Cells {
		got[i] = [4]int{c.Row, c.Col, c.RowSpan, c.ColSpan}
	}
	assert.Equal(t, [][4]int{{0, 0, 1, 2}, {1, 0, 1, 1}, {1, 1, 1, 1}}, got)
}

func TestSegment_EmptyPage(t *testing.T) {
	seg := Segment(NewMask(50, 50), DefaultOptions())
	assert.Empty(t, seg.Cells)
	assert.Empty(t, seg.Tables)
	assert.Nil(t, seg.AtomicCells(geometry.Rect{}, nil))
}

func TestWriteBMP(t *testing.T) {
	m := NewMask(8, 4)
	m.SetInk(2, 1)

	var buf bytes.Buffer
	require.NoError(t, WriteBMP(&buf, m))

	img, err := bmp.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
	assert.Equal(t, color.Gray{Y: 0}, color.GrayModel.Convert(img.At(2, 1)))
	assert.Equal(t, color.Gray{Y: 0xff}, color.GrayModel.Convert(img.At(0, 0)))
}
