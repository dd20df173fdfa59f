package structure

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalPages(t *testing.T) {
	tbl := mergedTable(t)
	pages := []Page{{Number: 1, Tables: []*Table{tbl}, Unassigned: 2}, {Number: 2}}

	data, err := MarshalPages(pages)
	require.NoError(t, err)

	var out []struct {
		Page   int `json:"page"`
		Tables []struct {
			Rows  int `json:"rows"`
			Cols  int `json:"cols"`
			Cells []struct {
				Rect    [4]float64 `json:"rect"`
				Row     int        `json:"row"`
				Col     int        `json:"col"`
				RowSpan int        `json:"rowspan"`
				ColSpan int        `json:"colspan"`
				Text    string     `json:"text"`
			} `json:"cells"`
		} `json:"tables"`
		Unassigned int `json:"unassigned"`
	}
	require.NoError(t, json.Unmarshal(data, &out))

	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Page)
	assert.Equal(t, 2, out[0].Unassigned)
	require.Len(t, out[0].Tables, 1)
	table := out[0].Tables[0]
	assert.Equal(t, 2, table.Rows)
	assert.Equal(t, 2, table.Cols)
	require.Len(t, table.Cells, 3)
	assert.Equal(t, [4]float64{0, 0, 100, 20}, table.Cells[0].Rect)
	assert.Equal(t, 2, table.Cells[0].ColSpan)
	assert.Equal(t, "Name,Age", table.Cells[0].Text)
	assert.NotNil(t, out[1].Tables)
	assert.Empty(t, out[1].Tables)
}

func TestMarshalPages_Diagnostics(t *testing.T) {
	tbl := tableOf(rect(0, 0, 100, 40), rect(0, 0, 100, 40))
	diags := NewResolver(0).Resolve(tbl, rect4{{0, 20, 100, 40}}.rects())

	data, err := MarshalPages([]Page{{Number: 3, Tables: []*Table{tbl}, Diagnostics: diags}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"reason": "no anchor"`)
}

func TestWriteText(t *testing.T) {
	tbl := mergedTable(t)
	var buf bytes.Buffer

	require.NoError(t, WriteText(&buf, []Page{{Number: 1, Tables: []*Table{tbl}, Unassigned: 1}}))

	out := buf.String()
	assert.Contains(t, out, "=== Page 1: 1 table(s) ===")
	assert.Contains(t, out, "Table 1 [0 0 100 40] 2x2")
	assert.Contains(t, out, `(0,0) span 1x2 "Name,Age"`)
	assert.Contains(t, out, "  | Name,Age | <  |\n")
	assert.Contains(t, out, "  | Kim Jr.  | 42 |\n")
	assert.Contains(t, out, "1 fragment(s) outside tables")
}

func TestWriteText_WideRunes(t *testing.T) {
	tbl := tableOf(rect(0, 0, 100, 40), gridRects(0, 0, 50, 20, 2, 2)...)
	tbl.Cells[0].Fragments = []TextFragment{frag(5, 5, 20, 15, "합계")}
	tbl.Cells[2].Fragments = []TextFragment{frag(5, 25, 20, 35, "abcd")}
	require.Empty(t, NewResolver(0).Resolve(tbl, gridRects(0, 0, 50, 20, 2, 2)))

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, []Page{{Number: 1, Tables: []*Table{tbl}}}))
	assert.Contains(t, buf.String(), "  | 합계 |  |\n")
	assert.Contains(t, buf.String(), "  | abcd |  |\n")
}
