package structure

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
)

func TestNewTextFragment(t *testing.T) {
	f, err := NewTextFragment(rect(0, 0, 10, 5), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", f.Text)

	_, err = NewTextFragment(rect(0, 0, 10, 5), "  \t")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyText))

	_, err = NewTextFragment(rect(10, 0, 0, 5), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, geometry.ErrMalformedRect))
}

func TestSortFragments(t *testing.T) {
	in := []TextFragment{
		frag(50, 10, 60, 20, "b"),
		frag(0, 30, 10, 40, "c"),
		frag(0, 10, 10, 20, "a"),
	}
	out := SortFragments(in)

	assert.False(t, FragmentsSorted(in))
	assert.True(t, FragmentsSorted(out))
	assert.Equal(t, []string{"a", "b", "c"}, []string{out[0].Text, out[1].Text, out[2].Text})
	assert.Equal(t, "b", in[0].Text, "input must not be reordered")
}

func TestPartition(t *testing.T) {
	pool := SortFragments([]TextFragment{
		frag(2, 2, 8, 8, "in"),
		frag(20, 2, 28, 8, "right"),
		frag(2, 40, 8, 48, "below"),
		frag(4, 4, 6, 6, "also in"),
	})

	assigned, remaining := Partition(pool, rect(0, 0, 10, 10))

	require.Len(t, assigned, 2)
	assert.Equal(t, "in", assigned[0].Text)
	assert.Equal(t, "also in", assigned[1].Text)
	require.Len(t, remaining, 2)
	assert.Equal(t, "right", remaining[0].Text)
	assert.Equal(t, "below", remaining[1].Text)
}

func TestPartition_EmptyResultIsNotAnError(t *testing.T) {
	pool := []TextFragment{frag(100, 100, 110, 110, "far")}
	assigned, remaining := Partition(pool, rect(0, 0, 10, 10))
	assert.Empty(t, assigned)
	assert.Equal(t, pool, remaining)
}

// fullScan is Partition without the early exit.
func fullScan(pool []TextFragment, region geometry.Rect) (in, out []TextFragment) {
	for _, f := range pool {
		if region.Contains(f.Center()) {
			in = append(in, f)
		} else {
			out = append(out, f)
		}
	}
	return in, out
}

func TestPartition_EarlyExitMatchesFullScan(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var pool []TextFragment
	for i := 0; i < 300; i++ {
		x := rng.Float64() * 500
		y := rng.Float64() * 700
		pool = append(pool, frag(x, y, x+rng.Float64()*40, y+rng.Float64()*12, "w"))
	}
	pool = SortFragments(pool)

	for _, region := range gridRects(0, 0, 125, 175, 4, 4) {
		gotIn, gotOut := Partition(pool, region)
		wantIn, wantOut := fullScan(pool, region)
		assert.Equal(t, wantIn, gotIn, "region %s", region)
		assert.Equal(t, len(wantOut), len(gotOut), "region %s", region)
		assert.ElementsMatch(t, wantOut, gotOut, "region %s", region)
	}
}

func TestAssignFragments_Disjoint(t *testing.T) {
	regions := gridRects(0, 0, 50, 20, 2, 2)
	pool := SortFragments([]TextFragment{
		frag(5, 5, 20, 15, "a"),
		frag(55, 5, 70, 15, "b"),
		frag(45, 5, 55, 15, "edge"), // center on x=50
		frag(5, 25, 20, 35, "c"),
		frag(300, 300, 310, 310, "outside"),
	})

	groups, remaining := AssignFragments(pool, regions)

	seen := map[string]int{}
	for _, g := range groups {
		for _, f := range g {
			seen[f.Text]++
		}
	}
	for text, n := range seen {
		assert.Equal(t, 1, n, "fragment %q assigned %d times", text, n)
	}
	require.Len(t, remaining, 1)
	assert.Equal(t, "outside", remaining[0].Text)
}

func TestBuildCells_BoundaryFragmentGoesToFirstCell(t *testing.T) {
	left := rect(0, 0, 50, 20)
	right := rect(50, 0, 100, 20)
	pool := []TextFragment{frag(45, 5, 55, 15, "edge")}

	for _, order := range [][]geometry.Rect{{left, right}, {right, left}} {
		cells, remaining := BuildCells(pool, order)
		require.Len(t, cells, 2)
		assert.Equal(t, left, cells[0].Rect)
		require.Len(t, cells[0].Fragments, 1)
		assert.Equal(t, "edge", cells[0].Fragments[0].Text)
		assert.Empty(t, cells[1].Fragments)
		assert.Empty(t, remaining)
	}
}

func TestBuildCells_Unresolved(t *testing.T) {
	cells, _ := BuildCells(nil, gridRects(0, 0, 10, 10, 1, 2))
	for _, c := range cells {
		assert.False(t, c.Resolved())
		assert.Equal(t, Unresolved, c.Row)
		assert.Equal(t, Unresolved, c.ColSpan)
	}
}

func TestCell_Text(t *testing.T) {
	c := NewCell(rect(0, 0, 100, 40), []TextFragment{
		frag(2, 2, 20, 10, "Total"),
		frag(22, 2, 40, 10, "amount"),
		frag(2, 12, 20, 20, "(KRW)"),
	})
	assert.Equal(t, "Total amount\n(KRW)", c.Text())
	assert.Equal(t, "", NewCell(rect(0, 0, 1, 1), nil).Text())
}
