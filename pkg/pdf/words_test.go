package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func char(s string, x0, y0 float64) CharObject {
	return CharObject{Text: s, X0: x0, Y0: y0, X1: x0 + 5, Y1: y0 + 10, FontSize: 10}
}

func TestExtractWords(t *testing.T) {
	chars := []CharObject{
		char("c", 21, 10),
		char("a", 0, 10),
		char("b", 6, 11),
		char("d", 0, 40),
	}

	words := ExtractWords(chars)

	require.Len(t, words, 3)
	assert.Equal(t, "ab", words[0].Text)
	assert.Equal(t, BoundingBox{X0: 0, Y0: 10, X1: 11, Y1: 21}, words[0].GetBBox())
	assert.Equal(t, "c", words[1].Text)
	assert.Equal(t, "d", words[2].Text)
	assert.Equal(t, "c", chars[0].Text, "input must not be reordered")
}

func TestExtractWordsSpaceSplits(t *testing.T) {
	chars := []CharObject{char("a", 0, 0), char(" ", 5, 0), char("b", 6, 0)}

	words := ExtractWords(chars)

	require.Len(t, words, 2)
	assert.Equal(t, "a", words[0].Text)
	assert.Equal(t, "b", words[1].Text)
}

func TestExtractWordsTolerance(t *testing.T) {
	chars := []CharObject{char("a", 0, 0), char("b", 15, 0)}

	assert.Len(t, ExtractWords(chars), 2)
	assert.Len(t, ExtractWords(chars, WithXTolerance(10)), 1)
	assert.Len(t, ExtractWords([]CharObject{char("a", 0, 0), char("b", 5, 5)}, WithYTolerance(1)), 2)
	assert.Nil(t, ExtractWords(nil))
}

func TestExtractText(t *testing.T) {
	chars := []CharObject{
		char("a", 0, 0), char("b", 20, 0),
		char("c", 0, 30),
	}
	assert.Equal(t, "a b\nc", ExtractText(chars))
	assert.Equal(t, "", ExtractText(nil))
}
