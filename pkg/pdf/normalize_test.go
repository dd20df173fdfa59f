package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnicodeForm(t *testing.T) {
	form, ok := UnicodeForm("")
	assert.True(t, ok)
	assert.Nil(t, form)

	_, ok = UnicodeForm("NFX")
	assert.False(t, ok)

	for _, name := range []string{"NFC", "nfd", " NFKC ", "NFKD"} {
		form, ok := UnicodeForm(name)
		assert.True(t, ok, name)
		assert.NotNil(t, form, name)
	}
}

func TestNormalizeWords(t *testing.T) {
	form, ok := UnicodeForm("NFKC")
	require.True(t, ok)

	words := NormalizeWords([]Word{{Text: "ﬁle"}, {Text: "café"}}, form)
	assert.Equal(t, "file", words[0].Text)
	assert.Equal(t, "café", words[1].Text)

	raw := []Word{{Text: "ﬁ"}}
	assert.Equal(t, "ﬁ", NormalizeWords(raw, nil)[0].Text)
}
