package pdf

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// UnicodeForm looks up a normalization form by name. The empty name means
// no normalization and reports ok with a nil form.
func UnicodeForm(name string) (form *norm.Form, ok bool) {
	var f norm.Form
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "":
		return nil, true
	case "NFC":
		f = norm.NFC
	case "NFD":
		f = norm.NFD
	case "NFKC":
		f = norm.NFKC
	case "NFKD":
		f = norm.NFKD
	default:
		return nil, false
	}
	return &f, true
}

// NormalizeWords rewrites word text into the given form. Ligatures and
// compatibility glyphs from PDF fonts fold into plain text under NFKC.
func NormalizeWords(words []Word, form *norm.Form) []Word {
	if form == nil {
		return words
	}
	for i := range words {
		words[i].Text = form.String(words[i].Text)
	}
	return words
}
