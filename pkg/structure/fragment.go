package structure

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
)

// ErrEmptyText is returned when a fragment carries no text.
var ErrEmptyText = errors.New("empty fragment text")

// TextFragment is a piece of text with its bounding box
type TextFragment struct {
	Rect geometry.Rect `json:"rect"`
	Text string        `json:"text"`
}

// NewTextFragment validates and creates a fragment.
func NewTextFragment(r geometry.Rect, text string) (TextFragment, error) {
	if err := r.Validate(); err != nil {
		return TextFragment{}, errors.Wrapf(err, "fragment %q", text)
	}
	if strings.TrimSpace(text) == "" {
		return TextFragment{}, errors.Wrapf(ErrEmptyText, "fragment at %s", r)
	}
	return TextFragment{Rect: r, Text: text}, nil
}

// Center returns the center of the fragment box
func (f TextFragment) Center() geometry.Point {
	return f.Rect.Center()
}

// SortFragments returns a copy of fragments ordered by top, then left.
func SortFragments(fragments []TextFragment) []TextFragment {
	sorted := make([]TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return geometry.TopLeftLess(sorted[i].Rect, sorted[j].Rect)
	})
	return sorted
}

// FragmentsSorted reports whether fragments are in (top, left) order.
func FragmentsSorted(fragments []TextFragment) bool {
	return sort.SliceIsSorted(fragments, func(i, j int) bool {
		return geometry.TopLeftLess(fragments[i].Rect, fragments[j].Rect)
	})
}
