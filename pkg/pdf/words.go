package pdf

import (
	"math"
	"sort"
	"strings"
)

// ExtractWords groups chars into lines and each line into words. A new line
// starts when a character's top is more than the y tolerance away from the
// line's first character; a new word starts when the gap to the previous
// character exceeds the x tolerance. Whitespace characters only separate
// words.
func ExtractWords(chars []CharObject, opts ...WordExtractionOption) []Word {
	config := defaultWordConfig()
	for _, opt := range opts {
		opt(config)
	}

	if len(chars) == 0 {
		return nil
	}

	// Sort characters by position (top to bottom, left to right)
	sorted := make([]CharObject, len(chars))
	copy(sorted, chars)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y0 != sorted[j].Y0 {
			return sorted[i].Y0 < sorted[j].Y0
		}
		return sorted[i].X0 < sorted[j].X0
	})

	// Group characters into lines
	var lines [][]CharObject
	var currentLine []CharObject
	currentY := sorted[0].Y0
	for _, char := range sorted {
		if math.Abs(char.Y0-currentY) > config.YTolerance {
			lines = append(lines, currentLine)
			currentLine = nil
			currentY = char.Y0
		}
		currentLine = append(currentLine, char)
	}
	lines = append(lines, currentLine)

	var words []Word
	for _, line := range lines {
		words = append(words, wordsFromLine(line, config.XTolerance)...)
	}
	return words
}

// wordsFromLine extracts words from a single line of characters
func wordsFromLine(line []CharObject, xTolerance float64) []Word {
	sort.SliceStable(line, func(i, j int) bool {
		return line[i].X0 < line[j].X0
	})

	var words []Word
	var current []CharObject
	var lastX1 float64
	flush := func() {
		if len(current) > 0 {
			words = append(words, createWord(current))
			current = nil
		}
	}

	for _, char := range line {
		if strings.TrimSpace(char.Text) == "" {
			flush()
			continue
		}
		if len(current) > 0 && char.X0-lastX1 > xTolerance {
			flush()
		}
		current = append(current, char)
		lastX1 = char.X1
	}
	flush()
	return words
}

// createWord creates a Word from a group of characters
func createWord(chars []CharObject) Word {
	var text strings.Builder
	minX, minY := chars[0].X0, chars[0].Y0
	maxX, maxY := chars[0].X1, chars[0].Y1

	for _, char := range chars {
		text.WriteString(char.Text)
		minX = min(minX, char.X0)
		minY = min(minY, char.Y0)
		maxX = max(maxX, char.X1)
		maxY = max(maxY, char.Y1)
	}

	return Word{
		Text:       text.String(),
		X0:         minX,
		Y0:         minY,
		X1:         maxX,
		Y1:         maxY,
		Characters: chars,
	}
}

// ExtractText joins the words of chars into lines of text
func ExtractText(chars []CharObject, opts ...WordExtractionOption) string {
	config := defaultWordConfig()
	for _, opt := range opts {
		opt(config)
	}

	var lines []string
	var current []string
	var lineY float64
	for i, w := range ExtractWords(chars, opts...) {
		if i > 0 && math.Abs(w.Y0-lineY) > config.YTolerance {
			lines = append(lines, strings.Join(current, " "))
			current = nil
		}
		if len(current) == 0 {
			lineY = w.Y0
		}
		current = append(current, w.Text)
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return strings.Join(lines, "\n")
}
