package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics removes combining marks after NFD decomposition,
// so "Areté" and "arete" compare equal.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeLabel canonicalizes a sheet name or cell label for comparison:
// lowercase, diacritics stripped, whitespace collapsed to single spaces,
// and the "etiqueta" prefix token removed when present.
func NormalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if out, _, err := transform.String(stripDiacritics, s); err == nil {
		s = out
	}
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimPrefix(s, "etiqueta ")
	return strings.TrimSpace(s)
}

// NormalizeKey is NormalizeLabel with separator punctuation removed as
// well, used for abbreviation matching ("h. y d." -> "h y d").
func NormalizeKey(s string) string {
	s = NormalizeLabel(s)
	s = strings.ReplaceAll(s, ".", " ")
	s = strings.ReplaceAll(s, ",", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "°", " ")
	s = strings.ReplaceAll(s, "º", " ")
	return strings.Join(strings.Fields(s), " ")
}

// ContainsAny reports whether text contains any of the keywords.
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// blankRow reports whether every cell in cols [lo, hi] is empty after
// trimming. Indices past the end of the row count as empty.
func blankRow(row []string, lo, hi int) bool {
	for c := lo; c <= hi; c++ {
		if c < len(row) && strings.TrimSpace(row[c]) != "" {
			return false
		}
	}
	return true
}

// cellAt returns the trimmed cell value at (row, col), tolerating ragged
// rows as excelize returns them.
func cellAt(grid [][]string, row, col int) string {
	if row < 0 || row >= len(grid) {
		return ""
	}
	r := grid[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}
