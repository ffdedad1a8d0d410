package preprocess

import (
	"regexp"
	"strings"
)

var (
	controlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
	doubleQuotes = regexp.MustCompile("[“”«»„‚]")
	singleQuotes = regexp.MustCompile("[‘’´`]")
	longDashes   = regexp.MustCompile("[—–]")
	manyDots     = regexp.MustCompile(`\.{3,}`)
	spaceBefore  = regexp.MustCompile(`\s+([,.!?;:])`)
	spaceAfter   = regexp.MustCompile(`([,.!?;:])\s+`)
	multiSpace   = regexp.MustCompile(`\s+`)
	onlyPunct    = regexp.MustCompile(`^[^\p{L}\p{N}]+$`)
)

// CleanText normalizes a cita body for training: control characters out,
// typographic quotes and dashes to their plain forms, whitespace and
// punctuation spacing collapsed. Returns "" for fragments that reduce to
// nothing but punctuation.
func CleanText(text string) string {
	text = controlChars.ReplaceAllString(text, "")
	text = doubleQuotes.ReplaceAllString(text, `"`)
	text = singleQuotes.ReplaceAllString(text, "'")
	text = longDashes.ReplaceAllString(text, "-")
	text = manyDots.ReplaceAllString(text, "...")
	text = spaceBefore.ReplaceAllString(text, "$1")
	text = spaceAfter.ReplaceAllString(text, "$1 ")
	text = multiSpace.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if text == "" || onlyPunct.MatchString(text) {
		return ""
	}
	return text
}
