package textnorm

import (
	"strings"
	"unicode"
)

// junkChars is the punctuation class trimmed from both ends of narrated
// and compared text. Interior occurrences are meaningful and stay.
const junkChars = `.,;:/\()[]{}"'«»!?-`

// RemoveJunkChars trims whitespace and junk punctuation from both ends of
// text. It never touches interior characters; empty input yields empty
// output.
func RemoveJunkChars(text string) string {
	return strings.TrimFunc(text, isJunk)
}

func isJunk(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(junkChars, r)
}

// CleanText normalizes text for comparison: trimmed, lowercased, junk
// punctuation removed from the ends, and the first "&" spelled out as
// "and". Only the first ampersand is replaced.
func CleanText(text string) string {
	s := strings.TrimSpace(text)
	s = strings.ToLower(s)
	s = strings.Replace(s, "&", "and", 1)
	return RemoveJunkChars(s)
}
