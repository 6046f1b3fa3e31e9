package phrase

import (
	"strings"

	"github.com/abhisek/shadowbox/internal/textnorm"
)

// stopWords is the closed word class a trimmed phrase must not end on:
// articles, short prepositions and conjunctions, basic pronouns, and
// forms of "to be".
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"and": {}, "or": {}, "but": {}, "so": {},
	"to": {}, "of": {}, "in": {}, "on": {}, "at": {},
	"for": {}, "with": {}, "by": {}, "from": {}, "as": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "am": {},
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"my": {}, "your": {}, "his": {}, "her": {}, "its": {}, "our": {}, "their": {},
	"that": {}, "this": {},
}

func isStopWord(word string) bool {
	w := strings.ToLower(textnorm.RemoveJunkChars(word))
	_, ok := stopWords[w]
	return ok
}
