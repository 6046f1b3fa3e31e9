package phrase

import (
	"fmt"
	"strings"

	"github.com/abhisek/shadowbox/internal/textnorm"
)

// EndOfPhrase returns the exclusive end index of the phrase beginning at
// start. Words are consumed one at a time until maxWords have been taken
// or the just-consumed word closes a sentence; a sentence terminator is
// always kept inside the phrase even when that cuts it short. When more
// of the sentence remains and the phrase is longer than three words, a
// trailing stop word is dropped so narration does not end on it.
//
// maxWords < 1 is a caller bug and panics. Callers never pass
// start == len(words); if they do, start is returned unchanged.
func EndOfPhrase(words []string, start, maxWords int) int {
	if maxWords < 1 {
		panic(fmt.Sprintf("phrase: maxWords must be at least 1, got %d", maxWords))
	}

	end := start
	count := 0
	for end < len(words) {
		w := words[end]
		end++
		count++
		if count >= maxWords || endsSentence(w) {
			break
		}
	}

	if end < len(words) && end-start > 3 && isStopWord(words[end-1]) {
		end--
	}

	return end
}

// StartOfPhrase returns the index of the first word of the sentence
// segment containing index: the position just after the nearest earlier
// word that closes a sentence, or 0 when there is none.
func StartOfPhrase(words []string, index int) int {
	for i := index - 1; i >= 0 && i < len(words); i-- {
		if endsSentence(words[i]) {
			return i + 1
		}
	}
	return 0
}

// Text renders words[start:end] as the narration and scoring string:
// space-joined with junk punctuation trimmed from the ends.
func Text(words []string, start, end int) string {
	return textnorm.RemoveJunkChars(strings.Join(words[start:end], " "))
}

// endsSentence reports whether a word's final character is sentence
// terminating punctuation.
func endsSentence(word string) bool {
	if word == "" {
		return false
	}
	switch word[len(word)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}
