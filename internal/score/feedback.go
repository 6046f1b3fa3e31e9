package score

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// WordMark classifies a single target word against the answer word at the
// same position.
type WordMark int

const (
	Miss WordMark = iota // absent or unrelated
	Close                // near miss: sounds alike or one edit away
	Hit                  // exact positional match
)

// closeJaroWinkler is the Jaro-Winkler similarity at or above which a
// mismatched word still reads as a near miss.
const closeJaroWinkler = 0.85

// MarkWords classifies every target word position for the answer review
// line. Marks only color feedback; correctness comes from WordSimilarity
// and PassThreshold alone.
func MarkWords(target, answer string) []WordMark {
	tw := strings.Fields(target)
	aw := strings.Fields(answer)

	marks := make([]WordMark, len(tw))
	for i, t := range tw {
		if i >= len(aw) {
			marks[i] = Miss
			continue
		}
		switch a := aw[i]; {
		case t == a:
			marks[i] = Hit
		case isClose(t, a):
			marks[i] = Close
		default:
			marks[i] = Miss
		}
	}
	return marks
}

// isClose reports whether two words are near misses: high Jaro-Winkler
// similarity or a shared Double Metaphone encoding (typed-as-heard
// answers).
func isClose(a, b string) bool {
	if matchr.JaroWinkler(a, b, false) >= closeJaroWinkler {
		return true
	}

	ap, as := matchr.DoubleMetaphone(a)
	bp, bs := matchr.DoubleMetaphone(b)
	if ap == "" || bp == "" {
		return false
	}
	return ap == bp || (bs != "" && ap == bs) || (as != "" && as == bp)
}
