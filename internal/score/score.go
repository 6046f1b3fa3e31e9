package score

import "strings"

// PassThreshold is the similarity at or above which an answer counts as
// correct.
const PassThreshold = 0.6

// WordSimilarity returns the fraction of target words matched exactly and
// in position by the answer, in [0, 1]. Both strings are tokenized on
// whitespace. An empty target matches only an empty answer.
//
// The comparison is strictly positional: one inserted or dropped word
// shifts everything after it out of alignment and zeroes its
// contribution. That keeps scoring O(n) and predictable for a live
// feedback loop; it is a known limitation, not a bug. Callers normalize
// both sides with textnorm.CleanText first; no case folding happens
// here.
func WordSimilarity(target, answer string) float64 {
	tw := strings.Fields(target)
	aw := strings.Fields(answer)

	if len(tw) == 0 {
		if len(aw) == 0 {
			return 1.0
		}
		return 0.0
	}

	matches := 0
	for i := 0; i < len(tw) && i < len(aw); i++ {
		if tw[i] == aw[i] {
			matches++
		}
	}

	return float64(matches) / float64(len(tw))
}

// IsCorrect applies the pass threshold to a similarity value.
func IsCorrect(similarity float64) bool {
	return similarity >= PassThreshold
}
