package pace

import "fmt"

// Level caps how many words a narrated phrase may hold.
type Level string

const (
	Beginner     Level = "beginner"
	Intermediate Level = "intermediate"
	Advanced     Level = "advanced"
)

// Auto sentinels. A rep count or speech rate of zero means "derive from
// how often this sentence was practiced today".
const (
	AutoReps = 0
	AutoRate = 0.0
)

// SlowReplayRate is the per-call rate modifier for the slow replay action.
const SlowReplayRate = 0.6

// ParseLevel validates a level string from config or flags.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case Beginner, Intermediate, Advanced:
		return Level(s), nil
	}
	return "", fmt.Errorf("unknown level %q (want beginner, intermediate or advanced)", s)
}

// MaxWordsForLevel returns the phrase-length cap for a level.
// Unrecognized levels get the intermediate cap.
func MaxWordsForLevel(level Level) int {
	switch level {
	case Beginner:
		return 2
	case Intermediate:
		return 5
	case Advanced:
		return 7
	default:
		return 5
	}
}

// DynamicMaxWords applies the newness limit on top of the level cap: a
// sentence on its first practice of the day is held to single-word
// phrases, and the limit relaxes by one word per practice already
// completed today, up to the level cap.
func DynamicMaxWords(level Level, practicesToday int) int {
	byLevel := MaxWordsForLevel(level)
	byNewness := practicesToday + 1
	if byNewness < byLevel {
		return byNewness
	}
	return byLevel
}

// EffectiveReps resolves the target repetitions per phrase. The zero
// sentinel selects auto: five on the first practice of the day, one
// fewer per completed practice, never below one.
func EffectiveReps(selected, practicesToday int) int {
	if selected != AutoReps {
		return selected
	}
	reps := 5 - practicesToday
	if reps < 1 {
		reps = 1
	}
	return reps
}

// AutoSpeechRate is the narration rate ramp for the auto setting: slow on
// a sentence's first practice of the day, normal for the next two,
// slightly fast from the fourth practice on.
func AutoSpeechRate(practicesToday int) float64 {
	switch {
	case practicesToday == 0:
		return 0.8
	case practicesToday <= 2:
		return 1.0
	default:
		return 1.2
	}
}

// EffectiveRate resolves the narration rate for one step: the user's
// fixed rate, or the auto ramp when the rate is the zero sentinel, times
// an optional per-call modifier. A modifier of zero or less means none.
func EffectiveRate(userRate float64, practicesToday int, modifier float64) float64 {
	rate := userRate
	if rate == AutoRate {
		rate = AutoSpeechRate(practicesToday)
	}
	if modifier > 0 {
		rate *= modifier
	}
	return rate
}
