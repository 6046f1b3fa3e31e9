package session

import (
	"time"

	"github.com/abhisek/shadowbox/internal/pace"
	"github.com/abhisek/shadowbox/internal/phrase"
	"github.com/abhisek/shadowbox/internal/score"
	"github.com/abhisek/shadowbox/internal/textnorm"
)

// Start moves an idle session to active and issues the first phrase step.
func Start(s *State) []Effect {
	if s.Phase != PhaseIdle {
		return nil
	}
	s.Phase = PhaseActive
	s.StartedAt = time.Now()
	s.Reps = pace.EffectiveReps(s.SelectedReps, s.PracticesToday)
	s.Epoch++
	return s.stepEffects(1.0)
}

// Step re-issues the current phrase: recompute bounds, narrate, restart
// capture. modifier scales the narration rate for this step only (1 for
// none). Any pending timers or narrations are superseded.
func Step(s *State, modifier float64) []Effect {
	if s.Phase != PhaseActive {
		return nil
	}
	s.Epoch++
	return s.stepEffects(modifier)
}

// Replay narrates the current phrase again without touching progression.
// slow applies the slow-replay rate.
func Replay(s *State, slow bool) []Effect {
	modifier := 1.0
	if slow {
		modifier = pace.SlowReplayRate
	}
	return Step(s, modifier)
}

// NarrationDone resumes the machine when narration finishes. dur is the
// measured narration time. Only auto-skip mode reacts: it schedules the
// hands-free progression at AutoAdvanceFactor times the narration
// duration. Stale epochs no-op.
func NarrationDone(s *State, epoch int, dur time.Duration) []Effect {
	if s.Phase != PhaseActive || epoch != s.Epoch {
		return nil
	}
	if s.Mode != ModeAutoSkip {
		return nil
	}

	wait := time.Duration(float64(dur) * s.Timing.AutoAdvanceFactor)
	if wait < s.Timing.MinAutoAdvance {
		wait = s.Timing.MinAutoAdvance
	}
	return []Effect{ScheduleAutoAdvance{After: wait, Epoch: s.Epoch}}
}

// AutoAdvance performs one hands-free progression: the repetition is
// consumed, then the phrase repeats or the session moves on. Stale epochs
// no-op.
func AutoAdvance(s *State, epoch int) []Effect {
	if s.Phase != PhaseActive || epoch != s.Epoch {
		return nil
	}
	s.Count++
	if s.Count >= s.Reps {
		return Advance(s)
	}
	return Step(s, 1.0)
}

// CheckAnswer scores raw against the current phrase. The repetition is
// consumed whether or not an attempt is made; an empty answer skips
// without counting an attempt. Recording is stopped before anything else
// so the clip covers exactly this repetition.
func CheckAnswer(s *State, raw string) []Effect {
	if s.Phase != PhaseActive || s.Index >= len(s.Words) {
		return nil
	}
	s.Epoch++

	var effects []Effect
	if s.recActive {
		effects = append(effects, StopRecording{})
		s.recActive = false
	}

	target := phrase.Text(s.Words, s.Index, s.PhraseEnd)
	cleanTarget := textnorm.CleanText(target)
	cleanAnswer := textnorm.CleanText(raw)

	s.Count++

	if cleanAnswer == "" {
		effects = append(effects, ShowFeedback{
			Target:  target,
			Skipped: true,
			Count:   s.Count,
			Reps:    s.Reps,
		})
		if s.Count >= s.Reps {
			// Skipping the last repetition moves on. Linger on the
			// 0-of-N notice only when the user sat through a multi-rep
			// check run.
			var wait time.Duration
			if s.Mode == ModeCheck && s.Reps >= 2 {
				wait = s.Timing.SkipNotice
			}
			s.advanceIndex()
			effects = append(effects, SaveProgress{Index: s.Index})
			return append(effects, ScheduleResume{After: wait, Epoch: s.Epoch})
		}
		// Same phrase again; no attempt consumed.
		return append(effects, s.stepEffects(1.0)...)
	}

	s.Attempts++
	similarity := score.WordSimilarity(cleanTarget, cleanAnswer)
	correct := score.IsCorrect(similarity)
	if correct {
		s.Correct++
	}

	effects = append(effects, ShowFeedback{
		Target:     target,
		Answer:     raw,
		Similarity: similarity,
		Correct:    correct,
		Count:      s.Count,
		Reps:       s.Reps,
	})

	// A failed attempt still consumed its repetition slot, so enough
	// wrong answers force progression rather than stalling forever.
	if s.Count >= s.Reps {
		s.advanceIndex()
		effects = append(effects, SaveProgress{Index: s.Index})
	}

	return append(effects, ScheduleResume{After: s.Timing.FeedbackPause, Epoch: s.Epoch})
}

// Resume is the re-entry point after a feedback or skip pause: the next
// phrase is stepped, or the session finishes when no words remain. Stale
// epochs no-op.
func Resume(s *State, epoch int) []Effect {
	if s.Phase != PhaseActive || epoch != s.Epoch {
		return nil
	}
	if s.Index >= len(s.Words) {
		return s.finishEffects()
	}
	return s.stepEffects(1.0)
}

// Advance skips the rest of the current phrase's repetitions and moves to
// the next phrase, finishing the session when none remain.
func Advance(s *State) []Effect {
	if s.Phase != PhaseActive {
		return nil
	}
	s.Epoch++

	var effects []Effect
	if s.recActive {
		effects = append(effects, StopRecording{})
		s.recActive = false
	}

	s.advanceIndex()
	if s.Index >= len(s.Words) {
		return append(effects, s.finishEffects()...)
	}
	effects = append(effects, SaveProgress{Index: s.Index})
	return append(effects, s.stepEffects(1.0)...)
}

// Seek moves the session to the start of the sentence segment containing
// wordIndex and steps from there. Out-of-range indices no-op.
func Seek(s *State, wordIndex int) []Effect {
	if s.Phase != PhaseActive {
		return nil
	}
	if wordIndex < 0 || wordIndex >= len(s.Words) {
		return nil
	}
	s.Epoch++

	var effects []Effect
	if s.recActive {
		effects = append(effects, StopRecording{})
		s.recActive = false
	}

	s.Index = phrase.StartOfPhrase(s.Words, wordIndex)
	s.Count = 0
	return append(effects, s.stepEffects(1.0)...)
}

// Restart runs the same sentence again from the top without re-tokenizing.
// The sentence has now been seen at least once, so the newness counter is
// forced off zero and reps and rate re-resolve against it.
func Restart(s *State) []Effect {
	if s.Phase == PhaseIdle {
		return nil
	}
	s.Epoch++

	var effects []Effect
	if s.recActive {
		effects = append(effects, StopRecording{})
		s.recActive = false
	}

	if s.PracticesToday == 0 {
		s.PracticesToday = 1
	}
	s.Index = 0
	s.Count = 0
	s.Correct = 0
	s.Attempts = 0
	s.Reps = pace.EffectiveReps(s.SelectedReps, s.PracticesToday)
	s.Phase = PhaseActive
	s.StartedAt = time.Now()

	return append(effects, s.stepEffects(1.0)...)
}

// AutoRestart is the timer delivery for ScheduleRestart. Stale epochs
// no-op.
func AutoRestart(s *State, epoch int) []Effect {
	if s.Phase != PhaseComplete || epoch != s.Epoch {
		return nil
	}
	return Restart(s)
}

// Finish ends the session now, recording a completion.
func Finish(s *State) []Effect {
	if s.Phase != PhaseActive {
		return nil
	}
	return s.finishEffects()
}

// Abandon ends the session without recording a completion: pending timers
// die with the epoch bump and any open capture is stopped.
func Abandon(s *State) []Effect {
	if s.Phase != PhaseActive {
		return nil
	}
	s.Epoch++
	s.Phase = PhaseComplete

	var effects []Effect
	if s.recActive {
		effects = append(effects, StopRecording{})
		s.recActive = false
	}
	return effects
}

// stepEffects computes the current phrase bounds and emits the narration
// and capture effects for one step, finishing instead when the session
// has consumed all words. Callers bump the epoch first.
func (s *State) stepEffects(modifier float64) []Effect {
	if s.Index >= len(s.Words) {
		return s.finishEffects()
	}

	s.PhraseStart = phrase.StartOfPhrase(s.Words, s.Index)
	s.PhraseEnd = phrase.EndOfPhrase(s.Words, s.Index, s.maxWords())

	rate := pace.EffectiveRate(s.BaseRate, s.PracticesToday, modifier)
	s.LastRate = rate

	var effects []Effect
	if s.recActive {
		// The previous capture cycle must close before the next opens.
		effects = append(effects, StopRecording{})
		s.recActive = false
	}

	effects = append(effects, Narrate{
		Text:  phrase.Text(s.Words, s.Index, s.PhraseEnd),
		Rate:  rate,
		Epoch: s.Epoch,
	})

	if s.RecordingOn {
		effects = append(effects, StartRecording{After: s.Timing.RecordLead, Epoch: s.Epoch})
		s.recActive = true
	}

	return effects
}

// finishEffects closes the session: capture stops, the summary goes out,
// and auto-skip mode schedules its own restart.
func (s *State) finishEffects() []Effect {
	s.Epoch++
	s.Phase = PhaseComplete

	var effects []Effect
	if s.recActive {
		effects = append(effects, StopRecording{})
		s.recActive = false
	}

	effects = append(effects, Completed{Summary: NewSummary(s)})

	if s.Mode == ModeAutoSkip {
		effects = append(effects, ScheduleRestart{After: s.Timing.AutoRestartWait, Epoch: s.Epoch})
	}
	return effects
}

// advanceIndex moves Index past the current phrase and resets the
// repetition count. The end is recomputed from the segmenter so a manual
// advance lands exactly where the narrated phrase ended.
func (s *State) advanceIndex() {
	s.Index = phrase.EndOfPhrase(s.Words, s.Index, s.maxWords())
	s.Count = 0
}

func (s *State) maxWords() int {
	return pace.DynamicMaxWords(s.Level, s.PracticesToday)
}
