// Package scoring implements the adaptive score model that turns swipe
// outcomes into a per-word mastery score in the range [0, 10].
package scoring

import (
	"math"

	"github.com/phrazzld/frequency-api/internal/domain"
)

// updateScore computes the new score for a word given the current score and
// a review outcome, using the provided parameters.
//
// Algorithm behavior:
//   - Correct: the score gains a fixed fraction of the remaining distance to
//     MaxScore, so absolute gains shrink as the score approaches the top.
//   - Incorrect: the score loses a fixed fraction of itself, so high-scoring
//     words are penalized harder in absolute terms.
//   - The result is clamped to [MinScore, MaxScore].
//
// The returned value is unrounded; callers that store the score apply
// RoundScore, matching the storage contract of one decimal place.
func updateScore(current float64, correct bool, params *Params) float64 {
	if correct {
		next := current + (params.MaxScore-current)*params.GainFactor
		if next > params.MaxScore {
			next = params.MaxScore
		}
		return next
	}

	next := current - current*params.PenaltyFactor
	if next < params.MinScore {
		next = params.MinScore
	}
	return next
}

// UpdateScore computes the new score for a swipe outcome using the default
// parameters. It is pure and deterministic: correct swipes approach 10
// asymptotically, incorrect swipes apply a 30% relative penalty.
func UpdateScore(current float64, correct bool) float64 {
	return updateScore(current, correct, NewDefaultParams())
}

// RoundScore rounds a score to one decimal place. Stored scores always have
// exactly one decimal; replaying a recorded swipe history through
// RoundScore(UpdateScore(...)) must reproduce stored scores bit-for-bit.
func RoundScore(score float64) float64 {
	return math.Round(score*10) / 10
}

// isMastered reports whether the given progress qualifies as mastered under
// the provided parameters.
func isMastered(p domain.WordProgress, params *Params) bool {
	if p.Attempts == 0 || p.Correct < params.MasteryMinCorrect {
		return false
	}
	accuracy := float64(p.Correct) / float64(p.Attempts)
	return accuracy >= params.MasteryAccuracy
}

// IsMastered reports whether a word counts as mastered: at least ten correct
// swipes with an overall accuracy of 90% or better. Mastery is derived from
// the attempt counters every time it is needed; it is never stored, and a
// high score alone does not imply it.
func IsMastered(p domain.WordProgress) bool {
	return isMastered(p, NewDefaultParams())
}
