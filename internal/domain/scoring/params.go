package scoring

// Params defines all configurable parameters for the scoring algorithm.
type Params struct {
	// Score range limits
	MinScore float64
	MaxScore float64

	// GainFactor controls how quickly a correct swipe moves the score
	// toward MaxScore. The absolute gain shrinks as the score rises.
	GainFactor float64

	// PenaltyFactor is the relative penalty applied on an incorrect swipe.
	// Higher scores lose more absolute points.
	PenaltyFactor float64

	// MasteryMinCorrect is the minimum number of correct swipes before a
	// word can be considered mastered, regardless of accuracy.
	MasteryMinCorrect int

	// MasteryAccuracy is the minimum correct/attempts ratio for mastery.
	MasteryAccuracy float64
}

// NewDefaultParams creates a new Params instance with default values.
// These defaults must stay stable: historical scores were produced with
// them and remain comparable only as long as they do not change.
func NewDefaultParams() *Params {
	return &Params{
		MinScore:          0.0,
		MaxScore:          10.0,
		GainFactor:        0.25,
		PenaltyFactor:     0.3,
		MasteryMinCorrect: 10,
		MasteryAccuracy:   0.9,
	}
}
