package domain

import "errors"

// Artifact validation errors
var (
	// ErrExampleEmpty is returned when a generated example has no Japanese
	// sentence.
	ErrExampleEmpty = errors.New("example sentence cannot be empty")

	// ErrPhraseCount is returned when a generated phrase list does not
	// contain exactly three phrases.
	ErrPhraseCount = errors.New("phrase list must contain exactly three phrases")

	// ErrBreakdownEmpty is returned when a generated breakdown contains no
	// words.
	ErrBreakdownEmpty = errors.New("breakdown must contain at least one word")
)

// PhraseCount is the number of phrases generated per word.
const PhraseCount = 3

// ExampleSentence is a single generated example sentence for a word.
// The JSON field names are a contract with the generative model and the
// persisted documents; they must not change.
type ExampleSentence struct {
	Japanese string `json:"japanese"`
	Romaji   string `json:"romaji"`
	English  string `json:"english"`
}

// Validate checks if the ExampleSentence has valid data.
func (e *ExampleSentence) Validate() error {
	if e.Japanese == "" {
		return ErrExampleEmpty
	}
	return nil
}

// Phrase is one short generated phrase using a catalog word.
type Phrase struct {
	Japanese string `json:"japanese"`
	Romaji   string `json:"romaji"`
	English  string `json:"english"`
}

// PhraseList is the fixed-size set of phrases generated for a word.
type PhraseList []Phrase

// Validate checks that the list has exactly PhraseCount entries, each with
// Japanese text.
func (p PhraseList) Validate() error {
	if len(p) != PhraseCount {
		return ErrPhraseCount
	}
	for i := range p {
		if p[i].Japanese == "" {
			return ErrExampleEmpty
		}
	}
	return nil
}

// BreakdownWord is one word or particle of a phrase breakdown.
type BreakdownWord struct {
	Japanese string `json:"japanese"`
	Romaji   string `json:"romaji"`
	Meaning  string `json:"meaning"`
	Role     string `json:"role"`
}

// Breakdown is a grammatical decomposition of a single phrase.
type Breakdown struct {
	Words       []BreakdownWord `json:"words"`
	Explanation string          `json:"explanation"`
}

// Validate checks if the Breakdown has valid data.
func (b *Breakdown) Validate() error {
	if len(b.Words) == 0 {
		return ErrBreakdownEmpty
	}
	return nil
}
