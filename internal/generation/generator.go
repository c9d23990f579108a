package generation

import (
	"context"

	"github.com/phrazzld/frequency-api/internal/domain"
)

// WordGenerator defines the interface for generating study content for
// catalog words. This interface is the boundary between the content caches
// and the external generative model; each method corresponds to one artifact
// kind and is invoked at most once per cache key.
type WordGenerator interface {
	// GenerateExample creates one short example sentence using the word.
	// Returns ErrInvalidResponse if the model output cannot be parsed and
	// ErrTransientFailure for temporary transport errors.
	GenerateExample(ctx context.Context, word domain.WordEntry) (*domain.ExampleSentence, error)

	// GeneratePhrases creates exactly three simple phrases using the word.
	GeneratePhrases(ctx context.Context, word domain.WordEntry) (domain.PhraseList, error)

	// GenerateBreakdown decomposes a phrase into its words and particles
	// with grammatical roles and a short structural explanation.
	GenerateBreakdown(ctx context.Context, phrase domain.Phrase) (*domain.Breakdown, error)
}

// SpeechGenerator defines the interface for synthesizing speech audio.
type SpeechGenerator interface {
	// Synthesize converts the exact text into raw headerless PCM samples
	// (16-bit little-endian mono at the provider's sample rate). Transient
	// failures are retried a small bounded number of times internally
	// before being reported. An empty payload is ErrInvalidResponse.
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
