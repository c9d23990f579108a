package api

import (
	"github.com/phrazzld/frequency-api/internal/domain"
)

// Content statuses reported by the tri-state endpoints.
const (
	StatusReady   = "ready"
	StatusPending = "pending"
	StatusFailed  = "failed"
)

// WordResponse is one catalog entry merged with the user's progress.
type WordResponse struct {
	ID        int     `json:"id"`
	Japanese  string  `json:"japanese"`
	Romaji    string  `json:"romaji"`
	English   string  `json:"english"`
	Score     float64 `json:"score"`
	Attempts  int     `json:"attempts"`
	Correct   int     `json:"correct"`
	Memorized bool    `json:"memorized"`
	Deleted   bool    `json:"deleted"`
}

// SwipeRequest records one flashcard outcome. Correct is a pointer so that
// an explicit false survives required-field validation.
type SwipeRequest struct {
	WordID  int   `json:"word_id"  validate:"required,gt=0"`
	Correct *bool `json:"correct"  validate:"required"`
}

// SwipeResponse reports the word's updated progress after a swipe.
type SwipeResponse struct {
	WordID   int     `json:"word_id"`
	Score    float64 `json:"score"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	Mastered bool    `json:"mastered"`
}

// StatsResponse reports the user's aggregate study statistics.
type StatsResponse struct {
	Studied  int     `json:"studied"`
	Mastered int     `json:"mastered"`
	Learning int     `json:"learning"`
	AvgScore float64 `json:"avg_score"`
}

// ExampleResponse is the tri-state payload for a word's example sentence.
type ExampleResponse struct {
	Status  string                  `json:"status"`
	Example *domain.ExampleSentence `json:"example,omitempty"`
}

// PhrasesResponse is the tri-state payload for a word's phrase list.
type PhrasesResponse struct {
	Status  string            `json:"status"`
	Phrases domain.PhraseList `json:"phrases,omitempty"`
}

// BreakdownResponse is the tri-state payload for a phrase breakdown.
type BreakdownResponse struct {
	Status    string            `json:"status"`
	Breakdown *domain.Breakdown `json:"breakdown,omitempty"`
}

// SpeechRequest asks for a spoken clip of the exact text.
type SpeechRequest struct {
	Text string `json:"text" validate:"required"`
}

// SpeechResponse is the tri-state payload for a speech clip.
type SpeechResponse struct {
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
}
