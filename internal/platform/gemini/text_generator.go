package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/frequency-api/internal/config"
	"github.com/phrazzld/frequency-api/internal/domain"
	"github.com/phrazzld/frequency-api/internal/generation"
	"google.golang.org/genai"
)

// TextGenerator implements the generation.WordGenerator interface using
// Google's Gemini API to generate study content for catalog words.
type TextGenerator struct {
	logger *slog.Logger
	client *genai.Client
	model  string

	// vocabulary is passed to the phrase prompt so generated phrases prefer
	// words the learner has seen. Populated from the catalog at wiring time.
	vocabulary []string
}

// NewTextGenerator creates a new TextGenerator from LLM configuration.
// vocabulary may be nil; when present it lists catalog words used to
// constrain phrase generation.
func NewTextGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
	vocabulary []string,
) (*TextGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.TextModel == "" {
		return nil, fmt.Errorf("%w: text model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &TextGenerator{
		logger:     logger.With(slog.String("component", "gemini_text_generator")),
		client:     client,
		model:      cfg.TextModel,
		vocabulary: vocabulary,
	}, nil
}

// Ensure TextGenerator implements generation.WordGenerator interface
var _ generation.WordGenerator = (*TextGenerator)(nil)

// GenerateExample implements generation.WordGenerator.GenerateExample.
func (g *TextGenerator) GenerateExample(
	ctx context.Context,
	word domain.WordEntry,
) (*domain.ExampleSentence, error) {
	var example domain.ExampleSentence
	if err := g.generateInto(ctx, examplePrompt(word), &example); err != nil {
		return nil, err
	}
	if err := example.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}
	return &example, nil
}

// GeneratePhrases implements generation.WordGenerator.GeneratePhrases.
func (g *TextGenerator) GeneratePhrases(
	ctx context.Context,
	word domain.WordEntry,
) (domain.PhraseList, error) {
	var phrases domain.PhraseList
	if err := g.generateInto(ctx, phrasesPrompt(word, g.vocabulary), &phrases); err != nil {
		return nil, err
	}
	if err := phrases.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}
	return phrases, nil
}

// GenerateBreakdown implements generation.WordGenerator.GenerateBreakdown.
func (g *TextGenerator) GenerateBreakdown(
	ctx context.Context,
	phrase domain.Phrase,
) (*domain.Breakdown, error) {
	var breakdown domain.Breakdown
	if err := g.generateInto(ctx, breakdownPrompt(phrase), &breakdown); err != nil {
		return nil, err
	}
	if err := breakdown.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}
	return &breakdown, nil
}

// generateInto sends the prompt to the model, extracts the first balanced
// JSON value from the free-form response text, and unmarshals it into out.
func (g *TextGenerator) generateInto(ctx context.Context, prompt string, out any) error {
	text, err := g.generateText(ctx, prompt)
	if err != nil {
		return err
	}

	payload, err := ExtractJSON(text)
	if err != nil {
		g.logger.WarnContext(ctx, "model output contained no parseable JSON",
			slog.Int("response_length", len(text)))
		return err
	}

	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("%w: failed to parse JSON response: %v",
			generation.ErrInvalidResponse, err)
	}
	return nil
}

// generateText performs one model call and returns the raw response text.
// Transport errors are reported as transient; empty or safety-blocked
// responses are permanent failures.
func (g *TextGenerator) generateText(ctx context.Context, prompt string) (string, error) {
	g.logger.DebugContext(ctx, "making Gemini API call",
		slog.String("model", g.model),
		slog.Int("prompt_length", len(prompt)))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini API call failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: generation stopped by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
	}

	g.logger.DebugContext(ctx, "Gemini API call successful",
		slog.Int("response_length", len(text)))
	return text, nil
}
