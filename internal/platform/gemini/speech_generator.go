package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/frequency-api/internal/config"
	"github.com/phrazzld/frequency-api/internal/generation"
	"google.golang.org/genai"
)

// SpeechGenerator implements the generation.SpeechGenerator interface using
// Gemini's TTS models. The model returns raw headerless 16-bit PCM samples
// which the audio cache wraps into a WAV container before persisting.
type SpeechGenerator struct {
	logger     *slog.Logger
	client     *genai.Client
	model      string
	voiceName  string
	maxRetries int
	retryDelay time.Duration
}

// NewSpeechGenerator creates a new SpeechGenerator from LLM configuration.
func NewSpeechGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
) (*SpeechGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.SpeechModel == "" {
		return nil, fmt.Errorf("%w: speech model name cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.VoiceName == "" {
		return nil, fmt.Errorf("%w: voice name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &SpeechGenerator{
		logger:     logger.With(slog.String("component", "gemini_speech_generator")),
		client:     client,
		model:      cfg.SpeechModel,
		voiceName:  cfg.VoiceName,
		maxRetries: cfg.MaxRetries,
		retryDelay: time.Duration(cfg.RetryDelaySeconds) * time.Second,
	}, nil
}

// Ensure SpeechGenerator implements generation.SpeechGenerator interface
var _ generation.SpeechGenerator = (*SpeechGenerator)(nil)

// Synthesize implements generation.SpeechGenerator.Synthesize.
// Transient server errors are retried up to maxRetries additional times
// with a short fixed delay. Permanent failures (empty payload, blocked
// content) are returned immediately.
func (g *SpeechGenerator) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, generation.ErrEmptyInput
	}

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			g.logger.InfoContext(ctx, "retrying speech synthesis",
				slog.Int("attempt", attempt+1),
				slog.Int("max_attempts", g.maxRetries+1))
			select {
			case <-time.After(g.retryDelay):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
			}
		}

		pcm, err := g.synthesizeOnce(ctx, text)
		if err == nil {
			return pcm, nil
		}
		lastErr = err

		// Only transient failures are worth another attempt.
		if !errors.Is(err, generation.ErrTransientFailure) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("speech synthesis failed after %d attempts: %w",
		g.maxRetries+1, lastErr)
}

// synthesizeOnce performs a single TTS model call.
func (g *SpeechGenerator) synthesizeOnce(ctx context.Context, text string) ([]byte, error) {
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(speechSystemInstruction, genai.RoleUser),
		ResponseModalities: []string{
			"AUDIO",
		},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: g.voiceName,
				},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(text), genConfig)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini TTS call failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: no audio generated", generation.ErrInvalidResponse)
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			g.logger.DebugContext(ctx, "speech synthesis successful",
				slog.Int("pcm_bytes", len(part.InlineData.Data)))
			return part.InlineData.Data, nil
		}
	}

	return nil, fmt.Errorf("%w: no audio data in response", generation.ErrInvalidResponse)
}
