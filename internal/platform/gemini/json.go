package gemini

import (
	"fmt"

	"github.com/phrazzld/frequency-api/internal/generation"
)

// ExtractJSON returns the first balanced JSON object or array embedded in
// free-form model output. Gemini frequently wraps its JSON in prose or
// markdown fences, so the raw response text cannot be unmarshalled directly.
//
// The scanner is string-aware: braces and brackets inside JSON string
// literals (including escaped quotes) do not affect the balance count.
// Returns generation.ErrInvalidResponse if no balanced JSON value is found.
func ExtractJSON(text string) (string, error) {
	start := -1
	var open, close byte
	for i := 0; i < len(text); i++ {
		if text[i] == '{' || text[i] == '[' {
			start = i
			open = text[i]
			if open == '{' {
				close = '}'
			} else {
				close = ']'
			}
			break
		}
	}
	if start < 0 {
		return "", fmt.Errorf("%w: no JSON value in model output", generation.ErrInvalidResponse)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", fmt.Errorf("%w: unbalanced JSON in model output", generation.ErrInvalidResponse)
}
