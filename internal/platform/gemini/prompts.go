package gemini

import (
	"fmt"
	"strings"

	"github.com/phrazzld/frequency-api/internal/domain"
)

// examplePrompt builds the prompt for a single short example sentence.
func examplePrompt(word domain.WordEntry) string {
	return fmt.Sprintf(`Generate ONE short, simple Japanese example sentence using the word %q (%s, meaning: %s).

Rules:
- Keep it very short (3-6 words)
- Beginner-friendly
- You may conjugate the word naturally
- Make it practical and useful

Return ONLY a JSON object:
{"japanese": "sentence", "romaji": "romanization", "english": "translation"}

No other text.`, word.Japanese, word.Romaji, word.English)
}

// phrasesPrompt builds the prompt for exactly three beginner phrases.
// vocabulary, when non-empty, lists known catalog words the model should
// prefer so that generated phrases stay inside the learner's vocabulary.
func phrasesPrompt(word domain.WordEntry, vocabulary []string) string {
	var vocabRule string
	if len(vocabulary) > 0 {
		vocabRule = fmt.Sprintf(
			"\n- Try to use only common words from this vocabulary list when possible: %s",
			strings.Join(vocabulary, ", "))
	}

	return fmt.Sprintf(`You are a Japanese language teacher. Generate exactly 3 simple example phrases using the Japanese word %q (%s, meaning: %s).

Rules:
- Keep phrases simple and beginner-friendly%s
- Each phrase should be natural Japanese

Return ONLY a JSON array with exactly 3 objects, each containing:
- "japanese": the phrase in Japanese
- "romaji": the romanization
- "english": the English translation

Return only the JSON array, no other text.`, word.Japanese, word.Romaji, word.English, vocabRule)
}

// breakdownPrompt builds the prompt for a per-word grammatical breakdown of
// a phrase.
func breakdownPrompt(phrase domain.Phrase) string {
	return fmt.Sprintf(`You are a Japanese language teacher. Break down this Japanese sentence for a beginner:

Japanese: %s
Romaji: %s
English: %s

Provide a detailed breakdown of each word/particle in the sentence. Explain:
1. What each word means
2. The grammatical role of each word/particle
3. How they combine to form the meaning

Return ONLY a JSON object with this structure:
{
  "words": [
    {
      "japanese": "the word in Japanese",
      "romaji": "romanization",
      "meaning": "English meaning",
      "role": "grammatical role (noun, verb, particle, etc.)"
    }
  ],
  "explanation": "A brief explanation of how the sentence structure works and any cultural/grammatical notes"
}

Return only the JSON, no other text.`, phrase.Japanese, phrase.Romaji, phrase.English)
}

// speechSystemInstruction steers the TTS model toward reading the text
// verbatim.
const speechSystemInstruction = "You are a Japanese language audio reader. " +
	"Read the provided Japanese text aloud clearly and naturally. " +
	"Do not add any extra words or commentary."
