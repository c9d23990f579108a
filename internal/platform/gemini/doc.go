// Package gemini provides implementations of the generation interfaces
// using Google's Gemini API: text generation for study content and speech
// synthesis for word audio.
package gemini
