// Package generation provides interfaces for interacting with external
// generative model services. It abstracts the details of the LLM API
// integration (Gemini), allowing the application to generate study content
// and speech audio without coupling to a specific external service.
package generation
