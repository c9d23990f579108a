// Package content implements the generate-once cache for derived study
// content (example sentences, phrase lists, breakdowns). For any key the
// lifecycle is: check the durable store, generate via the external model on
// a miss, persist, and reuse forever. Concurrent requests for one key share
// a single generation; failures are never cached.
package content
