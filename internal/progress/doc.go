// Package progress owns the per-user study state: the word→progress map,
// the manual memorized and deleted sets, and the statistics derived from
// them. State is loaded once per session, mutated synchronously in memory,
// and persisted asynchronously on a best-effort basis.
package progress
