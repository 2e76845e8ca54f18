// Package knowledge implements the question/answer knowledge bases behind
// the food-research and research endpoints.
//
// Two independent collections exist: food safety Q&A and general parenting
// Q&A. Each is a small JSON array loaded from disk by a Loader and searched
// by a Matcher using keyword scoring (exact match, substring containment,
// food-alias bonuses, context-keyword bonuses).
//
// The matcher is deliberately total: every failure mode — missing file,
// malformed JSON, empty query, no candidate clearing its threshold — is
// absorbed and converted into a well-formed result. Callers never receive
// an error from this package.
//
// File structure:
//   - types.go: Entry, result types, safety levels
//   - loader.go: JSON loading with mtime-based snapshot caching
//   - keywords.go: alias table and keyword sets shared by both matchers
//   - score.go: scoring primitives
//   - food.go: food-safety matcher (single collection)
//   - research.go: research matcher (both collections, composed answers)
package knowledge
