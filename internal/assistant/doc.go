// Package assistant wraps the Gemini API for the LLM-backed endpoints:
// food safety assessments, emergency training content, and meal search.
//
// The HTTP layer depends on the small Generator interface it defines
// itself; this package provides the production implementation plus the
// prompt builders and response parsers, which are pure functions so they
// can be tested without network access.
package assistant
