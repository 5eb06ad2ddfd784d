// Package redact scrubs known secret shapes from free text before it
// leaves the trust boundary in an API response.
//
// The pattern list is deliberately fixed and small: cloud access-key IDs,
// one vendor secret-key prefix, and generic key/secret/token assignments.
// It is not a general secret detector.
package redact

import (
	"regexp"
)

// Placeholder replaces every matched secret.
const Placeholder = "[REDACTED]"

var patterns = []*regexp.Regexp{
	// AWS access key IDs (AKIA...)
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// Stripe live secret keys (sk_live_...)
	regexp.MustCompile(`sk_live_[0-9a-zA-Z]{24}`),
	// Generic "secret = value" assignments
	regexp.MustCompile(`(?i)(secret|password|token|key)\s*[:=]\s*\S+`),
}

// Redact replaces every substring matching a known secret pattern with the
// fixed placeholder. Each pattern pass operates on the already-partially
// redacted text; the net effect is idempotent.
func Redact(text string) string {
	cleaned := text
	for _, p := range patterns {
		cleaned = p.ReplaceAllString(cleaned, Placeholder)
	}
	return cleaned
}

// Snippet produces a display snippet: the full body is redacted first, then
// truncated to width runes. Redaction before truncation is load-bearing: a
// secret spanning the cut point must never survive as a partial prefix.
// Callers building outbound snippets must go through this function rather
// than slicing raw bodies.
func Snippet(body string, width int) string {
	cleaned := Redact(body)
	runes := []rune(cleaned)
	if len(runes) <= width {
		return cleaned
	}
	return string(runes[:width])
}
