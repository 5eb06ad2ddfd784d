package safelog

import (
	"regexp"
)

const (
	// KeyPlaceholder replaces the value of any mapping entry whose key
	// matches the sensitive-key pattern.
	KeyPlaceholder = "[REDACTED_KEY]"

	// ValuePlaceholder replaces any string that matches a sensitive-value
	// pattern.
	ValuePlaceholder = "[REDACTED_VALUE]"

	// FallbackMessage is emitted when scrubbing itself fails. The log write
	// still completes; a broken scrub must never abort the request.
	FallbackMessage = "scrubbing_error"

	// valueScanCap bounds how much of a string is scanned for sensitive
	// patterns, so pathological inputs cannot blow up log cost.
	valueScanCap = 2048
)

var (
	sensitiveKeyPattern = regexp.MustCompile(`(?i)^(authorization|cookie|bearer|token|x-api-key|password|secret)$`)

	sensitiveValuePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bsk_(live|test)_[0-9a-zA-Z]{10,}`),
		regexp.MustCompile(`\bey[A-Za-z0-9\-_=]+\.[A-Za-z0-9\-_=]+\.?[A-Za-z0-9\-_.+/=]*`),
	}
)

// IsSensitiveKey reports whether a mapping key must have its value redacted.
func IsSensitiveKey(key string) bool {
	return sensitiveKeyPattern.MatchString(key)
}

// IsSensitiveValue reports whether a string matches a sensitive-value
// pattern. Only the first valueScanCap bytes are scanned.
func IsSensitiveValue(s string) bool {
	if s == "" {
		return false
	}
	if len(s) > valueScanCap {
		s = s[:valueScanCap]
	}
	for _, p := range sensitiveValuePatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// ScrubString returns the string unchanged unless it matches a
// sensitive-value pattern, in which case the whole string is replaced.
func ScrubString(s string) string {
	if IsSensitiveValue(s) {
		return ValuePlaceholder
	}
	return s
}

// Scrub sanitizes a Value for emission:
//
//   - mapping: entries under a sensitive key get KeyPlaceholder and are not
//     descended into; other entries are scrubbed recursively with the key
//     kept unchanged.
//   - sequence: every element is scrubbed, order and length preserved.
//   - string: replaced wholesale with ValuePlaceholder on a pattern match.
//   - number, bool, null: returned unchanged.
//
// Scrub is idempotent and never panics outward; an internal failure yields
// the fixed fallback string instead.
func Scrub(v Value) (out Value) {
	defer func() {
		if r := recover(); r != nil {
			out = String(FallbackMessage)
		}
	}()
	return scrub(v)
}

func scrub(v Value) Value {
	switch v.kind {
	case KindMapping:
		clean := make(map[string]Value, len(v.m))
		for k, e := range v.m {
			if IsSensitiveKey(k) {
				clean[k] = String(KeyPlaceholder)
				continue
			}
			clean[k] = scrub(e)
		}
		return Mapping(clean)
	case KindSequence:
		clean := make([]Value, len(v.seq))
		for i, e := range v.seq {
			clean[i] = scrub(e)
		}
		return Sequence(clean...)
	case KindString:
		return String(ScrubString(v.str))
	default:
		return v
	}
}

// ScrubAny converts arbitrary Go data to a Value, scrubs it, and converts
// back. Convenience for call sites holding plain maps or slices.
func ScrubAny(v any) any {
	return Scrub(FromAny(v)).Interface()
}
