package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"jobtrack-backend/internal/shared/telemetry"
)

// errNoJSON means no repair step produced a parseable JSON object.
var errNoJSON = errors.New("no JSON object found in model output")

// extractJSON coerces raw model text into a JSON object. Steps, first success
// wins: strip code fences, direct parse, escape raw control characters inside
// string literals, then retry both on the substring between the first '{' and
// the last '}' to tolerate stray prose around the object.
func extractJSON(raw string) ([]byte, error) {
	s := stripCodeFences(raw)
	for _, candidate := range []string{s, escapeControlChars(s)} {
		if json.Valid([]byte(candidate)) {
			return []byte(candidate), nil
		}
	}

	open := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if open >= 0 && last > open {
		sub := s[open : last+1]
		for _, candidate := range []string{sub, escapeControlChars(sub)} {
			if json.Valid([]byte(candidate)) {
				return []byte(candidate), nil
			}
		}
	}
	return nil, errNoJSON
}

// stripCodeFences removes leading/trailing Markdown code fence markers.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// escapeControlChars repairs the common model failure of emitting a literal
// line break (or tab) inside a JSON string value. It scans character by
// character, tracking in-string and escape state, and rewrites raw control
// characters inside string literals to their escaped forms.
func escapeControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false
	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		switch {
		case inString && r == '\\':
			escaped = true
			b.WriteRune(r)
		case r == '"':
			inString = !inString
			b.WriteRune(r)
		case inString && r < 0x20:
			switch r {
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				fmt.Fprintf(&b, `\u%04x`, r)
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// invalidOutput logs the raw model text and the underlying cause for
// diagnosis, and returns the generic user-facing validation failure. The raw
// text never reaches the end user.
func invalidOutput(op string, raw string, cause error) error {
	sample := clampText(raw, 500)
	telemetry.Error("ai.invalid_model_output", map[string]any{
		"operation": op,
		"error":     sanitizeError(cause),
		"raw":       sample,
	})
	return &APIError{Status: 500, Message: "AI response could not be processed. Please try again."}
}

// clampText caps a free-text field at creation time. The cut never splits a
// multi-byte rune.
func clampText(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// clampList caps a list field at creation time, order preserved.
func clampList[T any](items []T, max int) []T {
	if items == nil {
		return []T{}
	}
	if len(items) <= max {
		return items
	}
	return items[:max]
}

// clampTextList caps both the list and each of its elements.
func clampTextList(items []string, maxItems, maxLen int) []string {
	out := clampList(items, maxItems)
	for i := range out {
		out[i] = clampText(out[i], maxLen)
	}
	return out
}
