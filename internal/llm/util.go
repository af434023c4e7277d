// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"regexp"
	"strings"
)

// CleanJSONBlock extracts the JSON payload from an LLM response. It removes
// markdown code block wrappers and conversational preamble/trailing text.
// LLMs often wrap JSON in ```json ... ``` blocks or prose even when
// instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		// Handle generic ``` ... ``` blocks
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			// If first line looks like a language identifier (no spaces, short), skip it
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	// Cut preamble and trailing prose around the first balanced JSON value
	objIdx := strings.Index(text, "{")
	arrIdx := strings.Index(text, "[")
	if objIdx >= 0 && (arrIdx < 0 || objIdx < arrIdx) {
		if extracted := extractJSONObject(text[objIdx:]); extracted != "" {
			return extracted
		}
	} else if arrIdx >= 0 {
		if extracted := extractJSONArray(text[arrIdx:]); extracted != "" {
			return extracted
		}
	}

	return text
}

// extractJSONObject returns the balanced JSON object at the start of s, or ""
// if s does not start with a complete object. Braces inside string literals
// are ignored.
func extractJSONObject(s string) string {
	return extractBalanced(s, '{', '}')
}

// extractJSONArray returns the balanced JSON array at the start of s, or "".
func extractJSONArray(s string) string {
	return extractBalanced(s, '[', ']')
}

func extractBalanced(s string, open, close byte) string {
	if len(s) == 0 || s[0] != open {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// Delimiters inside strings do not count
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

// invalidJSONEscapeRe matches a backslash followed by any character that is
// not a valid JSON string escape character ("\/bfnrtu). Models sometimes emit
// sequences like \& or \d unescaped inside JSON strings; doubling the
// backslash lets the parser accept the response.
var invalidJSONEscapeRe = regexp.MustCompile(`\\([^"\\/bfnrtu])`)

// FixInvalidJSONEscapes replaces invalid JSON escape sequences in s with
// their correctly double-escaped equivalents.
func FixInvalidJSONEscapes(s string) string {
	return invalidJSONEscapeRe.ReplaceAllString(s, `\\$1`)
}
