// Package text provides small string helpers shared by personalization and
// compliance.
package text

import "strings"

// boundaryWindow is the fraction of the limit that a sentence or word
// boundary must fall inside for Truncate to prefer it over a hard cut.
const boundaryWindow = 0.7

// Truncate shortens s to at most n characters. It prefers to end on a
// sentence boundary, then a word boundary, as long as the boundary lands in
// the final 30% of the allowed window; otherwise it cuts hard at n.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	window := runes[:n]
	floor := int(boundaryWindow * float64(n))

	// Sentence boundary: cut just after the terminator.
	for i := n - 1; i >= floor; i-- {
		switch window[i] {
		case '.', '!', '?':
			return strings.TrimSpace(string(window[:i+1]))
		}
	}

	// Word boundary: cut just before the space.
	for i := n - 1; i >= floor; i-- {
		if window[i] == ' ' {
			return strings.TrimSpace(string(window[:i]))
		}
	}

	return string(window)
}

// TruncateEllipsis shortens s to at most n characters including a trailing
// "..." marker when truncation happened.
func TruncateEllipsis(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	if n <= 3 {
		return strings.Repeat(".", n)
	}
	return Truncate(s, n-3) + "..."
}
