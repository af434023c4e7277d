package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate_ShortStringUnchanged(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hello", Truncate("hello", 5))
}

func TestTruncate_SentenceBoundary(t *testing.T) {
	s := "First sentence ends here. Second sentence keeps going well past the limit"
	got := Truncate(s, 30)

	assert.Equal(t, "First sentence ends here.", got)
	assert.LessOrEqual(t, len(got), 30)
}

func TestTruncate_WordBoundary(t *testing.T) {
	s := "no terminators anywhere just a long run of words that keeps going"
	got := Truncate(s, 30)

	assert.LessOrEqual(t, len(got), 30)
	assert.False(t, strings.HasSuffix(got, " "))
	// Must not cut mid-word when a space falls in the final window.
	assert.True(t, strings.HasSuffix(s, got) || strings.HasPrefix(s, got+" "))
}

func TestTruncate_HardCut(t *testing.T) {
	s := strings.Repeat("x", 100)
	got := Truncate(s, 30)

	assert.Equal(t, strings.Repeat("x", 30), got)
}

func TestTruncate_BoundaryOutsideWindowIgnored(t *testing.T) {
	// The only sentence boundary sits at position 4, well before 70% of the
	// window, so it must be ignored in favor of a later word boundary.
	s := "Hi. " + strings.Repeat("word ", 20)
	got := Truncate(s, 40)

	assert.NotEqual(t, "Hi.", got)
	assert.LessOrEqual(t, len(got), 40)
}

func TestTruncate_ZeroLimit(t *testing.T) {
	assert.Equal(t, "", Truncate("anything", 0))
}

func TestTruncateEllipsis(t *testing.T) {
	s := strings.Repeat("a", 100)
	got := TruncateEllipsis(s, 20)

	assert.LessOrEqual(t, len(got), 20)
	assert.True(t, strings.HasSuffix(got, "..."))

	assert.Equal(t, "short", TruncateEllipsis("short", 20))
}
