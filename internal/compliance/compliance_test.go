package compliance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	cleanIntro = "Healthcare organizations are modernizing infrastructure to improve patient outcomes."
	cleanCTA   = "Download the technical deep-dive with architecture patterns."
)

func TestCheck_CleanContentPasses(t *testing.T) {
	checker := NewChecker()

	result := checker.Check(cleanIntro, cleanCTA, true)

	assert.True(t, result.Passed)
	assert.Empty(t, result.Issues)
	assert.Equal(t, cleanIntro, result.OriginalIntro)
	assert.Equal(t, cleanCTA, result.OriginalCTA)
	assert.Empty(t, result.CorrectedIntro)
}

func TestCheck_BannedTermDetected(t *testing.T) {
	checker := NewChecker()

	result := checker.Check("Our guaranteed approach helps teams modernize at their own pace.", cleanCTA, false)

	assert.False(t, result.Passed)
	// Substring matching flags both "guarantee" and "guaranteed" here.
	require.Len(t, result.Issues, 2)
	for _, issue := range result.Issues {
		assert.Contains(t, issue, "banned term")
		assert.Contains(t, issue, "guarantee")
	}
	// No correction requested
	assert.Empty(t, result.CorrectedIntro)
}

func TestCheck_BannedTermAutoCorrected(t *testing.T) {
	checker := NewChecker()

	result := checker.Check("Our guaranteed approach helps teams modernize at their own pace.", cleanCTA, true)

	assert.True(t, result.Passed)
	assert.NotContains(t, strings.ToLower(result.CorrectedIntro), "guaranteed")
	assert.NotContains(t, result.CorrectedIntro, "  ", "double spaces should be cleaned up")
	assert.Equal(t, cleanCTA, result.CorrectedCTA)
}

func TestCheck_CorrectedOutputIsIdempotent(t *testing.T) {
	checker := NewChecker()

	first := checker.Check("Our guaranteed approach helps teams modernize at their own pace.", cleanCTA, true)
	require.True(t, first.Passed)

	second := checker.Check(first.CorrectedIntro, first.CorrectedCTA, true)
	assert.True(t, second.Passed)
	assert.Empty(t, second.Issues)
}

func TestCheck_TooManyIssuesUsesFallback(t *testing.T) {
	checker := NewChecker()

	// guaranteed + revolutionary + unprecedented + act now: four banned terms
	intro := "Our guaranteed revolutionary platform delivers unprecedented results."
	cta := "Act now to get your copy."

	result := checker.Check(intro, cta, true)

	assert.Greater(t, len(result.Issues), 3)
	assert.Contains(t, fallbackIntros(), result.CorrectedIntro)
	assert.Contains(t, fallbackCTAs(), result.CorrectedCTA)
	assert.True(t, result.Passed, "fallback content should pass the re-check")
}

func TestCheck_SuperlativeDetected(t *testing.T) {
	checker := NewChecker()

	result := checker.Check("This is the fastest path to modern infrastructure for your team.", cleanCTA, false)

	assert.False(t, result.Passed)
	found := false
	for _, issue := range result.Issues {
		if strings.Contains(issue, "superlative") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheck_AllowedSuperlativePhrases(t *testing.T) {
	checker := NewChecker()

	result := checker.Check("This guide collects best practices for modernizing healthcare infrastructure.", cleanCTA, true)

	assert.True(t, result.Passed)
	assert.Empty(t, result.Issues)
}

func TestCheck_UnsupportedClaims(t *testing.T) {
	checker := NewChecker()

	tests := []struct {
		name  string
		intro string
		want  string
	}{
		{"percentage", "Teams report a 40% improvement after modernizing their stack together.", "percentage claim"},
		{"multiplier", "Get 3x faster deployments with a modern platform approach today.", "multiplier claim"},
		{"savings", "You could save $50000 annually with the right infrastructure choices.", "savings claim"},
		{"time", "See results in just 30 days with this approach to modernization.", "time claim"},
		{"customer count", "Join over 500 companies already reading this modernization guide.", "customer count claim"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checker.Check(tt.intro, cleanCTA, false)
			assert.False(t, result.Passed)
			found := false
			for _, issue := range result.Issues {
				if strings.Contains(issue, tt.want) {
					found = true
				}
			}
			assert.True(t, found, "expected %q in %v", tt.want, result.Issues)
		})
	}
}

func TestCheck_LengthViolationTruncated(t *testing.T) {
	checker := NewChecker()

	long := strings.Repeat("Modern infrastructure unlocks new capability. ", 10)
	require.Greater(t, len(long), MaxIntroLength)

	result := checker.Check(long, cleanCTA, true)

	assert.False(t, len(result.CorrectedIntro) > MaxIntroLength)
	assert.True(t, result.Passed)
}

func TestCheck_EmptyContent(t *testing.T) {
	checker := NewChecker()

	result := checker.Check("", "", false)

	assert.False(t, result.Passed)
	assert.Len(t, result.Issues, 2)
}

func TestCheck_CorrectionLeavesContentTooShort(t *testing.T) {
	checker := NewChecker()

	// Removing the single banned term leaves almost nothing behind
	result := checker.Check("Truly unprecedented results.", "Act now.", true)

	assert.Contains(t, fallbackIntros(), result.CorrectedIntro)
	assert.Contains(t, fallbackCTAs(), result.CorrectedCTA)
}

func TestCheck_CustomBannedTerms(t *testing.T) {
	checker := NewChecker("synergy")

	result := checker.Check("Unlock synergy across your whole infrastructure organization today.", cleanCTA, false)

	assert.False(t, result.Passed)
	assert.Contains(t, result.Issues[0], "synergy")
}

func TestSafeIntro(t *testing.T) {
	assert.Contains(t, SafeIntro("Jane"), "Jane")
	assert.NotEmpty(t, SafeIntro(""))

	checker := NewChecker()
	result := checker.Check(SafeIntro("Jane"), SafeCTA(), false)
	assert.True(t, result.Passed)
}

func TestRemoveTerm(t *testing.T) {
	assert.Equal(t, "A approach to scaling.", removeTerm("A guaranteed approach to scaling.", "guaranteed"))
	assert.Equal(t, "Results, delivered.", removeTerm("Results guaranteed, delivered.", "guaranteed"))
	assert.Equal(t, "No change here.", removeTerm("No change here.", "absent"))
}

func fallbackIntros() []string {
	return []string{
		"This guide was designed to help professionals like you tackle common challenges.",
		"We've compiled insights from industry experts to help you navigate this topic.",
		"This resource covers practical strategies for your team to consider.",
	}
}

func fallbackCTAs() []string {
	return []string{
		"Download the guide to explore these insights.",
		"Get your copy and discover actionable strategies.",
		"Access the full guide for your team.",
	}
}
