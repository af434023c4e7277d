package observability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/lead-enricher/internal/types"
)

func TestPrintProfile(t *testing.T) {
	count := 250
	profile := &types.NormalizedProfile{
		Email:            "jane@acme.io",
		FirstName:        "Jane",
		LastName:         "Doe",
		Title:            "VP Engineering",
		CompanyName:      "Acme",
		Industry:         "technology",
		EmployeeCount:    &count,
		DataQualityScore: 0.75,
		DataSources:      []string{"apollo", "hunter", "pdl", "gnews", "zoominfo", "pdl_company"},
	}

	var sb strings.Builder
	NewPrinter(&sb).PrintProfile(profile)
	out := sb.String()

	assert.Contains(t, out, "NORMALIZED PROFILE")
	assert.Contains(t, out, "jane@acme.io")
	assert.Contains(t, out, "VP Engineering")
	assert.Contains(t, out, "250 employees")
	assert.Contains(t, out, "0.75")
	// Only the first five sources are listed.
	assert.Contains(t, out, "... and 1 more")
}

func TestPrintProfile_Nil(t *testing.T) {
	var sb strings.Builder
	NewPrinter(&sb).PrintProfile(nil)
	assert.Empty(t, sb.String())
}

func TestPrintNews(t *testing.T) {
	news := &types.CompanyNews{
		Themes: []string{"ai_adoption", "expansion"},
		Articles: []types.NewsArticle{
			{Title: "Acme opens new data center", Source: "TechWire"},
		},
	}

	var sb strings.Builder
	NewPrinter(&sb).PrintNews(news)
	out := sb.String()

	assert.Contains(t, out, "COMPANY NEWS")
	assert.Contains(t, out, "ai_adoption")
	assert.Contains(t, out, "Acme opens new data center")
}

func TestPrintNews_Empty(t *testing.T) {
	var sb strings.Builder
	NewPrinter(&sb).PrintNews(&types.CompanyNews{})
	assert.Empty(t, sb.String())
}

func TestPrintCopy(t *testing.T) {
	record := &types.FinalizedRecord{
		PersonalizationIntro: "Hi Jane, Acme is scaling fast and this guide maps the terrain.",
		PersonalizationCTA:   "Get the guide.",
	}

	var sb strings.Builder
	NewPrinter(&sb).PrintCopy(record)
	out := sb.String()

	assert.Contains(t, out, "PERSONALIZED COPY")
	assert.Contains(t, out, "Intro Hook:")
	assert.Contains(t, out, "Get the guide.")
}

func TestWrapIndent(t *testing.T) {
	wrapped := wrapIndent("one two three four five six seven eight nine ten eleven twelve", 24)

	for _, line := range strings.Split(strings.TrimRight(wrapped, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 24)
		assert.True(t, strings.HasPrefix(line, "  "))
	}
}
