package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("personalization.json", "short-system")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "intro_hook")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read table")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("personalization.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		prompt := MustGet("personalization.json", "ebook-system")
		assert.NotEmpty(t, prompt)
	})
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	result := Format(template, data)
	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", result)
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	data := map[string]string{"Key": "Value"}

	result := Format(template, data)
	assert.Equal(t, template, result)
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	data := map[string]string{}

	result := Format(template, data)
	assert.Equal(t, template, result) // Placeholder remains
}

func TestFixPrompt_EmbedsFailedResponse(t *testing.T) {
	ClearCache()

	template := MustGet("personalization.json", "short-fix")
	result := Format(template, map[string]string{"FailedResponse": "not json at all"})
	assert.Contains(t, result, "not json at all")
	assert.NotContains(t, result, "{{.FailedResponse}}")
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("goals.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "exploring")
	assert.Contains(t, keys, "building_case-stage")
}

func TestContextTables_CoverAllEnumValues(t *testing.T) {
	ClearCache()

	for _, goal := range []string{"exploring", "evaluating", "learning", "building_case"} {
		_, err := Get("goals.json", goal)
		assert.NoError(t, err, "goal %s", goal)
		_, err = Get("goals.json", goal+"-stage")
		assert.NoError(t, err, "goal stage %s", goal)
	}

	for _, persona := range []string{"executive", "it_infrastructure", "security", "data_ai", "sales_gtm", "hr_people"} {
		_, err := Get("personas.json", persona)
		assert.NoError(t, err, "persona %s", persona)
		_, err = Get("personas.json", persona+"-priorities")
		assert.NoError(t, err, "persona priorities %s", persona)
	}

	for _, industry := range []string{"healthcare", "financial_services", "technology", "gaming_media", "manufacturing", "retail", "government", "energy", "telecommunications"} {
		_, err := Get("industries.json", industry)
		assert.NoError(t, err, "industry %s", industry)
	}

	for _, caseKey := range []string{"healthcare", "financial", "manufacturing", "telecom_tech", "general"} {
		for _, suffix := range []string{"-name", "-selected", "-angles", "-metrics", "-cite"} {
			_, err := Get("case_studies.json", caseKey+suffix)
			assert.NoError(t, err, "case study %s%s", caseKey, suffix)
		}
	}
}

func TestCaching(t *testing.T) {
	ClearCache()

	// First call loads from file
	prompt1, err := Get("personalization.json", "short-system")
	require.NoError(t, err)

	// Second call should use cache
	prompt2, err := Get("personalization.json", "short-system")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
