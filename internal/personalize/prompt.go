package personalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/lead-enricher/internal/prompts"
	"github.com/jonathan/lead-enricher/internal/text"
	"github.com/jonathan/lead-enricher/internal/types"
)

// lookup returns the table entry for key, or the raw key when the table has
// no entry (free-form user input still reads naturally in the prompt).
func lookup(file, key string) string {
	value, err := prompts.Get(file, key)
	if err != nil {
		return key
	}
	return value
}

// buildShortPrompt assembles the user prompt for intro hook + CTA generation.
func buildShortPrompt(profile *types.NormalizedProfile, userCtx types.UserContext) string {
	var sb strings.Builder

	firstName := profile.FirstName
	if firstName == "" {
		firstName = "there"
	}
	company := profile.CompanyName
	if company == "" {
		company = "your company"
	}
	title := profile.Title
	if title == "" {
		title = "professional"
	}

	effectiveIndustry := userCtx.Industry
	if effectiveIndustry == "" {
		effectiveIndustry = profile.Industry
	}
	if effectiveIndustry == "" {
		effectiveIndustry = "your industry"
	}

	sb.WriteString("Create personalized content for this prospect:\n\n")
	fmt.Fprintf(&sb, "- First Name: %s\n", firstName)
	fmt.Fprintf(&sb, "- Company: %s\n", company)
	fmt.Fprintf(&sb, "- Title: %s\n", title)
	fmt.Fprintf(&sb, "- Industry: %s\n", effectiveIndustry)
	if profile.CompanySize != "" {
		fmt.Fprintf(&sb, "- Company Size: %s\n", profile.CompanySize)
	}
	if profile.Seniority != "" {
		fmt.Fprintf(&sb, "- Seniority: %s\n", profile.Seniority)
	}

	if userCtx.Goal != "" {
		fmt.Fprintf(&sb, "\nThis person is currently %s.\n", lookup("goals.json", userCtx.Goal))
	}
	if userCtx.Persona != "" {
		fmt.Fprintf(&sb, "They are %s.\n", lookup("personas.json", userCtx.Persona))
	}
	if angle, err := prompts.Get("industries.json", effectiveIndustry); err == nil {
		fmt.Fprintf(&sb, "In their industry, key concerns include %s.\n", angle)
	}

	if profile.CompanyNews != nil && profile.CompanyNews.Context != "" {
		fmt.Fprintf(&sb, "\nRecent company context: %s\n", text.Truncate(profile.CompanyNews.Context, newsContextLimit))
	}

	sb.WriteString("\nGenerate content that speaks directly to their role, goals, and industry context.\n")
	sb.WriteString("Make it specific and actionable, not generic.\n")
	sb.WriteString("\nGenerate the JSON response now.")

	return sb.String()
}

// buildEbookPrompt assembles the deep-personalization prompt. Every available
// enrichment field is surfaced so the model has concrete data points to cite.
func buildEbookPrompt(profile *types.NormalizedProfile, userCtx types.UserContext, companyNews string) string {
	var sb strings.Builder

	sb.WriteString("Generate DEEPLY personalized ebook content for this prospect.\n\n")
	sb.WriteString("IMPORTANT: You have access to comprehensive enrichment data. USE ALL OF IT to create highly specific, relevant content.\n")

	writePersonSection(&sb, profile)
	companyName := writeCompanySection(&sb, profile, userCtx)
	writeVerificationSection(&sb, profile)
	writeBuyerSection(&sb, userCtx)
	writeNewsSection(&sb, profile, companyNews)
	caseKey := writeCaseStudySection(&sb, profile, userCtx)
	writeMandatorySection(&sb, profile, userCtx, companyName, caseKey)

	sb.WriteString("\n=== OUTPUT REQUIREMENTS ===\n")
	sb.WriteString("Your JSON output MUST:\n")
	fmt.Fprintf(&sb, "1. personalized_hook: Start with %q or reference their news/growth\n", companyName)
	sb.WriteString("2. case_study_framing: Name the case study company AND cite a specific metric\n")
	goal := userCtx.Goal
	if goal == "" {
		goal = "exploring"
	}
	fmt.Fprintf(&sb, "3. personalized_cta: Include %q and match the %s stage\n", companyName, goal)
	sb.WriteString("\nGENERATE THE JSON NOW:")

	return sb.String()
}

func writePersonSection(sb *strings.Builder, profile *types.NormalizedProfile) {
	sb.WriteString("\n=== PERSON PROFILE ===\n")

	name := profile.FirstName
	if name == "" {
		name = "Reader"
	}
	fmt.Fprintf(sb, "Name: %s %s\n", name, profile.LastName)

	title := profile.Title
	if title == "" {
		title = "Professional"
	}
	fmt.Fprintf(sb, "Title: %s\n", title)

	if profile.Seniority != "" {
		fmt.Fprintf(sb, "Seniority Level: %s\n", profile.Seniority)
	}

	if len(profile.Skills) > 0 {
		fmt.Fprintf(sb, "Technical Skills: %s\n", strings.Join(capStrings(profile.Skills, 10), ", "))
		if tech := techSkills(profile.Skills); len(tech) > 0 {
			fmt.Fprintf(sb, "(IMPORTANT: This person has technical background in: %s)\n", strings.Join(capStrings(tech, 5), ", "))
		}
	}
	if len(profile.Interests) > 0 {
		fmt.Fprintf(sb, "Professional Interests: %s\n", strings.Join(capStrings(profile.Interests, 8), ", "))
	}
	if profile.LinkedInURL != "" {
		fmt.Fprintf(sb, "LinkedIn: %s\n", profile.LinkedInURL)
	}
}

func writeCompanySection(sb *strings.Builder, profile *types.NormalizedProfile, userCtx types.UserContext) string {
	sb.WriteString("\n=== COMPANY PROFILE (Deep Enrichment) ===\n")

	companyName := profile.CompanyName
	if companyName == "" {
		companyName = profile.CompanyDisplayName
	}
	if companyName == "" {
		companyName = userCtx.CompanyName
	}
	if companyName == "" {
		companyName = "their company"
	}
	fmt.Fprintf(sb, "Company: %s\n", companyName)

	industry := userCtx.Industry
	if industry == "" {
		industry = profile.Industry
	}
	if industry == "" {
		industry = "Technology"
	}
	fmt.Fprintf(sb, "Industry: %s\n", industry)

	if profile.EmployeeCount != nil {
		fmt.Fprintf(sb, "Employee Count: %d\n", *profile.EmployeeCount)
	}
	if profile.EmployeeCountRange != "" {
		fmt.Fprintf(sb, "Size Range: %s\n", profile.EmployeeCountRange)
	} else if profile.CompanySize != "" {
		fmt.Fprintf(sb, "Company Size: %s\n", profile.CompanySize)
	}

	if profile.CompanyType != "" {
		fmt.Fprintf(sb, "Company Type: %s\n", profile.CompanyType)
	}
	if profile.Ticker != "" {
		fmt.Fprintf(sb, "Stock Ticker: %s (PUBLIC COMPANY)\n", profile.Ticker)
	}
	if profile.FoundedYear != nil {
		fmt.Fprintf(sb, "Founded: %d (%d years old)\n", *profile.FoundedYear, time.Now().Year()-*profile.FoundedYear)
	}

	if profile.TotalFunding != nil {
		fmt.Fprintf(sb, "Total Funding Raised: $%.0f\n", *profile.TotalFunding)
	}
	if profile.LatestFundingStage != "" {
		fmt.Fprintf(sb, "Funding Stage: %s\n", profile.LatestFundingStage)
	}
	if profile.InferredRevenue != "" {
		fmt.Fprintf(sb, "Inferred Revenue: %s\n", profile.InferredRevenue)
	}
	if profile.EmployeeGrowthRate != nil {
		fmt.Fprintf(sb, "Employee Growth Rate: %.1f%% (%s)\n", *profile.EmployeeGrowthRate*100, growthDescription(*profile.EmployeeGrowthRate))
	}

	switch {
	case profile.CompanySummary != "":
		fmt.Fprintf(sb, "Company Summary: %s\n", text.Truncate(profile.CompanySummary, 400))
	case profile.CompanyHeadline != "":
		fmt.Fprintf(sb, "Company Headline: %s\n", profile.CompanyHeadline)
	case profile.CompanyDescription != "":
		fmt.Fprintf(sb, "Company Description: %s\n", text.Truncate(profile.CompanyDescription, 300))
	}

	if len(profile.CompanyTags) > 0 {
		fmt.Fprintf(sb, "Industry Tags: %s\n", strings.Join(capStrings(profile.CompanyTags, 10), ", "))
		if aiTags := techTags(profile.CompanyTags); len(aiTags) > 0 {
			fmt.Fprintf(sb, "(AI/TECH SIGNALS: Company is associated with: %s)\n", strings.Join(aiTags, ", "))
		}
	}

	var location []string
	for _, part := range []string{profile.City, profile.State, profile.Country} {
		if part != "" {
			location = append(location, part)
		}
	}
	if len(location) > 0 {
		fmt.Fprintf(sb, "Location: %s\n", strings.Join(location, ", "))
	}
	if profile.CompanyLinkedIn != "" {
		fmt.Fprintf(sb, "Company LinkedIn: %s\n", profile.CompanyLinkedIn)
	}

	return companyName
}

func writeVerificationSection(sb *strings.Builder, profile *types.NormalizedProfile) {
	if profile.EmailVerified == nil {
		return
	}
	sb.WriteString("\n=== EMAIL VERIFICATION ===\n")
	fmt.Fprintf(sb, "Email Verified: %t\n", *profile.EmailVerified)
	if profile.EmailScore != nil {
		fmt.Fprintf(sb, "Email Score: %d\n", *profile.EmailScore)
	}
	if profile.EmailDeliverable != nil {
		fmt.Fprintf(sb, "Deliverable: %t\n", *profile.EmailDeliverable)
	}
}

func writeBuyerSection(sb *strings.Builder, userCtx types.UserContext) {
	sb.WriteString("\n=== BUYER CONTEXT ===\n")
	if userCtx.Goal != "" {
		fmt.Fprintf(sb, "Buying Stage: %s\n", lookup("goals.json", userCtx.Goal+"-stage"))
	}
	if userCtx.Persona != "" {
		fmt.Fprintf(sb, "Role & Priorities: %s\n", lookup("personas.json", userCtx.Persona+"-priorities"))
	}
	if userCtx.CompanySize != "" {
		fmt.Fprintf(sb, "Company Segment: %s employees\n", userCtx.CompanySize)
	}
}

func writeNewsSection(sb *strings.Builder, profile *types.NormalizedProfile, companyNews string) {
	sb.WriteString("\n=== COMPANY NEWS & MARKET INTELLIGENCE ===\n")

	if strings.TrimSpace(companyNews) != "" {
		fmt.Fprintf(sb, "News Summary: %s\n", text.Truncate(companyNews, newsContextLimit))
	}

	news := profile.CompanyNews
	if news == nil {
		if strings.TrimSpace(companyNews) == "" {
			sb.WriteString("No recent news found - use industry trends instead\n")
		}
		return
	}

	if len(news.Themes) > 0 {
		fmt.Fprintf(sb, "Detected Themes: %s\n", strings.Join(news.Themes, ", "))
		var aiThemes []string
		for _, theme := range news.Themes {
			lower := strings.ToLower(theme)
			if strings.Contains(lower, "ai") || strings.Contains(lower, "cloud") || strings.Contains(lower, "digital") {
				aiThemes = append(aiThemes, theme)
			}
		}
		if len(aiThemes) > 0 {
			fmt.Fprintf(sb, "(IMPORTANT - AI/CLOUD THEMES DETECTED: %s)\n", strings.Join(aiThemes, ", "))
		}
	}

	if len(news.Sentiment) > 0 {
		pos := news.Sentiment["positive"]
		neg := news.Sentiment["negative"]
		switch {
		case pos > neg+2:
			fmt.Fprintf(sb, "Sentiment: POSITIVE (%d positive indicators, %d negative)\n", pos, neg)
		case neg > pos+2:
			fmt.Fprintf(sb, "Sentiment: CHALLENGING (%d negative indicators, %d positive)\n", neg, pos)
		default:
			sb.WriteString("Sentiment: NEUTRAL/MIXED\n")
		}
	}

	if len(news.Articles) > 0 {
		sb.WriteString("\nRecent Headlines:\n")
		for i, article := range news.Articles {
			if i >= 5 {
				break
			}
			fmt.Fprintf(sb, "  %d. [%s] %s\n", i+1, strings.ToUpper(article.Category), article.Title)
			if article.Source != "" {
				fmt.Fprintf(sb, "     Source: %s\n", article.Source)
			}
			if article.Content != "" {
				fmt.Fprintf(sb, "     Summary: %s...\n", text.Truncate(article.Content, 200))
			}
		}
	} else if strings.TrimSpace(companyNews) == "" {
		sb.WriteString("No recent news found - use industry trends instead\n")
	}
}

func writeCaseStudySection(sb *strings.Builder, profile *types.NormalizedProfile, userCtx types.UserContext) string {
	sb.WriteString("\n=== CASE STUDY TO HIGHLIGHT ===\n")

	caseKey := caseStudyFor(userCtx.Industry, profile.Industry)
	for _, suffix := range []string{"-selected", "-angles", "-metrics"} {
		sb.WriteString(prompts.MustGet("case_studies.json", caseKey+suffix))
		sb.WriteString("\n")
	}
	return caseKey
}

func writeMandatorySection(sb *strings.Builder, profile *types.NormalizedProfile, userCtx types.UserContext, companyName, caseKey string) {
	sb.WriteString("\n=== MANDATORY DATA TO REFERENCE ===\n")
	sb.WriteString("You MUST use these data points in your output:\n\n")

	fmt.Fprintf(sb, "- COMPANY NAME: %q (USE THIS EXACT NAME)\n", companyName)

	if profile.CompanyNews != nil && len(profile.CompanyNews.Articles) > 0 {
		if title := profile.CompanyNews.Articles[0].Title; title != "" {
			fmt.Fprintf(sb, "- RECENT NEWS: %q - REFERENCE THIS IN THE HOOK\n", text.Truncate(title, 80))
		}
		if themes := profile.CompanyNews.Themes; len(themes) > 0 {
			fmt.Fprintf(sb, "- NEWS THEMES: %s - WEAVE INTO HOOK\n", strings.Join(capStrings(themes, 3), ", "))
		}
	}

	if profile.EmployeeCount != nil {
		fmt.Fprintf(sb, "- EMPLOYEE COUNT: %d employees - USE FOR SCALE CONTEXT\n", *profile.EmployeeCount)
	} else if profile.CompanySize != "" {
		fmt.Fprintf(sb, "- COMPANY SIZE: %s - USE FOR SCALE CONTEXT\n", profile.CompanySize)
	}

	if profile.LatestFundingStage != "" {
		fmt.Fprintf(sb, "- FUNDING STAGE: %s - MENTION IN CONTEXT\n", profile.LatestFundingStage)
	}
	if profile.EmployeeGrowthRate != nil && *profile.EmployeeGrowthRate > 0 {
		fmt.Fprintf(sb, "- GROWTH RATE: %.0f%% employee growth - REFERENCE AS 'RAPID GROWTH'\n", *profile.EmployeeGrowthRate*100)
	}

	if profile.Title != "" {
		fmt.Fprintf(sb, "- THEIR TITLE: %s - TAILOR TONE TO THIS ROLE\n", profile.Title)
	}
	if profile.Seniority != "" {
		fmt.Fprintf(sb, "- SENIORITY: %s - MATCH STRATEGIC VS TACTICAL\n", profile.Seniority)
	}

	effectiveIndustry := userCtx.Industry
	if effectiveIndustry == "" {
		effectiveIndustry = profile.Industry
	}
	if effectiveIndustry != "" {
		fmt.Fprintf(sb, "- INDUSTRY: %s - USE INDUSTRY-SPECIFIC LANGUAGE\n", effectiveIndustry)
	}
	if userCtx.Goal != "" {
		fmt.Fprintf(sb, "- BUYING STAGE: %s - MATCH CTA TO THIS STAGE\n", strings.ToUpper(userCtx.Goal))
	}

	sb.WriteString("\n- CASE STUDY TO REFERENCE: Use the case study selected above\n")
	fmt.Fprintf(sb, "   - Name: %s\n", prompts.MustGet("case_studies.json", caseKey+"-name"))
	fmt.Fprintf(sb, "   - Metric to cite: %s\n", prompts.MustGet("case_studies.json", caseKey+"-cite"))
}

// userIndustryToCaseStudy maps form industry values to case study keys.
// User-selected industry wins over API-derived data.
var userIndustryToCaseStudy = map[string]string{
	"healthcare":         "healthcare",
	"financial_services": "financial",
	"manufacturing":      "manufacturing",
	"retail":             "manufacturing",
	"energy":             "manufacturing",
	"technology":         "telecom_tech",
	"telecommunications": "telecom_tech",
	"gaming_media":       "telecom_tech",
	"government":         "general",
}

// caseStudyFor selects the case study key. The user-selected industry has
// priority; API-derived industry strings are keyword-matched as a fallback.
func caseStudyFor(userIndustry, apiIndustry string) string {
	if key, ok := userIndustryToCaseStudy[strings.ToLower(userIndustry)]; ok {
		return key
	}

	industry := strings.ToLower(apiIndustry)
	switch {
	case containsAny(industry, "health", "pharma", "medical", "biotech", "life science"):
		return "healthcare"
	case containsAny(industry, "financ", "bank", "insurance"):
		return "financial"
	case containsAny(industry, "manufact", "industrial", "energy", "utilities", "retail", "consumer goods"):
		return "manufacturing"
	case containsAny(industry, "telecom", "media", "entertainment", "gaming"):
		return "telecom_tech"
	case strings.Contains(industry, "software") || industry == "technology":
		return "telecom_tech"
	default:
		return "general"
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func capStrings(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

var techKeywords = []string{"python", "java", "cloud", "aws", "azure", "kubernetes", "docker", "ai", "ml", "data"}

func techSkills(skills []string) []string {
	var out []string
	for _, skill := range skills {
		lower := strings.ToLower(skill)
		if skill != "" && containsAny(lower, techKeywords...) {
			out = append(out, skill)
		}
	}
	return out
}

var tagKeywords = []string{"ai", "machine learning", "cloud", "data", "saas", "technology"}

func techTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		if tag != "" && containsAny(lower, tagKeywords...) {
			out = append(out, tag)
		}
	}
	return out
}

func growthDescription(rate float64) string {
	switch {
	case rate > 0.2:
		return "rapidly growing"
	case rate > 0:
		return "growing steadily"
	default:
		return "stable or contracting"
	}
}
