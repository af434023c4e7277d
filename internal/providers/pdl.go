package providers

import (
	"context"
	"log"
	"net/url"
	"time"
)

const pdlBaseURL = "https://api.peopledatalabs.com/v5"

// maxListedItems caps list fields (skills, tags) carried from PDL responses.
const maxListedItems = 10

// PDL is the People Data Labs client. It serves two sources: the person
// enrichment call and the deep company enrichment call (pdl_company).
type PDL struct {
	apiKey  string
	baseURL string
}

// NewPDL creates a PDL client. An empty key switches it to mock mode.
func NewPDL(apiKey string) *PDL {
	if apiKey == "" {
		log.Printf("[PDL] API key not configured, using mock data")
	}
	return &PDL{apiKey: apiKey, baseURL: pdlBaseURL}
}

// SourceName returns the provider identifier for the person lookup.
func (p *PDL) SourceName() string { return SourcePDL }

type pdlPersonResponse struct {
	FirstName          string           `json:"first_name"`
	LastName           string           `json:"last_name"`
	FullName           string           `json:"full_name"`
	LinkedInURL        string           `json:"linkedin_url"`
	JobTitle           string           `json:"job_title"`
	JobCompanyName     string           `json:"job_company_name"`
	JobCompanyIndustry string           `json:"job_company_industry"`
	JobCompanySize     string           `json:"job_company_size"`
	LocationCountry    string           `json:"location_country"`
	LocationRegion     string           `json:"location_region"`
	LocationLocality   string           `json:"location_locality"`
	Skills             []string         `json:"skills"`
	Interests          []string         `json:"interests"`
	Experience         []map[string]any `json:"experience"`
}

// Enrich looks up a person by email.
func (p *PDL) Enrich(ctx context.Context, email, domain string) Response {
	if p.apiKey == "" {
		return p.mockResponse(email)
	}

	var parsed pdlPersonResponse
	apiErr := doJSON(ctx, SourcePDL, "GET", p.baseURL+"/person/enrich", requestOptions{
		Headers: map[string]string{"X-Api-Key": p.apiKey},
		Query:   url.Values{"email": {email}},
	}, &parsed)
	if apiErr != nil {
		log.Printf("[PDL] enrich failed for %s: %v", email, apiErr)
		return Response{Source: SourcePDL, FetchedAt: time.Now().UTC(), Err: apiErr}
	}

	return Response{
		Source:    SourcePDL,
		FetchedAt: time.Now().UTC(),
		Fields: map[string]any{
			"email":                email,
			"first_name":           parsed.FirstName,
			"last_name":            parsed.LastName,
			"full_name":            parsed.FullName,
			"linkedin_url":         parsed.LinkedInURL,
			"job_title":            parsed.JobTitle,
			"job_company_name":     parsed.JobCompanyName,
			"job_company_industry": parsed.JobCompanyIndustry,
			"job_company_size":     parsed.JobCompanySize,
			"location_country":     parsed.LocationCountry,
			"location_region":      parsed.LocationRegion,
			"location_locality":    parsed.LocationLocality,
			"skills":               capList(parsed.Skills, maxListedItems),
			"interests":            capList(parsed.Interests, maxListedItems),
			"experience":           capExperience(parsed.Experience, 3),
		},
	}
}

func (p *PDL) mockResponse(email string) Response {
	return Response{
		Source:    SourcePDL,
		Mock:      true,
		FetchedAt: time.Now().UTC(),
		Fields: map[string]any{
			"email":                email,
			"location_country":     "United States",
			"job_company_industry": "Software",
			"job_company_size":     "51-200",
			"skills":               []string{"Sales", "Marketing", "Strategy"},
		},
	}
}

type pdlCompanyResponse struct {
	Name               string           `json:"name"`
	DisplayName        string           `json:"display_name"`
	Size               string           `json:"size"`
	EmployeeCount      *int             `json:"employee_count"`
	EmployeeCountRange string           `json:"employee_count_range"`
	Founded            *int             `json:"founded"`
	Industry           string           `json:"industry"`
	NAICS              []map[string]any `json:"naics"`
	SIC                []map[string]any `json:"sic"`
	Locality           string           `json:"locality"`
	Region             string           `json:"region"`
	Country            string           `json:"country"`
	Type               string           `json:"type"`
	Ticker             string           `json:"ticker"`
	LinkedInURL        string           `json:"linkedin_url"`
	Tags               []string         `json:"tags"`
	Headline           string           `json:"headline"`
	Summary            string           `json:"summary"`
	TotalFundingRaised *float64         `json:"total_funding_raised"`
	LatestFundingStage string           `json:"latest_funding_stage"`
	InferredRevenue    string           `json:"inferred_revenue"`
	EmployeeGrowthRate *float64         `json:"employee_growth_rate"`
}

// EnrichCompany performs the deep company lookup for a domain. It runs with
// the extended timeout because PDL company queries are noticeably slower
// than person lookups.
func (p *PDL) EnrichCompany(ctx context.Context, domain string) Response {
	if p.apiKey == "" {
		return p.mockCompanyResponse(domain)
	}

	var parsed pdlCompanyResponse
	apiErr := doJSON(ctx, SourcePDLCompany, "GET", p.baseURL+"/company/enrich", requestOptions{
		Timeout: DeepTimeout,
		Headers: map[string]string{"X-Api-Key": p.apiKey},
		Query:   url.Values{"website": {domain}},
	}, &parsed)
	if apiErr != nil {
		log.Printf("[PDL] company enrich failed for %s: %v", domain, apiErr)
		return Response{Source: SourcePDLCompany, FetchedAt: time.Now().UTC(), Err: apiErr}
	}

	return Response{
		Source:    SourcePDLCompany,
		FetchedAt: time.Now().UTC(),
		Fields: map[string]any{
			"domain":               domain,
			"name":                 parsed.Name,
			"display_name":         parsed.DisplayName,
			"size":                 parsed.Size,
			"employee_count":       parsed.EmployeeCount,
			"employee_count_range": parsed.EmployeeCountRange,
			"founded":              parsed.Founded,
			"industry":             parsed.Industry,
			"naics":                parsed.NAICS,
			"sic":                  parsed.SIC,
			"locality":             parsed.Locality,
			"region":               parsed.Region,
			"country":              parsed.Country,
			"type":                 parsed.Type,
			"ticker":               parsed.Ticker,
			"linkedin_url":         parsed.LinkedInURL,
			"tags":                 capList(parsed.Tags, 15),
			"headline":             parsed.Headline,
			"summary":              parsed.Summary,
			"total_funding_raised": parsed.TotalFundingRaised,
			"latest_funding_stage": parsed.LatestFundingStage,
			"inferred_revenue":     parsed.InferredRevenue,
			"employee_growth_rate": parsed.EmployeeGrowthRate,
		},
	}
}

func (p *PDL) mockCompanyResponse(domain string) Response {
	count := 150
	return Response{
		Source:    SourcePDLCompany,
		Mock:      true,
		FetchedAt: time.Now().UTC(),
		Fields: map[string]any{
			"domain":         domain,
			"name":           "Company at " + domain,
			"industry":       "Technology",
			"size":           "51-200",
			"employee_count": &count,
			"country":        "United States",
			"type":           "private",
			"tags":           []string{"technology", "software", "enterprise"},
			"summary":        "A technology company operating at " + domain + ".",
		},
	}
}

// capList bounds a string list to at most n entries.
func capList(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// capExperience bounds the experience history to the most recent n positions.
func capExperience(items []map[string]any, n int) []map[string]any {
	if len(items) > n {
		return items[:n]
	}
	return items
}
