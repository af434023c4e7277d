package providers

import (
	"context"
	"log"
	"time"
)

// apolloBaseURL is the production Apollo.io endpoint. Overridable in tests.
const apolloBaseURL = "https://api.apollo.io/v1"

// Apollo is the Apollo.io people-match client. It is the highest-priority
// person data source.
type Apollo struct {
	apiKey  string
	baseURL string
}

// NewApollo creates an Apollo client. An empty key switches it to mock mode.
func NewApollo(apiKey string) *Apollo {
	if apiKey == "" {
		log.Printf("[APOLLO] API key not configured, using mock data")
	}
	return &Apollo{apiKey: apiKey, baseURL: apolloBaseURL}
}

// SourceName returns the provider identifier.
func (a *Apollo) SourceName() string { return SourceApollo }

type apolloMatchResponse struct {
	Person struct {
		FirstName    string   `json:"first_name"`
		LastName     string   `json:"last_name"`
		Title        string   `json:"title"`
		Seniority    string   `json:"seniority"`
		LinkedInURL  string   `json:"linkedin_url"`
		City         string   `json:"city"`
		State        string   `json:"state"`
		Country      string   `json:"country"`
		Departments  []string `json:"departments"`
		Organization struct {
			Name              string `json:"name"`
			PrimaryDomain     string `json:"primary_domain"`
			Industry          string `json:"industry"`
			EstimatedNumEmpls int    `json:"estimated_num_employees"`
		} `json:"organization"`
	} `json:"person"`
}

// Enrich looks up a person by email via the people-match endpoint.
func (a *Apollo) Enrich(ctx context.Context, email, domain string) Response {
	if a.apiKey == "" {
		return a.mockResponse(email, domain)
	}

	var parsed apolloMatchResponse
	apiErr := doJSON(ctx, SourceApollo, "POST", a.baseURL+"/people/match", requestOptions{
		Headers: map[string]string{"X-Api-Key": a.apiKey},
		Body: map[string]any{
			"email":                  email,
			"reveal_personal_emails": false,
			"reveal_phone_number":    false, // never request phone numbers
		},
	}, &parsed)
	if apiErr != nil {
		log.Printf("[APOLLO] enrich failed for %s: %v", email, apiErr)
		return Response{Source: SourceApollo, FetchedAt: time.Now().UTC(), Err: apiErr}
	}

	p := parsed.Person
	return Response{
		Source:    SourceApollo,
		FetchedAt: time.Now().UTC(),
		Fields: map[string]any{
			"email":        email,
			"first_name":   p.FirstName,
			"last_name":    p.LastName,
			"title":        p.Title,
			"seniority":    p.Seniority,
			"linkedin_url": p.LinkedInURL,
			"city":         p.City,
			"state":        p.State,
			"country":      p.Country,
			"departments":  p.Departments,
			"company_name": p.Organization.Name,
			"domain":       p.Organization.PrimaryDomain,
			"industry":     p.Organization.Industry,
			"company_size": mapEmployeeCountToRange(p.Organization.EstimatedNumEmpls),
		},
	}
}

// mockResponse returns deterministic data derived from the email address.
func (a *Apollo) mockResponse(email, domain string) Response {
	username, emailDomain := splitEmail(email)
	if domain == "" {
		domain = emailDomain
	}

	return Response{
		Source:    SourceApollo,
		Mock:      true,
		FetchedAt: time.Now().UTC(),
		Fields: map[string]any{
			"email":        email,
			"first_name":   mockFirstName(username),
			"last_name":    mockLastName(username),
			"title":        "Professional",
			"linkedin_url": "https://linkedin.com/in/" + username,
			"company_name": "Company at " + domain,
			"domain":       domain,
			"industry":     "Technology",
			"company_size": "50-200",
			"country":      "US",
		},
	}
}

// mapEmployeeCountToRange buckets a numeric employee count into the textual
// size ranges used elsewhere in the merge tables.
func mapEmployeeCountToRange(count int) string {
	switch {
	case count <= 0:
		return "Unknown"
	case count < 10:
		return "1-10"
	case count < 50:
		return "11-50"
	case count < 200:
		return "50-200"
	case count < 500:
		return "200-500"
	case count < 1000:
		return "500-1000"
	default:
		return "1000+"
	}
}
