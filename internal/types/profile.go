// Package types defines the shared data structures passed between enrichment,
// personalization, compliance, and storage.
package types

import "time"

// NormalizedProfile is the canonical merged view of a contact assembled from
// all provider responses. Optional numeric fields are pointers so that
// "absent" and "zero" stay distinguishable through JSON round trips.
type NormalizedProfile struct {
	Email  string `json:"email"`
	Domain string `json:"domain,omitempty"`

	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	FullName  string `json:"full_name,omitempty"`
	Title     string `json:"title,omitempty"`
	Seniority string `json:"seniority,omitempty"`

	LinkedInURL string   `json:"linkedin_url,omitempty"`
	City        string   `json:"city,omitempty"`
	State       string   `json:"state,omitempty"`
	Country     string   `json:"country,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Interests   []string `json:"interests,omitempty"`

	// Experience holds the most recent positions as reported by the person
	// lookup, passed through untyped because the upstream shape varies.
	Experience []map[string]any `json:"experience,omitempty"`

	CompanyName        string `json:"company_name,omitempty"`
	CompanyDisplayName string `json:"company_display_name,omitempty"`
	Industry           string `json:"industry,omitempty"`
	CompanySize        string `json:"company_size,omitempty"`
	CompanyDescription string `json:"company_description,omitempty"`
	CompanyType        string `json:"company_type,omitempty"`
	Ticker             string `json:"ticker,omitempty"`
	FoundedYear        *int   `json:"founded_year,omitempty"`

	// Industry classification codes from the deep company lookup, untyped
	// because the upstream returns code objects, not bare strings.
	NAICSCodes []map[string]any `json:"naics_codes,omitempty"`
	SICCodes   []map[string]any `json:"sic_codes,omitempty"`

	// EmployeeCount comes from the highest-priority source that supplied a
	// numeric count. When only textual ranges were available, the parsed
	// estimate is stored here and EmployeeCountEstimated is set.
	EmployeeCount          *int   `json:"employee_count,omitempty"`
	EmployeeCountRange     string `json:"employee_count_range,omitempty"`
	EmployeeCountEstimated bool   `json:"employee_count_estimated,omitempty"`

	// Deep company enrichment fields.
	CompanySummary     string   `json:"company_summary,omitempty"`
	CompanyHeadline    string   `json:"company_headline,omitempty"`
	CompanyTags        []string `json:"company_tags,omitempty"`
	CompanyLinkedIn    string   `json:"company_linkedin,omitempty"`
	TotalFunding       *float64 `json:"total_funding,omitempty"`
	LatestFundingStage string   `json:"latest_funding_stage,omitempty"`
	EmployeeGrowthRate *float64 `json:"employee_growth_rate,omitempty"`
	InferredRevenue    string   `json:"inferred_revenue,omitempty"`

	// Email verification signals from the verification source.
	EmailVerified    *bool `json:"email_verified,omitempty"`
	EmailDeliverable *bool `json:"email_deliverable,omitempty"`
	EmailScore       *int  `json:"email_score,omitempty"`

	CompanyNews *CompanyNews `json:"company_news,omitempty"`

	// DataSources lists every source that answered, mock responses included.
	DataSources      []string  `json:"data_sources"`
	DataQualityScore float64   `json:"data_quality_score"`
	ResolvedAt       time.Time `json:"resolved_at"`
}

// DisplayName returns the best available human name for prompt construction.
func (p *NormalizedProfile) DisplayName() string {
	if p.FirstName != "" {
		return p.FirstName
	}
	if p.FullName != "" {
		return p.FullName
	}
	return ""
}

// CompanyNews bundles the aggregated news signal for a company.
type CompanyNews struct {
	Context    string                   `json:"context,omitempty"`
	Articles   []NewsArticle            `json:"articles,omitempty"`
	ByCategory map[string][]NewsArticle `json:"news_by_category,omitempty"`
	Themes     []string                 `json:"themes,omitempty"`
	Sentiment  map[string]int           `json:"sentiment,omitempty"`
}

// NewsArticle is a single deduplicated article from the news provider.
type NewsArticle struct {
	Title       string `json:"title"`
	Content     string `json:"content,omitempty"`
	URL         string `json:"url,omitempty"`
	Source      string `json:"source,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	Category    string `json:"category,omitempty"`
}

// UserContext carries caller-supplied targeting hints. Any populated override
// wins over the corresponding enriched value during prompt construction.
type UserContext struct {
	Goal        string `json:"goal,omitempty"`
	Persona     string `json:"persona,omitempty"`
	Industry    string `json:"industry,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	CompanySize string `json:"company_size,omitempty"`
}
