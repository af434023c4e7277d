package providers

import (
	"context"
	"log"
	"time"
)

const zoominfoBaseURL = "https://api.zoominfo.com"

// ZoomInfo is the ZoomInfo company enrichment client.
type ZoomInfo struct {
	apiKey  string
	baseURL string
}

// NewZoomInfo creates a ZoomInfo client. An empty key switches it to mock mode.
func NewZoomInfo(apiKey string) *ZoomInfo {
	if apiKey == "" {
		log.Printf("[ZOOMINFO] API key not configured, using mock data")
	}
	return &ZoomInfo{apiKey: apiKey, baseURL: zoominfoBaseURL}
}

// SourceName returns the provider identifier.
func (z *ZoomInfo) SourceName() string { return SourceZoomInfo }

type zoominfoCompanyResponse struct {
	Data []struct {
		Name          string   `json:"name"`
		Website       string   `json:"website"`
		Industry      string   `json:"industry"`
		SubIndustry   string   `json:"subIndustry"`
		EmployeeCount *int     `json:"employeeCount"`
		Revenue       string   `json:"revenue"`
		City          string   `json:"city"`
		State         string   `json:"state"`
		Country       string   `json:"country"`
		Description   string   `json:"description"`
		FoundedYear   *int     `json:"foundedYear"`
		TechStackIDs  []string `json:"techStackIds"`
	} `json:"data"`
}

// Enrich looks up a company by website domain.
func (z *ZoomInfo) Enrich(ctx context.Context, email, domain string) Response {
	if z.apiKey == "" {
		return z.mockResponse(email, domain)
	}

	if domain == "" {
		_, domain = splitEmail(email)
	}

	var parsed zoominfoCompanyResponse
	apiErr := doJSON(ctx, SourceZoomInfo, "POST", z.baseURL+"/search/company", requestOptions{
		Headers: map[string]string{"Authorization": "Bearer " + z.apiKey},
		Body: map[string]any{
			"matchCompanyInput": []map[string]string{{"companyWebsite": domain}},
			"outputFields": []string{
				"id", "name", "website", "industry", "subIndustry",
				"employeeCount", "revenue", "city", "state", "country",
				"description", "foundedYear", "techStackIds",
			},
		},
	}, &parsed)
	if apiErr != nil {
		log.Printf("[ZOOMINFO] enrich failed for %s: %v", domain, apiErr)
		return Response{Source: SourceZoomInfo, FetchedAt: time.Now().UTC(), Err: apiErr}
	}

	fields := map[string]any{"domain": domain}
	if len(parsed.Data) > 0 {
		c := parsed.Data[0]
		fields["company_name"] = c.Name
		fields["website"] = c.Website
		fields["industry"] = c.Industry
		fields["sub_industry"] = c.SubIndustry
		fields["employee_count"] = c.EmployeeCount
		fields["revenue"] = c.Revenue
		fields["city"] = c.City
		fields["state"] = c.State
		fields["country"] = c.Country
		fields["description"] = c.Description
		fields["founded_year"] = c.FoundedYear
		fields["tech_stack"] = c.TechStackIDs
	}

	return Response{Source: SourceZoomInfo, FetchedAt: time.Now().UTC(), Fields: fields}
}

func (z *ZoomInfo) mockResponse(email, domain string) Response {
	if domain == "" {
		_, domain = splitEmail(email)
	}
	count := 100
	return Response{
		Source:    SourceZoomInfo,
		Mock:      true,
		FetchedAt: time.Now().UTC(),
		Fields: map[string]any{
			"domain":         domain,
			"company_name":   "Company at " + domain,
			"industry":       "Technology",
			"employee_count": &count,
			"country":        "United States",
		},
	}
}
