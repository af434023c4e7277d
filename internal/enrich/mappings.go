// Package enrich orchestrates the provider fan-out and merges the raw
// responses into a single normalized profile.
package enrich

import "github.com/jonathan/lead-enricher/internal/providers"

// sourcePriority ranks sources for conflict resolution. Higher wins. The deep
// company lookup is as trusted as ZoomInfo for company data.
var sourcePriority = map[string]int{
	providers.SourceApollo:     5,
	providers.SourceZoomInfo:   4,
	providers.SourcePDLCompany: 4,
	providers.SourcePDL:        3,
	providers.SourceHunter:     2,
	providers.SourceGNews:      1,
}

// candidate names one source field that can populate a canonical field.
type candidate struct {
	Source string
	Field  string
}

// fieldMapping binds a canonical profile field to its ordered source
// candidates. Order matters: when two candidates carry equal priority, the
// one declared first wins.
type fieldMapping struct {
	Field      string
	Candidates []candidate
}

// fieldMappings is the declarative merge table. Adding a source to a field is
// a one-line change here; no resolver code needs touching.
var fieldMappings = []fieldMapping{
	{"first_name", []candidate{
		{providers.SourceApollo, "first_name"},
		{providers.SourcePDL, "first_name"},
	}},
	{"last_name", []candidate{
		{providers.SourceApollo, "last_name"},
		{providers.SourcePDL, "last_name"},
	}},
	{"full_name", []candidate{
		{providers.SourcePDL, "full_name"},
	}},
	{"title", []candidate{
		{providers.SourceApollo, "title"},
		{providers.SourcePDL, "job_title"},
	}},
	{"company_name", []candidate{
		{providers.SourcePDLCompany, "name"},
		{providers.SourceApollo, "company_name"},
		{providers.SourceZoomInfo, "company_name"},
		{providers.SourcePDL, "job_company_name"},
	}},
	{"company_display_name", []candidate{
		{providers.SourcePDLCompany, "display_name"},
	}},
	{"industry", []candidate{
		{providers.SourcePDLCompany, "industry"},
		{providers.SourceApollo, "industry"},
		{providers.SourceZoomInfo, "industry"},
		{providers.SourcePDL, "job_company_industry"},
	}},
	{"company_size", []candidate{
		{providers.SourcePDLCompany, "size"},
		{providers.SourceApollo, "company_size"},
		{providers.SourcePDL, "job_company_size"},
	}},
	{"employee_count", []candidate{
		{providers.SourcePDLCompany, "employee_count"},
		{providers.SourceZoomInfo, "employee_count"},
	}},
	{"employee_count_range", []candidate{
		{providers.SourcePDLCompany, "employee_count_range"},
	}},
	{"linkedin_url", []candidate{
		{providers.SourceApollo, "linkedin_url"},
		{providers.SourcePDL, "linkedin_url"},
	}},
	{"city", []candidate{
		{providers.SourcePDLCompany, "locality"},
		{providers.SourceApollo, "city"},
		{providers.SourceZoomInfo, "city"},
		{providers.SourcePDL, "location_locality"},
	}},
	{"state", []candidate{
		{providers.SourcePDLCompany, "region"},
		{providers.SourceApollo, "state"},
		{providers.SourceZoomInfo, "state"},
		{providers.SourcePDL, "location_region"},
	}},
	{"country", []candidate{
		{providers.SourcePDLCompany, "country"},
		{providers.SourceApollo, "country"},
		{providers.SourceZoomInfo, "country"},
		{providers.SourcePDL, "location_country"},
	}},
	{"seniority", []candidate{
		{providers.SourceApollo, "seniority"},
	}},
	{"skills", []candidate{
		{providers.SourcePDL, "skills"},
	}},
	{"interests", []candidate{
		{providers.SourcePDL, "interests"},
	}},
	{"experience", []candidate{
		{providers.SourcePDL, "experience"},
	}},
	{"company_description", []candidate{
		{providers.SourcePDLCompany, "summary"},
		{providers.SourceZoomInfo, "description"},
	}},
	{"founded_year", []candidate{
		{providers.SourcePDLCompany, "founded"},
		{providers.SourceZoomInfo, "founded_year"},
	}},
	{"company_type", []candidate{
		{providers.SourcePDLCompany, "type"},
	}},
	{"ticker", []candidate{
		{providers.SourcePDLCompany, "ticker"},
	}},
	{"naics_codes", []candidate{
		{providers.SourcePDLCompany, "naics"},
	}},
	{"sic_codes", []candidate{
		{providers.SourcePDLCompany, "sic"},
	}},
}
