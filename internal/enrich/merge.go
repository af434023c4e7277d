package enrich

import (
	"github.com/jonathan/lead-enricher/internal/providers"
	"github.com/jonathan/lead-enricher/internal/types"
)

// merger resolves canonical fields across raw provider responses.
type merger struct {
	raw map[string]providers.Response
}

// resolve returns the winning value for a canonical field, or nil. Candidates
// from failed responses are skipped; mock responses compete at priority zero
// so any real value beats them. Equal priorities fall back to declaration
// order in the mapping table.
func (m merger) resolve(field string) any {
	var mapping *fieldMapping
	for i := range fieldMappings {
		if fieldMappings[i].Field == field {
			mapping = &fieldMappings[i]
			break
		}
	}
	if mapping == nil {
		return nil
	}

	var best any
	bestPriority := -1
	for _, c := range mapping.Candidates {
		resp, ok := m.raw[c.Source]
		if !ok || !resp.OK() {
			continue
		}
		value, ok := resp.Fields[c.Field]
		if !ok || !present(value) {
			continue
		}

		priority := sourcePriority[c.Source]
		if resp.Mock {
			priority = 0
		}
		if priority > bestPriority {
			best = value
			bestPriority = priority
		}
	}
	return best
}

func (m merger) str(field string) string {
	if s, ok := m.resolve(field).(string); ok {
		return s
	}
	return ""
}

func (m merger) strSlice(field string) []string {
	switch v := m.resolve(field).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func (m merger) mapSlice(field string) []map[string]any {
	switch v := m.resolve(field).(type) {
	case []map[string]any:
		return v
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if entry, ok := item.(map[string]any); ok {
				out = append(out, entry)
			}
		}
		return out
	}
	return nil
}

func (m merger) intPtr(field string) *int {
	switch v := m.resolve(field).(type) {
	case *int:
		return v
	case int:
		return &v
	case float64:
		n := int(v)
		return &n
	}
	return nil
}

// present reports whether a raw field value carries data worth merging.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case []string:
		return len(t) > 0
	case []any:
		return len(t) > 0
	case []map[string]any:
		return len(t) > 0
	case *int:
		return t != nil
	case *float64:
		return t != nil
	}
	return true
}

// buildProfile merges all raw responses into the normalized profile. Source
// bookkeeping (data_sources, quality score) is added by the orchestrator.
func buildProfile(email, domain string, raw map[string]providers.Response) *types.NormalizedProfile {
	m := merger{raw: raw}

	p := &types.NormalizedProfile{
		Email:  email,
		Domain: domain,

		FirstName: m.str("first_name"),
		LastName:  m.str("last_name"),
		FullName:  m.str("full_name"),
		Title:     m.str("title"),
		Seniority: m.str("seniority"),

		LinkedInURL: m.str("linkedin_url"),
		City:        m.str("city"),
		State:       m.str("state"),
		Country:     m.str("country"),
		Skills:      m.strSlice("skills"),
		Interests:   m.strSlice("interests"),
		Experience:  m.mapSlice("experience"),

		CompanyName:        m.str("company_name"),
		CompanyDisplayName: m.str("company_display_name"),
		Industry:           m.str("industry"),
		CompanySize:        m.str("company_size"),
		CompanyDescription: m.str("company_description"),
		CompanyType:        m.str("company_type"),
		Ticker:             m.str("ticker"),
		FoundedYear:        m.intPtr("founded_year"),
		NAICSCodes:         m.mapSlice("naics_codes"),
		SICCodes:           m.mapSlice("sic_codes"),

		EmployeeCount:      m.intPtr("employee_count"),
		EmployeeCountRange: m.str("employee_count_range"),
	}

	applyVerification(p, raw)
	applyNews(p, raw)
	applyDeepCompany(p, raw)
	estimateEmployeeCount(p)

	return p
}

// applyVerification attaches the email verification signals from Hunter.
func applyVerification(p *types.NormalizedProfile, raw map[string]providers.Response) {
	resp, ok := raw[providers.SourceHunter]
	if !ok || !resp.OK() {
		return
	}

	verified := resp.Str("status") == "valid"
	deliverable := resp.Str("result") == "deliverable"
	p.EmailVerified = &verified
	p.EmailDeliverable = &deliverable

	if score, ok := resp.Fields["score"].(int); ok {
		p.EmailScore = &score
	} else if score, ok := resp.Fields["score"].(float64); ok {
		n := int(score)
		p.EmailScore = &n
	}
}

// applyNews attaches the aggregated news bundle from GNews.
func applyNews(p *types.NormalizedProfile, raw map[string]providers.Response) {
	resp, ok := raw[providers.SourceGNews]
	if !ok || !resp.OK() {
		return
	}

	news := &types.CompanyNews{Context: resp.Str("answer")}

	if articles, ok := resp.Fields["results"].([]providers.Article); ok {
		for _, a := range articles {
			news.Articles = append(news.Articles, types.NewsArticle{
				Title:       a.Title,
				Content:     a.Content,
				URL:         a.URL,
				Source:      a.Source,
				PublishedAt: a.PublishedAt,
				Category:    a.QueryCategory,
			})
		}
	}
	if categorized, ok := resp.Fields["categorized"].(map[string][]providers.Article); ok && len(categorized) > 0 {
		news.ByCategory = make(map[string][]types.NewsArticle, len(categorized))
		for category, articles := range categorized {
			for _, a := range articles {
				news.ByCategory[category] = append(news.ByCategory[category], types.NewsArticle{
					Title:       a.Title,
					Content:     a.Content,
					URL:         a.URL,
					Source:      a.Source,
					PublishedAt: a.PublishedAt,
					Category:    a.QueryCategory,
				})
			}
		}
	}
	if themes, ok := resp.Fields["themes"].([]string); ok {
		news.Themes = themes
	}
	if sentiment, ok := resp.Fields["sentiment_indicators"].(map[string]int); ok {
		news.Sentiment = sentiment
	}

	p.CompanyNews = news
}

// applyDeepCompany attaches fields only the deep company lookup can supply.
func applyDeepCompany(p *types.NormalizedProfile, raw map[string]providers.Response) {
	resp, ok := raw[providers.SourcePDLCompany]
	if !ok || !resp.OK() {
		return
	}

	p.CompanySummary = resp.Str("summary")
	p.CompanyHeadline = resp.Str("headline")
	p.CompanyLinkedIn = resp.Str("linkedin_url")
	p.LatestFundingStage = resp.Str("latest_funding_stage")
	p.InferredRevenue = resp.Str("inferred_revenue")

	if tags, ok := resp.Fields["tags"].([]string); ok {
		p.CompanyTags = tags
	}
	if funding, ok := resp.Fields["total_funding_raised"].(*float64); ok {
		p.TotalFunding = funding
	}
	if rate, ok := resp.Fields["employee_growth_rate"].(*float64); ok {
		p.EmployeeGrowthRate = rate
	}
}

// estimateEmployeeCount fills in a numeric employee count from textual range
// fields when no source provided one directly. The estimate flag lets
// downstream consumers distinguish reported from derived counts.
func estimateEmployeeCount(p *types.NormalizedProfile) {
	if p.EmployeeCount != nil {
		return
	}

	for _, rangeStr := range []string{p.EmployeeCountRange, p.CompanySize} {
		if rangeStr == "" {
			continue
		}
		if estimated, ok := ParseEmployeeRange(rangeStr); ok {
			p.EmployeeCount = &estimated
			p.EmployeeCountEstimated = true
			return
		}
	}
}
