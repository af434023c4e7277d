package providers

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"
)

const gnewsBaseURL = "https://gnews.io/api/v4"

// maxReturnedArticles caps the deduplicated article list carried downstream.
const maxReturnedArticles = 10

// newsCategories maps each search query index to its category label.
var newsCategories = []string{"general", "ai_technology", "innovation", "leadership", "growth"}

// themeKeywords drives theme extraction from article titles and content.
var themeKeywords = map[string][]string{
	"AI adoption":            {"ai", "artificial intelligence", "machine learning", "ml"},
	"Cloud transformation":   {"cloud", "aws", "azure", "gcp", "saas"},
	"Digital transformation": {"digital", "transformation", "modernization"},
	"Data strategy":          {"data", "analytics", "insights", "big data"},
	"Growth & expansion":     {"growth", "expansion", "revenue", "market"},
	"Partnership":            {"partnership", "collaboration", "joint venture"},
	"Innovation":             {"innovation", "r&d", "research", "breakthrough"},
	"Sustainability":         {"sustainability", "esg", "green", "carbon"},
	"Security":               {"security", "cybersecurity", "privacy", "compliance"},
	"Workforce":              {"hiring", "workforce", "talent", "employees"},
}

// Sentiment keyword lists for the coarse tone counters.
var (
	positiveWords = []string{"growth", "success", "expansion", "innovation", "award", "leading", "record"}
	negativeWords = []string{"layoff", "decline", "lawsuit", "investigation", "loss", "struggling"}
	neutralWords  = []string{"announce", "report", "update", "release", "partner"}
)

// Article is a single news result from one of the search queries.
type Article struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Content       string `json:"content,omitempty"`
	FullContent   string `json:"full_content,omitempty"`
	PublishedAt   string `json:"published_at,omitempty"`
	Source        string `json:"source,omitempty"`
	SourceURL     string `json:"source_url,omitempty"`
	Image         string `json:"image,omitempty"`
	QueryCategory string `json:"query_category"`
}

// GNews aggregates company news from multiple angled search queries.
type GNews struct {
	apiKey  string
	baseURL string
}

// NewGNews creates a GNews client. An empty key switches it to mock mode.
func NewGNews(apiKey string) *GNews {
	if apiKey == "" {
		log.Printf("[GNEWS] API key not configured, using mock data")
	}
	return &GNews{apiKey: apiKey, baseURL: gnewsBaseURL}
}

// SourceName returns the provider identifier.
func (g *GNews) SourceName() string { return SourceGNews }

type gnewsSearchResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		URL         string `json:"url"`
		Image       string `json:"image"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"source"`
	} `json:"articles"`
}

// Enrich runs the multi-query news search for the company behind the domain.
// Individual query failures are logged and skipped; the call only fails when
// every query fails.
func (g *GNews) Enrich(ctx context.Context, email, domain string) Response {
	if g.apiKey == "" {
		return g.mockResponse(email, domain)
	}

	if domain == "" {
		_, domain = splitEmail(email)
	}
	companyName := companyNameFromDomain(domain)

	queries := []string{
		fmt.Sprintf("%q", companyName), // exact company name match
		companyName + " AI artificial intelligence",
		companyName + " technology innovation",
		companyName + " strategy leadership CEO",
		companyName + " expansion growth partnership",
	}

	results := make([][]Article, len(queries))
	errs := make([]*Error, len(queries))

	var wg sync.WaitGroup
	for i, query := range queries {
		wg.Add(1)
		go func(idx int, q string) {
			defer wg.Done()
			results[idx], errs[idx] = g.search(ctx, q, categoryForQuery(idx))
		}(i, query)
	}
	wg.Wait()

	var all []Article
	failed := 0
	for i, articles := range results {
		if errs[i] != nil {
			log.Printf("[GNEWS] query %d failed: %v", i, errs[i])
			failed++
			continue
		}
		all = append(all, articles...)
	}
	if failed == len(queries) {
		return Response{Source: SourceGNews, FetchedAt: time.Now().UTC(), Err: errs[0]}
	}

	unique := dedupeByURL(all)
	top := unique
	if len(top) > maxReturnedArticles {
		top = top[:maxReturnedArticles]
	}

	return Response{
		Source:    SourceGNews,
		FetchedAt: time.Now().UTC(),
		Fields: map[string]any{
			"domain":               domain,
			"company_name":         companyName,
			"answer":               buildNewsSummary(companyName, unique),
			"results":              top,
			"categorized":          categorizeArticles(unique),
			"result_count":         len(unique),
			"themes":               extractThemes(unique),
			"sentiment_indicators": analyzeSentiment(unique),
		},
	}
}

// search executes a single GNews query.
func (g *GNews) search(ctx context.Context, query, category string) ([]Article, *Error) {
	var parsed gnewsSearchResponse
	apiErr := doJSON(ctx, SourceGNews, "GET", g.baseURL+"/search", requestOptions{
		Timeout: DeepTimeout,
		Query: url.Values{
			"token":  {g.apiKey},
			"q":      {query},
			"lang":   {"en"},
			"max":    {"5"},
			"sortby": {"relevance"},
		},
	}, &parsed)
	if apiErr != nil {
		return nil, apiErr
	}

	articles := make([]Article, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		articles = append(articles, Article{
			Title:         a.Title,
			URL:           a.URL,
			Content:       clip(a.Description, 800),
			FullContent:   clip(a.Content, 1500),
			PublishedAt:   a.PublishedAt,
			Source:        a.Source.Name,
			SourceURL:     a.Source.URL,
			Image:         a.Image,
			QueryCategory: category,
		})
	}
	return articles, nil
}

func (g *GNews) mockResponse(email, domain string) Response {
	if domain == "" {
		_, domain = splitEmail(email)
	}
	companyName := companyNameFromDomain(domain)
	display := titleCase(companyName)
	now := time.Now().UTC().Format(time.RFC3339)

	return Response{
		Source:    SourceGNews,
		Mock:      true,
		FetchedAt: time.Now().UTC(),
		Fields: map[string]any{
			"domain":       domain,
			"company_name": companyName,
			"answer":       display + " is an innovative company focused on digital transformation and technology solutions.",
			"results": []Article{
				{
					Title:         display + " announces new AI initiative",
					Content:       display + " is investing in artificial intelligence to improve customer experiences.",
					PublishedAt:   now,
					Source:        "Tech News Daily",
					QueryCategory: "ai_technology",
				},
				{
					Title:         display + " reports strong Q4 growth",
					Content:       "The company exceeded analyst expectations with double-digit revenue growth.",
					PublishedAt:   now,
					Source:        "Business Wire",
					QueryCategory: "growth",
				},
			},
			"categorized":          map[string][]Article{},
			"result_count":         2,
			"themes":               []string{"AI adoption", "Growth & expansion"},
			"sentiment_indicators": map[string]int{"positive": 3, "negative": 0, "neutral": 1},
		},
	}
}

// categoryForQuery maps a query index to its category label.
func categoryForQuery(idx int) string {
	if idx < len(newsCategories) {
		return newsCategories[idx]
	}
	return "other"
}

// dedupeByURL keeps the first occurrence of each article URL, preserving
// query order so higher-signal queries win ties.
func dedupeByURL(articles []Article) []Article {
	seen := make(map[string]bool, len(articles))
	var unique []Article
	for _, a := range articles {
		if a.URL == "" || seen[a.URL] {
			continue
		}
		seen[a.URL] = true
		unique = append(unique, a)
	}
	return unique
}

// buildNewsSummary assembles a compact one-line digest grouped by category.
func buildNewsSummary(companyName string, articles []Article) string {
	if len(articles) == 0 {
		return "No recent news found for " + companyName + "."
	}

	byCategory := make(map[string][]string)
	for _, a := range articles {
		byCategory[a.QueryCategory] = append(byCategory[a.QueryCategory], a.Title)
	}

	parts := []string{"Recent news coverage for " + companyName + ":"}
	labels := []struct{ key, label string }{
		{"general", "General"},
		{"ai_technology", "AI/Tech"},
		{"leadership", "Leadership"},
		{"growth", "Growth"},
	}
	for _, l := range labels {
		if titles := byCategory[l.key]; len(titles) > 0 {
			if len(titles) > 2 {
				titles = titles[:2]
			}
			parts = append(parts, l.label+": "+strings.Join(titles, "; "))
		}
	}
	return strings.Join(parts, " | ")
}

// categorizeArticles buckets articles by their originating query category.
func categorizeArticles(articles []Article) map[string][]Article {
	categorized := map[string][]Article{
		"ai_technology": {},
		"leadership":    {},
		"growth":        {},
		"general":       {},
	}
	for _, a := range articles {
		if _, ok := categorized[a.QueryCategory]; ok {
			categorized[a.QueryCategory] = append(categorized[a.QueryCategory], a)
		} else {
			categorized["general"] = append(categorized["general"], a)
		}
	}
	return categorized
}

// extractThemes scans titles and content for the theme keyword table and
// returns up to five matched themes.
func extractThemes(articles []Article) []string {
	combined := combinedText(articles)

	var themes []string
	for theme, keywords := range themeKeywords {
		for _, kw := range keywords {
			if strings.Contains(combined, kw) {
				themes = append(themes, theme)
				break
			}
		}
	}
	if len(themes) > 5 {
		themes = themes[:5]
	}
	return themes
}

// analyzeSentiment counts coarse tone keywords across all articles.
func analyzeSentiment(articles []Article) map[string]int {
	combined := combinedText(articles)
	count := func(words []string) int {
		n := 0
		for _, w := range words {
			if strings.Contains(combined, w) {
				n++
			}
		}
		return n
	}
	return map[string]int{
		"positive": count(positiveWords),
		"negative": count(negativeWords),
		"neutral":  count(neutralWords),
	}
}

func combinedText(articles []Article) string {
	var sb strings.Builder
	for _, a := range articles {
		sb.WriteString(strings.ToLower(a.Title))
		sb.WriteString(" ")
		sb.WriteString(strings.ToLower(a.Content))
		sb.WriteString(" ")
	}
	return sb.String()
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
