package enrich

import "github.com/jonathan/lead-enricher/internal/providers"

// totalSources is the fan-out width: the five standard providers plus the
// deep company lookup.
const totalSources = 6

// qualityScore rates how complete the enrichment was, between 0.0 and 1.0.
// Mock responses keep the pipeline flowing but contribute nothing here.
func qualityScore(raw map[string]providers.Response) float64 {
	successful := 0
	for _, resp := range raw {
		if resp.OK() && !resp.Mock {
			successful++
		}
	}
	score := float64(successful) / float64(totalSources)

	// High-priority sources are worth extra.
	for _, source := range []string{providers.SourceApollo, providers.SourceZoomInfo, providers.SourcePDLCompany} {
		if resp, ok := raw[source]; ok && resp.OK() && !resp.Mock {
			score += 0.1
		}
	}

	// Rich news coverage is worth extra.
	if resp, ok := raw[providers.SourceGNews]; ok && resp.OK() && !resp.Mock {
		if count, ok := resp.Fields["result_count"].(int); ok && count >= 5 {
			score += 0.05
		}
		if themes, ok := resp.Fields["themes"].([]string); ok && len(themes) > 0 {
			score += 0.05
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}
