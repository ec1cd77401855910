package ingestion

import (
	"strings"

	"github.com/coreybb/boardroom/models"
)

// BuildQueries expands a filter selection into provider search strings.
//
// Order: each selected category's family, each selected region's family, one
// combined "<category> <region>" query per pair, then the free-text term.
// With nothing selected the catalog's base terms are used. Duplicates are dropped.
func (c *QueryCatalog) BuildQueries(sel models.FilterSelection) []string {
	var queries []string

	for _, id := range sel.Categories {
		queries = append(queries, c.Categories[id].Queries...)
	}
	for _, id := range sel.Regions {
		queries = append(queries, c.Regions[id].Queries...)
	}
	for _, cat := range sel.Categories {
		if _, ok := c.Categories[cat]; !ok {
			continue
		}
		for _, reg := range sel.Regions {
			if _, ok := c.Regions[reg]; !ok {
				continue
			}
			queries = append(queries, combinedQuery(cat, reg))
		}
	}
	if term := strings.TrimSpace(sel.SearchTerm); term != "" {
		queries = append(queries, term)
	}

	if len(queries) == 0 {
		queries = append(queries, c.BaseTerms...)
	}
	return dedupeStrings(queries)
}

// combinedQuery pairs a category with a region in plain search words,
// e.g. "supply chain food industry Italy".
func combinedQuery(category, region string) string {
	topic := strings.ReplaceAll(category, "-", " ")
	return topic + " food industry " + models.RegionName(region)
}

// RelevanceKeywords returns the lower-cased keywords an article must mention at
// least one of: the base keywords plus those of every selected category and region.
func (c *QueryCatalog) RelevanceKeywords(sel models.FilterSelection) []string {
	keywords := append([]string(nil), c.BaseKeywords...)
	for _, id := range sel.Categories {
		keywords = append(keywords, c.Categories[id].Keywords...)
	}
	for _, id := range sel.Regions {
		keywords = append(keywords, c.Regions[id].Keywords...)
	}
	if term := strings.ToLower(strings.TrimSpace(sel.SearchTerm)); term != "" {
		keywords = append(keywords, term)
	}
	return dedupeStrings(keywords)
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
