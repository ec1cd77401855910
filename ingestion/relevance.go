package ingestion

import (
	"strings"

	"github.com/coreybb/boardroom/models"
)

// DefaultMaxArticles caps a search response when no limit is configured.
const DefaultMaxArticles = 20

// DeduplicateArticles keeps the first article seen for each URL. Articles
// without a URL are keyed by title instead.
func DeduplicateArticles(articles []models.Article) []models.Article {
	seen := make(map[string]struct{}, len(articles))
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		key := dedupKey(a)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}

func dedupKey(a models.Article) string {
	if a.URL != "" {
		return "url:" + a.URL
	}
	return "title:" + a.Title
}

// FilterRelevant keeps articles whose title or description contains at least
// one keyword (case-insensitive), preserving order, up to max results.
// A max of zero or less means no cap.
func FilterRelevant(articles []models.Article, keywords []string, max int) []models.Article {
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if max > 0 && len(out) >= max {
			break
		}
		if IsRelevant(a, keywords) {
			out = append(out, a)
		}
	}
	return out
}

// IsRelevant reports whether the article mentions any of the lower-cased keywords.
func IsRelevant(a models.Article, keywords []string) bool {
	text := strings.ToLower(a.Title + " " + a.Description)
	for _, k := range keywords {
		if k != "" && strings.Contains(text, k) {
			return true
		}
	}
	return false
}
