package ingestion

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/coreybb/boardroom/models"
	"github.com/microcosm-cc/bluemonday"
)

// DefaultDescriptionLimit bounds descriptions, in runes, before they reach the LLM.
const DefaultDescriptionLimit = 500

// ContentProcessor normalizes provider text: feeds and the Guardian's trailText
// carry markup and entities that must not leak into prompts or the dashboard.
type ContentProcessor struct {
	stripTagsPolicy *bluemonday.Policy
	maxRunes        int
}

func NewContentProcessor(maxRunes int) *ContentProcessor {
	if maxRunes <= 0 {
		maxRunes = DefaultDescriptionLimit
	}
	return &ContentProcessor{
		stripTagsPolicy: bluemonday.StrictPolicy(),
		maxRunes:        maxRunes,
	}
}

// Clean strips HTML, decodes entities, collapses whitespace and truncates.
func (cp *ContentProcessor) Clean(s string) string {
	if s == "" {
		return ""
	}
	text := html.UnescapeString(cp.stripTagsPolicy.Sanitize(s))
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= cp.maxRunes {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:cp.maxRunes])) + "…"
}

// CleanArticle returns a with its title and description cleaned. Title is not truncated.
func (cp *ContentProcessor) CleanArticle(a models.Article) models.Article {
	a.Title = strings.Join(strings.Fields(html.UnescapeString(cp.stripTagsPolicy.Sanitize(a.Title))), " ")
	a.Description = cp.Clean(a.Description)
	a.Source = strings.TrimSpace(a.Source)
	a.URL = strings.TrimSpace(a.URL)
	return a
}
