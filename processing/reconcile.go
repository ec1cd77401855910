package processing

import (
	"strings"
	"time"

	"github.com/coreybb/boardroom/models"
)

// PlaceholderWhyItMatters is the analysis text of synthesized items.
const PlaceholderWhyItMatters = "Requires board attention for strategic positioning and competitive advantage"

// Placeholder builds the stand-in summary for an input the model did not cover.
func Placeholder(in models.BriefRequestItem, now time.Time) models.BriefItem {
	return models.BriefItem{
		Title:        in.Title,
		Source:       in.Source,
		Link:         in.Link,
		Theme:        models.ThemeGeneralNews,
		Priority:     models.PriorityMedium,
		WhyItMatters: PlaceholderWhyItMatters,
		Region:       models.RegionItaly,
		Category:     models.CategoryGeneral,
		PublishedAt:  publishedAt(in.Date, "", now),
	}
}

// Reconcile pairs model output with the inputs it summarizes.
//
// A returned item claims the first unclaimed input with the same title, then
// the same link, then a case-insensitive title. Unclaimed and duplicate
// returns are dropped. Inputs left without a summary get a Placeholder.
// The result has exactly one item per input, in input order, and each item
// carries its input's title, link and source; the model's own title is kept
// as Headline. The second result counts synthesized placeholders.
func Reconcile(inputs []models.BriefRequestItem, returned []models.BriefItem, now time.Time) ([]models.BriefItem, int) {
	matched := make([]*models.BriefItem, len(inputs))

	byTitle := make(map[string][]int)
	byLink := make(map[string][]int)
	byFoldedTitle := make(map[string][]int)
	for i, in := range inputs {
		byTitle[strings.TrimSpace(in.Title)] = append(byTitle[strings.TrimSpace(in.Title)], i)
		if link := strings.TrimSpace(in.Link); link != "" {
			byLink[link] = append(byLink[link], i)
		}
		folded := strings.ToLower(strings.TrimSpace(in.Title))
		byFoldedTitle[folded] = append(byFoldedTitle[folded], i)
	}

	claim := func(candidates []int) int {
		for _, i := range candidates {
			if matched[i] == nil {
				return i
			}
		}
		return -1
	}

	for _, r := range returned {
		idx := claim(byTitle[strings.TrimSpace(r.Title)])
		if idx < 0 && strings.TrimSpace(r.Link) != "" {
			idx = claim(byLink[strings.TrimSpace(r.Link)])
		}
		if idx < 0 {
			idx = claim(byFoldedTitle[strings.ToLower(strings.TrimSpace(r.Title))])
		}
		if idx < 0 {
			continue
		}
		item := normalize(inputs[idx], r, now)
		matched[idx] = &item
	}

	out := make([]models.BriefItem, len(inputs))
	placeholders := 0
	for i, in := range inputs {
		if matched[i] != nil {
			out[i] = *matched[i]
			continue
		}
		out[i] = Placeholder(in, now)
		placeholders++
	}
	return out, placeholders
}

func normalize(in models.BriefRequestItem, r models.BriefItem, now time.Time) models.BriefItem {
	item := models.BriefItem{
		Title:        in.Title,
		Source:       firstNonEmpty(in.Source, r.Source),
		Link:         firstNonEmpty(in.Link, r.Link),
		Priority:     models.NormalizePriority(string(r.Priority)),
		WhyItMatters: firstNonEmpty(strings.TrimSpace(r.WhyItMatters), PlaceholderWhyItMatters),
		Category:     models.NormalizeCategory(r.Category),
		PublishedAt:  publishedAt(in.Date, r.PublishedAt, now),
	}
	if headline := strings.TrimSpace(r.Title); headline != "" && headline != in.Title {
		item.Headline = headline
	}
	if theme, ok := models.NormalizeTheme(r.Theme); ok {
		item.Theme = theme
	} else {
		item.Theme = models.ThemeGeneralNews
	}
	if region, ok := models.NormalizeRegion(r.Region); ok {
		item.Region = region
	} else {
		item.Region = models.RegionItaly
	}
	return item
}

func publishedAt(inputDate, returned string, now time.Time) string {
	if d := strings.TrimSpace(inputDate); d != "" {
		return d
	}
	if d := strings.TrimSpace(returned); d != "" {
		return d
	}
	return now.UTC().Format(time.RFC3339)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
