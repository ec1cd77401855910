// Package dashboard filters and groups brief items for the board views.
package dashboard

import (
	"slices"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/coreybb/boardroom/models"
)

// Apply returns the items matching every non-empty group of sel, in order.
// An empty selection matches everything. The input is not modified.
//
// Groups: category, region, priority and theme are set membership; the search
// term is a case-insensitive substring of title, headline, source or
// why_it_matters; the date range bounds whole elapsed days since publication.
// Items whose date cannot be parsed pass the date check.
func Apply(items []models.BriefItem, sel models.FilterSelection, now time.Time) []models.BriefItem {
	sel = sel.Normalize()
	out := make([]models.BriefItem, 0, len(items))
	for _, item := range items {
		if Matches(item, sel, now) {
			out = append(out, item)
		}
	}
	return out
}

// Matches reports whether one item satisfies sel. sel must already be normalized.
func Matches(item models.BriefItem, sel models.FilterSelection, now time.Time) bool {
	if len(sel.Categories) > 0 && !slices.Contains(sel.Categories, models.NormalizeCategory(item.Category)) {
		return false
	}
	if len(sel.Regions) > 0 && !slices.Contains(sel.Regions, regionID(item.Region)) {
		return false
	}
	if len(sel.Priorities) > 0 && !slices.Contains(sel.Priorities, string(models.NormalizePriority(string(item.Priority)))) {
		return false
	}
	if len(sel.Themes) > 0 && !slices.Contains(sel.Themes, themeName(item.Theme)) {
		return false
	}
	if sel.SearchTerm != "" && !matchesText(item, strings.ToLower(sel.SearchTerm)) {
		return false
	}
	if maxDays, ok := sel.DateRange.MaxAgeDays(); ok {
		if days, known := ElapsedDays(item.PublishedAt, now); known && days > maxDays {
			return false
		}
	}
	return true
}

// ElapsedDays returns the whole days between a publication date and now.
// known is false when the date is empty or unparseable.
func ElapsedDays(published string, now time.Time) (days int, known bool) {
	if strings.TrimSpace(published) == "" {
		return 0, false
	}
	t, err := dateparse.ParseIn(published, time.UTC)
	if err != nil {
		return 0, false
	}
	elapsed := now.Sub(t)
	if elapsed < 0 {
		return 0, true
	}
	return int(elapsed / (24 * time.Hour)), true
}

func matchesText(item models.BriefItem, term string) bool {
	for _, field := range []string{item.Title, item.Headline, item.Source, item.WhyItMatters} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// regionID accepts both ids and the display labels older clients post.
func regionID(region string) string {
	if id, ok := models.NormalizeRegion(region); ok {
		return id
	}
	return strings.ToLower(strings.TrimSpace(region))
}

func themeName(theme string) string {
	canonical, _ := models.NormalizeTheme(theme)
	return canonical
}
