package models

import (
	"slices"
	"strings"
)

// DateRange bounds how old an item may be on the board.
type DateRange string

const (
	DateRangeAll   DateRange = "all"
	DateRangeToday DateRange = "today"
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
)

// MaxAgeDays returns the largest elapsed-day count the range admits.
// ok is false for DateRangeAll, which admits everything.
func (d DateRange) MaxAgeDays() (days int, ok bool) {
	switch d {
	case DateRangeToday:
		return 0, true
	case DateRangeWeek:
		return 7, true
	case DateRangeMonth:
		return 30, true
	default:
		return 0, false
	}
}

// FilterGroup names a multi-select group in a FilterSelection.
type FilterGroup string

const (
	FilterGroupCategories FilterGroup = "categories"
	FilterGroupRegions    FilterGroup = "regions"
	FilterGroupPriorities FilterGroup = "priorities"
	FilterGroupThemes     FilterGroup = "themes"
)

// FilterSelection is the user's current filter state. The search and brief
// endpoints only read Categories, Regions and SearchTerm; the board uses all of it.
//
// Values are treated as immutable: the update helpers return a new selection.
type FilterSelection struct {
	Categories []string  `json:"categories"`
	Regions    []string  `json:"regions"`
	SearchTerm string    `json:"searchTerm"`
	Priorities []string  `json:"priorities,omitempty"`
	Themes     []string  `json:"themes,omitempty"`
	DateRange  DateRange `json:"dateRange,omitempty"`
}

// HasCategory reports whether the category id is selected.
func (f FilterSelection) HasCategory(id string) bool {
	return slices.Contains(f.Categories, id)
}

// HasRegion reports whether the region id is selected.
func (f FilterSelection) HasRegion(id string) bool {
	return slices.Contains(f.Regions, id)
}

// IsEmpty reports whether no predicate group is active.
func (f FilterSelection) IsEmpty() bool {
	_, dated := f.DateRange.MaxAgeDays()
	return len(f.Categories) == 0 && len(f.Regions) == 0 && len(f.Priorities) == 0 &&
		len(f.Themes) == 0 && strings.TrimSpace(f.SearchTerm) == "" && !dated
}

// Toggle adds value to the group if absent and removes it if present.
func (f FilterSelection) Toggle(group FilterGroup, value string) FilterSelection {
	next := f.clone()
	toggle := func(values []string) []string {
		if i := slices.Index(values, value); i >= 0 {
			return slices.Delete(values, i, i+1)
		}
		return append(values, value)
	}
	switch group {
	case FilterGroupCategories:
		next.Categories = toggle(next.Categories)
	case FilterGroupRegions:
		next.Regions = toggle(next.Regions)
	case FilterGroupPriorities:
		next.Priorities = toggle(next.Priorities)
	case FilterGroupThemes:
		next.Themes = toggle(next.Themes)
	}
	return next
}

// WithSearchTerm returns a copy with the free-text term replaced.
func (f FilterSelection) WithSearchTerm(term string) FilterSelection {
	next := f.clone()
	next.SearchTerm = term
	return next
}

// WithDateRange returns a copy with the date range replaced.
func (f FilterSelection) WithDateRange(d DateRange) FilterSelection {
	next := f.clone()
	next.DateRange = d
	return next
}

// Clear returns the empty selection.
func (f FilterSelection) Clear() FilterSelection {
	return FilterSelection{DateRange: DateRangeAll}
}

// Normalize trims values, lower-cases category and region ids, canonicalises
// priorities and themes, and drops duplicates and blanks.
func (f FilterSelection) Normalize() FilterSelection {
	out := FilterSelection{
		Categories: normalizeSet(f.Categories, strings.ToLower),
		Regions:    normalizeSet(f.Regions, strings.ToLower),
		SearchTerm: strings.TrimSpace(f.SearchTerm),
		Priorities: normalizeSet(f.Priorities, func(s string) string { return string(NormalizePriority(s)) }),
		Themes: normalizeSet(f.Themes, func(s string) string {
			t, _ := NormalizeTheme(s)
			return t
		}),
		DateRange: f.DateRange,
	}
	switch out.DateRange {
	case DateRangeToday, DateRangeWeek, DateRangeMonth:
	default:
		out.DateRange = DateRangeAll
	}
	return out
}

func (f FilterSelection) clone() FilterSelection {
	return FilterSelection{
		Categories: slices.Clone(f.Categories),
		Regions:    slices.Clone(f.Regions),
		SearchTerm: f.SearchTerm,
		Priorities: slices.Clone(f.Priorities),
		Themes:     slices.Clone(f.Themes),
		DateRange:  f.DateRange,
	}
}

func normalizeSet(values []string, canon func(string) string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		v = canon(v)
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
