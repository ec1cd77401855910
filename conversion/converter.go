// Package conversion turns free-form model output into brief items.
package conversion

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coreybb/boardroom/models"
)

// ParseTier records which step of the fallback chain produced the result.
type ParseTier string

const (
	// TierStrict: the whole reply was a JSON object.
	TierStrict ParseTier = "strict"
	// TierRecovered: a JSON value was cut out of surrounding prose or code fences.
	TierRecovered ParseTier = "recovered"
	// TierFailed: nothing usable; the item list is empty.
	TierFailed ParseTier = "failed"
)

// ParseOutcome describes how a reply was parsed.
type ParseOutcome struct {
	Tier ParseTier
	// ItemsFound is false when the parsed object had no "items" array.
	ItemsFound bool
	// Skipped counts array entries that were not objects.
	Skipped int
}

// ParseBriefItems extracts brief items from a model reply.
//
// The reply is tried as a JSON object first; then the text between the first
// "{" and the last "}" (after removing markdown fences); then, if the reply is
// a bare array, as the items themselves. Every failure degrades to an empty
// slice, never an error. Field values are coerced to strings; no normalization
// against the taxonomy happens here.
func ParseBriefItems(text string) ([]models.BriefItem, ParseOutcome) {
	trimmed := strings.TrimSpace(text)

	if obj, ok := decodeObject(trimmed); ok {
		items, found, skipped := itemsFromObject(obj)
		return items, ParseOutcome{Tier: TierStrict, ItemsFound: found, Skipped: skipped}
	}

	unfenced := stripCodeFences(trimmed)
	if start, end := strings.Index(unfenced, "{"), strings.LastIndex(unfenced, "}"); start >= 0 && end > start {
		if obj, ok := decodeObject(unfenced[start : end+1]); ok {
			items, found, skipped := itemsFromObject(obj)
			if found || !strings.HasPrefix(unfenced, "[") {
				return items, ParseOutcome{Tier: TierRecovered, ItemsFound: found, Skipped: skipped}
			}
		}
	}
	if strings.HasPrefix(unfenced, "[") {
		var raw []json.RawMessage
		if err := json.Unmarshal([]byte(unfenced), &raw); err == nil {
			items, skipped := decodeItems(raw)
			return items, ParseOutcome{Tier: TierRecovered, ItemsFound: true, Skipped: skipped}
		}
	}

	return []models.BriefItem{}, ParseOutcome{Tier: TierFailed}
}

func decodeObject(s string) (map[string]json.RawMessage, bool) {
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func itemsFromObject(obj map[string]json.RawMessage) ([]models.BriefItem, bool, int) {
	raw, ok := obj["items"]
	if !ok {
		return []models.BriefItem{}, false, 0
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return []models.BriefItem{}, false, 0
	}
	items, skipped := decodeItems(entries)
	return items, true, skipped
}

func decodeItems(entries []json.RawMessage) ([]models.BriefItem, int) {
	items := make([]models.BriefItem, 0, len(entries))
	skipped := 0
	for _, e := range entries {
		var fields map[string]any
		if err := json.Unmarshal(e, &fields); err != nil || fields == nil {
			skipped++
			continue
		}
		items = append(items, models.BriefItem{
			Title:        stringField(fields, "title"),
			Source:       stringField(fields, "source"),
			Link:         stringField(fields, "link", "url"),
			Theme:        stringField(fields, "theme"),
			Priority:     models.Priority(stringField(fields, "priority")),
			WhyItMatters: stringField(fields, "why_it_matters", "whyItMatters"),
			Region:       stringField(fields, "region"),
			Category:     stringField(fields, "category"),
			PublishedAt:  stringField(fields, "publishedAt", "date"),
		})
	}
	return items, skipped
}

// stringField returns the first present key as a string. Arrays, which models
// sometimes emit for category or region, yield their first element.
func stringField(fields map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := fields[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			return strings.TrimSpace(t)
		case []any:
			if len(t) > 0 {
				return strings.TrimSpace(fmt.Sprint(t[0]))
			}
			return ""
		default:
			return fmt.Sprint(t)
		}
	}
	return ""
}

// stripCodeFences removes a leading ```lang line and a trailing ``` if present.
func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
