package dashboard

import (
	"github.com/coreybb/boardroom/models"
)

// CategoryGroup is one section of the board.
type CategoryGroup struct {
	Category string             `json:"category"`
	Name     string             `json:"name"`
	Items    []models.BriefItem `json:"items"`
}

// GroupByCategory buckets items by category in taxonomy order. Items outside
// the taxonomy are gathered in a trailing "general" group. Empty groups are omitted.
func GroupByCategory(items []models.BriefItem) []CategoryGroup {
	buckets := make(map[string][]models.BriefItem)
	for _, item := range items {
		id := models.NormalizeCategory(item.Category)
		buckets[id] = append(buckets[id], item)
	}

	groups := make([]CategoryGroup, 0, len(buckets))
	for _, c := range models.Categories {
		if bucket := buckets[c.ID]; len(bucket) > 0 {
			groups = append(groups, CategoryGroup{Category: c.ID, Name: c.Name, Items: bucket})
		}
	}
	if bucket := buckets[models.CategoryGeneral]; len(bucket) > 0 {
		groups = append(groups, CategoryGroup{
			Category: models.CategoryGeneral,
			Name:     models.CategoryName(models.CategoryGeneral),
			Items:    bucket,
		})
	}
	return groups
}

// PriorityCounts tallies items per priority.
type PriorityCounts struct {
	High   int `json:"High"`
	Medium int `json:"Medium"`
	Low    int `json:"Low"`
}

func CountPriorities(items []models.BriefItem) PriorityCounts {
	var c PriorityCounts
	for _, item := range items {
		switch models.NormalizePriority(string(item.Priority)) {
		case models.PriorityHigh:
			c.High++
		case models.PriorityLow:
			c.Low++
		default:
			c.Medium++
		}
	}
	return c
}
