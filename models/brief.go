package models

import "strings"

// Priority is the strategic weight an analyst assigns to a brief item.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists the priorities in display order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// NormalizePriority maps case variants onto the canonical values.
// Anything unrecognised becomes Medium.
func NormalizePriority(p string) Priority {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// BriefItem is one strategic-summary record produced for one input article.
type BriefItem struct {
	Title        string   `json:"title"`
	Headline     string   `json:"headline,omitempty"` // executive title written by the model, when it differs from Title
	Source       string   `json:"source"`
	Link         string   `json:"link"`
	Theme        string   `json:"theme"`
	Priority     Priority `json:"priority"`
	WhyItMatters string   `json:"why_it_matters"`
	Region       string   `json:"region"`
	Category     string   `json:"category"`
	PublishedAt  string   `json:"publishedAt,omitempty"`
}
