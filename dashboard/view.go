package dashboard

import (
	"time"

	"github.com/coreybb/boardroom/models"
)

// View is the filtered, grouped board.
type View struct {
	Items   []models.BriefItem     `json:"items"`
	Groups  []CategoryGroup        `json:"groups"`
	Counts  PriorityCounts         `json:"counts"`
	Total   int                    `json:"total"`
	Matched int                    `json:"matched"`
	Filters models.FilterSelection `json:"filters"`
}

// BuildView filters items with sel and groups the survivors.
// Total counts the unfiltered items and Matched the survivors.
func BuildView(items []models.BriefItem, sel models.FilterSelection, now time.Time) View {
	sel = sel.Normalize()
	filtered := Apply(items, sel, now)
	return View{
		Items:   filtered,
		Groups:  GroupByCategory(filtered),
		Counts:  CountPriorities(filtered),
		Total:   len(items),
		Matched: len(filtered),
		Filters: sel,
	}
}
