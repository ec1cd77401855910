package dashboard

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"slices"
	"time"

	"github.com/araddon/dateparse"
	"github.com/coreybb/boardroom/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var themeIcons = map[string]string{
	"Agri & Commodity":                "🌾",
	"Policy & Trade":                  "🏛️",
	"ESG/Energy/Packaging":            "♻️",
	"Competitors/Finance/Governance":  "💼",
	"Geopolitics & Risks":             "🌍",
	"Tech/Data/Automation":            "🤖",
	"Food Safety/Public Health":       "🛡️",
	"Territory/Brand Italy":           "🇮🇹",
	"Communication/Attention Economy": "📱",
}

// Renderer writes the HTML board.
type Renderer struct {
	board *template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"themeIcon": func(theme string) string {
			if icon, ok := themeIcons[theme]; ok {
				return icon
			}
			return "📰"
		},
		"regionName": models.RegionName,
		"selected":   func(set []string, v string) bool { return slices.Contains(set, v) },
		"formatDate": func(s string) string {
			t, err := dateparse.ParseIn(s, time.UTC)
			if err != nil {
				return ""
			}
			return t.Format("Jan 2, 2006")
		},
	}
	tmpl, err := template.New("board.html").Funcs(funcs).ParseFS(templateFS, "templates/board.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse board template: %w", err)
	}
	return &Renderer{board: tmpl}, nil
}

// BoardFormAction is where the board's filter form posts its snapshot back to.
const BoardFormAction = "/board"

type boardPage struct {
	View       View
	ItemsJSON  string
	FormAction string
	Categories []models.TaxonomyEntry
	Regions    []models.TaxonomyEntry
	Priorities []models.Priority
	Themes     []string
}

// RenderBoard writes the board page for v. all is the unfiltered snapshot; it is
// embedded in the filter form so refiltering never needs the consumed token.
func (r *Renderer) RenderBoard(w io.Writer, v View, all []models.BriefItem) error {
	if all == nil {
		all = []models.BriefItem{}
	}
	itemsJSON, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("failed to encode board items: %w", err)
	}
	page := boardPage{
		View:       v,
		ItemsJSON:  string(itemsJSON),
		FormAction: BoardFormAction,
		Categories: models.Categories,
		Regions:    models.Regions,
		Priorities: models.Priorities,
		Themes:     models.Themes,
	}
	if err := r.board.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render board: %w", err)
	}
	return nil
}
