package models

import "strings"

// Category identifiers used by the filters, the query catalog and the model output.
const (
	CategoryPackaging      = "packaging"
	CategorySupplyChain    = "supply-chain"
	CategoryRegulations    = "regulations"
	CategoryCompetitors    = "competitors"
	CategoryInnovation     = "innovation"
	CategorySustainability = "sustainability"

	// CategoryGeneral is assigned to placeholder items and to anything the model
	// labelled outside the taxonomy.
	CategoryGeneral = "general"
)

// Region identifiers.
const (
	RegionItaly  = "italy"
	RegionEU     = "eu"
	RegionUSA    = "usa"
	RegionCanada = "canada"
)

// ThemeGeneralNews is the theme given to placeholder items.
const ThemeGeneralNews = "General News"

// TaxonomyEntry pairs a stable identifier with its display name.
type TaxonomyEntry struct {
	ID   string
	Name string
}

var Categories = []TaxonomyEntry{
	{CategoryPackaging, "Packaging & Sustainability"},
	{CategorySupplyChain, "Supply Chain & Logistics"},
	{CategoryRegulations, "Regulations & Compliance"},
	{CategoryCompetitors, "Competitors & Market"},
	{CategoryInnovation, "Innovation & Technology"},
	{CategorySustainability, "Sustainability & ESG"},
}

var Regions = []TaxonomyEntry{
	{RegionItaly, "Italy"},
	{RegionEU, "European Union"},
	{RegionUSA, "United States"},
	{RegionCanada, "Canada"},
}

var Themes = []string{
	"Agri & Commodity",
	"Policy & Trade",
	"ESG/Energy/Packaging",
	"Competitors/Finance/Governance",
	"Geopolitics & Risks",
	"Tech/Data/Automation",
	"Food Safety/Public Health",
	"Territory/Brand Italy",
	"Communication/Attention Economy",
}

// regionAliases accepts the labels the model tends to emit for each region.
var regionAliases = map[string]string{
	"italy":          RegionItaly,
	"italia":         RegionItaly,
	"eu":             RegionEU,
	"european union": RegionEU,
	"europe":         RegionEU,
	"usa":            RegionUSA,
	"us":             RegionUSA,
	"u.s.":           RegionUSA,
	"united states":  RegionUSA,
	"canada":         RegionCanada,
}

func lookupName(entries []TaxonomyEntry, id string) string {
	for _, e := range entries {
		if e.ID == id {
			return e.Name
		}
	}
	return id
}

// CategoryName returns the display name for a category id, or the id itself.
func CategoryName(id string) string {
	if id == CategoryGeneral {
		return "General"
	}
	return lookupName(Categories, id)
}

// RegionName returns the display name for a region id, or the id itself.
func RegionName(id string) string {
	return lookupName(Regions, id)
}

func IsKnownCategory(id string) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func IsKnownRegion(id string) bool {
	for _, r := range Regions {
		if r.ID == id {
			return true
		}
	}
	return false
}

// NormalizeCategory lower-cases and validates a category label.
// Labels outside the taxonomy collapse to CategoryGeneral.
func NormalizeCategory(label string) string {
	id := strings.ToLower(strings.TrimSpace(label))
	id = strings.ReplaceAll(id, " ", "-")
	if IsKnownCategory(id) {
		return id
	}
	for _, c := range Categories {
		if strings.EqualFold(c.Name, strings.TrimSpace(label)) {
			return c.ID
		}
	}
	return CategoryGeneral
}

// NormalizeRegion maps a region label or alias to its id.
// The second return value is false when the label is not recognised.
func NormalizeRegion(label string) (string, bool) {
	id, ok := regionAliases[strings.ToLower(strings.TrimSpace(label))]
	return id, ok
}

// NormalizeTheme matches a theme case-insensitively against the taxonomy.
func NormalizeTheme(theme string) (string, bool) {
	trimmed := strings.TrimSpace(theme)
	for _, t := range Themes {
		if strings.EqualFold(t, trimmed) {
			return t, true
		}
	}
	return trimmed, false
}
