package models

// Article is a news item as returned by a provider, before any LLM enrichment.
type Article struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Description string `json:"description"`
}

// BriefRequestItem is the per-article payload accepted by the brief endpoint.
type BriefRequestItem struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Link   string `json:"link"`
	Date   string `json:"date,omitempty"`
}
