package routehandlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coreybb/boardroom/ingestion"
	"github.com/coreybb/boardroom/models"
	"github.com/coreybb/boardroom/webutil"
)

const maxSearchBodyBytes = 64 << 10

// NewsSearcher runs an aggregated news search.
type NewsSearcher interface {
	Search(ctx context.Context, sel models.FilterSelection) (ingestion.SearchResult, error)
}

type SearchHandler struct {
	Searcher NewsSearcher
}

func NewSearchHandler(searcher NewsSearcher) *SearchHandler {
	return &SearchHandler{Searcher: searcher}
}

type searchRequest struct {
	Filters models.FilterSelection `json:"filters"`
}

type searchResponse struct {
	Articles []models.Article `json:"articles"`
	Total    int              `json:"total"`
	Sources  []string         `json:"sources"`
	Message  string           `json:"message,omitempty"`
}

type searchFailure struct {
	Error    string           `json:"error"`
	Articles []models.Article `json:"articles"`
	Total    int              `json:"total"`
}

func (h *SearchHandler) HandleSearchNews(w http.ResponseWriter, r *http.Request) error {
	var req searchRequest
	if err := webutil.DecodeJSONBody(w, r, &req, maxSearchBodyBytes); err != nil {
		return err
	}

	result, err := h.Searcher.Search(r.Context(), req.Filters)
	switch {
	case errors.Is(err, ingestion.ErrNoProvidersConfigured):
		webutil.RespondWithJSON(w, http.StatusOK, searchResponse{
			Articles: []models.Article{},
			Sources:  []string{},
			Message:  "No news providers are configured. Set NEWS_API_KEY, GUARDIAN_API_KEY or RSS_FEEDS, or enable DEMO_MODE.",
		})
		return nil
	case errors.Is(err, ingestion.ErrAllProvidersFailed):
		slog.Error("News search failed", "error", err)
		webutil.RespondWithJSON(w, http.StatusInternalServerError, searchFailure{
			Error:    "All news providers failed",
			Articles: []models.Article{},
		})
		return nil
	case err != nil:
		return webutil.ErrInternalServerWrap("news search failed", err)
	}

	articles := result.Articles
	if articles == nil {
		articles = []models.Article{}
	}
	sources := result.Sources
	if sources == nil {
		sources = []string{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, searchResponse{
		Articles: articles,
		Total:    len(articles),
		Sources:  sources,
	})
	return nil
}
