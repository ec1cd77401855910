package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreybb/boardroom/dashboard"
	"github.com/coreybb/boardroom/ingestion"
	"github.com/coreybb/boardroom/models"
	"github.com/coreybb/boardroom/processing"
	rh "github.com/coreybb/boardroom/route-handlers"
	"github.com/coreybb/boardroom/storage"
)

type stubSearcher struct{}

func (stubSearcher) Search(ctx context.Context, sel models.FilterSelection) (ingestion.SearchResult, error) {
	return ingestion.SearchResult{
		Articles: []models.Article{{Title: "Olive oil output falls", Source: "ANSA", URL: "https://x/1"}},
		Sources:  []string{"Sample"},
	}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	renderer, err := dashboard.NewRenderer()
	require.NoError(t, err)
	return SetupRoutes(
		rh.NewSearchHandler(stubSearcher{}),
		rh.NewBriefHandler(processing.NewBriefProcessor(nil, processing.BriefOptions{})),
		rh.NewBoardHandler(storage.NewMemorySnapshotStorer(4, time.Minute), renderer),
	)
}

func TestRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name        string
		method      string
		path        string
		body        string
		wantStatus  int
		wantContent string
	}{
		{"search", http.MethodPost, "/api/search-news", `{"filters":{}}`, http.StatusOK, `"total":1`},
		{"brief without llm", http.MethodPost, "/api/brief", `{"items":[{"title":"Olive oil output falls","link":"https://x/1"}]}`, http.StatusOK, processing.PlaceholderWhyItMatters},
		{"board view", http.MethodPost, "/api/board/view", `{"items":[],"filters":{}}`, http.StatusOK, `"total":0`},
		{"unknown snapshot", http.MethodGet, "/api/board/nope", "", http.StatusNotFound, "not found"},
		{"health", http.MethodGet, "/healthz", "", http.StatusOK, "OK"},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK, "go_goroutines"},
		{"wrong method", http.MethodGet, "/api/search-news", "", http.StatusMethodNotAllowed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantContent != "" {
				assert.Contains(t, w.Body.String(), tt.wantContent)
			}
		})
	}
}

func TestRoutes_BoardRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/board",
		strings.NewReader(`{"items":[{"title":"Olive oil output falls","category":"supply-chain","priority":"High"}]}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	start := strings.Index(w.Body.String(), `"board_url":"`) + len(`"board_url":"`)
	boardURL := w.Body.String()[start:]
	boardURL = boardURL[:strings.Index(boardURL, `"`)]

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, boardURL, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Olive oil output falls")
}
