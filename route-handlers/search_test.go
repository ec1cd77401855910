package routehandlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreybb/boardroom/ingestion"
	"github.com/coreybb/boardroom/models"
	"github.com/coreybb/boardroom/webutil"
)

type fakeSearcher struct {
	result ingestion.SearchResult
	err    error
	got    models.FilterSelection
}

func (f *fakeSearcher) Search(ctx context.Context, sel models.FilterSelection) (ingestion.SearchResult, error) {
	f.got = sel
	return f.result, f.err
}

func serveSearch(t *testing.T, s NewsSearcher, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/search-news", strings.NewReader(body))
	w := httptest.NewRecorder()
	webutil.MakeHandler(NewSearchHandler(s).HandleSearchNews)(w, req)
	return w
}

func TestHandleSearchNews_Success(t *testing.T) {
	searcher := &fakeSearcher{result: ingestion.SearchResult{
		Articles: []models.Article{{Title: "EU packaging rules", Source: "Reuters", URL: "https://x/1"}},
		Sources:  []string{"NewsAPI"},
	}}

	w := serveSearch(t, searcher, `{"filters":{"categories":["packaging"],"regions":["eu"],"searchTerm":"pasta"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"articles":[{"title":"EU packaging rules","source":"Reuters","url":"https://x/1","publishedAt":"","description":""}],
		"total":1,
		"sources":["NewsAPI"]
	}`, w.Body.String())
	assert.Equal(t, []string{"packaging"}, searcher.got.Categories)
	assert.Equal(t, "pasta", searcher.got.SearchTerm)
}

func TestHandleSearchNews_EmptyResultUsesArrays(t *testing.T) {
	w := serveSearch(t, &fakeSearcher{}, `{"filters":{}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"articles":[],"total":0,"sources":[]}`, w.Body.String())
}

func TestHandleSearchNews_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "all providers failed",
			err:        fmt.Errorf("%w: boom", ingestion.ErrAllProvidersFailed),
			body:       `{"filters":{}}`,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"All news providers failed","articles":[],"total":0}`,
		},
		{
			name:       "unexpected error",
			err:        errors.New("disk on fire"),
			body:       `{"filters":{}}`,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal Server Error"}`,
		},
		{
			name:       "malformed body",
			body:       `{"filters":`,
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveSearch(t, &fakeSearcher{err: tt.err}, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestHandleSearchNews_NoProviders(t *testing.T) {
	w := serveSearch(t, &fakeSearcher{err: ingestion.ErrNoProvidersConfigured}, `{"filters":{}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"articles":[]`)
	assert.Contains(t, w.Body.String(), `"message":"No news providers are configured`)
}
