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

	"github.com/coreybb/boardroom/models"
	"github.com/coreybb/boardroom/webutil"
)

type fakeGenerator struct {
	items []models.BriefItem
	err   error
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, items []models.BriefRequestItem, sel models.FilterSelection) ([]models.BriefItem, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func serveBrief(t *testing.T, g BriefGenerator, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/brief", strings.NewReader(body))
	w := httptest.NewRecorder()
	webutil.MakeHandler(NewBriefHandler(g).HandleBrief)(w, req)
	return w
}

func TestHandleBrief_Success(t *testing.T) {
	gen := &fakeGenerator{items: []models.BriefItem{{
		Title: "Wheat prices climb", Link: "https://x/1", Theme: "Agri & Commodity",
		Priority: models.PriorityHigh, Category: "supply-chain", Region: "italy",
	}}}

	w := serveBrief(t, gen, `{"items":[{"title":"Wheat prices climb","source":"Reuters","link":"https://x/1"}]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[{"title":"Wheat prices climb"`)
	assert.Contains(t, w.Body.String(), `"priority":"High"`)
	assert.Equal(t, 1, gen.calls)
}

func TestHandleBrief_EmptyItems(t *testing.T) {
	for _, body := range []string{`{"items":[]}`, `{}`} {
		gen := &fakeGenerator{}
		w := serveBrief(t, gen, body)

		assert.Equal(t, http.StatusOK, w.Code, body)
		assert.JSONEq(t, `{"items":[]}`, w.Body.String(), body)
		assert.Zero(t, gen.calls, body)
	}
}

func TestHandleBrief_Validation(t *testing.T) {
	many := make([]string, MaxBriefItems+1)
	for i := range many {
		many[i] = fmt.Sprintf(`{"title":"t%d"}`, i)
	}

	tests := []struct {
		name string
		body string
	}{
		{"blank title", `{"items":[{"title":"  ","link":"https://x"}]}`},
		{"too many", `{"items":[` + strings.Join(many, ",") + `]}`},
		{"malformed", `{"items":[`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{}
			w := serveBrief(t, gen, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, gen.calls)
		})
	}
}

func TestHandleBrief_GeneratorErrors(t *testing.T) {
	w := serveBrief(t, &fakeGenerator{err: context.DeadlineExceeded}, `{"items":[{"title":"a"}]}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = serveBrief(t, &fakeGenerator{err: errors.New("boom")}, `{"items":[{"title":"a"}]}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}
