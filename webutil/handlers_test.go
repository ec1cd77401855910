package webutil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeHandler(t *testing.T) {
	tests := []struct {
		name       string
		handler    AppHandler
		wantStatus int
		wantBody   string
	}{
		{
			name: "success passes through",
			handler: func(w http.ResponseWriter, r *http.Request) error {
				RespondWithJSON(w, http.StatusOK, map[string]int{"total": 3})
				return nil
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"total":3}`,
		},
		{
			name: "http error uses its code and message",
			handler: func(w http.ResponseWriter, r *http.Request) error {
				return ErrNotFound("Snapshot not found")
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Snapshot not found"}`,
		},
		{
			name: "empty message falls back to default",
			handler: func(w http.ResponseWriter, r *http.Request) error {
				return ErrBadRequest("")
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Bad Request"}`,
		},
		{
			name: "plain error becomes 500",
			handler: func(w http.ResponseWriter, r *http.Request) error {
				return errors.New("boom")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal Server Error"}`,
		},
		{
			name: "error after write keeps the first response",
			handler: func(w http.ResponseWriter, r *http.Request) error {
				RespondWithJSON(w, http.StatusAccepted, map[string]bool{"ok": true})
				return errors.New("late failure")
			},
			wantStatus: http.StatusAccepted,
			wantBody:   `{"ok":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			w := httptest.NewRecorder()

			MakeHandler(tt.handler)(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, ContentTypeJSONUTF8, w.Header().Get(HeaderContentType))
		})
	}
}

func TestDecodeJSONBody(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"pasta","extra":1}`))
	require.NoError(t, DecodeJSONBody(httptest.NewRecorder(), req, &dst, 1<<10))
	assert.Equal(t, "pasta", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	err := DecodeJSONBody(httptest.NewRecorder(), req, &dst, 1<<10)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestHashKey(t *testing.T) {
	a := HashKey("model", "https://example.com/a")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashKey("model", "https://example.com/a"))
	assert.NotEqual(t, a, HashKey("model", "https://example.com/b"))
	assert.NotEqual(t, HashKey("ab", "c"), HashKey("a", "bc"))
}
