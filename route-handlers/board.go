package routehandlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coreybb/boardroom/dashboard"
	"github.com/coreybb/boardroom/metrics"
	"github.com/coreybb/boardroom/models"
	"github.com/coreybb/boardroom/storage"
	"github.com/coreybb/boardroom/webutil"
	"github.com/go-chi/chi/v5"
)

const (
	maxBoardBodyBytes = 2 << 20
	// MaxBoardItems bounds a snapshot.
	MaxBoardItems = 500
	ParamToken    = "token"
	boardPagePath = "/board/"
)

type BoardHandler struct {
	Store    storage.SnapshotStorer
	Renderer *dashboard.Renderer
	now      func() time.Time
	logger   *slog.Logger
}

func NewBoardHandler(store storage.SnapshotStorer, renderer *dashboard.Renderer) *BoardHandler {
	return &BoardHandler{
		Store:    store,
		Renderer: renderer,
		now:      time.Now,
		logger:   slog.Default().With("component", "board"),
	}
}

type snapshotRequest struct {
	Items []models.BriefItem `json:"items"`
}

type snapshotResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	BoardURL  string    `json:"board_url"`
}

type boardViewRequest struct {
	Items   []models.BriefItem     `json:"items"`
	Filters models.FilterSelection `json:"filters"`
}

// HandleCreateSnapshot stores items for a later, single read by the board.
func (h *BoardHandler) HandleCreateSnapshot(w http.ResponseWriter, r *http.Request) error {
	var req snapshotRequest
	if err := webutil.DecodeJSONBody(w, r, &req, maxBoardBodyBytes); err != nil {
		return err
	}
	if len(req.Items) == 0 {
		return webutil.ErrBadRequest("items must contain at least one brief item")
	}
	if len(req.Items) > MaxBoardItems {
		return webutil.ErrBadRequest("too many items for one board")
	}

	token, expiresAt, err := h.Store.Put(r.Context(), req.Items)
	if err != nil {
		metrics.RecordSnapshot("put", "error")
		return webutil.ErrInternalServerWrap("failed to store board snapshot", err)
	}
	metrics.RecordSnapshot("put", "ok")
	h.logger.Info("Board snapshot stored", "items", len(req.Items), "expires_at", expiresAt)

	webutil.RespondWithJSON(w, http.StatusCreated, snapshotResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		BoardURL:  boardPagePath + url.PathEscape(token),
	})
	return nil
}

// HandleTakeSnapshot returns and consumes a snapshot.
func (h *BoardHandler) HandleTakeSnapshot(w http.ResponseWriter, r *http.Request) error {
	items, err := h.take(r)
	if err != nil {
		return err
	}
	w.Header().Set(webutil.HeaderCacheControl, webutil.CacheControlNoStore)
	webutil.RespondWithJSON(w, http.StatusOK, snapshotRequest{Items: items})
	return nil
}

// HandleBoardView filters and groups a posted item set.
func (h *BoardHandler) HandleBoardView(w http.ResponseWriter, r *http.Request) error {
	var req boardViewRequest
	if err := webutil.DecodeJSONBody(w, r, &req, maxBoardBodyBytes); err != nil {
		return err
	}
	if req.Items == nil {
		req.Items = []models.BriefItem{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, dashboard.BuildView(req.Items, req.Filters, h.now()))
	return nil
}

// HandleBoardPage consumes a snapshot and renders it as HTML, filtered by the
// query string.
func (h *BoardHandler) HandleBoardPage(w http.ResponseWriter, r *http.Request) error {
	items, err := h.take(r)
	if err != nil {
		return err
	}
	return h.renderPage(w, items, SelectionFromValues(r.URL.Query()))
}

// HandleBoardRefilter re-renders the board from the snapshot copy the page posts back.
func (h *BoardHandler) HandleBoardRefilter(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBoardBodyBytes)
	if err := r.ParseForm(); err != nil {
		return webutil.ErrBadRequestWrap("Invalid form", err)
	}
	var items []models.BriefItem
	if raw := r.PostForm.Get("items"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return webutil.ErrBadRequestWrap("Invalid board items", err)
		}
	}
	if len(items) > MaxBoardItems {
		return webutil.ErrBadRequest("too many items for one board")
	}
	return h.renderPage(w, items, SelectionFromValues(r.PostForm))
}

func (h *BoardHandler) renderPage(w http.ResponseWriter, items []models.BriefItem, sel models.FilterSelection) error {
	view := dashboard.BuildView(items, sel, h.now())
	var buf bytes.Buffer
	if err := h.Renderer.RenderBoard(&buf, view, items); err != nil {
		return webutil.ErrInternalServerWrap("failed to render board", err)
	}
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeHTMLUTF8)
	w.Header().Set(webutil.HeaderCacheControl, webutil.CacheControlNoStore)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func (h *BoardHandler) take(r *http.Request) ([]models.BriefItem, error) {
	token := chi.URLParam(r, ParamToken)
	if token == "" {
		return nil, webutil.ErrBadRequest("Missing snapshot token")
	}
	items, err := h.Store.Take(r.Context(), token)
	if errors.Is(err, storage.ErrSnapshotNotFound) {
		metrics.RecordSnapshot("take", "missing")
		return nil, webutil.ErrNotFoundWrap("Board snapshot not found or already opened", err)
	}
	if err != nil {
		metrics.RecordSnapshot("take", "error")
		return nil, webutil.ErrInternalServerWrap("failed to read board snapshot", err)
	}
	metrics.RecordSnapshot("take", "ok")
	return items, nil
}

// SelectionFromValues reads board filters from a query string or form:
// q, category, region, priority, theme (repeatable) and date.
func SelectionFromValues(v url.Values) models.FilterSelection {
	return models.FilterSelection{
		Categories: splitMulti(v["category"]),
		Regions:    splitMulti(v["region"]),
		Priorities: splitMulti(v["priority"]),
		Themes:     v["theme"],
	}.
		WithSearchTerm(v.Get("q")).
		WithDateRange(models.DateRange(v.Get("date"))).
		Normalize()
}

// splitMulti accepts both repeated keys and comma-separated values.
func splitMulti(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}
