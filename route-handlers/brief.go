package routehandlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/coreybb/boardroom/models"
	"github.com/coreybb/boardroom/processing"
	"github.com/coreybb/boardroom/webutil"
)

const (
	maxBriefBodyBytes = 1 << 20
	// MaxBriefItems bounds one request so the prompt fits the model's context.
	MaxBriefItems = 50
)

// BriefGenerator produces one summary per input article.
type BriefGenerator interface {
	Generate(ctx context.Context, items []models.BriefRequestItem, sel models.FilterSelection) ([]models.BriefItem, error)
}

type BriefHandler struct {
	Generator BriefGenerator
}

func NewBriefHandler(generator BriefGenerator) *BriefHandler {
	return &BriefHandler{Generator: generator}
}

type briefRequest struct {
	Items   []models.BriefRequestItem `json:"items"`
	Filters models.FilterSelection    `json:"filters"`
}

type briefResponse struct {
	Items []models.BriefItem `json:"items"`
}

func (h *BriefHandler) HandleBrief(w http.ResponseWriter, r *http.Request) error {
	var req briefRequest
	if err := webutil.DecodeJSONBody(w, r, &req, maxBriefBodyBytes); err != nil {
		return err
	}
	if len(req.Items) == 0 {
		webutil.RespondWithJSON(w, http.StatusOK, briefResponse{Items: []models.BriefItem{}})
		return nil
	}
	if len(req.Items) > MaxBriefItems {
		return webutil.ErrBadRequest(fmt.Sprintf("at most %d items can be briefed at once", MaxBriefItems))
	}
	for i, item := range req.Items {
		if strings.TrimSpace(item.Title) == "" {
			return webutil.ErrBadRequest(fmt.Sprintf("items[%d].title is required", i))
		}
	}

	items, err := h.Generator.Generate(r.Context(), req.Items, req.Filters)
	if err != nil {
		if errors.Is(err, processing.ErrNoInputItems) {
			return webutil.ErrBadRequestWrap("items must contain at least one article", err)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return webutil.ErrServiceUnavailableWrap("Brief generation timed out", err)
		}
		return webutil.ErrInternalServerWrap("brief generation failed", err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, briefResponse{Items: items})
	return nil
}
