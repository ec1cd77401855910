package processing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/coreybb/boardroom/conversion"
	"github.com/coreybb/boardroom/llm"
	"github.com/coreybb/boardroom/metrics"
	"github.com/coreybb/boardroom/models"
	"github.com/coreybb/boardroom/webutil"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 6000
)

// ErrNoInputItems is returned when Generate is called with nothing to summarize.
var ErrNoInputItems = errors.New("no items to brief")

// BriefOptions tunes a BriefProcessor. Zero values select the defaults.
type BriefOptions struct {
	MaxTokens   int
	Temperature float64
	// CacheSize and CacheTTL enable an in-memory cache of reconciled briefs
	// keyed by prompt. A zero size disables it.
	CacheSize int
	CacheTTL  time.Duration
	Now       func() time.Time
}

// BriefProcessor turns articles into board-level summaries.
type BriefProcessor struct {
	LLM         llm.Completer
	MaxTokens   int
	Temperature float64
	cache       *expirable.LRU[string, []models.BriefItem]
	now         func() time.Time
	logger      *slog.Logger
}

// NewBriefProcessor builds a processor. A nil completer is allowed: every
// brief is then made of placeholders.
func NewBriefProcessor(completer llm.Completer, opts BriefOptions) *BriefProcessor {
	bp := &BriefProcessor{
		LLM:         completer,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		now:         opts.Now,
		logger:      slog.Default().With("component", "briefing"),
	}
	if bp.MaxTokens <= 0 {
		bp.MaxTokens = DefaultMaxTokens
	}
	if bp.Temperature <= 0 {
		bp.Temperature = DefaultTemperature
	}
	if bp.now == nil {
		bp.now = time.Now
	}
	if opts.CacheSize > 0 {
		bp.cache = expirable.NewLRU[string, []models.BriefItem](opts.CacheSize, nil, opts.CacheTTL)
	}
	return bp
}

// Generate returns exactly one BriefItem per input, in input order.
//
// A missing, failing or unparseable model never fails the call: uncovered
// inputs become placeholders. Errors are returned only for empty input, a
// cancelled context, or a serialization failure.
func (bp *BriefProcessor) Generate(ctx context.Context, items []models.BriefRequestItem, sel models.FilterSelection) ([]models.BriefItem, error) {
	if len(items) == 0 {
		return nil, ErrNoInputItems
	}
	sel = sel.Normalize()
	now := bp.now()

	if bp.LLM == nil {
		bp.logger.Debug("No LLM configured, returning placeholders", "items", len(items))
		out, n := Reconcile(items, nil, now)
		metrics.RecordPlaceholders(n)
		return out, nil
	}

	user, err := BuildUserMessage(items)
	if err != nil {
		return nil, err
	}
	prompt := llm.Prompt{
		System:      BuildInstructions(len(items), sel),
		User:        user,
		Temperature: bp.Temperature,
		MaxTokens:   bp.MaxTokens,
		JSONMode:    true,
	}

	cacheKey, cacheable := bp.cacheKey(prompt)
	if cacheable {
		if cached, ok := bp.cache.Get(cacheKey); ok {
			metrics.BriefCacheHits.Inc()
			return slices.Clone(cached), nil
		}
	}

	text, err := bp.LLM.Complete(ctx, prompt)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			metrics.RecordLLMCall(bp.LLM.Model(), "cancelled")
			return nil, fmt.Errorf("brief generation cancelled: %w", ctxErr)
		}
		metrics.RecordLLMCall(bp.LLM.Model(), "error")
		bp.logger.Warn("LLM completion failed, returning placeholders", "model", bp.LLM.Model(), "error", err)
		out, n := Reconcile(items, nil, now)
		metrics.RecordPlaceholders(n)
		return out, nil
	}
	metrics.RecordLLMCall(bp.LLM.Model(), "ok")

	parsed, outcome := conversion.ParseBriefItems(text)
	out, placeholders := Reconcile(items, parsed, now)
	metrics.RecordPlaceholders(placeholders)

	logLevel := slog.LevelInfo
	if placeholders > 0 || outcome.Tier != conversion.TierStrict {
		logLevel = slog.LevelWarn
	}
	bp.logger.Log(ctx, logLevel, "Brief generated",
		"model", bp.LLM.Model(),
		"inputs", len(items),
		"returned", len(parsed),
		"parse_tier", outcome.Tier,
		"items_found", outcome.ItemsFound,
		"placeholders", placeholders,
	)

	if cacheable && placeholders < len(items) {
		bp.cache.Add(cacheKey, slices.Clone(out))
	}
	return out, nil
}

func (bp *BriefProcessor) cacheKey(p llm.Prompt) (string, bool) {
	if bp.cache == nil {
		return "", false
	}
	return webutil.HashKey(bp.LLM.Model(), p.System, p.User), true
}
