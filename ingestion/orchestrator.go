package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coreybb/boardroom/metrics"
	"github.com/coreybb/boardroom/models"
	"github.com/coreybb/boardroom/sources"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoProvidersConfigured means no provider has credentials; the caller
	// answers with an informational empty result rather than a failure.
	ErrNoProvidersConfigured = errors.New("no news providers configured")
	// ErrAllProvidersFailed means every configured provider returned an error.
	ErrAllProvidersFailed = errors.New("all news providers failed")
)

// SearchResult is the merged, filtered outcome of one search.
type SearchResult struct {
	Articles []models.Article
	// Sources names the providers that completed without error, in registration order.
	Sources []string
	Queries []string
}

// Aggregator fans a search out to every configured provider and merges the results.
type Aggregator struct {
	Registry    *sources.Registry
	Catalog     *QueryCatalog
	Processor   *ContentProcessor
	MaxArticles int
	logger      *slog.Logger
}

func NewAggregator(registry *sources.Registry, catalog *QueryCatalog, processor *ContentProcessor, maxArticles int) *Aggregator {
	if maxArticles <= 0 {
		maxArticles = DefaultMaxArticles
	}
	if processor == nil {
		processor = NewContentProcessor(DefaultDescriptionLimit)
	}
	return &Aggregator{
		Registry:    registry,
		Catalog:     catalog,
		Processor:   processor,
		MaxArticles: maxArticles,
		logger:      slog.Default().With("component", "aggregator"),
	}
}

type providerOutcome struct {
	articles []models.Article
	err      error
}

// Search builds queries from sel, runs every configured provider concurrently,
// then cleans, deduplicates, relevance-filters and truncates the merged articles.
//
// A failing provider contributes nothing and never cancels its siblings.
// Merge order follows provider registration order, not completion order.
func (a *Aggregator) Search(ctx context.Context, sel models.FilterSelection) (SearchResult, error) {
	sel = sel.Normalize()
	queries := a.Catalog.BuildQueries(sel)
	providers := a.Registry.Configured()
	if len(providers) == 0 {
		return SearchResult{Queries: queries}, ErrNoProvidersConfigured
	}

	outcomes := make([]providerOutcome, len(providers))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		i, p := i, p
		g.Go(func() error {
			start := time.Now()
			articles, err := p.Search(gctx, queries)
			status := "ok"
			if err != nil {
				status = "error"
				a.logger.Warn("Provider search failed", "provider", p.Name(), "error", err)
			}
			metrics.RecordProviderFetch(p.Name(), status, time.Since(start).Seconds())

			outcomes[i] = providerOutcome{articles: articles, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var merged []models.Article
	var okSources []string
	var errs []error
	for i, o := range outcomes {
		if o.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", providers[i].Name(), o.err))
			continue
		}
		okSources = append(okSources, providers[i].Name())
		merged = append(merged, o.articles...)
	}
	if len(okSources) == 0 {
		return SearchResult{Queries: queries}, fmt.Errorf("%w: %w", ErrAllProvidersFailed, errors.Join(errs...))
	}

	for i := range merged {
		merged[i] = a.Processor.CleanArticle(merged[i])
	}
	unique := DeduplicateArticles(merged)
	relevant := FilterRelevant(unique, a.Catalog.RelevanceKeywords(sel), a.MaxArticles)
	metrics.ArticlesReturned.Observe(float64(len(relevant)))

	a.logger.Info("Search completed",
		"queries", len(queries),
		"providers_ok", len(okSources),
		"providers_failed", len(errs),
		"merged", len(merged),
		"unique", len(unique),
		"returned", len(relevant),
	)
	return SearchResult{Articles: relevant, Sources: okSources, Queries: queries}, nil
}
