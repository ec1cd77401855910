package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/araddon/dateparse"
	"github.com/coreybb/boardroom/models"
	"golang.org/x/time/rate"
)

// NewsProvider is the adapter interface for news backends.
// Implement this to add a new source of articles to the aggregator.
type NewsProvider interface {
	// Name is the label reported in the search response's sources list.
	Name() string
	// Configured reports whether the provider has what it needs to run,
	// typically an API key. Unconfigured providers are skipped silently.
	Configured() bool
	// Search runs the provider against the queries it chooses to use.
	Search(ctx context.Context, queries []string) ([]models.Article, error)
}

// Registry holds providers in registration order.
type Registry struct {
	providers []NewsProvider
}

func NewRegistry(providers ...NewsProvider) *Registry {
	return &Registry{providers: providers}
}

func (r *Registry) Register(p NewsProvider) {
	r.providers = append(r.providers, p)
}

// All returns every registered provider.
func (r *Registry) All() []NewsProvider {
	return append([]NewsProvider(nil), r.providers...)
}

// Configured returns the providers able to run.
func (r *Registry) Configured() []NewsProvider {
	var out []NewsProvider
	for _, p := range r.providers {
		if p.Configured() {
			out = append(out, p)
		}
	}
	return out
}

// StatusError is returned when an upstream answers with a non-2xx status.
type StatusError struct {
	Provider string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.Status, e.Body)
}

// jsonClient is the shared plumbing of the HTTP JSON providers: one paced
// client per provider so a burst of queries does not trip upstream quotas.
type jsonClient struct {
	name    string
	client  *http.Client
	limiter *rate.Limiter
}

func newJSONClient(name string, client *http.Client, limiter *rate.Limiter) jsonClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(200*time.Millisecond), 1)
	}
	return jsonClient{name: name, client: client, limiter: limiter}
}

func (c jsonClient) getJSON(ctx context.Context, endpoint string, params url.Values, dst any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s rate limiter: %w", c.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", c.name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Provider: c.name, Status: resp.StatusCode, Body: string(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", c.name, err)
	}
	return nil
}

// normalizeDate rewrites a provider timestamp as RFC 3339 in UTC.
// Zone-less values are read as UTC. Unparseable values are returned unchanged.
func normalizeDate(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return raw
	}
	return t.UTC().Format(time.RFC3339)
}

func firstN(queries []string, n int) []string {
	if len(queries) > n {
		return queries[:n]
	}
	return queries
}
