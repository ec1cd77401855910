package sources

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/coreybb/boardroom/models"
	"golang.org/x/time/rate"
)

const (
	NewsAPIName       = "NewsAPI"
	NewsAPIBaseURL    = "https://newsapi.org/v2/everything"
	newsAPIMaxQueries = 3
	newsAPIPageSize   = 10
	newsAPILanguage   = "it,en"
	newsAPISortBy     = "publishedAt"
)

// NewsAPIProvider searches newsapi.org's "everything" endpoint.
type NewsAPIProvider struct {
	apiKey  string
	baseURL string
	http    jsonClient
}

func NewNewsAPIProvider(apiKey string, client *http.Client, limiter *rate.Limiter) *NewsAPIProvider {
	return &NewsAPIProvider{
		apiKey:  apiKey,
		baseURL: NewsAPIBaseURL,
		http:    newJSONClient(NewsAPIName, client, limiter),
	}
}

// WithBaseURL points the provider at another endpoint.
func (p *NewsAPIProvider) WithBaseURL(u string) *NewsAPIProvider {
	p.baseURL = u
	return p
}

func (p *NewsAPIProvider) Name() string     { return NewsAPIName }
func (p *NewsAPIProvider) Configured() bool { return p.apiKey != "" }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Search runs the first three queries sequentially. Any failing query fails the
// whole provider; the aggregator isolates that failure.
func (p *NewsAPIProvider) Search(ctx context.Context, queries []string) ([]models.Article, error) {
	var results []models.Article
	for _, q := range firstN(queries, newsAPIMaxQueries) {
		params := url.Values{
			"q":        {q},
			"language": {newsAPILanguage},
			"sortBy":   {newsAPISortBy},
			"pageSize": {strconv.Itoa(newsAPIPageSize)},
			"apiKey":   {p.apiKey},
		}
		var body newsAPIResponse
		if err := p.http.getJSON(ctx, p.baseURL, params, &body); err != nil {
			return nil, err
		}
		for _, a := range body.Articles {
			results = append(results, models.Article{
				Title:       a.Title,
				Source:      a.Source.Name,
				URL:         a.URL,
				PublishedAt: normalizeDate(a.PublishedAt),
				Description: a.Description,
			})
		}
	}
	return results, nil
}
