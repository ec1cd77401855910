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
	GuardianName       = "Guardian"
	GuardianBaseURL    = "https://content.guardianapis.com/search"
	guardianSource     = "The Guardian"
	guardianMaxQueries = 2
	guardianPageSize   = 10
	guardianFields     = "headline,trailText,shortUrl"
)

// GuardianProvider searches the Guardian Content API.
type GuardianProvider struct {
	apiKey  string
	baseURL string
	http    jsonClient
}

func NewGuardianProvider(apiKey string, client *http.Client, limiter *rate.Limiter) *GuardianProvider {
	return &GuardianProvider{
		apiKey:  apiKey,
		baseURL: GuardianBaseURL,
		http:    newJSONClient(GuardianName, client, limiter),
	}
}

// WithBaseURL points the provider at another endpoint.
func (p *GuardianProvider) WithBaseURL(u string) *GuardianProvider {
	p.baseURL = u
	return p
}

func (p *GuardianProvider) Name() string     { return GuardianName }
func (p *GuardianProvider) Configured() bool { return p.apiKey != "" }

type guardianResponse struct {
	Response struct {
		Status  string `json:"status"`
		Results []struct {
			WebTitle           string `json:"webTitle"`
			WebURL             string `json:"webUrl"`
			WebPublicationDate string `json:"webPublicationDate"`
			Fields             struct {
				TrailText string `json:"trailText"`
			} `json:"fields"`
		} `json:"results"`
	} `json:"response"`
}

// Search runs the first two queries.
func (p *GuardianProvider) Search(ctx context.Context, queries []string) ([]models.Article, error) {
	var results []models.Article
	for _, q := range firstN(queries, guardianMaxQueries) {
		params := url.Values{
			"q":           {q},
			"api-key":     {p.apiKey},
			"show-fields": {guardianFields},
			"page-size":   {strconv.Itoa(guardianPageSize)},
		}
		var body guardianResponse
		if err := p.http.getJSON(ctx, p.baseURL, params, &body); err != nil {
			return nil, err
		}
		for _, r := range body.Response.Results {
			results = append(results, models.Article{
				Title:       r.WebTitle,
				Source:      guardianSource,
				URL:         r.WebURL,
				PublishedAt: normalizeDate(r.WebPublicationDate),
				Description: r.Fields.TrailText,
			})
		}
	}
	return results, nil
}
