package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/coreybb/boardroom/models"
	"github.com/mmcdole/gofeed"
)

const RSSName = "RSS"

// RSSFeed is one configured feed. Name is used as the article source when the
// feed does not carry its own title.
type RSSFeed struct {
	Name string
	URL  string
}

// ParseFeedList turns "url,url" or "name=url,name=url" into feeds.
func ParseFeedList(raw string) []RSSFeed {
	var feeds []RSSFeed
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, u, found := strings.Cut(part, "=")
		if !found || (strings.Contains(name, "://") && !strings.Contains(u, "://")) {
			feeds = append(feeds, RSSFeed{URL: part})
			continue
		}
		feeds = append(feeds, RSSFeed{Name: strings.TrimSpace(name), URL: strings.TrimSpace(u)})
	}
	return feeds
}

// RSSProvider reads RSS and Atom feeds and keeps items that mention a query.
type RSSProvider struct {
	feeds  []RSSFeed
	parser *gofeed.Parser
	maxAge time.Duration
	now    func() time.Time
}

func NewRSSProvider(feeds []RSSFeed, client *http.Client) *RSSProvider {
	parser := gofeed.NewParser()
	if client != nil {
		parser.Client = client
	}
	return &RSSProvider{
		feeds:  feeds,
		parser: parser,
		maxAge: 30 * 24 * time.Hour,
		now:    time.Now,
	}
}

func (p *RSSProvider) Name() string     { return RSSName }
func (p *RSSProvider) Configured() bool { return len(p.feeds) > 0 }

// Search fetches every feed. A broken feed is skipped; the provider only fails
// when no feed could be read.
func (p *RSSProvider) Search(ctx context.Context, queries []string) ([]models.Article, error) {
	terms := queryTerms(queries)
	cutoff := p.now().Add(-p.maxAge)

	var results []models.Article
	var errs []error
	for _, f := range p.feeds {
		feed, err := p.parser.ParseURLWithContext(f.URL, ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("feed %s: %w", f.URL, err))
			continue
		}
		source := f.Name
		if source == "" {
			source = feed.Title
		}
		for _, item := range feed.Items {
			pub := item.PublishedParsed
			if pub == nil {
				pub = item.UpdatedParsed
			}
			if pub != nil && pub.Before(cutoff) {
				continue
			}
			desc := item.Description
			if desc == "" {
				desc = item.Content
			}
			if !mentionsAny(item.Title+" "+desc, terms) {
				continue
			}
			a := models.Article{
				Title:       item.Title,
				Source:      source,
				URL:         item.Link,
				Description: desc,
			}
			if pub != nil {
				a.PublishedAt = pub.UTC().Format(time.RFC3339)
			} else {
				a.PublishedAt = normalizeDate(item.Published)
			}
			results = append(results, a)
		}
	}
	if len(errs) == len(p.feeds) && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return results, nil
}

// queryTerms extracts the distinctive lower-cased words of the queries:
// at least four letters and not purely numeric, so "2024" or "EU" do not match everything.
func queryTerms(queries []string) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, q := range queries {
		for _, w := range strings.FieldsFunc(strings.ToLower(q), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
		}) {
			if len([]rune(w)) < 4 || strings.IndexFunc(w, unicode.IsLetter) < 0 {
				continue
			}
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			terms = append(terms, w)
		}
	}
	return terms
}

func mentionsAny(text string, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	text = strings.ToLower(text)
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
