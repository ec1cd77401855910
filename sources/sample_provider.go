package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coreybb/boardroom/models"
)

const (
	SampleName       = "Sample"
	sampleMaxResults = 5
)

// sampleTopic is one family of canned demo articles, chosen when a query
// mentions any of its triggers.
type sampleTopic struct {
	slug        string
	triggers    []string
	titles      []string
	sources     []string
	description string
}

var sampleTopics = []sampleTopic{
	{
		slug:     "packaging-eu",
		triggers: []string{"packaging", "sustainable"},
		titles: []string{
			"New EU sustainable packaging regulations take effect",
			"Biodegradable packaging revolution hits food industry",
			"Circular economy packaging solutions gain traction",
			"Food companies invest in eco-friendly packaging alternatives",
			"Sustainable packaging standards reshape European market",
		},
		sources:     []string{"European Food News", "Packaging World", "Food Navigator", "Sustainable Packaging News", "Food Industry Today"},
		description: "New EU rules for sustainable packaging impact the Italian food industry",
	},
	{
		slug:     "competitors",
		triggers: []string{"barilla", "pasta", "competitors"},
		titles: []string{
			"Barilla invests €50 million in recyclable packaging",
			"De Cecco expands international market presence",
			"Garofalo launches new organic pasta line",
			"Italian pasta industry sees 15% growth in exports",
			"Pasta market competition intensifies with new players",
		},
		sources:     []string{"Milano Finanza", "Il Sole 24 Ore", "Food Business", "Pasta Industry News", "Italian Food Journal"},
		description: "The pasta industry continues to evolve with new sustainability initiatives and market expansion",
	},
	{
		slug:     "supply-chain",
		triggers: []string{"supply chain", "logistics"},
		titles: []string{
			"Global food supply chain faces new challenges",
			"Digital transformation reshapes food logistics",
			"Supply chain resilience becomes key priority",
			"Food companies invest in supply chain technology",
			"Logistics innovation drives food industry efficiency",
		},
		sources:     []string{"The Guardian", "Supply Chain World", "Logistics Today", "Food Logistics", "Supply Chain Management"},
		description: "International food supply chains adapt to new sustainability requirements and digital transformation",
	},
	{
		slug:     "italy-food",
		triggers: []string{"italy", "italian"},
		titles: []string{
			"Italian food industry adapts to new sustainability standards",
			"Made in Italy food exports reach record levels",
			"Italian pasta companies lead sustainability initiatives",
			"Food innovation hubs emerge across Italy",
			"Italian food sector embraces digital transformation",
		},
		sources:     []string{"Corriere della Sera", "La Repubblica", "Il Sole 24 Ore", "Italian Food News", "Made in Italy Today"},
		description: "Italian food companies implement new environmental regulations and innovation strategies",
	},
	{
		slug:     "food-tech",
		triggers: []string{"innovation", "technology"},
		titles: []string{
			"Food tech innovation drives sustainable packaging solutions",
			"AI revolutionizes food production processes",
			"Blockchain technology enhances food traceability",
			"Robotics transform food manufacturing efficiency",
			"IoT sensors optimize food supply chain monitoring",
		},
		sources:     []string{"Food Technology Magazine", "TechCrunch Food", "Innovation in Food", "Food Tech Weekly", "Agri-Food Tech News"},
		description: "New technologies revolutionize food packaging, production, and sustainability across the industry",
	},
	{
		slug:     "regulations",
		triggers: []string{"regulations", "compliance"},
		titles: []string{
			"New food safety regulations impact European manufacturers",
			"EU updates food labeling requirements for 2024",
			"Sustainability regulations reshape food industry compliance",
			"Food traceability standards become mandatory",
			"New allergen labeling rules affect food manufacturers",
		},
		sources:     []string{"Food Safety News", "EU Food Law", "Compliance Today", "Food Regulation Weekly", "European Food Safety Authority"},
		description: "Updated compliance requirements affect food industry operations and market strategies",
	},
}

var sampleFallback = []models.Article{
	{
		Title:       "Food industry trends: sustainability and innovation",
		Source:      "Food Industry Today",
		URL:         "https://example.com/trends-1",
		Description: "Latest trends in food industry sustainability and technological innovation",
	},
	{
		Title:       "European food market adapts to changing consumer demands",
		Source:      "European Food Journal",
		URL:         "https://example.com/market-1",
		Description: "Food companies respond to evolving consumer preferences and regulations",
	},
}

// SampleProvider serves canned articles for demos and local development.
// Output depends only on the queries and the clock.
type SampleProvider struct {
	now func() time.Time
}

func NewSampleProvider(now func() time.Time) *SampleProvider {
	if now == nil {
		now = time.Now
	}
	return &SampleProvider{now: now}
}

func (p *SampleProvider) Name() string     { return SampleName }
func (p *SampleProvider) Configured() bool { return true }

func (p *SampleProvider) Search(ctx context.Context, queries []string) ([]models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := p.now().UTC()

	var out []models.Article
	seenTitles := make(map[string]struct{})
	for i, q := range queries {
		lower := strings.ToLower(q)
		for _, topic := range sampleTopics {
			if !containsAny(lower, topic.triggers) {
				continue
			}
			pick := i % len(topic.titles)
			title := topic.titles[pick]
			if _, dup := seenTitles[title]; dup {
				continue
			}
			seenTitles[title] = struct{}{}
			out = append(out, models.Article{
				Title:       title,
				Source:      topic.sources[pick%len(topic.sources)],
				URL:         fmt.Sprintf("https://example.com/%s-%d", topic.slug, i),
				PublishedAt: sampleDate(now, len(out)),
				Description: topic.description,
			})
		}
	}

	if len(out) == 0 {
		for i, a := range sampleFallback {
			a.PublishedAt = sampleDate(now, i)
			out = append(out, a)
		}
	}
	if len(out) > sampleMaxResults {
		out = out[:sampleMaxResults]
	}
	return out, nil
}

// sampleDate spreads demo articles across the last week.
func sampleDate(now time.Time, i int) string {
	return now.Add(-time.Duration(i*31+5) * time.Hour).Format(time.RFC3339)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
