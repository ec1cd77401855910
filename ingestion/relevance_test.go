package ingestion

import (
	"fmt"
	"strings"
	"testing"

	"github.com/coreybb/boardroom/models"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestDeduplicateArticles(t *testing.T) {
	in := []models.Article{
		{Title: "A", URL: "https://x/1"},
		{Title: "A again", URL: "https://x/1"},
		{Title: "No link"},
		{Title: "No link"},
		{Title: "B", URL: "https://x/2"},
	}
	out := DeduplicateArticles(in)
	assert.Equal(t, []models.Article{in[0], in[2], in[4]}, out)
}

func TestFilterRelevant(t *testing.T) {
	articles := []models.Article{
		{Title: "Barilla posts record results"},
		{Title: "Football transfer news", Description: "Nothing about food"},
		{Title: "Weather", Description: "Rain expected"},
		{Title: "New PACKAGING rules"},
	}
	out := FilterRelevant(articles, []string{"barilla", "packaging"}, 0)
	assert.Len(t, out, 2)
	assert.Equal(t, "New PACKAGING rules", out[1].Title)

	assert.Len(t, FilterRelevant(articles, []string{"food", "barilla", "packaging", "rain"}, 2), 2)
	assert.Empty(t, FilterRelevant(articles, nil, 10))
}

func TestDeduplicateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// Each int encodes one of three titles and one of four URLs, so collisions are common.
	articleGen := gen.SliceOf(gen.IntRange(0, 11)).Map(func(codes []int) []models.Article {
		titles := []string{"a", "b", "c"}
		urls := []string{"", "https://x/1", "https://x/2", "https://x/3"}
		out := make([]models.Article, len(codes))
		for i, c := range codes {
			out[i] = models.Article{Title: titles[c%3], URL: urls[c/3]}
		}
		return out
	})

	properties.Property("every url appears at most once", prop.ForAll(
		func(in []models.Article) bool {
			seen := map[string]int{}
			for _, a := range DeduplicateArticles(in) {
				seen[dedupKey(a)]++
			}
			for _, n := range seen {
				if n != 1 {
					return false
				}
			}
			return true
		},
		articleGen,
	))

	properties.Property("dedup is idempotent and keeps every key", prop.ForAll(
		func(in []models.Article) bool {
			once := DeduplicateArticles(in)
			twice := DeduplicateArticles(once)
			if fmt.Sprint(once) != fmt.Sprint(twice) {
				return false
			}
			keys := map[string]bool{}
			for _, a := range in {
				keys[dedupKey(a)] = true
			}
			return len(keys) == len(once)
		},
		articleGen,
	))

	properties.Property("irrelevant articles never pass the filter", prop.ForAll(
		func(title, desc string) bool {
			a := models.Article{Title: title, Description: desc}
			keywords := []string{"pasta", "rice"}
			kept := len(FilterRelevant([]models.Article{a}, keywords, 0)) == 1
			text := strings.ToLower(title + " " + desc)
			mentions := strings.Contains(text, "pasta") || strings.Contains(text, "rice")
			return kept == mentions
		},
		gen.OneConstOf("Pasta prices rise", "Steel output", "RICE harvest", ""),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
