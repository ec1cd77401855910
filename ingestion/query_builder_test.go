package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coreybb/boardroom/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCatalog(t *testing.T) *QueryCatalog {
	t.Helper()
	c, err := DefaultCatalog()
	require.NoError(t, err)
	return c
}

func TestDefaultCatalogCoversTaxonomy(t *testing.T) {
	c := mustCatalog(t)
	for _, cat := range models.Categories {
		assert.Len(t, c.Categories[cat.ID].Queries, 3, cat.ID)
		assert.NotEmpty(t, c.Categories[cat.ID].Keywords, cat.ID)
	}
	for _, reg := range models.Regions {
		assert.Len(t, c.Regions[reg.ID].Queries, 3, reg.ID)
	}
	assert.Len(t, c.BaseTerms, 8)
}

func TestBuildQueries(t *testing.T) {
	c := mustCatalog(t)

	t.Run("no filters uses base terms", func(t *testing.T) {
		assert.Equal(t, c.BaseTerms, c.BuildQueries(models.FilterSelection{}))
	})

	t.Run("category only", func(t *testing.T) {
		q := c.BuildQueries(models.FilterSelection{Categories: []string{models.CategoryPackaging}})
		assert.Equal(t, c.Categories[models.CategoryPackaging].Queries, q)
	})

	t.Run("category and region adds combined query and term last", func(t *testing.T) {
		q := c.BuildQueries(models.FilterSelection{
			Categories: []string{models.CategorySupplyChain},
			Regions:    []string{models.RegionItaly},
			SearchTerm: "  durum wheat ",
		})
		require.Len(t, q, 8)
		assert.Equal(t, "food supply chain disruption 2024", q[0])
		assert.Equal(t, "Italy food industry 2024 trends", q[3])
		assert.Equal(t, "supply chain food industry Italy", q[6])
		assert.Equal(t, "durum wheat", q[7])
	})

	t.Run("search term alone replaces base terms", func(t *testing.T) {
		q := c.BuildQueries(models.FilterSelection{SearchTerm: "Barilla"})
		assert.Equal(t, []string{"Barilla"}, q)
	})

	t.Run("unknown ids contribute nothing", func(t *testing.T) {
		q := c.BuildQueries(models.FilterSelection{Categories: []string{"weather"}, Regions: []string{"japan"}})
		assert.Equal(t, c.BaseTerms, q)
	})

	t.Run("duplicates removed", func(t *testing.T) {
		q := c.BuildQueries(models.FilterSelection{
			Categories: []string{models.CategoryRegulations},
			SearchTerm: "EU food regulations 2024 compliance",
		})
		assert.Len(t, q, 3)
	})
}

func TestRelevanceKeywords(t *testing.T) {
	c := mustCatalog(t)
	kw := c.RelevanceKeywords(models.FilterSelection{
		Categories: []string{models.CategoryCompetitors},
		Regions:    []string{models.RegionCanada},
	})
	assert.Contains(t, kw, "pasta")
	assert.Contains(t, kw, "market share")
	assert.Contains(t, kw, "canadian")
	for _, k := range kw {
		assert.Equal(t, k, strings.ToLower(k))
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_terms: [grain]
base_keywords: [Grain, " Wheat "]
categories:
  packaging:
    queries: [cartons]
    keywords: [Carton]
`), 0o600))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"grain", "wheat"}, c.BaseKeywords)
	assert.Equal(t, []string{"carton"}, c.Categories["packaging"].Keywords)

	_, err = LoadCatalog(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("base_terms: []\nbase_keywords: [x]\n"), 0o600))
	_, err = LoadCatalog(path)
	assert.ErrorContains(t, err, "base_terms")
}
