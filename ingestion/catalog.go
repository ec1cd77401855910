package ingestion

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed queries.yaml
var defaultCatalogYAML []byte

// TopicQueries is the query family and keyword set for one category or region.
type TopicQueries struct {
	Queries  []string `yaml:"queries"`
	Keywords []string `yaml:"keywords"`
}

// QueryCatalog holds every search query and relevance keyword the aggregator uses.
type QueryCatalog struct {
	BaseTerms    []string                `yaml:"base_terms"`
	BaseKeywords []string                `yaml:"base_keywords"`
	Categories   map[string]TopicQueries `yaml:"categories"`
	Regions      map[string]TopicQueries `yaml:"regions"`
}

// DefaultCatalog parses the catalog compiled into the binary.
func DefaultCatalog() (*QueryCatalog, error) {
	return parseCatalog(defaultCatalogYAML, "embedded catalog")
}

// LoadCatalog reads a catalog from path. An empty path returns the default catalog.
func LoadCatalog(path string) (*QueryCatalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read query catalog %s: %w", path, err)
	}
	return parseCatalog(data, path)
}

func parseCatalog(data []byte, origin string) (*QueryCatalog, error) {
	var c QueryCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", origin, err)
	}
	if len(c.BaseTerms) == 0 {
		return nil, fmt.Errorf("%s: base_terms must not be empty", origin)
	}
	if len(c.BaseKeywords) == 0 {
		return nil, fmt.Errorf("%s: base_keywords must not be empty", origin)
	}
	c.BaseKeywords = lowerAll(c.BaseKeywords)
	for id, t := range c.Categories {
		t.Keywords = lowerAll(t.Keywords)
		c.Categories[id] = t
	}
	for id, t := range c.Regions {
		t.Keywords = lowerAll(t.Keywords)
		c.Regions[id] = t
	}
	return &c, nil
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
