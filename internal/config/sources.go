package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/strazca-sk/monitor-dennikov/internal/domain"
)

// Registry is the resolved source/keyword configuration for a run.
type Registry struct {
	Sources  []domain.Source
	Keywords []string
}

// registryFile mirrors the YAML layout of an external source registry.
type registryFile struct {
	Sources  []sourceEntry `yaml:"sources"`
	Keywords []string      `yaml:"keywords"`
}

type sourceEntry struct {
	Name          string   `yaml:"name"`
	FeedURL       string   `yaml:"feed_url"`
	ExtraKeywords []string `yaml:"extra_keywords"`
}

// LoadRegistry reads a YAML source registry, expanding ${ENV} references
// before decoding. Duplicate source names and empty URLs are rejected.
func LoadRegistry(path string) (Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Registry{}, errors.New("sources file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Registry{}, fmt.Errorf("read sources file: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(raw)))

	var file registryFile
	if err := yaml.Unmarshal(expanded, &file); err != nil {
		return Registry{}, fmt.Errorf("decode sources file: %w", err)
	}
	if len(file.Sources) == 0 {
		return Registry{}, errors.New("sources file contains no sources")
	}

	seen := make(map[string]struct{}, len(file.Sources))
	sources := make([]domain.Source, 0, len(file.Sources))
	for i, entry := range file.Sources {
		name := strings.TrimSpace(entry.Name)
		url := strings.TrimSpace(entry.FeedURL)
		if name == "" {
			return Registry{}, fmt.Errorf("sources[%d]: name is empty", i)
		}
		if url == "" {
			return Registry{}, fmt.Errorf("source %q: feed_url is empty", name)
		}
		if _, dup := seen[name]; dup {
			return Registry{}, fmt.Errorf("duplicate source name %q", name)
		}
		seen[name] = struct{}{}

		sources = append(sources, domain.Source{
			Name:          name,
			FeedURL:       url,
			ExtraKeywords: entry.ExtraKeywords,
		})
	}

	return Registry{Sources: sources, Keywords: file.Keywords}, nil
}

// DefaultSources returns the production source list.
func DefaultSources() []domain.Source {
	return []domain.Source{
		{Name: "DennikN", FeedURL: "https://dennikn.sk/feed"},
		{Name: "Aktuality", FeedURL: "https://www.aktuality.sk/rss/"},
		// Domestic news feed; the stable XML endpoint per RSS catalogues.
		{Name: "Pravda", FeedURL: "https://spravy.pravda.sk/domace/rss/xml"},
		// Historical SME endpoint; replace or disable if it degrades.
		{Name: "SME", FeedURL: "http://rss.sme.sk/rss/rss.asp?sek=spravy"},
		{Name: "Plus1Den", FeedURL: "https://www1.pluska.sk/rss.xml"},
	}
}

// DefaultKeywords returns the production keyword list, verbatim.
func DefaultKeywords() []string {
	return []string{
		"ministerstvo vnútra",
		"minister vnútra",
		"cestovný pas",
		"pasy",
		"doklady",
		"eDoklady",
		"krízová situácia",
		"mimoriadna situácia",
		"bezpečnosť",
		"útok",
		"atentát",
		// TODO: confirm with the config owner whether this is meant to be
		// the two terms "šutaj eštok" and "eštok"; the production list
		// carries them run together as a single term.
		"šutaj eštokeštok",
		"hamran",
	}
}
