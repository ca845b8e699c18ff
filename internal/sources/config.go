package sources

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"alznews/internal/news"
)

// FeedConfig describes one RSS feed. AlzSpecific feeds carry only relevant
// articles; the rest are keyword-filtered at fetch time.
type FeedConfig struct {
	URL         string `yaml:"url"`
	Source      string `yaml:"source"`
	AlzSpecific bool   `yaml:"alzSpecific"`
}

// GoogleNewsQuery expands into a Google News search RSS feed.
type GoogleNewsQuery struct {
	Query string `yaml:"query"`
	Lang  string `yaml:"lang"` // "ko" or "en"
}

// File is the configs/sources.yaml structure.
type File struct {
	Feeds       []FeedConfig      `yaml:"feeds"`
	GoogleNews  []GoogleNewsQuery `yaml:"googleNews"`
	NaverQuery  []string          `yaml:"naverQueries"`
	Blocklist   news.Blocklist    `yaml:"blocklist"`
	AlzKeywords []string          `yaml:"alzKeywords"`
}

// Load reads the sources YAML and expands Google News queries into feed
// entries. Queries use `when:30d` so a feed covers the last 30 days.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse sources config: %w", err)
	}

	for _, q := range f.GoogleNews {
		f.Feeds = append(f.Feeds, FeedConfig{
			URL:         googleNewsURL(q.Query, q.Lang),
			Source:      "Google News",
			AlzSpecific: true,
		})
	}

	return &f, nil
}

func googleNewsURL(query, lang string) string {
	encoded := url.QueryEscape(query + " when:30d")
	if lang == "ko" {
		return "https://news.google.com/rss/search?q=" + encoded + "&hl=ko&gl=KR&ceid=KR:ko"
	}
	return "https://news.google.com/rss/search?q=" + encoded + "&hl=en&gl=US&ceid=US:en"
}
