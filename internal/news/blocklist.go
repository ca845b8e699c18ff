package news

import (
	"net/url"
	"strings"
)

// Blocklist excludes low-quality or unwanted outlets from every output,
// including articles re-loaded from the durable tier. Loaded from
// configs/sources.yaml.
type Blocklist struct {
	Domains []string `yaml:"domains"`
	Sources []string `yaml:"sources"`
}

// Blocked reports whether the article comes from a blocked outlet: either its
// URL host matches a blocked domain, or its title carries the " - <Source>"
// suffix Google News appends for a blocked source name.
func (b Blocklist) Blocked(a Article) bool {
	if host := hostOf(a.URL); host != "" {
		for _, domain := range b.Domains {
			if host == domain || strings.HasSuffix(host, "."+domain) {
				return true
			}
		}
	}

	for _, source := range b.Sources {
		if strings.HasSuffix(a.Title, " - "+source) {
			return true
		}
	}

	return false
}

// Filter removes blocked articles, returning the survivors and the number
// dropped.
func (b Blocklist) Filter(articles []Article) ([]Article, int) {
	if len(b.Domains) == 0 && len(b.Sources) == 0 {
		return articles, 0
	}

	result := make([]Article, 0, len(articles))
	for _, a := range articles {
		if !b.Blocked(a) {
			result = append(result, a)
		}
	}
	return result, len(articles) - len(result)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(u.Host, "www."))
}
