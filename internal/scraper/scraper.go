package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"alznews/internal/cache"
)

// Extractor pulls full article text for summarization and the detail view.
// Readability handles most outlets; a selector-based fallback covers pages it
// cannot parse.
type Extractor struct {
	cache   *cache.Cache
	ttl     time.Duration
	timeout time.Duration
	client  *http.Client
	log     *slog.Logger
}

func NewExtractor(c *cache.Cache, ttl, timeout time.Duration, log *slog.Logger) *Extractor {
	return &Extractor{
		cache:   c,
		ttl:     ttl,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Extract returns the plain-text body of the article at url.
func (e *Extractor) Extract(ctx context.Context, url string) (string, error) {
	if url == "" || url == "#" {
		return "", fmt.Errorf("no extractable URL")
	}

	cacheKey := "extract:" + url
	if cached, ok := e.cache.Get(cacheKey); ok {
		return cached.(string), nil
	}

	content, err := e.extract(ctx, url)
	if err != nil {
		return "", err
	}

	e.cache.Set(cacheKey, content, e.ttl)
	return content, nil
}

func (e *Extractor) extract(ctx context.Context, url string) (string, error) {
	article, err := readability.FromURL(url, e.timeout)
	if err == nil {
		if text := cleanContent(article.TextContent); text != "" {
			return text, nil
		}
	} else {
		e.log.Debug("readability failed, trying selectors", "url", url, "error", err)
	}

	return e.extractBySelectors(ctx, url)
}

// extractBySelectors walks common article container selectors and collects
// paragraph text.
func (e *Extractor) extractBySelectors(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "AlzNews/1.0 (Article Reader)")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error parsing HTML: %w", err)
	}

	selectors := []string{
		"article p",
		".article p",
		".article-body p",
		".content p",
		".post-content p",
		".entry-content p",
		"main p",
		"#content p",
		"p",
	}

	var paragraphs []string
	for _, selector := range selectors {
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if text != "" && len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			break
		}
	}

	content := cleanContent(strings.Join(paragraphs, "\n\n"))
	if content == "" {
		return "", fmt.Errorf("can't get content")
	}
	return content, nil
}

// junkMarkers are boilerplate lines that survive extraction on some sites.
var junkMarkers = []string{
	"cookie",
	"subscribe",
	"advertisement",
	"sign up for our newsletter",
	"all rights reserved",
}

func cleanContent(content string) string {
	lines := strings.Split(content, "\n")
	var kept []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isJunkLine(line) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, "\n\n")
}

func isJunkLine(line string) bool {
	if len(line) > 120 {
		return false
	}
	lower := strings.ToLower(line)
	for _, marker := range junkMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
