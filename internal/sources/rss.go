package sources

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"alznews/internal/cache"
	"alznews/internal/news"
)

const rssCacheKey = "rss-articles"

// RSSSource aggregates all configured RSS feeds (Google News searches plus
// specialist outlets) into one adapter.
type RSSSource struct {
	feeds       []FeedConfig
	alzKeywords []string
	cache       *cache.Cache
	ttl         time.Duration
	client      *http.Client
	log         *slog.Logger
}

func NewRSSSource(feeds []FeedConfig, alzKeywords []string, c *cache.Cache, ttl, timeout time.Duration, log *slog.Logger) *RSSSource {
	return &RSSSource{
		feeds:       feeds,
		alzKeywords: alzKeywords,
		cache:       c,
		ttl:         ttl,
		client:      &http.Client{Timeout: timeout},
		log:         log,
	}
}

// newParser builds a parser per goroutine; gofeed lazily initializes its
// translators, so a shared instance races.
func (s *RSSSource) newParser() *gofeed.Parser {
	parser := gofeed.NewParser()
	parser.UserAgent = "AlzNews/1.0 (RSS Reader)"
	parser.Client = s.client
	return parser
}

func (s *RSSSource) Name() string { return "rss" }

// Fetch parses every feed concurrently, tolerating individual feed failures.
func (s *RSSSource) Fetch(ctx context.Context) ([]news.RawArticle, error) {
	if cached, ok := s.cache.Get(rssCacheKey); ok {
		return cached.([]news.RawArticle), nil
	}

	batches := make([][]news.RawArticle, len(s.feeds))
	var wg sync.WaitGroup

	for i, feed := range s.feeds {
		wg.Add(1)
		go func(i int, feed FeedConfig) {
			defer wg.Done()

			parsed, err := s.newParser().ParseURLWithContext(feed.URL, ctx)
			if err != nil {
				s.log.Debug("feed failed", "url", feed.URL, "error", err)
				return
			}
			batches[i] = s.shapeItems(feed, parsed.Items)
		}(i, feed)
	}
	wg.Wait()

	var articles []news.RawArticle
	for _, batch := range batches {
		articles = append(articles, batch...)
	}

	s.cache.Set(rssCacheKey, articles, s.ttl)
	return articles, nil
}

func (s *RSSSource) shapeItems(feed FeedConfig, items []*gofeed.Item) []news.RawArticle {
	var articles []news.RawArticle

	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}

		description := stripHTML(item.Description)
		if description == "" {
			description = stripHTML(item.Content)
		}

		if !feed.AlzSpecific && !s.isAlzRelated(title, description) {
			continue
		}

		imageURL := ""
		if item.Image != nil {
			imageURL = item.Image.URL
		}
		if imageURL == "" && len(item.Enclosures) > 0 && strings.HasPrefix(item.Enclosures[0].Type, "image/") {
			imageURL = item.Enclosures[0].URL
		}
		if imageURL == "" {
			imageURL = firstImage(item.Content)
		}

		published := time.Now()
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		language := "en"
		if isKorean(title) {
			language = "ko"
		}

		articles = append(articles, news.RawArticle{
			Title:       title,
			Description: truncateRunes(description, 500),
			URL:         item.Link,
			ImageURL:    imageURL,
			Source:      feed.Source,
			PublishedAt: published,
			Language:    language,
		})
	}

	return articles
}

func (s *RSSSource) isAlzRelated(title, description string) bool {
	text := strings.ToLower(title + " " + description)
	for _, kw := range s.alzKeywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
