package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"alznews/internal/cache"
	"alznews/internal/news"
	"alznews/internal/retry"
)

const newsAPICacheKey = "newsapi-articles"

// NewsAPISource queries the NewsAPI.org "everything" endpoint. Without an API
// key it reports no articles rather than failing.
type NewsAPISource struct {
	apiKey string
	cache  *cache.Cache
	ttl    time.Duration
	client *http.Client
	retry  retry.Config
	log    *slog.Logger
}

func NewNewsAPISource(apiKey string, c *cache.Cache, ttl, timeout time.Duration, retryCfg retry.Config, log *slog.Logger) *NewsAPISource {
	return &NewsAPISource{
		apiKey: apiKey,
		cache:  c,
		ttl:    ttl,
		client: &http.Client{Timeout: timeout},
		retry:  retryCfg,
		log:    log,
	}
}

func (s *NewsAPISource) Name() string { return "newsapi" }

type newsAPIArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

func (s *NewsAPISource) Fetch(ctx context.Context) ([]news.RawArticle, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	if cached, ok := s.cache.Get(newsAPICacheKey); ok {
		return cached.([]news.RawArticle), nil
	}

	endpoint := url.URL{Scheme: "https", Host: "newsapi.org", Path: "/v2/everything"}
	q := endpoint.Query()
	q.Set("q", "Alzheimer")
	q.Set("language", "en")
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", "30")
	endpoint.RawQuery = q.Encode()

	var data newsAPIResponse
	err := retry.WithRetry(ctx, s.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
		if err != nil {
			return err
		}
		req.Header.Set("X-Api-Key", s.apiKey)

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("newsapi: HTTP %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(&data)
	})
	if err != nil {
		return nil, err
	}

	if data.Status != "ok" {
		return nil, fmt.Errorf("newsapi: status %q", data.Status)
	}

	articles := make([]news.RawArticle, 0, len(data.Articles))
	for _, a := range data.Articles {
		// "[Removed]" marks withdrawn articles in NewsAPI responses
		if a.Title == "" || a.Title == "[Removed]" {
			continue
		}
		articles = append(articles, news.RawArticle{
			Title:       a.Title,
			Description: truncateRunes(a.Description, 500),
			URL:         a.URL,
			ImageURL:    a.URLToImage,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
			Language:    "en",
		})
	}

	s.cache.Set(newsAPICacheKey, articles, s.ttl)
	return articles, nil
}
