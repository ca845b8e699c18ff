package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"alznews/internal/cache"
	"alznews/internal/news"
	"alznews/internal/retry"
)

const naverCacheKey = "naver-articles"

// NaverSource searches Korean news via the Naver open API. Credentials are
// optional; without them the adapter reports no articles.
type NaverSource struct {
	clientID     string
	clientSecret string
	queries      []string
	cache        *cache.Cache
	ttl          time.Duration
	client       *http.Client
	retry        retry.Config
	log          *slog.Logger
}

func NewNaverSource(clientID, clientSecret string, queries []string, c *cache.Cache, ttl, timeout time.Duration, retryCfg retry.Config, log *slog.Logger) *NaverSource {
	if len(queries) == 0 {
		queries = []string{"아리바이오", "알츠하이머 치료제"}
	}
	return &NaverSource{
		clientID:     clientID,
		clientSecret: clientSecret,
		queries:      queries,
		cache:        c,
		ttl:          ttl,
		client:       &http.Client{Timeout: timeout},
		retry:        retryCfg,
		log:          log,
	}
}

func (s *NaverSource) Name() string { return "naver" }

type naverItem struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"`
}

type naverResponse struct {
	Items []naverItem `json:"items"`
}

func (s *NaverSource) Fetch(ctx context.Context) ([]news.RawArticle, error) {
	if s.clientID == "" || s.clientSecret == "" {
		return nil, nil
	}

	if cached, ok := s.cache.Get(naverCacheKey); ok {
		return cached.([]news.RawArticle), nil
	}

	batches := make([][]news.RawArticle, len(s.queries))
	var wg sync.WaitGroup

	for i, query := range s.queries {
		wg.Add(1)
		go func(i int, query string) {
			defer wg.Done()

			batch, err := s.search(ctx, query)
			if err != nil {
				s.log.Debug("naver query failed", "query", query, "error", err)
				return
			}
			batches[i] = batch
		}(i, query)
	}
	wg.Wait()

	// The two queries overlap heavily; drop repeats before caching.
	seen := make(map[string]struct{})
	var articles []news.RawArticle
	for _, batch := range batches {
		for _, a := range batch {
			key := news.NormalizeURL(a.URL)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			articles = append(articles, a)
		}
	}

	s.cache.Set(naverCacheKey, articles, s.ttl)
	return articles, nil
}

func (s *NaverSource) search(ctx context.Context, query string) ([]news.RawArticle, error) {
	endpoint := url.URL{Scheme: "https", Host: "openapi.naver.com", Path: "/v1/search/news.json"}
	q := endpoint.Query()
	q.Set("query", query)
	q.Set("display", "30")
	q.Set("sort", "date")
	endpoint.RawQuery = q.Encode()

	var data naverResponse
	err := retry.WithRetry(ctx, s.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
		if err != nil {
			return err
		}
		req.Header.Set("X-Naver-Client-Id", s.clientID)
		req.Header.Set("X-Naver-Client-Secret", s.clientSecret)

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("naver: HTTP %d for query %q", resp.StatusCode, query)
		}
		return json.NewDecoder(resp.Body).Decode(&data)
	})
	if err != nil {
		return nil, err
	}

	articles := make([]news.RawArticle, 0, len(data.Items))
	for _, item := range data.Items {
		link := item.OriginalLink
		if link == "" {
			link = item.Link
		}

		published := time.Now()
		if t, err := time.Parse(time.RFC1123Z, item.PubDate); err == nil {
			published = t
		}

		articles = append(articles, news.RawArticle{
			Title:       stripHTML(item.Title),
			Description: truncateRunes(stripHTML(item.Description), 500),
			URL:         link,
			Source:      "네이버 뉴스",
			PublishedAt: published,
			Language:    "ko",
		})
	}

	return articles, nil
}
