package storage

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"alznews/internal/news"
)

// ArticleStore keeps the working set in memory, keyed by normalized URL, and
// mirrors writes to the durable tier. Hydration from the durable tier happens
// once per process, on first access.
type ArticleStore struct {
	mu       sync.RWMutex
	byURL    map[string]news.Article
	hydrated bool

	kv        KV
	blocklist news.Blocklist
	group     singleflight.Group
	log       *slog.Logger
}

func NewArticleStore(kv KV, blocklist news.Blocklist, log *slog.Logger) *ArticleStore {
	return &ArticleStore{
		byURL:     make(map[string]news.Article),
		kv:        kv,
		blocklist: blocklist,
		log:       log,
	}
}

// Hydrate loads the durable tier into memory if that has not happened yet.
// Concurrent callers share one load. Blocked articles that predate a
// blocklist change are dropped on the way in.
func (s *ArticleStore) Hydrate(ctx context.Context) error {
	s.mu.RLock()
	done := s.hydrated
	s.mu.RUnlock()
	if done {
		return nil
	}

	_, err, _ := s.group.Do("hydrate", func() (interface{}, error) {
		s.mu.RLock()
		done := s.hydrated
		s.mu.RUnlock()
		if done {
			return nil, nil
		}

		articles, err := s.kv.GetAll(ctx)
		if err != nil {
			return nil, err
		}

		kept, dropped := s.blocklist.Filter(articles)

		s.mu.Lock()
		for _, a := range kept {
			s.byURL[news.NormalizeURL(a.URL)] = a
		}
		s.hydrated = true
		s.mu.Unlock()

		s.log.Info("store hydrated", "articles", len(kept), "blocked", dropped)
		return nil, nil
	})
	return err
}

// All returns every stored article. The slice is a copy.
func (s *ArticleStore) All() []news.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	articles := make([]news.Article, 0, len(s.byURL))
	for _, a := range s.byURL {
		articles = append(articles, a)
	}
	return articles
}

// Has reports whether an article with the same normalized URL is stored.
func (s *ArticleStore) Has(rawURL string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byURL[news.NormalizeURL(rawURL)]
	return ok
}

// Titles returns the stored titles, for fuzzy duplicate checks.
func (s *ArticleStore) Titles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	titles := make([]string, 0, len(s.byURL))
	for _, a := range s.byURL {
		titles = append(titles, a.Title)
	}
	return titles
}

func (s *ArticleStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byURL)
}

// PutAll merges articles into memory and mirrors them to the durable tier
// in the background. A durable write failure never blocks the caller.
func (s *ArticleStore) PutAll(articles []news.Article) {
	if len(articles) == 0 {
		return
	}

	s.mu.Lock()
	for _, a := range articles {
		s.byURL[news.NormalizeURL(a.URL)] = a
	}
	s.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.kv.SetMany(ctx, articles); err != nil {
			s.log.Warn("durable write failed", "articles", len(articles), "error", err)
		}
	}()
}

// MissingSummaries returns stored articles that have no AI summary yet.
func (s *ArticleStore) MissingSummaries() []news.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var articles []news.Article
	for _, a := range s.byURL {
		if a.Summary == "" {
			articles = append(articles, a)
		}
	}
	return articles
}

// Clear empties both tiers.
func (s *ArticleStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.byURL = make(map[string]news.Article)
	s.hydrated = true
	s.mu.Unlock()

	return s.kv.Clear(ctx)
}
