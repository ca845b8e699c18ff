package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"alznews/internal/news"
)

// fakeKV is an in-memory stand-in for the Redis tier.
type fakeKV struct {
	mu       sync.Mutex
	articles map[string]news.Article
	getErr   error
	setCalls int
}

func newFakeKV(seed ...news.Article) *fakeKV {
	kv := &fakeKV{articles: make(map[string]news.Article)}
	for _, a := range seed {
		kv.articles[a.ID] = a
	}
	return kv
}

func (f *fakeKV) GetAll(ctx context.Context) ([]news.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make([]news.Article, 0, len(f.articles))
	for _, a := range f.articles {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeKV) SetMany(ctx context.Context, articles []news.Article) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	for _, a := range articles {
		f.articles[a.ID] = a
	}
	return nil
}

func (f *fakeKV) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.articles = make(map[string]news.Article)
	return nil
}

func (f *fakeKV) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.articles)
}

func TestArticleStore_HydrateOnce(t *testing.T) {
	kv := newFakeKV(
		news.Article{ID: "a1", Title: "one", URL: "https://x.com/1"},
		news.Article{ID: "a2", Title: "two", URL: "https://x.com/2"},
	)
	store := NewArticleStore(kv, news.Blocklist{}, testLogger())

	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 articles after hydration, got %d", store.Len())
	}

	// later durable-tier content is not re-read
	kv.SetMany(context.Background(), []news.Article{{ID: "a3", URL: "https://x.com/3"}})
	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 2 {
		t.Errorf("second hydrate must be a no-op, got %d articles", store.Len())
	}
}

func TestArticleStore_HydrateAppliesBlocklist(t *testing.T) {
	kv := newFakeKV(
		news.Article{ID: "a1", URL: "https://good.com/1"},
		news.Article{ID: "a2", URL: "https://bad.com/1"},
	)
	store := NewArticleStore(kv, news.Blocklist{Domains: []string{"bad.com"}}, testLogger())

	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 1 {
		t.Errorf("blocked article must not hydrate, got %d", store.Len())
	}
	if store.Has("https://bad.com/1") {
		t.Error("blocked URL reported present")
	}
}

func TestArticleStore_HydrateErrorPropagates(t *testing.T) {
	kv := newFakeKV()
	kv.getErr = errors.New("connection refused")
	store := NewArticleStore(kv, news.Blocklist{}, testLogger())

	if err := store.Hydrate(context.Background()); err == nil {
		t.Fatal("expected hydrate error")
	}

	// a later attempt retries instead of being marked hydrated
	kv.getErr = nil
	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("retry after failure should succeed: %v", err)
	}
}

func TestArticleStore_PutAllMergesByNormalizedURL(t *testing.T) {
	kv := newFakeKV()
	store := NewArticleStore(kv, news.Blocklist{}, testLogger())
	store.Hydrate(context.Background())

	store.PutAll([]news.Article{{ID: "a1", Title: "old", URL: "https://x.com/1"}})
	store.PutAll([]news.Article{{ID: "a1", Title: "new", URL: "https://X.com/1/"}})

	if store.Len() != 1 {
		t.Fatalf("expected 1 article, got %d", store.Len())
	}
	if got := store.All()[0].Title; got != "new" {
		t.Errorf("later write must win, got %q", got)
	}

	// durable mirror happens asynchronously
	deadline := time.Now().Add(2 * time.Second)
	for kv.len() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if kv.len() != 1 {
		t.Error("durable tier never received the write")
	}
}

func TestArticleStore_MissingSummaries(t *testing.T) {
	store := NewArticleStore(newFakeKV(), news.Blocklist{}, testLogger())
	store.Hydrate(context.Background())

	store.PutAll([]news.Article{
		{ID: "a1", URL: "https://x.com/1", Summary: "done"},
		{ID: "a2", URL: "https://x.com/2"},
	})

	missing := store.MissingSummaries()
	if len(missing) != 1 || missing[0].ID != "a2" {
		t.Errorf("expected only a2 missing, got %+v", missing)
	}
}

func TestArticleStore_Clear(t *testing.T) {
	kv := newFakeKV(news.Article{ID: "a1", URL: "https://x.com/1"})
	store := NewArticleStore(kv, news.Blocklist{}, testLogger())
	store.Hydrate(context.Background())

	if err := store.Clear(context.Background()); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 0 || kv.len() != 0 {
		t.Errorf("both tiers must be empty, got memory=%d durable=%d", store.Len(), kv.len())
	}
}
