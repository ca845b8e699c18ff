package sources

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"alznews/internal/cache"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

const testFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Test Feed</title>
  <item>
    <title>Lecanemab slows cognitive decline in Alzheimer patients</title>
    <link>https://example.com/lecanemab</link>
    <description>&lt;b&gt;Trial results&lt;/b&gt; published today</description>
    <pubDate>Mon, 31 Aug 2026 09:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Football season kicks off</title>
    <link>https://example.com/football</link>
    <description>Nothing medical here</description>
    <pubDate>Mon, 31 Aug 2026 08:00:00 +0000</pubDate>
  </item>
  <item>
    <title></title>
    <link>https://example.com/untitled</link>
  </item>
</channel>
</rss>`

func serveFeed(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRSSSource_KeywordFilterOnGeneralFeeds(t *testing.T) {
	srv := serveFeed(t, testFeedXML)
	feeds := []FeedConfig{{URL: srv.URL, Source: "Test Outlet", AlzSpecific: false}}

	src := NewRSSSource(feeds, []string{"alzheimer", "치매"}, cache.New(), time.Minute, 5*time.Second, testLogger())
	got, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected only the Alzheimer article, got %d", len(got))
	}
	a := got[0]
	if a.Title != "Lecanemab slows cognitive decline in Alzheimer patients" {
		t.Errorf("wrong article: %q", a.Title)
	}
	if a.Description != "Trial results published today" {
		t.Errorf("markup not stripped from description: %q", a.Description)
	}
	if a.Source != "Test Outlet" {
		t.Errorf("source not tagged: %q", a.Source)
	}
	if a.Language != "en" {
		t.Errorf("language tag wrong: %q", a.Language)
	}
	if a.PublishedAt.IsZero() {
		t.Error("published time missing")
	}
}

func TestRSSSource_AlzSpecificSkipsFilter(t *testing.T) {
	srv := serveFeed(t, testFeedXML)
	feeds := []FeedConfig{{URL: srv.URL, Source: "Test Outlet", AlzSpecific: true}}

	src := NewRSSSource(feeds, []string{"alzheimer"}, cache.New(), time.Minute, 5*time.Second, testLogger())
	got, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// both titled items kept, the untitled one dropped
	if len(got) != 2 {
		t.Errorf("alzSpecific feed must keep all titled items, got %d", len(got))
	}
}

func TestRSSSource_CachesBatches(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(testFeedXML))
	}))
	t.Cleanup(srv.Close)

	feeds := []FeedConfig{{URL: srv.URL, Source: "Test Outlet", AlzSpecific: true}}
	src := NewRSSSource(feeds, nil, cache.New(), time.Minute, 5*time.Second, testLogger())

	if _, err := src.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := src.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}
	if hits != 1 {
		t.Errorf("second fetch within TTL must hit the cache, upstream saw %d requests", hits)
	}
}

func TestRSSSource_BrokenFeedTolerated(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(broken.Close)
	good := serveFeed(t, testFeedXML)

	feeds := []FeedConfig{
		{URL: broken.URL, Source: "Broken", AlzSpecific: true},
		{URL: good.URL, Source: "Good", AlzSpecific: true},
	}
	src := NewRSSSource(feeds, nil, cache.New(), time.Minute, 5*time.Second, testLogger())

	got, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("one broken feed must not fail the source: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected the good feed's articles, got %d", len(got))
	}
}
