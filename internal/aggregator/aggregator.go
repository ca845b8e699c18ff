// Package aggregator runs the full pipeline: fetch from every source,
// normalize, filter, dedup, score, summarize and store.
package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"alznews/internal/cache"
	"alznews/internal/metrics"
	"alznews/internal/news"
	"alznews/internal/sources"
	"alznews/internal/storage"
)

// Summarizer fills Article.Summary. Nil disables enrichment.
type Summarizer interface {
	Summarize(ctx context.Context, articles []news.Article) map[string]string
}

type Aggregator struct {
	sources     []sources.Source
	store       *storage.ArticleStore
	snapshot    *storage.Snapshot
	blocklist   news.Blocklist
	scorer      *news.Scorer
	summarizer  Summarizer
	sourceCache *cache.Cache
	group       singleflight.Group
	log         *slog.Logger
}

func New(srcs []sources.Source, store *storage.ArticleStore, snapshot *storage.Snapshot, blocklist news.Blocklist, summarizer Summarizer, sourceCache *cache.Cache, log *slog.Logger) *Aggregator {
	return &Aggregator{
		sources:     srcs,
		store:       store,
		snapshot:    snapshot,
		blocklist:   blocklist,
		scorer:      news.NewScorer(),
		summarizer:  summarizer,
		sourceCache: sourceCache,
		log:         log,
	}
}

// Filter narrows a GetArticles read. Zero value means everything.
type Filter struct {
	Category string
	Limit    int
}

// GetArticles runs one aggregation pass and returns the article set, newest
// first, narrowed by the filter. Concurrent callers share a single pass. When
// every source fails and the store is empty, a small built-in sample set is
// returned so the API never serves nothing.
func (a *Aggregator) GetArticles(ctx context.Context, filter Filter) ([]news.Article, error) {
	// The pass serves every waiter joined through singleflight, so it must
	// outlive the first caller; detach from that caller's cancellation.
	passCtx := context.WithoutCancel(ctx)
	result, err, _ := a.group.Do("aggregate", func() (interface{}, error) {
		return a.aggregate(passCtx)
	})
	if err != nil {
		return nil, err
	}

	articles := result.([]news.Article)
	if filter.Category != "" {
		filtered := make([]news.Article, 0, len(articles))
		for _, article := range articles {
			if article.Category == filter.Category {
				filtered = append(filtered, article)
			}
		}
		articles = filtered
	}
	if filter.Limit > 0 && filter.Limit < len(articles) {
		articles = articles[:filter.Limit]
	}
	return articles, nil
}

// GetArticleByID returns one article from the current set.
func (a *Aggregator) GetArticleByID(ctx context.Context, id string) (news.Article, error) {
	articles, err := a.GetArticles(ctx, Filter{})
	if err != nil {
		return news.Article{}, err
	}
	for _, article := range articles {
		if article.ID == id {
			return article, nil
		}
	}
	return news.Article{}, fmt.Errorf("article %s not found", id)
}

func (a *Aggregator) aggregate(ctx context.Context) ([]news.Article, error) {
	start := time.Now()

	a.hydrate(ctx)

	raw := sources.FetchAll(ctx, a.sources, a.log)
	if len(raw) == 0 && a.store.Len() == 0 {
		a.log.Warn("all sources empty and store empty, serving fallback set")
		return news.FallbackArticles(), nil
	}

	fresh := a.shape(raw)
	fresh = a.enrich(ctx, fresh)

	a.store.PutAll(fresh)
	a.saveSnapshot()

	all := a.store.All()
	news.SortByDateDesc(all)

	metrics.Global.RecordCycle(len(fresh), len(all), time.Since(start))
	a.log.Info("aggregation done",
		"raw", len(raw), "new", len(fresh), "total", len(all),
		"took", time.Since(start).Round(time.Millisecond))
	return all, nil
}

// hydrate loads the durable tier, falling back to the file snapshot when the
// store comes up empty. Either tier failing degrades to memory-only.
func (a *Aggregator) hydrate(ctx context.Context) {
	if err := a.store.Hydrate(ctx); err != nil {
		a.log.Warn("hydration from durable tier failed", "error", err)
		metrics.Global.SetError(err.Error())
	}

	if a.store.Len() == 0 && a.snapshot != nil && a.snapshot.Enabled() {
		if articles := a.snapshot.Load(); len(articles) > 0 {
			kept, _ := a.blocklist.Filter(articles)
			a.store.PutAll(kept)
			a.log.Info("backfilled store from snapshot", "articles", len(kept))
		}
	}
}

// shape turns raw provider records into the batch of genuinely new articles:
// normalized, blocklisted, deduplicated against each other and the store,
// sorted and scored.
func (a *Aggregator) shape(raw []news.RawArticle) []news.Article {
	articles := make([]news.Article, 0, len(raw))
	for _, r := range raw {
		articles = append(articles, news.Normalize(r))
	}

	articles, blocked := a.blocklist.Filter(articles)
	metrics.Global.AddBlockedFiltered(blocked)

	beforeURL := len(articles)
	articles = news.DeduplicateByURL(articles)
	urlDrops := beforeURL - len(articles)

	// Known URLs are skips, not duplicates; an idempotent re-fetch must not
	// inflate the duplicate counter.
	unknown := articles[:0]
	for _, article := range articles {
		if !a.store.Has(article.URL) {
			unknown = append(unknown, article)
		}
	}
	articles = unknown

	news.SortByDateDesc(articles)

	beforeTitle := len(articles)
	articles = news.DeduplicateByTitle(articles, a.store.Titles())
	metrics.Global.AddDuplicatesFiltered(urlDrops + (beforeTitle - len(articles)))

	return a.scorer.ScoreAll(articles)
}

// enrich attaches AI summaries to the new batch and backfills stored
// articles that are still missing one. Best effort; articles without a
// summary pass through unchanged.
func (a *Aggregator) enrich(ctx context.Context, fresh []news.Article) []news.Article {
	if a.summarizer == nil {
		return fresh
	}

	pending := append([]news.Article{}, fresh...)
	backfill := a.store.MissingSummaries()
	pending = append(pending, backfill...)
	if len(pending) == 0 {
		return fresh
	}

	summaries := a.summarizer.Summarize(ctx, pending)
	if len(summaries) == 0 {
		return fresh
	}

	for i := range fresh {
		if s, ok := summaries[fresh[i].ID]; ok {
			fresh[i].Summary = s
		}
	}

	var updated []news.Article
	for _, article := range backfill {
		if s, ok := summaries[article.ID]; ok {
			article.Summary = s
			updated = append(updated, article)
		}
	}
	a.store.PutAll(updated)

	return fresh
}

func (a *Aggregator) saveSnapshot() {
	if a.snapshot == nil || !a.snapshot.Enabled() {
		return
	}
	articles := a.store.All()
	go func() {
		if err := a.snapshot.Save(articles); err != nil {
			a.log.Warn("snapshot save failed", "error", err)
		}
	}()
}

// ClearSourceCaches drops every cached source batch so the next pass refetches.
func (a *Aggregator) ClearSourceCaches() {
	if a.sourceCache != nil {
		a.sourceCache.Clear()
	}
}

// ClearScoreCache drops memoized importance scores.
func (a *Aggregator) ClearScoreCache() {
	a.scorer.Clear()
}
