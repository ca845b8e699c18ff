// Package sources contains one adapter per external news provider. A failed
// adapter costs one branch of the fan-out and nothing else: FetchAll logs the
// error, counts it, and moves on with the other providers' batches.
package sources

import (
	"context"
	"log/slog"
	"sync"

	"alznews/internal/metrics"
	"alznews/internal/news"
)

// Source pulls provider-shaped articles from one upstream. Each adapter owns a
// short-lived cache keyed by its own identity; a hit returns the previous
// batch without any network call.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]news.RawArticle, error)
}

// FetchAll fans out to every source concurrently and collects the fulfilled
// results. Individual failures are logged and excluded, never propagated; a
// slow source delays the join by at most its own timeout.
func FetchAll(ctx context.Context, sources []Source, log *slog.Logger) []news.RawArticle {
	type outcome struct {
		name     string
		articles []news.RawArticle
		err      error
	}

	outcomes := make([]outcome, len(sources))
	var wg sync.WaitGroup

	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			articles, err := src.Fetch(ctx)
			outcomes[i] = outcome{name: src.Name(), articles: articles, err: err}
		}(i, src)
	}
	wg.Wait()

	var raw []news.RawArticle
	for _, o := range outcomes {
		if o.err != nil {
			log.Warn("source failed", "source", o.name, "error", o.err)
			metrics.Global.IncrementSourceFailures()
			continue
		}
		log.Debug("source fetched", "source", o.name, "count", len(o.articles))
		raw = append(raw, o.articles...)
	}

	metrics.Global.AddRawFetched(len(raw))
	return raw
}
