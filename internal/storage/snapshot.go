package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"alznews/internal/news"
)

// Snapshot persists the article set to a JSON file so a restart without
// Redis still has recent data. Old entries are pruned on every save. The
// mutex serializes the read-merge-write in Save against itself and Load;
// saves fire from background goroutines and may overlap.
type Snapshot struct {
	mu        sync.Mutex
	path      string
	retention time.Duration
	log       *slog.Logger
}

func NewSnapshot(path string, retention time.Duration, log *slog.Logger) *Snapshot {
	return &Snapshot{path: path, retention: retention, log: log}
}

func (s *Snapshot) Enabled() bool { return s.path != "" }

// Load reads the snapshot file. A missing or corrupt file yields an empty
// set; the snapshot is a convenience tier, never a source of errors.
func (s *Snapshot) Load() []news.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Snapshot) load() []news.Article {
	if !s.Enabled() {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("snapshot unreadable", "path", s.path, "error", err)
		}
		return nil
	}

	var articles []news.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		s.log.Warn("snapshot corrupt, ignoring", "path", s.path, "error", err)
		return nil
	}
	return articles
}

// Save merges articles into the existing snapshot by normalized URL, prunes
// entries older than the retention window, and writes atomically.
func (s *Snapshot) Save(articles []news.Article) error {
	if !s.Enabled() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make(map[string]news.Article)
	for _, a := range s.load() {
		merged[news.NormalizeURL(a.URL)] = a
	}
	for _, a := range articles {
		merged[news.NormalizeURL(a.URL)] = a
	}

	cutoff := time.Now().Add(-s.retention)
	out := make([]news.Article, 0, len(merged))
	for _, a := range merged {
		if a.PublishedAt.Before(cutoff) {
			continue
		}
		out = append(out, a)
	}
	news.SortByDateDesc(out)

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("snapshot dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	s.log.Debug("snapshot saved", "path", s.path, "articles", len(out))
	return nil
}
