package news

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"time"
)

// Category slugs, in display order. CategoryRules in categorize.go encodes the
// matching priority, which is a different order.
var Categories = []string{"aribio", "competition", "research", "regulation", "market"}

var categorySet = func() map[string]bool {
	m := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		m[c] = true
	}
	return m
}()

// ValidCategory reports whether slug is one of the fixed category labels.
func ValidCategory(slug string) bool {
	return categorySet[slug]
}

// RawArticle is the provider-shaped record produced by source adapters.
// It is discarded after normalization.
type RawArticle struct {
	Title       string
	Description string
	FullContent string
	URL         string
	ImageURL    string
	Source      string
	PublishedAt time.Time
	Language    string // "ko" or "en", empty if unknown
}

// Article is the canonical unit of the pipeline. The JSON shape is shared by
// the durable Redis tier, the file snapshot and the HTTP API.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FullContent string    `json:"fullContent,omitempty"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	Language    string    `json:"language,omitempty"`
	Importance  int       `json:"importance,omitempty"` // 1-10
	Summary     string    `json:"summary,omitempty"`    // AI-generated, at most once
}

// GenerateID derives a stable article identity from source and URL. Re-fetching
// the same URL from the same source always yields the same ID, which is what
// makes replayed store writes harmless. The 12-hex-char prefix is considered
// collision-safe at this dataset scale.
func GenerateID(source, articleURL string) string {
	h := sha1.Sum([]byte(source + ":" + articleURL))
	return hex.EncodeToString(h[:])[:12]
}

// Normalize converts a provider record into a canonical Article. Category is
// assigned here, exactly once; importance and summary are filled later in the
// pipeline.
func Normalize(raw RawArticle) Article {
	imageURL := raw.ImageURL
	if imageURL == "" {
		imageURL = placeholderImage(raw.Title)
	}

	published := raw.PublishedAt
	if published.IsZero() {
		published = time.Now()
	}

	return Article{
		ID:          GenerateID(raw.Source, raw.URL),
		Title:       raw.Title,
		Description: raw.Description,
		FullContent: raw.FullContent,
		Source:      raw.Source,
		Category:    Categorize(raw.Title, raw.Description),
		ImageURL:    imageURL,
		URL:         raw.URL,
		PublishedAt: published,
		Language:    raw.Language,
	}
}

// placeholderImage builds a deterministic stand-in image URL seeded by the
// title prefix, so the same article always renders the same picture.
func placeholderImage(title string) string {
	seed := []rune(title)
	if len(seed) > 20 {
		seed = seed[:20]
	}
	return fmt.Sprintf("https://picsum.photos/seed/%s/600/400", url.QueryEscape(string(seed)))
}

// SortByDateDesc orders articles newest-first, in place. Fuzzy title dedup
// depends on this ordering: among near-duplicates the most recent survives.
func SortByDateDesc(articles []Article) {
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}
