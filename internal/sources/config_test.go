package sources

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `
googleNews:
  - { query: "아리바이오", lang: ko }
  - { query: "lecanemab Alzheimer", lang: en }

feeds:
  - { url: "https://www.alzforum.org/rss.xml", source: "Alzforum", alzSpecific: true }
  - { url: "https://www.statnews.com/feed/", source: "STAT News", alzSpecific: false }

naverQueries:
  - "아리바이오"

alzKeywords:
  - alzheimer
  - 치매

blocklist:
  domains: [spam.com]
  sources: ["Spam Daily"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSourcesConfig(t *testing.T) {
	f, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// 2 static feeds + 2 expanded Google News queries
	if len(f.Feeds) != 4 {
		t.Fatalf("expected 4 feeds, got %d", len(f.Feeds))
	}

	var koFeed, enFeed string
	for _, feed := range f.Feeds {
		if feed.Source != "Google News" {
			continue
		}
		if !feed.AlzSpecific {
			t.Error("expanded Google News feeds must be alzSpecific")
		}
		if strings.Contains(feed.URL, "ceid=KR:ko") {
			koFeed = feed.URL
		} else {
			enFeed = feed.URL
		}
	}
	if koFeed == "" || enFeed == "" {
		t.Fatalf("expected one Korean and one English Google News feed")
	}
	if !strings.Contains(koFeed, "when%3A30d") {
		t.Errorf("query must include the 30-day window: %q", koFeed)
	}

	if len(f.NaverQuery) != 1 || f.NaverQuery[0] != "아리바이오" {
		t.Errorf("naver queries wrong: %v", f.NaverQuery)
	}
	if len(f.Blocklist.Domains) != 1 || f.Blocklist.Domains[0] != "spam.com" {
		t.Errorf("blocklist wrong: %+v", f.Blocklist)
	}
	if len(f.AlzKeywords) != 2 {
		t.Errorf("keywords wrong: %v", f.AlzKeywords)
	}
}

func TestLoadSourcesConfig_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadSourcesConfig_BadYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "feeds: [unclosed")); err == nil {
		t.Error("expected an error for invalid YAML")
	}
}
