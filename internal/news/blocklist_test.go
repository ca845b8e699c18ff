package news

import "testing"

func TestBlocklist_Domains(t *testing.T) {
	b := Blocklist{Domains: []string{"spamnews.com"}}

	cases := []struct {
		url  string
		want bool
	}{
		{"https://spamnews.com/article", true},
		{"https://www.spamnews.com/article", true},
		{"https://sub.spamnews.com/article", true},
		{"https://notspamnews.com/article", false},
		{"https://example.com/spamnews.com", false},
	}

	for _, c := range cases {
		if got := b.Blocked(Article{URL: c.url}); got != c.want {
			t.Errorf("Blocked(%q) = %v, want %v", c.url, got, c.want)
		}
	}
}

func TestBlocklist_SourceSuffix(t *testing.T) {
	b := Blocklist{Sources: []string{"Spam Daily"}}

	if !b.Blocked(Article{Title: "Big news today - Spam Daily", URL: "https://news.google.com/x"}) {
		t.Error("Google News source suffix should be blocked")
	}
	if b.Blocked(Article{Title: "Spam Daily under scrutiny", URL: "https://news.google.com/x"}) {
		t.Error("source name in the middle of a title must not block")
	}
}

func TestBlocklist_Filter(t *testing.T) {
	b := Blocklist{Domains: []string{"bad.com"}}
	articles := []Article{
		{URL: "https://good.com/1"},
		{URL: "https://bad.com/1"},
		{URL: "https://good.com/2"},
	}

	kept, dropped := b.Filter(articles)
	if len(kept) != 2 || dropped != 1 {
		t.Errorf("Filter returned %d kept / %d dropped, want 2/1", len(kept), dropped)
	}
}

func TestBlocklist_EmptyPassesEverything(t *testing.T) {
	var b Blocklist
	articles := []Article{{URL: "https://any.com/1"}}
	kept, dropped := b.Filter(articles)
	if len(kept) != 1 || dropped != 0 {
		t.Errorf("empty blocklist must pass everything, got %d/%d", len(kept), dropped)
	}
}
