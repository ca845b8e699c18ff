package sources

import "testing"

func TestStripHTML(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<b>아리바이오</b> 임상 발표", "아리바이오 임상 발표"},
		{"plain text", "plain text"},
		{"  spaced   out  ", "spaced   out"},
		{"a &amp; b", "a & b"},
		{"<p>one</p><p>two</p>", "one two"},
		{"", ""},
	}

	for _, c := range cases {
		if got := stripHTML(c.in); got != c.want {
			t.Errorf("stripHTML(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFirstImage(t *testing.T) {
	html := `<p>text</p><img src="https://x.com/a.jpg"><img src="https://x.com/b.jpg">`
	if got := firstImage(html); got != "https://x.com/a.jpg" {
		t.Errorf("firstImage = %q", got)
	}
	if got := firstImage("<p>no images</p>"); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("가나다라", 2); got != "가나" {
		t.Errorf("truncateRunes korean = %q", got)
	}
	if got := truncateRunes("ab", 10); got != "ab" {
		t.Errorf("short string altered: %q", got)
	}
}

func TestIsKorean(t *testing.T) {
	if !isKorean("알츠하이머 치료제") {
		t.Error("korean text not detected")
	}
	if !isKorean("AriBio 아리바이오") {
		t.Error("mixed text not detected")
	}
	if isKorean("Alzheimer treatment") {
		t.Error("english text misdetected")
	}
}
