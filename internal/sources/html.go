package sources

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// stripHTML flattens markup into plain text. Naver and some RSS descriptions
// embed <b> highlighting and entities.
func stripHTML(html string) string {
	if !strings.ContainsAny(html, "<&") {
		return strings.TrimSpace(html)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.TrimSpace(strings.Join(strings.Fields(doc.Text()), " "))
}

// firstImage returns the src of the first <img> in an HTML fragment, or "".
func firstImage(html string) string {
	if !strings.Contains(html, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return src
}

// truncateRunes caps a string at n runes; descriptions are stored truncated.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// isKorean reports whether the text contains Hangul syllables. Mixed-language
// sources use this heuristic for the language tag; anything else defaults to
// English.
func isKorean(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}
