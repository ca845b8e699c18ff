package news

import "strings"

// NormalizeURL strips trailing slashes and lowercases, producing the natural
// dedup key and the key of both store tiers.
func NormalizeURL(u string) string {
	return strings.ToLower(strings.TrimRight(u, "/"))
}

// DeduplicateByURL keeps the first occurrence per normalized URL, preserving
// input order. This pass handles syndication and mirror duplicates.
func DeduplicateByURL(articles []Article) []Article {
	seen := make(map[string]struct{}, len(articles))
	result := make([]Article, 0, len(articles))

	for _, a := range articles {
		key := NormalizeURL(a.URL)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, a)
	}

	return result
}

// titlePunctuation is stripped before building bigrams. Covers ASCII and the
// dash/quote/middle-dot variants common in Korean headlines.
const titlePunctuation = " \t\n,.–—-·:;'\"!?()[]{}"

// bigrams returns the set of overlapping 2-character substrings of the title
// after whitespace/punctuation removal and lowercasing. Character bigrams work
// for Korean and mixed-script text where word tokenization does not.
func bigrams(text string) map[string]struct{} {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if !strings.ContainsRune(titlePunctuation, r) {
			b.WriteRune(r)
		}
	}

	runes := []rune(b.String())
	set := make(map[string]struct{})
	for i := 0; i+1 < len(runes); i++ {
		set[string(runes[i:i+2])] = struct{}{}
	}
	return set
}

// TitleSimilarity computes bigram overlap normalized by the smaller set:
// |A ∩ B| / min(|A|, |B|). Normalizing by the smaller set is deliberately
// permissive toward short titles contained within longer ones. Two empty sets
// yield 0, never a duplicate.
func TitleSimilarity(a, b string) float64 {
	setA := bigrams(a)
	setB := bigrams(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersection++
		}
	}

	smaller := len(setA)
	if len(setB) < smaller {
		smaller = len(setB)
	}
	return float64(intersection) / float64(smaller)
}

// TitleSimilarityThreshold marks two titles as the same story.
const TitleSimilarityThreshold = 0.5

// DeduplicateByTitle drops articles whose title is similar to an earlier kept
// article or to any of existingTitles (titles already in the store). The input
// must be sorted newest-first so that the most recent near-duplicate survives.
func DeduplicateByTitle(articles []Article, existingTitles []string) []Article {
	result := make([]Article, 0, len(articles))

	for _, article := range articles {
		if similarToAny(article.Title, existingTitles) {
			continue
		}
		dup := false
		for _, kept := range result {
			if TitleSimilarity(kept.Title, article.Title) >= TitleSimilarityThreshold {
				dup = true
				break
			}
		}
		if !dup {
			result = append(result, article)
		}
	}

	return result
}

func similarToAny(title string, titles []string) bool {
	for _, t := range titles {
		if TitleSimilarity(t, title) >= TitleSimilarityThreshold {
			return true
		}
	}
	return false
}
