package news

import (
	"strings"

	"noobie-agent/internal/domain/model"
)

// similarityThreshold is the Jaccard similarity above which two titles are
// considered near-duplicates.
const similarityThreshold = 0.7

// Deduplicate removes near-duplicate articles by token overlap on titles.
// The first occurrence wins; input order is preserved. Quadratic in the
// number of articles, which stays in the tens per run.
func Deduplicate(articles []model.Article) []model.Article {
	unique := make([]model.Article, 0, len(articles))
	seen := make([]map[string]struct{}, 0, len(articles))

	for _, article := range articles {
		tokens := titleTokens(article.Title)

		duplicate := false
		for _, accepted := range seen {
			if jaccard(tokens, accepted) > similarityThreshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		unique = append(unique, article)
		seen = append(seen, tokens)
	}

	return unique
}

func titleTokens(title string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(title)) {
		tokens[word] = struct{}{}
	}
	return tokens
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for token := range a {
		if _, ok := b[token]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
