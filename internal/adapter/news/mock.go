package news

import (
	"fmt"
	"strings"
	"time"

	"noobie-agent/internal/domain/model"
)

// MockArticles generates deterministic placeholder articles for a category.
// Used when the pipeline is exhausted and mock mode is enabled, so the rest
// of the run can still be exercised.
func MockArticles(category string, count int) []model.Article {
	title := titleCase(category)

	templates := []model.Article{
		{
			Title:   fmt.Sprintf("Breaking: Major Development in %s", title),
			Summary: fmt.Sprintf("Recent developments in %s show significant changes that could impact global markets and policy decisions.", category),
			Source:  "Mock News Network",
		},
		{
			Title:   fmt.Sprintf("%s Trends Show Positive Growth", title),
			Summary: fmt.Sprintf("Analysis of current %s trends indicates sustained growth and positive outlook for the coming months.", category),
			Source:  "Global Analysis Today",
		},
		{
			Title:   fmt.Sprintf("Expert Commentary on %s Developments", title),
			Summary: fmt.Sprintf("Leading experts weigh in on recent %s developments and their potential implications.", category),
			Source:  "Expert Insights",
		},
	}

	if count > len(templates) {
		count = len(templates)
	}

	now := time.Now().Format(time.RFC3339)
	articles := make([]model.Article, 0, count)
	for i := 0; i < count; i++ {
		article := templates[i]
		article.URL = fmt.Sprintf("https://mock-news.example/article-%d", i+1)
		article.PublishedDate = now
		article.Category = category
		article.Content = fmt.Sprintf("Full content for %s...", article.Title)
		articles = append(articles, article)
	}
	return articles
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
