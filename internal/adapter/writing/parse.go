package writing

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"noobie-agent/internal/domain/model"
)

var topicKeywords = map[string][]string{
	"politics":      {"political", "government", "policy", "election"},
	"economics":     {"economic", "market", "financial", "trade"},
	"technology":    {"technology", "ai", "digital", "innovation"},
	"international": {"international", "global", "world", "diplomatic"},
	"business":      {"business", "corporate", "industry", "company"},
}

// parsePost structures raw generated markdown into a Post.
func (w *Writer) parsePost(content string, articles []model.Article) *model.Post {
	now := time.Now()

	title := extractTitle(content)
	if title == "" {
		title = fmt.Sprintf("Daily Global Analysis - %s", now.Format("January 2, 2006"))
	}

	summary := extractSummary(content)
	if summary == "" {
		summary = "Daily AI-powered analysis of global news and trends."
	}

	category := "global-news"
	if len(articles) > 0 {
		category = articles[0].Category
	}

	seoDescription := summary
	if len(seoDescription) > 155 {
		seoDescription = seoDescription[:155] + "..."
	}

	return &model.Post{
		Title:          title,
		Content:        content,
		Summary:        summary,
		Tags:           generateTags(content, articles),
		Category:       category,
		PublishedAt:    now,
		Author:         w.author,
		WordCount:      len(strings.Fields(content)),
		SEOTitle:       fmt.Sprintf("%s | %s", title, w.blogTitle),
		SEODescription: seoDescription,
	}
}

func extractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(after)
		}
	}
	return ""
}

func extractSummary(content string) string {
	for _, paragraph := range strings.Split(content, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" || strings.HasPrefix(paragraph, "#") {
			continue
		}
		paragraph = strings.Join(strings.Fields(paragraph), " ")
		if len(paragraph) > 200 {
			paragraph = paragraph[:200] + "..."
		}
		return paragraph
	}
	return ""
}

func generateTags(content string, articles []model.Article) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0, 10)

	add := func(tag string) {
		tag = strings.TrimSpace(strings.ToLower(tag))
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		if len(tags) < 10 {
			tags = append(tags, tag)
		}
	}

	for _, base := range []string{"daily-update", "ai-generated", "global-news", "analysis"} {
		add(base)
	}

	for _, article := range articles {
		for _, word := range strings.Fields(article.Category) {
			add(word)
		}
	}

	topics := make([]string, 0, len(topicKeywords))
	for tag := range topicKeywords {
		topics = append(topics, tag)
	}
	sort.Strings(topics)

	lower := strings.ToLower(content)
	for _, tag := range topics {
		for _, keyword := range topicKeywords[tag] {
			if strings.Contains(lower, keyword) {
				add(tag)
				break
			}
		}
	}

	return tags
}

func mockContent(articles []model.Article) string {
	date := time.Now().Format("January 2, 2006")

	categories := make(map[string]struct{})
	for _, article := range articles {
		categories[article.Category] = struct{}{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Today's Global Pulse - %s\n\n", date)
	fmt.Fprintf(&b, "Our system analyzed %d articles across %d categories to bring you this overview of today's developments.\n\n", len(articles), len(categories))
	b.WriteString("## Key Developments\n\n")
	for _, article := range articles {
		fmt.Fprintf(&b, "- **%s** (%s): %s\n", article.Title, article.Source, article.Summary)
	}
	b.WriteString("\n## Looking Forward\n\n")
	b.WriteString("Today's stories highlight the interconnected nature of global politics, markets, and technology. ")
	b.WriteString("We will continue tracking these themes in tomorrow's update.\n")
	return b.String()
}
