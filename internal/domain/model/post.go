package model

import (
	"fmt"
	"strings"
	"time"
)

// Post is a generated blog post ready for publication.
type Post struct {
	Title          string
	Content        string
	Summary        string
	Tags           []string
	Category       string
	PublishedAt    time.Time
	Author         string
	WordCount      int
	SEOTitle       string
	SEODescription string
}

// Markdown renders the post as a Jekyll document with YAML front matter.
func (p Post) Markdown() string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("layout: post\n")
	fmt.Fprintf(&b, "title: %q\n", p.Title)
	fmt.Fprintf(&b, "date: %s\n", p.PublishedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "author: %q\n", p.Author)
	fmt.Fprintf(&b, "categories: [%s]\n", p.Category)

	quoted := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		quoted = append(quoted, fmt.Sprintf("%q", tag))
	}
	fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(quoted, ", "))

	fmt.Fprintf(&b, "excerpt: %q\n", p.Summary)
	seoTitle := p.SEOTitle
	if seoTitle == "" {
		seoTitle = p.Title
	}
	seoDescription := p.SEODescription
	if seoDescription == "" {
		seoDescription = p.Summary
	}
	fmt.Fprintf(&b, "seo_title: %q\n", seoTitle)
	fmt.Fprintf(&b, "seo_description: %q\n", seoDescription)
	fmt.Fprintf(&b, "word_count: %d\n", p.WordCount)
	fmt.Fprintf(&b, "reading_time: %d\n", p.ReadingTime())
	b.WriteString("---\n\n")
	b.WriteString(p.Content)
	return b.String()
}

// ReadingTime estimates reading time in minutes at 200 words per minute.
func (p Post) ReadingTime() int {
	minutes := p.WordCount / 200
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Slug derives a URL-safe slug from the post title, capped at 50 characters.
func (p Post) Slug() string {
	var b strings.Builder
	for _, r := range strings.ToLower(p.Title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")
	if len(slug) > 50 {
		slug = strings.Trim(slug[:50], "-")
	}
	if slug == "" {
		slug = "daily-post"
	}
	return slug
}

// Filename returns the Jekyll _posts path for the post.
func (p Post) Filename() string {
	return fmt.Sprintf("_posts/%s-%s.md", p.PublishedAt.Format("2006-01-02"), p.Slug())
}
