package news

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"

	"noobie-agent/internal/domain/model"
	"noobie-agent/internal/domain/ports"
	"noobie-agent/internal/ratelimit"
)

const defaultFeedEndpoint = "https://news.google.com/rss/search"

// FeedSource fetches articles from the public Google News search feed.
// No API key is required.
type FeedSource struct {
	parser   *gofeed.Parser
	endpoint string
	limiter  *ratelimit.Limiter
	logger   ports.Logger
}

// FeedOption customises a FeedSource.
type FeedOption func(*FeedSource)

// WithFeedEndpoint overrides the feed endpoint, mainly for tests.
func WithFeedEndpoint(endpoint string) FeedOption {
	return func(f *FeedSource) { f.endpoint = endpoint }
}

// NewFeedSource builds a syndication feed source.
func NewFeedSource(timeout time.Duration, limiter *ratelimit.Limiter, logger ports.Logger, opts ...FeedOption) *FeedSource {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	parser.UserAgent = userAgent

	f := &FeedSource{
		parser:   parser,
		endpoint: defaultFeedEndpoint,
		limiter:  limiter,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchByTopic parses the search feed for the topic. A malformed feed is
// logged and reported as zero results rather than an error.
func (f *FeedSource) FetchByTopic(ctx context.Context, topic string, limit int) ([]model.Article, error) {
	if limit <= 0 {
		limit = maxPageSize
	}

	params := url.Values{}
	params.Set("q", topic)
	params.Set("hl", "en-US")
	params.Set("gl", "US")
	params.Set("ceid", "US:en")
	feedURL := f.endpoint + "?" + params.Encode()

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		f.logger.Warn(ctx, "feed parse failed", "topic", topic, "error", err)
		return nil, nil
	}

	source := strings.TrimSpace(feed.Title)
	if source == "" {
		source = "RSS Feed"
	}

	articles := make([]model.Article, 0, limit)
	for _, item := range feed.Items {
		if len(articles) >= limit {
			break
		}

		published := item.Published
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.Format(time.RFC3339)
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		article := model.Article{
			Title:         strings.TrimSpace(item.Title),
			Summary:       strings.TrimSpace(htmlToText(summary)),
			URL:           item.Link,
			PublishedDate: published,
			Source:        source,
			Category:      topic,
		}
		if len(item.Authors) > 0 && item.Authors[0] != nil {
			article.Author = item.Authors[0].Name
		}
		if !article.Valid() {
			continue
		}
		articles = append(articles, article)
	}

	f.logger.Info(ctx, "fetched articles from feed", "topic", topic, "count", len(articles))
	return articles, nil
}

func htmlToText(input string) string {
	if input == "" {
		return ""
	}

	node, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return input
	}

	var builder strings.Builder
	extractText(node, &builder)
	return strings.Join(strings.Fields(builder.String()), " ")
}

func extractText(node *html.Node, builder *strings.Builder) {
	switch node.Type {
	case html.TextNode:
		builder.WriteString(node.Data)
	case html.ElementNode:
		if node.Data == "br" || node.Data == "p" || node.Data == "li" {
			builder.WriteRune(' ')
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		extractText(child, builder)
	}
}
