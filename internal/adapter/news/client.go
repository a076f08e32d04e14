package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"noobie-agent/internal/domain/model"
	"noobie-agent/internal/domain/ports"
	"noobie-agent/internal/ratelimit"
	"noobie-agent/internal/retry"
)

const (
	defaultSearchEndpoint = "https://gnews.io/api/v4/search"

	// The keyed search API rejects page sizes above 10.
	maxPageSize = 10

	userAgent = "noobie-agent/1.0 (news aggregator)"
)

// Client queries the keyed news search API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	limiter    *ratelimit.Limiter
	policy     retry.Policy
	logger     ports.Logger
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithEndpoint overrides the search endpoint, mainly for tests.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithRetryPolicy overrides the retry policy.
func WithRetryPolicy(policy retry.Policy) ClientOption {
	return func(c *Client) { c.policy = policy }
}

// NewClient builds a keyed search API client.
func NewClient(apiKey string, timeout time.Duration, limiter *ratelimit.Limiter, logger ports.Logger, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   defaultSearchEndpoint,
		apiKey:     apiKey,
		limiter:    limiter,
		policy:     retry.DefaultPolicy(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Content     string `json:"content"`
		Author      string `json:"author"`
		Image       string `json:"image"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// FetchByTopic queries the search API with the topic as the query string.
// Transport and HTTP failures are retried with backoff before surfacing.
func (c *Client) FetchByTopic(ctx context.Context, topic string, limit int) ([]model.Article, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("news api key not configured")
	}
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}

	params := url.Values{}
	params.Set("q", topic)
	params.Set("lang", "en")
	params.Set("country", "us")
	params.Set("max", fmt.Sprint(limit))
	params.Set("apikey", c.apiKey)
	requestURL := c.endpoint + "?" + params.Encode()

	var payload searchResponse
	err := retry.Do(ctx, c.policy, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		return c.fetchOnce(ctx, requestURL, &payload)
	})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", topic, err)
	}

	articles := make([]model.Article, 0, len(payload.Articles))
	for _, item := range payload.Articles {
		if len(articles) >= limit {
			break
		}
		source := item.Source.Name
		if source == "" {
			source = "Unknown"
		}
		article := model.Article{
			Title:         item.Title,
			Summary:       item.Description,
			URL:           item.URL,
			PublishedDate: item.PublishedAt,
			Source:        source,
			Category:      topic,
			Content:       item.Content,
			Author:        item.Author,
			ImageURL:      item.Image,
		}
		if !article.Valid() {
			continue
		}
		articles = append(articles, article)
	}

	c.logger.Info(ctx, "fetched articles from search api", "topic", topic, "count", len(articles))
	return articles, nil
}

func (c *Client) fetchOnce(ctx context.Context, requestURL string, payload *searchResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	*payload = searchResponse{}
	if err := json.NewDecoder(resp.Body).Decode(payload); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
