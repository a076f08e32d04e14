// Package writing composes daily blog posts from aggregated news articles
// using hosted language-model APIs.
package writing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"noobie-agent/internal/domain/model"
	"noobie-agent/internal/domain/ports"
)

const (
	defaultClaudeEndpoint = "https://api.anthropic.com/v1/messages"
	defaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"

	claudeModel      = "claude-sonnet-4-20250514"
	openAIModel      = "gpt-4o"
	anthropicVersion = "2023-06-01"

	maxResponseTokens = 4000
)

// Writer generates a blog post from articles, preferring the Claude API and
// falling back to OpenAI, then to deterministic mock content.
type Writer struct {
	httpClient     *http.Client
	claudeKey      string
	openAIKey      string
	claudeEndpoint string
	openAIEndpoint string
	blogTitle      string
	author         string
	allowMock      bool
	logger         ports.Logger
}

var _ ports.PostWriter = (*Writer)(nil)

// Option customises a Writer.
type Option func(*Writer)

// WithClaudeEndpoint overrides the Claude API endpoint, mainly for tests.
func WithClaudeEndpoint(endpoint string) Option {
	return func(w *Writer) { w.claudeEndpoint = endpoint }
}

// WithOpenAIEndpoint overrides the OpenAI API endpoint, mainly for tests.
func WithOpenAIEndpoint(endpoint string) Option {
	return func(w *Writer) { w.openAIEndpoint = endpoint }
}

// Config carries the writer's construction parameters.
type Config struct {
	ClaudeAPIKey string
	OpenAIAPIKey string
	BlogTitle    string
	AuthorName   string
	Timeout      time.Duration
	AllowMock    bool
}

// New builds a Writer.
func New(cfg Config, logger ports.Logger, opts ...Option) *Writer {
	w := &Writer{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		claudeKey:      cfg.ClaudeAPIKey,
		openAIKey:      cfg.OpenAIAPIKey,
		claudeEndpoint: defaultClaudeEndpoint,
		openAIEndpoint: defaultOpenAIEndpoint,
		blogTitle:      cfg.BlogTitle,
		author:         cfg.AuthorName,
		allowMock:      cfg.AllowMock,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Compose generates a structured blog post from the article batch.
func (w *Writer) Compose(ctx context.Context, articles []model.Article) (*model.Post, error) {
	if len(articles) == 0 {
		return nil, fmt.Errorf("no articles provided for blog generation")
	}

	prompt := w.buildPrompt(articles)

	var content string
	if w.claudeKey != "" {
		text, err := w.callClaude(ctx, prompt)
		if err != nil {
			w.logger.Warn(ctx, "claude call failed", "error", err)
		} else {
			content = text
		}
	}

	if content == "" && w.openAIKey != "" {
		w.logger.Info(ctx, "falling back to openai")
		text, err := w.callOpenAI(ctx, prompt)
		if err != nil {
			w.logger.Warn(ctx, "openai call failed", "error", err)
		} else {
			content = text
		}
	}

	if content == "" {
		if !w.allowMock {
			return nil, fmt.Errorf("all writer backends failed")
		}
		w.logger.Warn(ctx, "using mock blog content")
		content = mockContent(articles)
	}

	post := w.parsePost(content, articles)
	w.logger.Info(ctx, "blog post generated",
		"title", post.Title,
		"words", post.WordCount,
		"tags", len(post.Tags))
	return post, nil
}

func (w *Writer) systemPrompt() string {
	var b strings.Builder
	b.WriteString("You are an intelligent blog writer that creates thoughtful, engaging daily posts about global news and trends.\n\n")
	b.WriteString("Your writing style: professional yet accessible tone, analytical commentary, clear headings, engaging introduction and conclusion.\n")
	b.WriteString("Blog specifications: 800-1500 words, 3-5 main sections with subheadings, compelling headline, analysis rather than reporting.\n\n")
	fmt.Fprintf(&b, "Author: %s\nBlog: %s\n\n", w.author, w.blogTitle)
	b.WriteString("Always maintain objectivity while providing thoughtful analysis of current events.")
	return b.String()
}

func (w *Writer) buildPrompt(articles []model.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on the following news articles from %s, create a comprehensive blog post that analyzes the key themes and developments:\n\n", time.Now().Format("January 2, 2006"))

	for i, article := range articles {
		fmt.Fprintf(&b, "**Article %d:**\n", i+1)
		fmt.Fprintf(&b, "Title: %s\n", article.Title)
		fmt.Fprintf(&b, "Source: %s\n", article.Source)
		fmt.Fprintf(&b, "Summary: %s\n", article.Summary)
		fmt.Fprintf(&b, "Category: %s\n", article.Category)
		fmt.Fprintf(&b, "URL: %s\n\n", article.URL)
	}

	b.WriteString("Please create a blog post with:\n")
	b.WriteString("1. A compelling title that captures the main themes\n")
	b.WriteString("2. An engaging introduction\n")
	b.WriteString("3. 3-4 main sections with descriptive subheadings\n")
	b.WriteString("4. Thoughtful analysis connecting the different stories\n")
	b.WriteString("5. A conclusion that looks forward to implications\n\n")
	b.WriteString("Format the response as a complete blog post in markdown, starting with a single '# ' title line.")
	return b.String()
}

func (w *Writer) callClaude(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model":       claudeModel,
		"max_tokens":  maxResponseTokens,
		"temperature": 0.7,
		"system":      w.systemPrompt(),
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal claude payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.claudeEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create claude request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", w.claudeKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	respBody, err := w.do(req)
	if err != nil {
		return "", err
	}

	var response struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(respBody, &response); err != nil {
		return "", fmt.Errorf("decode claude response: %w", err)
	}
	if len(response.Content) == 0 || strings.TrimSpace(response.Content[0].Text) == "" {
		return "", fmt.Errorf("claude returned empty content")
	}
	return strings.TrimSpace(response.Content[0].Text), nil
}

func (w *Writer) callOpenAI(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model": openAIModel,
		"messages": []map[string]string{
			{"role": "system", "content": w.systemPrompt()},
			{"role": "user", "content": prompt},
		},
		"max_tokens":  maxResponseTokens,
		"temperature": 0.7,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal openai payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.openAIEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create openai request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.openAIKey)

	respBody, err := w.do(req)
	if err != nil {
		return "", err
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &response); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(response.Choices) == 0 || strings.TrimSpace(response.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("openai returned empty content")
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

func (w *Writer) do(req *http.Request) ([]byte, error) {
	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
