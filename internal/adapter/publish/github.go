// Package publish pushes generated posts to a GitHub Pages repository
// through the contents API.
package publish

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"noobie-agent/internal/domain/model"
	"noobie-agent/internal/domain/ports"
)

const defaultAPIBase = "https://api.github.com"

// GitHub publishes posts as Jekyll documents via the repository contents API.
type GitHub struct {
	httpClient *http.Client
	apiBase    string
	token      string
	repo       string
	branch     string
	logger     ports.Logger
}

var _ ports.Publisher = (*GitHub)(nil)

// Option customises a GitHub publisher.
type Option func(*GitHub)

// WithAPIBase overrides the GitHub API base URL, mainly for tests.
func WithAPIBase(base string) Option {
	return func(g *GitHub) { g.apiBase = base }
}

// Config carries the publisher's construction parameters.
type Config struct {
	Token   string
	Repo    string // owner/name
	Branch  string
	Timeout time.Duration
}

// NewGitHub builds a GitHub publisher.
func NewGitHub(cfg Config, logger ports.Logger, opts ...Option) *GitHub {
	g := &GitHub{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiBase:    defaultAPIBase,
		token:      cfg.Token,
		repo:       cfg.Repo,
		branch:     cfg.Branch,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Publish commits the post to the repository, updating the file when it
// already exists.
func (g *GitHub) Publish(ctx context.Context, post *model.Post) (model.PublishResult, error) {
	if g.token == "" {
		return model.PublishResult{Success: false, Message: "github token not configured"},
			fmt.Errorf("github token not configured")
	}

	filename := post.Filename()
	sha, err := g.fileSHA(ctx, filename)
	if err != nil {
		return model.PublishResult{Success: false, Message: err.Error()}, err
	}

	action := "Add"
	if sha != "" {
		action = "Update"
	}
	message := fmt.Sprintf("%s blog post: %s\n\nWord count: %d", action, post.Title, post.WordCount)

	commitSHA, err := g.putFile(ctx, filename, post.Markdown(), message, sha)
	if err != nil {
		return model.PublishResult{Success: false, Message: err.Error()}, err
	}

	result := model.PublishResult{
		Success:   true,
		Message:   fmt.Sprintf("published: %s", post.Title),
		URL:       g.pagesURL(post),
		CommitSHA: commitSHA,
	}
	g.logger.Info(ctx, "blog post published",
		"file", filename,
		"commit", commitSHA,
		"url", result.URL)
	return result, nil
}

// fileSHA returns the blob SHA of an existing file, or empty when the file
// does not exist yet.
func (g *GitHub) fileSHA(ctx context.Context, path string) (string, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/contents/%s", g.apiBase, g.repo, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	g.setHeaders(req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("get file %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get file %s: status %d", path, resp.StatusCode)
	}

	var file struct {
		SHA string `json:"sha"`
	}
	if err := json.Unmarshal(body, &file); err != nil {
		return "", fmt.Errorf("decode file response: %w", err)
	}
	return file.SHA, nil
}

func (g *GitHub) putFile(ctx context.Context, path, content, message, sha string) (string, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/contents/%s", g.apiBase, g.repo, path)

	payload := map[string]any{
		"message": message,
		"content": base64.StdEncoding.EncodeToString([]byte(content)),
		"branch":  g.branch,
	}
	if sha != "" {
		payload["sha"] = sha
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	g.setHeaders(req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("put file %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("put file %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var result struct {
		Commit struct {
			SHA string `json:"sha"`
		} `json:"commit"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decode commit response: %w", err)
	}
	return result.Commit.SHA, nil
}

func (g *GitHub) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "token "+g.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "noobie-agent/1.0")
}

// pagesURL derives the GitHub Pages URL for the post, handling both user
// pages (owner.github.io repos) and project pages.
func (g *GitHub) pagesURL(post *model.Post) string {
	owner, name, ok := strings.Cut(g.repo, "/")
	if !ok {
		return ""
	}
	owner = strings.ToLower(owner)

	base := fmt.Sprintf("https://%s.github.io", owner)
	if !strings.EqualFold(name, owner+".github.io") {
		base += "/" + name
	}

	return fmt.Sprintf("%s/%s/%s/", base, post.PublishedAt.Format("2006/01/02"), post.Slug())
}
