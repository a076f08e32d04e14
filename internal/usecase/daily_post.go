package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"noobie-agent/internal/adapter/logging"
	"noobie-agent/internal/adapter/news"
	"noobie-agent/internal/domain/model"
	"noobie-agent/internal/domain/ports"
)

// ErrNoArticles signals that no topic yielded any article from any source.
// This is the only pipeline-level failure; per-source failures degrade to
// fewer articles instead.
var ErrNoArticles = errors.New("no articles fetched from any source")

// DailyPost orchestrates the daily run: aggregate news, compose a blog
// post, and publish it.
type DailyPost struct {
	articles  ports.ArticleProvider
	writer    ports.PostWriter
	publisher ports.Publisher
	logger    ports.Logger
	cfg       Config
}

// Config controls the daily post workflow.
type Config struct {
	Topics          []string
	PerTopicLimit   int
	MaxArticles     int
	MockMode        bool
	UploadToGitHub  bool
	SaveLocalBackup bool
	OutputDir       string
	CacheFile       string
	// MockArticles supplies placeholder articles when the pipeline is
	// exhausted and mock mode is enabled.
	MockArticles func(category string, count int) []model.Article
}

// NewDailyPost constructs the daily post use case.
func NewDailyPost(
	articles ports.ArticleProvider,
	writer ports.PostWriter,
	publisher ports.Publisher,
	logger ports.Logger,
	cfg Config,
) *DailyPost {
	return &DailyPost{
		articles:  articles,
		writer:    writer,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
	}
}

// Run executes one fetch -> compose -> publish cycle.
func (d *DailyPost) Run(ctx context.Context) (err error) {
	op := logging.Begin(ctx, d.logger, "daily blog generation")
	defer func() { op.End(err) }()

	articles, err := d.fetchArticles(ctx)
	if err != nil {
		return err
	}

	d.saveCache(ctx, articles)

	post, err := d.writer.Compose(ctx, articles)
	if err != nil {
		return fmt.Errorf("compose post: %w", err)
	}

	d.saveBackup(ctx, post)

	if !d.cfg.UploadToGitHub {
		d.logger.Info(ctx, "github upload disabled, skipping publish", "title", post.Title)
		return nil
	}

	result, err := d.publisher.Publish(ctx, post)
	if err != nil {
		return fmt.Errorf("publish post: %w", err)
	}

	d.logger.Info(ctx, "daily post completed",
		"articles", len(articles),
		"title", post.Title,
		"words", post.WordCount,
		"url", result.URL,
		"commit", result.CommitSHA)
	return nil
}

// FetchOnly aggregates articles and writes the cache without composing or
// publishing. Backs the `fetch` CLI command.
func (d *DailyPost) FetchOnly(ctx context.Context) ([]model.Article, error) {
	articles, err := d.fetchArticles(ctx)
	if err != nil {
		return nil, err
	}
	d.saveCache(ctx, articles)
	return articles, nil
}

func (d *DailyPost) fetchArticles(ctx context.Context) ([]model.Article, error) {
	articles, err := d.articles.FetchTrending(ctx, d.cfg.Topics, d.cfg.PerTopicLimit, d.cfg.MaxArticles)
	if err != nil {
		return nil, fmt.Errorf("fetch trending news: %w", err)
	}

	if len(articles) == 0 {
		if !d.cfg.MockMode || d.cfg.MockArticles == nil {
			return nil, ErrNoArticles
		}
		d.logger.Warn(ctx, "no articles fetched, using placeholder content")
		articles = d.cfg.MockArticles("global news", 3)
	}

	d.logger.Info(ctx, "articles ready for processing", "count", len(articles))
	return articles, nil
}

func (d *DailyPost) saveCache(ctx context.Context, articles []model.Article) {
	if d.cfg.CacheFile == "" {
		return
	}
	if err := news.SaveCache(d.cfg.CacheFile, articles); err != nil {
		d.logger.Warn(ctx, "failed to write article cache", "path", d.cfg.CacheFile, "error", err)
		return
	}
	d.logger.Info(ctx, "articles cached", "path", d.cfg.CacheFile, "count", len(articles))
}

func (d *DailyPost) saveBackup(ctx context.Context, post *model.Post) {
	if !d.cfg.SaveLocalBackup || d.cfg.OutputDir == "" {
		return
	}

	if err := os.MkdirAll(d.cfg.OutputDir, 0o755); err != nil {
		d.logger.Warn(ctx, "failed to create backup dir", "dir", d.cfg.OutputDir, "error", err)
		return
	}

	path := filepath.Join(d.cfg.OutputDir, filepath.Base(post.Filename()))
	if err := os.WriteFile(path, []byte(post.Markdown()), 0o644); err != nil {
		d.logger.Warn(ctx, "failed to write local backup", "path", path, "error", err)
		return
	}
	d.logger.Info(ctx, "local backup saved", "path", path)
}
