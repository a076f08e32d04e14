package di

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"noobie-agent/internal/adapter/logging"
	"noobie-agent/internal/adapter/news"
	"noobie-agent/internal/adapter/publish"
	"noobie-agent/internal/adapter/writing"
	"noobie-agent/internal/app"
	"noobie-agent/internal/config"
	"noobie-agent/internal/domain/ports"
	"noobie-agent/internal/ratelimit"
	"noobie-agent/internal/retry"
	"noobie-agent/internal/usecase"
)

// requestSpacing is the minimum gap between any two outbound requests.
const requestSpacing = time.Second

func provideConfig(configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

func provideLogger(logger *slog.Logger) ports.Logger {
	return logging.New(logger)
}

func provideLimiter() *ratelimit.Limiter {
	return ratelimit.New(requestSpacing)
}

func provideRetryPolicy(cfg *config.Config) retry.Policy {
	policy := retry.DefaultPolicy()
	policy.MaxAttempts = cfg.RetryAttempts
	return policy
}

func provideAggregator(cfg *config.Config, logger ports.Logger, limiter *ratelimit.Limiter, policy retry.Policy) ports.ArticleProvider {
	var primary news.TopicSource
	if cfg.NewsAPIKey != "" {
		primary = news.NewClient(cfg.NewsAPIKey, cfg.RequestTimeout, limiter, logger,
			news.WithRetryPolicy(policy))
	}
	fallback := news.NewFeedSource(cfg.RequestTimeout, limiter, logger)
	return news.NewAggregator(primary, fallback, logger)
}

func provideWriter(cfg *config.Config, logger ports.Logger) ports.PostWriter {
	return writing.New(writing.Config{
		ClaudeAPIKey: cfg.ClaudeAPIKey,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		BlogTitle:    cfg.BlogTitle,
		AuthorName:   cfg.AuthorName,
		Timeout:      2 * time.Minute,
		AllowMock:    cfg.MockMode,
	}, logger)
}

func providePublisher(cfg *config.Config, logger ports.Logger) ports.Publisher {
	return publish.NewGitHub(publish.Config{
		Token:   cfg.GitHubToken,
		Repo:    cfg.GitHubRepo,
		Branch:  cfg.GitHubBranch,
		Timeout: cfg.RequestTimeout,
	}, logger)
}

func provideUsecaseConfig(cfg *config.Config) usecase.Config {
	cacheFile := cfg.CacheFile
	if cacheFile == "" {
		if path, err := news.DefaultCachePath(time.Now()); err == nil {
			cacheFile = path
		}
	}

	return usecase.Config{
		Topics:          cfg.Topics,
		PerTopicLimit:   cfg.PerTopicLimit,
		MaxArticles:     cfg.MaxArticles,
		MockMode:        cfg.MockMode,
		UploadToGitHub:  cfg.UploadToGitHub,
		SaveLocalBackup: cfg.SaveLocalBackup,
		OutputDir:       cfg.OutputDir,
		CacheFile:       cacheFile,
		MockArticles:    news.MockArticles,
	}
}

func provideDailyPost(
	articles ports.ArticleProvider,
	writer ports.PostWriter,
	publisher ports.Publisher,
	logger ports.Logger,
	cfg usecase.Config,
) *usecase.DailyPost {
	return usecase.NewDailyPost(articles, writer, publisher, logger, cfg)
}

func provideApp(daily *usecase.DailyPost, logger ports.Logger, cfg *config.Config) *app.App {
	return app.New(daily, logger, cfg.ScheduleCron)
}
