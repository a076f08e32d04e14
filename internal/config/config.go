// Package config loads runtime configuration through an ordered list of
// layers. Each layer contributes only the keys it explicitly sets, so a
// value equal to a default is still distinguishable from an unset one.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingNewsAPIKey  = errors.New("news_api_key is required")
	ErrMissingWriterKey   = errors.New("at least one of claude_api_key or openai_api_key is required")
	ErrMissingGitHubToken = errors.New("github_token is required when upload_to_github is enabled")
	ErrInvalidGitHubRepo  = errors.New("github_repo must be in owner/name form")
	ErrInvalidMaxArticles = errors.New("max_articles must be between 1 and 20")
	ErrInvalidRetries     = errors.New("retry_attempts must be between 1 and 10")
	ErrNoTopics           = errors.New("at least one news topic is required")
)

// Config contains runtime configuration values.
type Config struct {
	NewsAPIKey   string `yaml:"news_api_key"`
	ClaudeAPIKey string `yaml:"claude_api_key"`
	OpenAIAPIKey string `yaml:"openai_api_key"`

	GitHubToken  string `yaml:"github_token"`
	GitHubRepo   string `yaml:"github_repo"`
	GitHubBranch string `yaml:"github_branch"`

	BlogTitle       string `yaml:"blog_title"`
	BlogDescription string `yaml:"blog_description"`
	AuthorName      string `yaml:"author_name"`

	Topics         []string      `yaml:"topics"`
	MaxArticles    int           `yaml:"max_articles"`
	PerTopicLimit  int           `yaml:"per_topic_limit"`
	RetryAttempts  int           `yaml:"retry_attempts"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	ScheduleCron   string        `yaml:"schedule_cron"`

	UploadToGitHub  bool `yaml:"upload_to_github"`
	SaveLocalBackup bool `yaml:"save_local_backup"`
	MockMode        bool `yaml:"mock_mode"`

	OutputDir string `yaml:"output_dir"`
	CacheFile string `yaml:"cache_file"`
	LogLevel  string `yaml:"log_level"`
}

// Default returns the base configuration layer.
func Default() *Config {
	return &Config{
		GitHubBranch:    "main",
		BlogTitle:       "Daily News Intelligence",
		BlogDescription: "AI-powered daily analysis of global news and trends",
		AuthorName:      "Noobie Agent",
		Topics: []string{
			"global politics",
			"technology trends",
			"economic developments",
			"international affairs",
			"breaking news",
		},
		MaxArticles:     8,
		PerTopicLimit:   3,
		RetryAttempts:   3,
		RequestTimeout:  30 * time.Second,
		ScheduleCron:    "0 8 * * *", // 08:00 UTC every day
		UploadToGitHub:  true,
		SaveLocalBackup: true,
		OutputDir:       "blog_output",
		LogLevel:        "info",
	}
}

// Load resolves configuration as defaults, then the YAML file at path (when
// it exists), then environment variables. Later layers win key by key.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		fileLayer, err := fromFile(path)
		if err != nil {
			return nil, err
		}
		fileLayer.apply(cfg)
	}

	fromEnv().apply(cfg)
	return cfg, nil
}

// Validate returns every configuration problem joined into one error.
func (c *Config) Validate() error {
	var errs []error

	if !c.MockMode && c.NewsAPIKey == "" {
		errs = append(errs, ErrMissingNewsAPIKey)
	}
	if !c.MockMode && c.ClaudeAPIKey == "" && c.OpenAIAPIKey == "" {
		errs = append(errs, ErrMissingWriterKey)
	}
	if c.UploadToGitHub {
		if c.GitHubToken == "" {
			errs = append(errs, ErrMissingGitHubToken)
		}
		if owner, name, ok := strings.Cut(c.GitHubRepo, "/"); !ok || owner == "" || name == "" {
			errs = append(errs, ErrInvalidGitHubRepo)
		}
	}
	if c.MaxArticles < 1 || c.MaxArticles > 20 {
		errs = append(errs, ErrInvalidMaxArticles)
	}
	if c.RetryAttempts < 1 || c.RetryAttempts > 10 {
		errs = append(errs, ErrInvalidRetries)
	}
	if len(c.Topics) == 0 {
		errs = append(errs, ErrNoTopics)
	}

	return errors.Join(errs...)
}

// overlay is a single configuration layer. Nil fields were not set by the
// layer and leave the underlying value untouched.
type overlay struct {
	NewsAPIKey   *string `yaml:"news_api_key"`
	ClaudeAPIKey *string `yaml:"claude_api_key"`
	OpenAIAPIKey *string `yaml:"openai_api_key"`

	GitHubToken  *string `yaml:"github_token"`
	GitHubRepo   *string `yaml:"github_repo"`
	GitHubBranch *string `yaml:"github_branch"`

	BlogTitle       *string `yaml:"blog_title"`
	BlogDescription *string `yaml:"blog_description"`
	AuthorName      *string `yaml:"author_name"`

	Topics         []string       `yaml:"topics"`
	MaxArticles    *int           `yaml:"max_articles"`
	PerTopicLimit  *int           `yaml:"per_topic_limit"`
	RetryAttempts  *int           `yaml:"retry_attempts"`
	RequestTimeout *time.Duration `yaml:"request_timeout"`
	ScheduleCron   *string        `yaml:"schedule_cron"`

	UploadToGitHub  *bool `yaml:"upload_to_github"`
	SaveLocalBackup *bool `yaml:"save_local_backup"`
	MockMode        *bool `yaml:"mock_mode"`

	OutputDir *string `yaml:"output_dir"`
	CacheFile *string `yaml:"cache_file"`
	LogLevel  *string `yaml:"log_level"`
}

func (o *overlay) apply(cfg *Config) {
	setString(&cfg.NewsAPIKey, o.NewsAPIKey)
	setString(&cfg.ClaudeAPIKey, o.ClaudeAPIKey)
	setString(&cfg.OpenAIAPIKey, o.OpenAIAPIKey)
	setString(&cfg.GitHubToken, o.GitHubToken)
	setString(&cfg.GitHubRepo, o.GitHubRepo)
	setString(&cfg.GitHubBranch, o.GitHubBranch)
	setString(&cfg.BlogTitle, o.BlogTitle)
	setString(&cfg.BlogDescription, o.BlogDescription)
	setString(&cfg.AuthorName, o.AuthorName)
	if o.Topics != nil {
		cfg.Topics = o.Topics
	}
	setInt(&cfg.MaxArticles, o.MaxArticles)
	setInt(&cfg.PerTopicLimit, o.PerTopicLimit)
	setInt(&cfg.RetryAttempts, o.RetryAttempts)
	if o.RequestTimeout != nil {
		cfg.RequestTimeout = *o.RequestTimeout
	}
	setString(&cfg.ScheduleCron, o.ScheduleCron)
	setBool(&cfg.UploadToGitHub, o.UploadToGitHub)
	setBool(&cfg.SaveLocalBackup, o.SaveLocalBackup)
	setBool(&cfg.MockMode, o.MockMode)
	setString(&cfg.OutputDir, o.OutputDir)
	setString(&cfg.CacheFile, o.CacheFile)
	setString(&cfg.LogLevel, o.LogLevel)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func fromFile(path string) (*overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &overlay{}, nil
		}
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var layer overlay
	if err := yaml.Unmarshal(data, &layer); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &layer, nil
}

func fromEnv() *overlay {
	layer := &overlay{
		NewsAPIKey:      envString("NEWS_API_KEY"),
		ClaudeAPIKey:    envString("CLAUDE_API_KEY"),
		OpenAIAPIKey:    envString("OPENAI_API_KEY"),
		GitHubToken:     envString("GITHUB_TOKEN"),
		GitHubRepo:      envString("GITHUB_REPO"),
		GitHubBranch:    envString("GITHUB_BRANCH"),
		BlogTitle:       envString("BLOG_TITLE"),
		BlogDescription: envString("BLOG_DESCRIPTION"),
		AuthorName:      envString("AUTHOR_NAME"),
		MaxArticles:     envInt("MAX_ARTICLES"),
		PerTopicLimit:   envInt("PER_TOPIC_LIMIT"),
		RetryAttempts:   envInt("RETRY_ATTEMPTS"),
		RequestTimeout:  envDuration("REQUEST_TIMEOUT"),
		ScheduleCron:    envString("SCHEDULE_CRON"),
		UploadToGitHub:  envBool("UPLOAD_TO_GITHUB"),
		SaveLocalBackup: envBool("SAVE_LOCAL_BACKUP"),
		MockMode:        envBool("MOCK_MODE"),
		OutputDir:       envString("OUTPUT_DIR"),
		CacheFile:       envString("CACHE_FILE"),
		LogLevel:        envString("LOG_LEVEL"),
	}

	if val, ok := os.LookupEnv("NEWS_TOPICS"); ok && strings.TrimSpace(val) != "" {
		var topics []string
		for _, topic := range strings.Split(val, ",") {
			if topic = strings.TrimSpace(topic); topic != "" {
				topics = append(topics, topic)
			}
		}
		layer.Topics = topics
	}

	return layer
}

func envString(key string) *string {
	if val, ok := os.LookupEnv(key); ok {
		return &val
	}
	return nil
}

func envInt(key string) *int {
	if val, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(val); err == nil {
			return &n
		}
	}
	return nil
}

func envBool(key string) *bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return &b
		}
	}
	return nil
}

func envDuration(key string) *time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return &d
		}
	}
	return nil
}
