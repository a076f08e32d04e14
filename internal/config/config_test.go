package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noobie-agent/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "main", cfg.GitHubBranch)
	assert.Equal(t, 8, cfg.MaxArticles)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "0 8 * * *", cfg.ScheduleCron)
	assert.True(t, cfg.UploadToGitHub)
	assert.Len(t, cfg.Topics, 5)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeTempConfig(t, `
news_api_key: file-key
max_articles: 12
topics:
  - science
  - sports
upload_to_github: false
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.NewsAPIKey)
	assert.Equal(t, 12, cfg.MaxArticles)
	assert.Equal(t, []string{"science", "sports"}, cfg.Topics)
	assert.False(t, cfg.UploadToGitHub)
	// Keys the file does not set keep their defaults.
	assert.Equal(t, "main", cfg.GitHubBranch)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeTempConfig(t, `
news_api_key: file-key
max_articles: 12
`)
	t.Setenv("NEWS_API_KEY", "env-key")
	t.Setenv("NEWS_TOPICS", "ai, chips ,  energy ")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.NewsAPIKey)
	assert.Equal(t, []string{"ai", "chips", "energy"}, cfg.Topics)
	// The env layer did not set max_articles, so the file value survives.
	assert.Equal(t, 12, cfg.MaxArticles)
}

func TestLoad_ExplicitDefaultInEnvStillWins(t *testing.T) {
	// MAX_ARTICLES is explicitly set to the default value; it must still
	// shadow the file layer rather than being mistaken for "unset".
	path := writeTempConfig(t, "max_articles: 12\n")
	t.Setenv("MAX_ARTICLES", "8")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.MaxArticles)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.MaxArticles)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeTempConfig(t, "topics: [unclosed\n")
	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoad_EnvDuration(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "45s")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
}

func TestValidate_RequiresKeys(t *testing.T) {
	cfg := config.Default()

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingNewsAPIKey)
	assert.ErrorIs(t, err, config.ErrMissingWriterKey)
	assert.ErrorIs(t, err, config.ErrMissingGitHubToken)
	assert.ErrorIs(t, err, config.ErrInvalidGitHubRepo)
}

func TestValidate_MockModeRelaxesKeys(t *testing.T) {
	cfg := config.Default()
	cfg.MockMode = true
	cfg.UploadToGitHub = false

	assert.NoError(t, cfg.Validate())
}

func TestValidate_Ranges(t *testing.T) {
	cfg := config.Default()
	cfg.MockMode = true
	cfg.UploadToGitHub = false
	cfg.MaxArticles = 25
	cfg.RetryAttempts = 0
	cfg.Topics = nil

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidMaxArticles)
	assert.ErrorIs(t, err, config.ErrInvalidRetries)
	assert.ErrorIs(t, err, config.ErrNoTopics)
}

func TestValidate_CompleteConfig(t *testing.T) {
	cfg := config.Default()
	cfg.NewsAPIKey = "news"
	cfg.ClaudeAPIKey = "claude"
	cfg.GitHubToken = "token"
	cfg.GitHubRepo = "owner/blog"

	assert.NoError(t, cfg.Validate())
}
