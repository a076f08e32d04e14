package writing

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noobie-agent/internal/adapter/logging"
	"noobie-agent/internal/domain/model"
	"noobie-agent/internal/domain/ports"
)

func testLogger() ports.Logger {
	return logging.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const generatedPost = `# Global Markets Face a Turning Point

Stock markets around the world reacted sharply to new political developments today.

## Economic Pressures

Analysis of economic and market conditions.

## Technology Shifts

The role of ai and digital innovation keeps growing.

## Conclusion

International observers expect more change ahead.`

func sampleArticles() []model.Article {
	return []model.Article{
		{
			Title:    "Markets Rally After Policy Shift",
			Summary:  "Stocks climbed on the announcement.",
			URL:      "https://example.com/markets",
			Source:   "Example Wire",
			Category: "economic developments",
		},
		{
			Title:    "New Chip Plant Announced",
			Summary:  "A major factory is planned.",
			URL:      "https://example.com/chips",
			Source:   "Tech Daily",
			Category: "technology trends",
		},
	}
}

func claudeResponse(text string) string {
	body, _ := json.Marshal(map[string]any{
		"content": []map[string]string{{"type": "text", "text": text}},
	})
	return string(body)
}

func openAIResponse(text string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": text}},
		},
	})
	return string(body)
}

func newTestWriter(t *testing.T, cfg Config, claude, openai http.HandlerFunc) *Writer {
	t.Helper()

	opts := []Option{}
	if claude != nil {
		server := httptest.NewServer(claude)
		t.Cleanup(server.Close)
		opts = append(opts, WithClaudeEndpoint(server.URL))
	}
	if openai != nil {
		server := httptest.NewServer(openai)
		t.Cleanup(server.Close)
		opts = append(opts, WithOpenAIEndpoint(server.URL))
	}

	cfg.BlogTitle = "Daily News Intelligence"
	cfg.AuthorName = "Noobie Agent"
	cfg.Timeout = 5 * time.Second
	return New(cfg, testLogger(), opts...)
}

func TestCompose_UsesClaude(t *testing.T) {
	var gotVersion, gotKey string
	writer := newTestWriter(t, Config{ClaudeAPIKey: "ck"}, func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("anthropic-version")
		gotKey = r.Header.Get("x-api-key")
		w.Write([]byte(claudeResponse(generatedPost)))
	}, nil)

	post, err := writer.Compose(context.Background(), sampleArticles())

	require.NoError(t, err)
	assert.Equal(t, "2023-06-01", gotVersion)
	assert.Equal(t, "ck", gotKey)
	assert.Equal(t, "Global Markets Face a Turning Point", post.Title)
	assert.Equal(t, generatedPost, post.Content)
	assert.Equal(t, "economic developments", post.Category)
	assert.Equal(t, len(generatedPost), len(post.Content))
	assert.Positive(t, post.WordCount)
	assert.Contains(t, post.Summary, "Stock markets around the world")
}

func TestCompose_FallsBackToOpenAI(t *testing.T) {
	writer := newTestWriter(t, Config{ClaudeAPIKey: "ck", OpenAIAPIKey: "ok"},
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		},
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer ok", r.Header.Get("Authorization"))
			w.Write([]byte(openAIResponse(generatedPost)))
		})

	post, err := writer.Compose(context.Background(), sampleArticles())

	require.NoError(t, err)
	assert.Equal(t, "Global Markets Face a Turning Point", post.Title)
}

func TestCompose_MockWhenAllBackendsFail(t *testing.T) {
	writer := newTestWriter(t, Config{ClaudeAPIKey: "ck", AllowMock: true},
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}, nil)

	post, err := writer.Compose(context.Background(), sampleArticles())

	require.NoError(t, err)
	assert.Contains(t, post.Title, "Today's Global Pulse")
	assert.Contains(t, post.Content, "Markets Rally After Policy Shift")
}

func TestCompose_ErrorWhenAllBackendsFailWithoutMock(t *testing.T) {
	writer := newTestWriter(t, Config{ClaudeAPIKey: "ck"},
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}, nil)

	_, err := writer.Compose(context.Background(), sampleArticles())

	require.Error(t, err)
}

func TestCompose_NoArticles(t *testing.T) {
	writer := newTestWriter(t, Config{ClaudeAPIKey: "ck"}, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(claudeResponse(generatedPost)))
	}, nil)

	_, err := writer.Compose(context.Background(), nil)

	require.Error(t, err)
}

func TestParsePost_TagsAndSEO(t *testing.T) {
	writer := newTestWriter(t, Config{}, nil, nil)

	post := writer.parsePost(generatedPost, sampleArticles())

	assert.Contains(t, post.Tags, "daily-update")
	assert.Contains(t, post.Tags, "economics")
	assert.Contains(t, post.Tags, "technology")
	assert.LessOrEqual(t, len(post.Tags), 10)
	assert.Equal(t, "Global Markets Face a Turning Point | Daily News Intelligence", post.SEOTitle)
	assert.NotEmpty(t, post.SEODescription)
}

func TestParsePost_MissingTitleUsesFallback(t *testing.T) {
	writer := newTestWriter(t, Config{}, nil, nil)

	post := writer.parsePost("Just a paragraph without any heading.", sampleArticles())

	assert.Contains(t, post.Title, "Daily Global Analysis")
	assert.Equal(t, "Just a paragraph without any heading.", post.Summary)
}
