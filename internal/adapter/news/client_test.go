package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noobie-agent/internal/ratelimit"
	"noobie-agent/internal/retry"
)

const searchBody = `{
	"articles": [
		{
			"title": "Markets Rally After Policy Shift",
			"description": "Stocks climbed on the announcement.",
			"url": "https://example.com/markets",
			"publishedAt": "2026-08-24T08:00:00Z",
			"content": "Full text",
			"author": "Jane Doe",
			"image": "https://example.com/markets.jpg",
			"source": {"name": "Example Wire"}
		},
		{
			"title": "",
			"description": "Entry without a title is skipped.",
			"url": "https://example.com/broken",
			"publishedAt": "2026-08-24T08:00:00Z",
			"source": {"name": "Example Wire"}
		},
		{
			"title": "Entry Without Summary Is Skipped",
			"description": "",
			"url": "https://example.com/broken2",
			"publishedAt": "2026-08-24T08:00:00Z",
			"source": {}
		}
	]
}`

func fastPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", 5*time.Second, ratelimit.New(0), testLogger(),
		WithEndpoint(server.URL),
		WithRetryPolicy(fastPolicy()))
}

func TestFetchByTopic_ParsesAndFilters(t *testing.T) {
	var gotQuery atomic.Value
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		w.Write([]byte(searchBody))
	})

	articles, err := client.FetchByTopic(context.Background(), "economic developments", 5)

	require.NoError(t, err)
	require.Len(t, articles, 1)

	article := articles[0]
	assert.Equal(t, "Markets Rally After Policy Shift", article.Title)
	assert.Equal(t, "Stocks climbed on the announcement.", article.Summary)
	assert.Equal(t, "Example Wire", article.Source)
	assert.Equal(t, "economic developments", article.Category)
	assert.Equal(t, "Jane Doe", article.Author)
	assert.Equal(t, "https://example.com/markets.jpg", article.ImageURL)

	query := gotQuery.Load().(url.Values)
	assert.Equal(t, "economic developments", query.Get("q"))
	assert.Equal(t, "en", query.Get("lang"))
	assert.Equal(t, "us", query.Get("country"))
	assert.Equal(t, "5", query.Get("max"))
	assert.Equal(t, "test-key", query.Get("apikey"))
}

func TestFetchByTopic_CapsPageSize(t *testing.T) {
	var gotMax atomic.Value
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMax.Store(r.URL.Query().Get("max"))
		w.Write([]byte(`{"articles": []}`))
	})

	_, err := client.FetchByTopic(context.Background(), "tech", 50)

	require.NoError(t, err)
	assert.Equal(t, "10", gotMax.Load())
}

func TestFetchByTopic_RetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(searchBody))
	})

	articles, err := client.FetchByTopic(context.Background(), "tech", 5)

	require.NoError(t, err)
	assert.Len(t, articles, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchByTopic_ExhaustedRetries(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	articles, err := client.FetchByTopic(context.Background(), "tech", 5)

	require.Error(t, err)
	assert.Nil(t, articles)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchByTopic_MissingAPIKey(t *testing.T) {
	client := NewClient("", time.Second, ratelimit.New(0), testLogger())

	_, err := client.FetchByTopic(context.Background(), "tech", 5)

	require.Error(t, err)
}

func TestFetchByTopic_MalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})

	_, err := client.FetchByTopic(context.Background(), "tech", 5)

	require.Error(t, err)
}
