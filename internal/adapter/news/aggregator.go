// Package news aggregates articles from a keyed search API with a public
// syndication feed as fallback, deduplicates them, and returns a bounded
// list in topic order.
package news

import (
	"context"

	"noobie-agent/internal/domain/model"
	"noobie-agent/internal/domain/ports"
)

// feedFallbackThreshold is the minimum number of keyed-API results per topic
// below which the feed fallback kicks in.
const feedFallbackThreshold = 2

// TopicSource fetches articles for a single topic.
type TopicSource interface {
	FetchByTopic(ctx context.Context, topic string, limit int) ([]model.Article, error)
}

// Aggregator combines a keyed primary source with an unauthenticated feed
// fallback. A failing source degrades that topic to fewer articles; the
// pipeline itself never aborts on a per-source failure.
type Aggregator struct {
	primary  TopicSource
	fallback TopicSource
	logger   ports.Logger
}

var _ ports.ArticleProvider = (*Aggregator)(nil)

// NewAggregator builds an Aggregator. Either source may be nil, in which
// case it is skipped.
func NewAggregator(primary, fallback TopicSource, logger ports.Logger) *Aggregator {
	return &Aggregator{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// FetchTrending fetches each topic in declaration order, concatenates the
// per-topic results, deduplicates by title similarity, and truncates to
// totalLimit. Topics are processed sequentially; ordering is topic order,
// not relevance.
func (a *Aggregator) FetchTrending(ctx context.Context, topics []string, perTopicLimit, totalLimit int) ([]model.Article, error) {
	all := make([]model.Article, 0, len(topics)*perTopicLimit)

	for _, topic := range topics {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		all = append(all, a.fetchTopic(ctx, topic, perTopicLimit)...)
	}

	unique := Deduplicate(all)
	if removed := len(all) - len(unique); removed > 0 {
		a.logger.Info(ctx, "removed duplicate articles", "count", removed)
	}

	if totalLimit > 0 && len(unique) > totalLimit {
		unique = unique[:totalLimit]
	}

	a.logger.Info(ctx, "trending news aggregated",
		"topics", len(topics),
		"fetched", len(all),
		"final", len(unique))
	return unique, nil
}

func (a *Aggregator) fetchTopic(ctx context.Context, topic string, limit int) []model.Article {
	var articles []model.Article

	if a.primary != nil {
		fetched, err := a.primary.FetchByTopic(ctx, topic, limit)
		if err != nil {
			a.logger.Warn(ctx, "primary source failed", "topic", topic, "error", err)
		}
		articles = append(articles, fetched...)
	}

	if len(articles) < feedFallbackThreshold && a.fallback != nil {
		fetched, err := a.fallback.FetchByTopic(ctx, topic, limit)
		if err != nil {
			a.logger.Warn(ctx, "fallback source failed", "topic", topic, "error", err)
		}
		articles = append(articles, fetched...)
	}

	return articles
}
