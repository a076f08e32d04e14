package ports

import (
	"context"

	"noobie-agent/internal/domain/model"
)

// ArticleProvider aggregates trending news articles across configured topics.
type ArticleProvider interface {
	FetchTrending(ctx context.Context, topics []string, perTopicLimit, totalLimit int) ([]model.Article, error)
}
