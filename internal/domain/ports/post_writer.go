package ports

import (
	"context"

	"noobie-agent/internal/domain/model"
)

// PostWriter synthesizes a blog post from a batch of news articles.
type PostWriter interface {
	Compose(ctx context.Context, articles []model.Article) (*model.Post, error)
}
