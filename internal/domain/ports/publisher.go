package ports

import (
	"context"

	"noobie-agent/internal/domain/model"
)

// Publisher pushes a generated post to the downstream blog repository.
type Publisher interface {
	Publish(ctx context.Context, post *model.Post) (model.PublishResult, error)
}
