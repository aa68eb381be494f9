package ports

import (
	"context"
	"time"

	"github.com/bloghub/blog-system/internal/core/domain"
)

// ActivityInput is the DTO handed from the post service to the dispatcher.
type ActivityInput struct {
	PostID    string
	ActorID   string
	Action    string
	Timestamp time.Time
}

// ActivityService processes queued activity entries.
type ActivityService interface {
	Process(ctx context.Context, in ActivityInput) error
}

// ActivityDispatcher enqueues activity entries for asynchronous processing.
type ActivityDispatcher interface {
	Enqueue(in ActivityInput)
}

// ActivityRepository handles audit trail persistence.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.Activity) error
	// ListByPost returns a post's trail in chronological order.
	ListByPost(ctx context.Context, postID string) ([]domain.Activity, error)
}
