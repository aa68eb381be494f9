package ports

import (
	"context"

	"github.com/bloghub/blog-system/internal/core/domain"
)

// PublishPostInput carries the fields of a new post.
type PublishPostInput struct {
	Title    string
	Content  string
	IsHidden bool
}

// PostService defines use-case operations for posts. The requesterID on each
// call is the authenticated subject id; authorization denials surface as
// domain.ErrPostNotFound so callers cannot distinguish them from absence.
type PostService interface {
	Publish(ctx context.Context, authorID string, in PublishPostInput) (*domain.Post, error)
	Get(ctx context.Context, requesterID, postID string) (*domain.Post, error)
	// Update applies the present patch fields. An empty patch is a no-op
	// returning changed=false without touching the stored record.
	Update(ctx context.Context, requesterID, postID string, patch PostPatch) (bool, error)
	Delete(ctx context.Context, requesterID, postID string) error
	ListVisible(ctx context.Context) ([]domain.Post, error)
	// Activity returns the audit trail of a post to its owner.
	Activity(ctx context.Context, requesterID, postID string) ([]domain.Activity, error)
}
