package ports

import (
	"context"
	"time"

	"github.com/bloghub/blog-system/internal/core/domain"
)

// PostPatch carries the optional fields of a partial update. A nil pointer
// means the field was absent from the request and must keep its stored value.
type PostPatch struct {
	Title    *string
	Content  *string
	IsHidden *bool
}

// FieldNames returns the names of the fields actually present in the patch.
func (p PostPatch) FieldNames() []string {
	var fields []string
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.Content != nil {
		fields = append(fields, "content")
	}
	if p.IsHidden != nil {
		fields = append(fields, "is_hidden")
	}
	return fields
}

// PostRepository defines the interface for post persistence.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// Update merges only the patch's present fields into the stored record
	// and sets updated_at to updatedAt.
	Update(ctx context.Context, id string, patch PostPatch, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	// ListVisible returns all non-hidden posts, newest first.
	ListVisible(ctx context.Context) ([]domain.Post, error)
}
