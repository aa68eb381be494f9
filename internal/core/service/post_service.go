package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bloghub/blog-system/internal/core/access"
	"github.com/bloghub/blog-system/internal/core/domain"
	"github.com/bloghub/blog-system/internal/core/ports"
)

// PostService implements post use cases. Authorization denials are returned
// as domain.ErrPostNotFound, indistinguishable from genuine absence.
type PostService struct {
	posts      ports.PostRepository
	users      ports.UserRepository
	activities ports.ActivityRepository
	dispatcher ports.ActivityDispatcher
	log        zerolog.Logger
}

// NewPostService wires a PostService. dispatcher may be nil, in which case no
// activity entries are recorded.
func NewPostService(
	posts ports.PostRepository,
	users ports.UserRepository,
	activities ports.ActivityRepository,
	dispatcher ports.ActivityDispatcher,
	log zerolog.Logger,
) *PostService {
	return &PostService{
		posts:      posts,
		users:      users,
		activities: activities,
		dispatcher: dispatcher,
		log:        log,
	}
}

func (s *PostService) Publish(ctx context.Context, authorID string, in ports.PublishPostInput) (*domain.Post, error) {
	var fields []string
	if n := len(in.Title); n < 5 || n > 100 {
		fields = append(fields, domain.MsgTitleLength)
	}
	if n := len(in.Content); n < 5 || n > 1000 {
		fields = append(fields, domain.MsgContentLength)
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	now := time.Now().UTC()
	post := &domain.Post{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Content:   in.Content,
		IsHidden:  in.IsHidden,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create post")
		return nil, fmt.Errorf("publish post: %w", err)
	}

	s.log.Info().Str("post_id", created.ID).Str("author_id", authorID).Msg("post published")
	s.record(created.ID, authorID, domain.ActionPostCreated)
	return created, nil
}

func (s *PostService) Get(ctx context.Context, requesterID, postID string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if access.Read(access.Context{
		RequesterID: requesterID,
		OwnerID:     post.AuthorID,
		Hidden:      post.IsHidden,
	}) == access.Deny {
		return nil, domain.ErrPostNotFound
	}

	return post, nil
}

func (s *PostService) Update(ctx context.Context, requesterID, postID string, patch ports.PostPatch) (bool, error) {
	if len(patch.FieldNames()) == 0 {
		return false, nil
	}

	var fields []string
	if patch.Title != nil {
		if n := len(*patch.Title); n < 5 || n > 100 {
			fields = append(fields, domain.MsgTitleLength)
		}
	}
	if patch.Content != nil {
		if n := len(*patch.Content); n < 5 || n > 1000 {
			fields = append(fields, domain.MsgContentLength)
		}
	}
	if len(fields) > 0 {
		return false, &domain.ValidationError{Fields: fields}
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return false, err
	}

	if access.Update(access.Context{
		RequesterID: requesterID,
		OwnerID:     post.AuthorID,
		Hidden:      post.IsHidden,
	}) == access.Deny {
		return false, domain.ErrPostNotFound
	}

	if err := s.posts.Update(ctx, postID, patch, time.Now().UTC()); err != nil {
		return false, fmt.Errorf("update post: %w", err)
	}

	s.log.Info().Str("post_id", postID).Strs("fields", patch.FieldNames()).Msg("post updated")
	s.record(postID, requesterID, domain.ActionPostUpdated)
	return true, nil
}

func (s *PostService) Delete(ctx context.Context, requesterID, postID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}

	// The admin branch reads the stored role, not the token flag.
	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return err
	}

	if access.Delete(access.Context{
		RequesterID:      requesterID,
		RequesterIsAdmin: requester.Role == domain.RoleAdmin,
		OwnerID:          post.AuthorID,
		Hidden:           post.IsHidden,
	}) == access.Deny {
		return domain.ErrPostNotFound
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	s.log.Info().Str("post_id", postID).Str("requester_id", requesterID).Msg("post deleted")
	s.record(postID, requesterID, domain.ActionPostDeleted)
	return nil
}

func (s *PostService) ListVisible(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.posts.ListVisible(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) Activity(ctx context.Context, requesterID, postID string) ([]domain.Activity, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	// The trail is owner-only, same masking as a hidden-post read.
	if post.AuthorID != requesterID {
		return nil, domain.ErrPostNotFound
	}

	entries, err := s.activities.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return entries, nil
}

// record enqueues an audit entry. Activity is best-effort and never fails the
// originating operation.
func (s *PostService) record(postID, actorID, action string) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Enqueue(ports.ActivityInput{
		PostID:    postID,
		ActorID:   actorID,
		Action:    action,
		Timestamp: time.Now().UTC(),
	})
}
