package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bloghub/blog-system/internal/core/domain"
	"github.com/bloghub/blog-system/internal/core/ports"
)

type stubPostRepo struct {
	posts map[string]*domain.Post
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	clone := *post
	r.posts[post.ID] = &clone
	return post, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	if p, ok := r.posts[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrPostNotFound
}

func (r *stubPostRepo) Update(_ context.Context, id string, patch ports.PostPatch, updatedAt time.Time) error {
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.IsHidden != nil {
		p.IsHidden = *patch.IsHidden
	}
	p.UpdatedAt = updatedAt
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) ListVisible(_ context.Context) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range r.posts {
		if !p.IsHidden {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type stubActivityRepo struct {
	entries []domain.Activity
}

func (r *stubActivityRepo) Insert(_ context.Context, entry *domain.Activity) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubActivityRepo) ListByPost(_ context.Context, postID string) ([]domain.Activity, error) {
	var out []domain.Activity
	for _, e := range r.entries {
		if e.PostID == postID {
			out = append(out, e)
		}
	}
	return out, nil
}

type recordingDispatcher struct {
	inputs []ports.ActivityInput
}

func (d *recordingDispatcher) Enqueue(in ports.ActivityInput) {
	d.inputs = append(d.inputs, in)
}

type postFixture struct {
	svc        *PostService
	posts      *stubPostRepo
	users      *stubUserRepo
	activities *stubActivityRepo
	dispatcher *recordingDispatcher
}

func newPostFixture() *postFixture {
	posts := newStubPostRepo()
	users := newStubUserRepo()
	activities := &stubActivityRepo{}
	dispatcher := &recordingDispatcher{}
	return &postFixture{
		svc:        NewPostService(posts, users, activities, dispatcher, zerolog.Nop()),
		posts:      posts,
		users:      users,
		activities: activities,
		dispatcher: dispatcher,
	}
}

func (f *postFixture) addUser(id, role string) {
	f.users.users[id] = &domain.User{ID: id, Role: role, Name: "user_" + id}
}

func (f *postFixture) addPost(id, authorID string, hidden bool) {
	f.posts.posts[id] = &domain.Post{
		ID: id, Title: "a title", Content: "some content",
		IsHidden: hidden, AuthorID: authorID,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
}

func TestPostService_Publish(t *testing.T) {
	f := newPostFixture()

	post, err := f.svc.Publish(context.Background(), "user-a", ports.PublishPostInput{
		Title:   "First post",
		Content: "Hello, world.",
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if post.AuthorID != "user-a" {
		t.Fatalf("owner not set to requester: %q", post.AuthorID)
	}
	if len(f.dispatcher.inputs) != 1 || f.dispatcher.inputs[0].Action != domain.ActionPostCreated {
		t.Fatalf("expected one post_created activity, got %+v", f.dispatcher.inputs)
	}
}

func TestPostService_Publish_FieldErrors(t *testing.T) {
	f := newPostFixture()

	_, err := f.svc.Publish(context.Background(), "user-a", ports.PublishPostInput{
		Title:   "tiny",
		Content: "x",
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("expected title and content errors, got %v", ve.Fields)
	}
	if len(f.posts.posts) != 0 {
		t.Fatalf("post persisted despite validation failure")
	}
}

func TestPostService_Get_HiddenMasking(t *testing.T) {
	f := newPostFixture()
	f.addPost("p1", "user-a", true)

	if _, err := f.svc.Get(context.Background(), "user-a", "p1"); err != nil {
		t.Fatalf("owner read of hidden post failed: %v", err)
	}

	if _, err := f.svc.Get(context.Background(), "user-b", "p1"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("non-owner read of hidden post: expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_Get_VisiblePost(t *testing.T) {
	f := newPostFixture()
	f.addPost("p1", "user-a", false)

	post, err := f.svc.Get(context.Background(), "user-b", "p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if post.ID != "p1" {
		t.Fatalf("unexpected post: %+v", post)
	}
}

func TestPostService_Update_PartialMerge(t *testing.T) {
	f := newPostFixture()
	f.addPost("p1", "user-a", false)
	before := f.posts.posts["p1"].Content

	title := "Updated title"
	changed, err := f.svc.Update(context.Background(), "user-a", "p1", ports.PostPatch{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !changed {
		t.Fatalf("expected changed=true")
	}

	got := f.posts.posts["p1"]
	if got.Title != "Updated title" {
		t.Fatalf("title not merged: %q", got.Title)
	}
	if got.Content != before {
		t.Fatalf("content changed despite being absent from the patch")
	}
}

func TestPostService_Update_EmptyPatchIsNoOp(t *testing.T) {
	f := newPostFixture()
	f.addPost("p1", "user-a", false)
	before := *f.posts.posts["p1"]

	changed, err := f.svc.Update(context.Background(), "user-a", "p1", ports.PostPatch{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if changed {
		t.Fatalf("empty patch reported a change")
	}
	if !f.posts.posts["p1"].UpdatedAt.Equal(before.UpdatedAt) {
		t.Fatalf("empty patch touched the stored timestamp")
	}
	if len(f.dispatcher.inputs) != 0 {
		t.Fatalf("empty patch recorded activity")
	}
}

func TestPostService_Update_NonOwnerMasked(t *testing.T) {
	f := newPostFixture()
	f.addPost("p1", "user-a", false)

	title := "hijacked title"
	_, err := f.svc.Update(context.Background(), "user-b", "p1", ports.PostPatch{Title: &title})
	if !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if f.posts.posts["p1"].Title == "hijacked title" {
		t.Fatalf("denied update was applied")
	}
}

func TestPostService_Delete_Rules(t *testing.T) {
	tests := []struct {
		name      string
		requester string
		role      string
		hidden    bool
		wantErr   bool
	}{
		{"owner deletes own hidden post", "user-a", domain.RoleBlogger, true, false},
		{"owner deletes own visible post", "user-a", domain.RoleBlogger, false, false},
		{"admin deletes visible post", "admin-1", domain.RoleAdmin, false, false},
		{"admin may not delete hidden post", "admin-1", domain.RoleAdmin, true, true},
		{"non-owner non-admin denied", "user-b", domain.RoleBlogger, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPostFixture()
			f.addUser(tt.requester, tt.role)
			f.addPost("p1", "user-a", tt.hidden)

			err := f.svc.Delete(context.Background(), tt.requester, "p1")
			if tt.wantErr {
				if !errors.Is(err, domain.ErrPostNotFound) {
					t.Fatalf("expected ErrPostNotFound, got %v", err)
				}
				if _, ok := f.posts.posts["p1"]; !ok {
					t.Fatalf("denied delete removed the post")
				}
				return
			}
			if err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, ok := f.posts.posts["p1"]; ok {
				t.Fatalf("post still present after delete")
			}
		})
	}
}

func TestPostService_ListVisible(t *testing.T) {
	f := newPostFixture()
	f.addPost("p1", "user-a", false)
	f.addPost("p2", "user-a", true)
	f.posts.posts["p1"].CreatedAt = time.Now().UTC().Add(-time.Hour)
	f.addPost("p3", "user-b", false)

	posts, err := f.svc.ListVisible(context.Background())
	if err != nil {
		t.Fatalf("ListVisible: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 visible posts, got %d", len(posts))
	}
	if posts[0].ID != "p3" || posts[1].ID != "p1" {
		t.Fatalf("expected newest first, got %s then %s", posts[0].ID, posts[1].ID)
	}
	for _, p := range posts {
		if p.IsHidden {
			t.Fatalf("hidden post leaked into listing: %s", p.ID)
		}
	}
}

func TestPostService_Activity_OwnerOnly(t *testing.T) {
	f := newPostFixture()
	f.addPost("p1", "user-a", false)
	f.activities.entries = []domain.Activity{
		{ID: "a1", PostID: "p1", ActorID: "user-a", Action: domain.ActionPostCreated},
	}

	entries, err := f.svc.Activity(context.Background(), "user-a", "p1")
	if err != nil {
		t.Fatalf("Activity: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	if _, err := f.svc.Activity(context.Background(), "user-b", "p1"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("non-owner trail read: expected ErrPostNotFound, got %v", err)
	}
}
