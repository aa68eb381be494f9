package domain

import "time"

// Post is the core aggregate of the blog. A hidden post is visible to its
// author only, both in listings and direct reads.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsHidden  bool      `json:"is_hidden"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
