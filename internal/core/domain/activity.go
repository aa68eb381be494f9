package domain

import "time"

// Activity actions recorded in the audit trail.
const (
	ActionPostCreated = "post_created"
	ActionPostUpdated = "post_updated"
	ActionPostDeleted = "post_deleted"
)

// Activity is a single audit trail entry for a post mutation.
type Activity struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}
