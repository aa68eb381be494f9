package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bloghub/blog-system/internal/core/domain"
)

const activitiesCollection = "activities"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activitiesCollection)}
}

func (r *ActivityRepository) Insert(ctx context.Context, entry *domain.Activity) error {
	doc := bson.M{
		"_id":          entry.ID,
		"post_id":      entry.PostID,
		"actor_id":     entry.ActorID,
		"action":       entry.Action,
		"timestamp":    entry.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListByPost returns a post's trail in chronological order.
func (r *ActivityRepository) ListByPost(ctx context.Context, postID string) ([]domain.Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer cur.Close(ctx)

	var entries []domain.Activity
	for cur.Next(ctx) {
		var doc struct {
			ID        string    `bson:"_id"`
			PostID    string    `bson:"post_id"`
			ActorID   string    `bson:"actor_id"`
			Action    string    `bson:"action"`
			Timestamp time.Time `bson:"timestamp"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		entries = append(entries, domain.Activity{
			ID:        doc.ID,
			PostID:    doc.PostID,
			ActorID:   doc.ActorID,
			Action:    doc.Action,
			Timestamp: doc.Timestamp.UTC(),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return entries, nil
}
