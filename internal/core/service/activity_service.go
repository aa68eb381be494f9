package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bloghub/blog-system/internal/api/metrics"
	"github.com/bloghub/blog-system/internal/core/domain"
	"github.com/bloghub/blog-system/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, postID, action string, ts time.Time) (bool, error)
	Mark(ctx context.Context, postID, action string, ts time.Time) error
}

type activityService struct {
	repo  ports.ActivityRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewActivityService returns an ActivityService implementation.
func NewActivityService(repo ports.ActivityRepository, dedup DedupChecker, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and persists a single audit entry.
func (s *activityService) Process(ctx context.Context, in ports.ActivityInput) error {
	start := time.Now()

	isDup, err := s.dedup.IsDuplicate(ctx, in.PostID, in.Action, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("post_id", in.PostID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		metrics.ActivityDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("post_id", in.PostID).Str("action", in.Action).Msg("duplicate activity skipped")
		return nil
	}
	metrics.ActivityDedupTotal.WithLabelValues("miss").Inc()

	// Mark before writing so a retried entry is not processed twice.
	if markErr := s.dedup.Mark(ctx, in.PostID, in.Action, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("post_id", in.PostID).Msg("failed to set dedup key")
	}

	entry := &domain.Activity{
		ID:        uuid.NewString(),
		PostID:    in.PostID,
		ActorID:   in.ActorID,
		Action:    in.Action,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		metrics.ActivityErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("process activity: %w", err)
	}

	metrics.ActivityProcessedTotal.WithLabelValues(in.Action).Inc()
	metrics.ActivityProcessingDuration.WithLabelValues(in.Action).Observe(time.Since(start).Seconds())

	s.log.Info().
		Str("post_id", in.PostID).
		Str("actor_id", in.ActorID).
		Str("action", in.Action).
		Msg("activity recorded")

	return nil
}
