package user

import (
	"context"

	"go.uber.org/zap"

	"lovemining/backend/internal/profile"
	apperrors "lovemining/backend/pkg/errors"
)

const (
	minRating = 1
	maxRating = 5
)

// AddReview creates a review of target written by author. A review requires
// the pair to be matched at call time, can only happen once per (author,
// target) pair, and its summary is appended to the author's profile.
func (s *Service) AddReview(ctx context.Context, authorID, targetID string, rating int, comment string) (*profile.Review, error) {
	if authorID == targetID {
		return nil, apperrors.NewConflict("cannot review yourself")
	}
	if rating < minRating || rating > maxRating {
		return nil, apperrors.NewValidationf("rating must be between %d and %d", minRating, maxRating)
	}

	matched, err := s.graph.AreMatched(ctx, authorID, targetID)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("graph", err)
	}
	if !matched {
		return nil, apperrors.NewConflict("cannot review a user you are not matched with")
	}

	author, err := s.Get(ctx, authorID)
	if err != nil {
		return nil, err
	}
	for _, summary := range author.ReviewsMade {
		if summary.TargetID == targetID {
			return nil, apperrors.NewConflict("already reviewed this user")
		}
	}

	rev := &profile.Review{
		TargetID: targetID,
		Rating:   rating,
		Comment:  comment,
	}
	reviewID, err := s.reviews.Insert(ctx, rev)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("review", err)
	}

	summary := profile.ReviewSummary{
		ReviewID: reviewID,
		TargetID: targetID,
		Rating:   rating,
	}
	if err := s.profiles.PushReviewSummary(ctx, authorID, summary); err != nil {
		return nil, apperrors.NewSyncFailure("review summary write", err)
	}

	s.logger.Info("Review created",
		zap.String("author_id", authorID),
		zap.String("target_id", targetID),
		zap.Int("rating", rating),
	)
	return rev, nil
}
