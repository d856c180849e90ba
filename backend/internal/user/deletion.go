package user

import (
	"context"

	"go.uber.org/zap"

	apperrors "lovemining/backend/pkg/errors"
)

// DeleteUser removes a user from both stores. The graph deletion runs first
// and is all-or-nothing: an orphaned graph node would keep feeding matches and
// recommendations, so a graph failure aborts the whole operation. Review
// cleanup afterwards is best-effort; failures there are logged and swallowed
// so the account itself still disappears.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.graph.DetachDeleteUser(ctx, id); err != nil {
		return apperrors.NewSyncFailure("graph deletion", err)
	}

	// Reviews written by the user.
	if len(p.ReviewsMade) > 0 {
		ids := make([]string, 0, len(p.ReviewsMade))
		for _, summary := range p.ReviewsMade {
			ids = append(ids, summary.ReviewID)
		}
		if err := s.reviews.DeleteAllByID(ctx, ids); err != nil {
			s.logger.Warn("Failed to delete reviews authored by user",
				zap.String("user_id", id),
				zap.Error(err),
			)
		}
	}

	// Reviews written about the user, and the summaries other profiles keep
	// for them.
	if err := s.reviews.DeleteByTargetID(ctx, id); err != nil {
		s.logger.Warn("Failed to delete reviews targeting user",
			zap.String("user_id", id),
			zap.Error(err),
		)
	}
	if err := s.profiles.RemoveReviewReferences(ctx, id); err != nil {
		s.logger.Warn("Failed to strip review references to user",
			zap.String("user_id", id),
			zap.Error(err),
		)
	}

	if err := s.profiles.DeleteByID(ctx, id); err != nil {
		return apperrors.NewStoreUnavailable("profile", err)
	}

	s.logger.Info("User deleted from both stores", zap.String("user_id", id))
	return nil
}
