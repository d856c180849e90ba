package user

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"lovemining/backend/internal/graph"
	apperrors "lovemining/backend/pkg/errors"
)

// LikeOutcome is the observable result of a like action
type LikeOutcome string

const (
	// OutcomeLikeSent means a one-way LIKES edge now exists
	OutcomeLikeSent LikeOutcome = "like sent"
	// OutcomeMatch means the like reciprocated an existing one and the pair is
	// now matched
	OutcomeMatch LikeOutcome = "match"
	// OutcomeAlreadyMatched means the pair was already matched; the call is a
	// no-op
	OutcomeAlreadyMatched LikeOutcome = "already matched"
)

// Like records that actor likes target. If target already liked actor, the
// reciprocal likes are transformed into a MATCHED edge in one atomic graph
// statement; otherwise an idempotent LIKES edge is merged. The check-then-act
// window between HasLiked and the mutation is closed by the graph primitives
// themselves: both MergeLike and TransformLikeToMatch are single statements,
// and MATCHED has one canonical direction, so two reciprocal calls racing each
// other still converge to exactly one MATCHED edge.
func (s *Service) Like(ctx context.Context, actorID, targetID string) (LikeOutcome, error) {
	if actorID == targetID {
		return "", apperrors.NewConflict("cannot like yourself")
	}

	matched, err := s.graph.AreMatched(ctx, actorID, targetID)
	if err != nil {
		return "", apperrors.NewStoreUnavailable("graph", err)
	}
	if matched {
		return OutcomeAlreadyMatched, nil
	}

	reciprocal, err := s.graph.HasLiked(ctx, targetID, actorID)
	if err != nil {
		return "", apperrors.NewStoreUnavailable("graph", err)
	}

	if reciprocal {
		if err := s.graph.TransformLikeToMatch(ctx, actorID, targetID); err != nil {
			return "", s.graphWriteError(err, targetID)
		}
		s.logger.Info("Match created",
			zap.String("actor_id", actorID),
			zap.String("target_id", targetID),
		)
		return OutcomeMatch, nil
	}

	if err := s.graph.MergeLike(ctx, actorID, targetID); err != nil {
		return "", s.graphWriteError(err, targetID)
	}
	return OutcomeLikeSent, nil
}

// Dislike records that actor dislikes target. The edge is merged
// unconditionally and never inspects or affects LIKES or MATCHED state; there
// is no undislike.
func (s *Service) Dislike(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return apperrors.NewConflict("cannot dislike yourself")
	}

	if err := s.graph.MergeDislike(ctx, actorID, targetID); err != nil {
		return s.graphWriteError(err, targetID)
	}
	return nil
}

func (s *Service) graphWriteError(err error, targetID string) error {
	var notFound graph.ErrUserNotFound
	if errors.As(err, &notFound) {
		return apperrors.NewNotFound("user", targetID)
	}
	return apperrors.NewSyncFailure("relationship graph write", err)
}
