package user

import (
	"context"

	"lovemining/backend/internal/graph"
	apperrors "lovemining/backend/pkg/errors"
)

// Recommend returns up to 10 candidate user ids for the requester, filtered by
// geographic scope ("city" or "state") and an inclusive age range, ordered by
// shared interests. The underlying query is a pure read, safe to run
// concurrently with likes and matches; a stale read only costs a candidate
// appearing or missing once.
func (s *Service) Recommend(ctx context.Context, userID, scope string, minCandidateAge, maxCandidateAge int) ([]string, error) {
	var graphScope graph.Scope
	switch normalize(scope) {
	case "city":
		graphScope = graph.ScopeCity
	case "state":
		graphScope = graph.ScopeState
	default:
		return nil, apperrors.NewValidation("scope must be 'city' or 'state'")
	}

	if minCandidateAge < 0 || maxCandidateAge < minCandidateAge {
		return nil, apperrors.NewValidation("age range is invalid")
	}

	ids, err := s.graph.FindRecommendations(ctx, userID, graphScope, minCandidateAge, maxCandidateAge)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("graph", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
