package analytics

import (
	"context"
	"time"

	"lovemining/backend/internal/graph"
	"lovemining/backend/internal/profile"
	apperrors "lovemining/backend/pkg/errors"
)

// glowUpWindow is how far back a review still counts as recent
const glowUpWindow = 6 * 30 * 24 * time.Hour

// ProfileReporting is the read-only slice of the profile store the reports use
type ProfileReporting interface {
	FindUnhappyCities(ctx context.Context) ([]profile.UnhappyCityRow, error)
	FindSinglesByAgeGroup(ctx context.Context) ([]profile.SinglesByAgeGroupRow, error)
	FindOrientationDemographics(ctx context.Context) ([]profile.OrientationDemographicsRow, error)
}

// ReviewReporting is the read-only slice of the review store the reports use
type ReviewReporting interface {
	FindBestGlowUpUsers(ctx context.Context, cutoff time.Time) ([]profile.GlowUpRow, error)
}

// GraphReporting is the read-only slice of the graph store the reports use
type GraphReporting interface {
	LovePointsByState(ctx context.Context, state string) ([]graph.CityLoveStats, error)
}

// Service serves the admin reporting queries. Every query is a pure read over
// one store; none of them participate in the write orchestration.
type Service struct {
	profiles ProfileReporting
	reviews  ReviewReporting
	graph    GraphReporting
}

// NewService creates the analytics service
func NewService(profiles ProfileReporting, reviews ReviewReporting, g GraphReporting) *Service {
	return &Service{profiles: profiles, reviews: reviews, graph: g}
}

// LovePoints ranks the cities of a state by internal like/match activity
func (s *Service) LovePoints(ctx context.Context, state string) ([]graph.CityLoveStats, error) {
	if state == "" {
		return nil, apperrors.NewValidation("state is required")
	}
	stats, err := s.graph.LovePointsByState(ctx, state)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("graph", err)
	}
	return stats, nil
}

// BestGlowUps returns the users whose review average improved the most over
// the last six months
func (s *Service) BestGlowUps(ctx context.Context) ([]profile.GlowUpRow, error) {
	cutoff := time.Now().Add(-glowUpWindow)
	rows, err := s.reviews.FindBestGlowUpUsers(ctx, cutoff)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("review", err)
	}
	return rows, nil
}

// UnhappyCities returns the cities with the most low-rated users
func (s *Service) UnhappyCities(ctx context.Context) ([]profile.UnhappyCityRow, error) {
	rows, err := s.profiles.FindUnhappyCities(ctx)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("profile", err)
	}
	return rows, nil
}

// SinglesByAgeGroup returns the singles percentage per age bucket
func (s *Service) SinglesByAgeGroup(ctx context.Context) ([]profile.SinglesByAgeGroupRow, error) {
	rows, err := s.profiles.FindSinglesByAgeGroup(ctx)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("profile", err)
	}
	return rows, nil
}

// OrientationDemographics returns per-orientation counts broken down by age
// bucket
func (s *Service) OrientationDemographics(ctx context.Context) ([]profile.OrientationDemographicsRow, error) {
	rows, err := s.profiles.FindOrientationDemographics(ctx)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("profile", err)
	}
	return rows, nil
}
