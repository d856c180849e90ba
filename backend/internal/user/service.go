package user

import (
	"context"

	"go.uber.org/zap"

	"lovemining/backend/internal/graph"
	"lovemining/backend/internal/profile"
	apperrors "lovemining/backend/pkg/errors"
	"lovemining/backend/pkg/logger"
)

// ProfileStore is the document-store side of the orchestration: attribute-rich
// profile records keyed by a store-generated identity.
type ProfileStore interface {
	Get(ctx context.Context, id string) (*profile.Profile, error)
	GetByEmail(ctx context.Context, email string) (*profile.Profile, error)
	Insert(ctx context.Context, p *profile.Profile) (string, error)
	Replace(ctx context.Context, p *profile.Profile) error
	DeleteByID(ctx context.Context, id string) error
	PushReviewSummary(ctx context.Context, authorID string, summary profile.ReviewSummary) error
	RemoveReviewReferences(ctx context.Context, targetID string) error
}

// ReviewStore holds full review documents
type ReviewStore interface {
	Insert(ctx context.Context, rev *profile.Review) (string, error)
	DeleteAllByID(ctx context.Context, ids []string) error
	DeleteByTargetID(ctx context.Context, targetID string) error
}

// GraphStore is the relationship-graph side of the orchestration
type GraphStore interface {
	CreateUser(ctx context.Context, node graph.UserNode, city, state string, interests []string) error
	UpdateBasicProfile(ctx context.Context, id string, age int, sex, orientation string) error
	UpdateInterests(ctx context.Context, id string, interests []string) error
	UpdateLocation(ctx context.Context, id, city, state string) error
	Exists(ctx context.Context, id string) (bool, error)
	DetachDeleteUser(ctx context.Context, id string) error
	HasLiked(ctx context.Context, fromID, toID string) (bool, error)
	AreMatched(ctx context.Context, userID, targetID string) (bool, error)
	MergeLike(ctx context.Context, actorID, targetID string) error
	MergeDislike(ctx context.Context, actorID, targetID string) error
	TransformLikeToMatch(ctx context.Context, actorID, targetID string) error
	FindRecommendations(ctx context.Context, userID string, scope graph.Scope, minAge, maxAge int) ([]string, error)
	FindMatches(ctx context.Context, userID string) ([]graph.UserNode, error)
}

// Extractor maps free text to canonical interest tags
type Extractor interface {
	Extract(text string) []string
}

// Hasher turns plaintext credentials into opaque digests
type Hasher interface {
	Hash(plaintext string) (string, error)
}

// Service orchestrates profile and graph mutations so the two stores stay
// coherent, resolves likes into matches, and serves recommendations.
type Service struct {
	profiles  ProfileStore
	reviews   ReviewStore
	graph     GraphStore
	extractor Extractor
	hasher    Hasher
	logger    *zap.Logger
}

// NewService creates the user service
func NewService(profiles ProfileStore, reviews ReviewStore, g GraphStore, extractor Extractor, hasher Hasher) *Service {
	return &Service{
		profiles:  profiles,
		reviews:   reviews,
		graph:     g,
		extractor: extractor,
		hasher:    hasher,
		logger:    logger.Get(),
	}
}

// Get returns the profile for an id
func (s *Service) Get(ctx context.Context, id string) (*profile.Profile, error) {
	p, err := s.profiles.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("profile", err)
	}
	if p == nil {
		return nil, apperrors.NewNotFound("user", id)
	}
	return p, nil
}

// GetByEmail returns the profile for an email address
func (s *Service) GetByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	p, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("profile", err)
	}
	if p == nil {
		return nil, apperrors.NewNotFound("user", email)
	}
	return p, nil
}

// Matches lists the graph users matched with the given user
func (s *Service) Matches(ctx context.Context, id string) ([]graph.UserNode, error) {
	matches, err := s.graph.FindMatches(ctx, id)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("graph", err)
	}
	return matches, nil
}

// Reviews lists the review summaries authored by the given user
func (s *Service) Reviews(ctx context.Context, id string) ([]profile.ReviewSummary, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.ReviewsMade == nil {
		return []profile.ReviewSummary{}, nil
	}
	return p.ReviewsMade, nil
}
