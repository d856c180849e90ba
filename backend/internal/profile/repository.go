package profile

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"lovemining/backend/pkg/logger"
)

// Repository handles the users collection in MongoDB
type Repository struct {
	users  *mongo.Collection
	logger *zap.Logger
}

// NewRepository creates a new profile repository
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		users:  db.Collection("users"),
		logger: logger.Get(),
	}
}

// Get retrieves a profile by id. Returns (nil, nil) when no document exists.
func (r *Repository) Get(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile %s: %w", id, err)
	}
	return &p, nil
}

// GetByEmail retrieves a profile by email. Returns (nil, nil) when no document exists.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	var p Profile
	err := r.users.FindOne(ctx, bson.M{"Email": email}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile by email: %w", err)
	}
	return &p, nil
}

// Insert writes a new profile, generating its identity. The assigned id is
// set on the given profile and returned.
func (r *Repository) Insert(ctx context.Context, p *Profile) (string, error) {
	p.ID = primitive.NewObjectID().Hex()
	if _, err := r.users.InsertOne(ctx, p); err != nil {
		return "", fmt.Errorf("failed to insert profile: %w", err)
	}
	r.logger.Info("Profile created", zap.String("user_id", p.ID))
	return p.ID, nil
}

// Replace overwrites the stored document for the profile's id
func (r *Repository) Replace(ctx context.Context, p *Profile) error {
	result, err := r.users.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("failed to replace profile %s: %w", p.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("no profile to replace: %s", p.ID)
	}
	return nil
}

// DeleteByID removes a profile document
func (r *Repository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.users.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", id, err)
	}
	r.logger.Info("Profile deleted", zap.String("user_id", id))
	return nil
}

// PushReviewSummary appends a review summary to the author's reviews_made list
func (r *Repository) PushReviewSummary(ctx context.Context, authorID string, summary ReviewSummary) error {
	result, err := r.users.UpdateOne(ctx,
		bson.M{"_id": authorID},
		bson.M{"$push": bson.M{"reviews_made": summary}},
	)
	if err != nil {
		return fmt.Errorf("failed to append review summary: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("no profile to update: %s", authorID)
	}
	return nil
}

// RemoveReviewReferences strips every reviews_made entry pointing at the given
// target from all profiles. Used when the target account is deleted.
func (r *Repository) RemoveReviewReferences(ctx context.Context, targetID string) error {
	_, err := r.users.UpdateMany(ctx,
		bson.M{"reviews_made.target_id": targetID},
		bson.M{"$pull": bson.M{"reviews_made": bson.M{"target_id": targetID}}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove review references for %s: %w", targetID, err)
	}
	return nil
}
