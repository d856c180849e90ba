package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"lovemining/backend/pkg/logger"
)

// ReviewRepository handles the reviews collection in MongoDB
type ReviewRepository struct {
	reviews *mongo.Collection
	logger  *zap.Logger
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{
		reviews: db.Collection("reviews"),
		logger:  logger.Get(),
	}
}

// Get retrieves a review by id. Returns (nil, nil) when no document exists.
func (r *ReviewRepository) Get(ctx context.Context, id string) (*Review, error) {
	var rev Review
	err := r.reviews.FindOne(ctx, bson.M{"_id": id}).Decode(&rev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch review %s: %w", id, err)
	}
	return &rev, nil
}

// Insert writes a new review, generating its identity and timestamp
func (r *ReviewRepository) Insert(ctx context.Context, rev *Review) (string, error) {
	rev.ID = primitive.NewObjectID().Hex()
	rev.Date = time.Now().UTC()
	if _, err := r.reviews.InsertOne(ctx, rev); err != nil {
		return "", fmt.Errorf("failed to insert review: %w", err)
	}
	return rev.ID, nil
}

// DeleteAllByID removes the reviews with the given ids in one call
func (r *ReviewRepository) DeleteAllByID(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	result, err := r.reviews.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return fmt.Errorf("failed to delete reviews: %w", err)
	}
	r.logger.Debug("Reviews deleted", zap.Int64("count", result.DeletedCount))
	return nil
}

// DeleteByTargetID removes every review written about the given user
func (r *ReviewRepository) DeleteByTargetID(ctx context.Context, targetID string) error {
	if _, err := r.reviews.DeleteMany(ctx, bson.M{"target_id": targetID}); err != nil {
		return fmt.Errorf("failed to delete reviews targeting %s: %w", targetID, err)
	}
	return nil
}

// GlowUpRow is one row of the glow-up report: a user whose recent review
// average improved the most over their past average.
type GlowUpRow struct {
	UserID      string  `bson:"_id" json:"user_id"`
	RecentAvg   float64 `bson:"recentAvg" json:"recent_avg"`
	PastAvg     float64 `bson:"pastAvg" json:"past_avg"`
	GlowUpIndex float64 `bson:"glowUpIndex" json:"glow_up_index"`
}

// FindBestGlowUpUsers returns the top 3 users by rating improvement across the
// cutoff date. A user counts only with reviews on both sides of the cutoff and
// at least three reviews overall.
func (r *ReviewRepository) FindBestGlowUpUsers(ctx context.Context, cutoff time.Time) ([]GlowUpRow, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":             "$target_id",
			"recentRatingSum": bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$gte": bson.A{"$review_date", cutoff}}, "$rating", 0}}},
			"recentCount":     bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$gte": bson.A{"$review_date", cutoff}}, 1, 0}}},
			"pastRatingSum":   bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$lt": bson.A{"$review_date", cutoff}}, "$rating", 0}}},
			"pastCount":       bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$lt": bson.A{"$review_date", cutoff}}, 1, 0}}},
			"totalCount":      bson.M{"$sum": 1},
		}}},
		{{Key: "$match", Value: bson.M{
			"recentCount": bson.M{"$gt": 0},
			"pastCount":   bson.M{"$gt": 0},
			"totalCount":  bson.M{"$gte": 3},
		}}},
		{{Key: "$project", Value: bson.M{
			"recentAvg": bson.M{"$divide": bson.A{"$recentRatingSum", "$recentCount"}},
			"pastAvg":   bson.M{"$divide": bson.A{"$pastRatingSum", "$pastCount"}},
			"glowUpIndex": bson.M{"$subtract": bson.A{
				bson.M{"$divide": bson.A{"$recentRatingSum", "$recentCount"}},
				bson.M{"$divide": bson.A{"$pastRatingSum", "$pastCount"}},
			}},
		}}},
		{{Key: "$sort", Value: bson.M{"glowUpIndex": -1}}},
		{{Key: "$limit", Value: 3}},
	}

	cursor, err := r.reviews.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to run glow-up aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []GlowUpRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode glow-up rows: %w", err)
	}
	return rows, nil
}
