package profile

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ============================================================================
// Reporting Aggregations over the users collection
// ============================================================================

// UnhappyCityRow is one row of the unhappy-city report
type UnhappyCityRow struct {
	City                 string  `bson:"_id" json:"city"`
	TotalUnhappyUsers    int     `bson:"totalUnhappyUsers" json:"total_unhappy_users"`
	ExtremeHatersCount   int     `bson:"extremeHatersCount" json:"extreme_haters_count"`
	ModerateUnhappyCount int     `bson:"moderateUnhappyCount" json:"moderate_unhappy_count"`
	AvgUnhappinessScore  float64 `bson:"avgUnhappinessScore" json:"avg_unhappiness_score"`
}

// ageGroupStage buckets users into three labelled age groups
var ageGroupStage = bson.M{"$cond": bson.A{
	bson.M{"$lte": bson.A{"$age", 25}}, "1. Young (18-25)",
	bson.M{"$cond": bson.A{
		bson.M{"$lte": bson.A{"$age", 40}}, "2. Adult (26-40)",
		"3. Senior (40+)",
	}},
}}

// FindUnhappyCities returns the five cities with the most users whose personal
// review average falls below 3.
func (r *Repository) FindUnhappyCities(ctx context.Context) ([]UnhappyCityRow, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"reviews_made.rating": bson.M{"$gt": 0}}}},
		{{Key: "$project", Value: bson.M{
			"city":            1,
			"userPersonalAvg": bson.M{"$avg": "$reviews_made.rating"},
		}}},
		{{Key: "$match", Value: bson.M{"userPersonalAvg": bson.M{"$lt": 3}}}},
		{{Key: "$group", Value: bson.M{
			"_id":                 "$city",
			"totalUnhappyUsers":   bson.M{"$sum": 1},
			"extremeHatersCount":  bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$lt": bson.A{"$userPersonalAvg", 2}}, 1, 0}}},
			"moderateUnhappyCount": bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$gte": bson.A{"$userPersonalAvg", 2}}, 1, 0}}},
			"avgUnhappinessScore": bson.M{"$avg": "$userPersonalAvg"},
		}}},
		{{Key: "$project", Value: bson.M{
			"totalUnhappyUsers":    1,
			"extremeHatersCount":   1,
			"moderateUnhappyCount": 1,
			"avgUnhappinessScore":  bson.M{"$round": bson.A{"$avgUnhappinessScore", 2}},
		}}},
		{{Key: "$sort", Value: bson.M{"totalUnhappyUsers": -1}}},
		{{Key: "$limit", Value: 5}},
	}

	cursor, err := r.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to run unhappy-cities aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []UnhappyCityRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode unhappy-city rows: %w", err)
	}
	return rows, nil
}

// SinglesByAgeGroupRow is one row of the singles-percentage report
type SinglesByAgeGroupRow struct {
	AgeGroup         string  `bson:"ageGroup" json:"age_group"`
	TotalUsers       int     `bson:"totalUsers" json:"total_users"`
	SinglePercentage float64 `bson:"singlePercentage" json:"single_percentage"`
}

// FindSinglesByAgeGroup buckets users by age and reports the percentage whose
// status is single or available in each bucket.
func (r *Repository) FindSinglesByAgeGroup(ctx context.Context) ([]SinglesByAgeGroupRow, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$in": bson.A{"available", "single", "seeing someone", "married"}}}}},
		{{Key: "$project", Value: bson.M{
			"_id":      0,
			"status":   1,
			"ageGroup": ageGroupStage,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$ageGroup",
			"totalUsers":  bson.M{"$sum": 1},
			"singleCount": bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$in": bson.A{"$status", bson.A{"single", "available"}}}, 1, 0}}},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":        0,
			"ageGroup":   "$_id",
			"totalUsers": 1,
			"singlePercentage": bson.M{"$round": bson.A{
				bson.M{"$multiply": bson.A{bson.M{"$divide": bson.A{"$singleCount", "$totalUsers"}}, 100}},
				1,
			}},
		}}},
		{{Key: "$sort", Value: bson.M{"ageGroup": 1}}},
	}

	cursor, err := r.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to run singles-by-age aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []SinglesByAgeGroupRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode singles-by-age rows: %w", err)
	}
	return rows, nil
}

// AgeGroupCount is a nested demographic bucket
type AgeGroupCount struct {
	AgeGroup   string `bson:"ageGroup" json:"age_group"`
	UsersCount int    `bson:"usersCount" json:"users_count"`
}

// OrientationDemographicsRow is one row of the orientation demographics report
type OrientationDemographicsRow struct {
	Orientation  string          `bson:"_id" json:"orientation"`
	TotalUsers   int             `bson:"totalUsers" json:"total_users"`
	Demographics []AgeGroupCount `bson:"demographics" json:"demographics"`
}

// FindOrientationDemographics groups users by orientation with a per-age-group
// breakdown inside each orientation.
func (r *Repository) FindOrientationDemographics(ctx context.Context) ([]OrientationDemographicsRow, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"orientation": bson.M{"$in": bson.A{"straight", "gay", "bisexual"}}}}},
		{{Key: "$project", Value: bson.M{
			"_id":         0,
			"orientation": 1,
			"ageGroup":    ageGroupStage,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"orientation": "$orientation", "ageGroup": "$ageGroup"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id.ageGroup": 1}}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$_id.orientation",
			"totalUsers": bson.M{"$sum": "$count"},
			"demographics": bson.M{"$push": bson.M{
				"ageGroup":   "$_id.ageGroup",
				"usersCount": "$count",
			}},
		}}},
		{{Key: "$sort", Value: bson.M{"totalUsers": -1}}},
	}

	cursor, err := r.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to run orientation demographics aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []OrientationDemographicsRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode orientation demographics rows: %w", err)
	}
	return rows, nil
}
