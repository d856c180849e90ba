package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ============================================================================
// Recommendation and Reporting Queries
// ============================================================================

// Scope selects the geographic boundary for recommendations
type Scope string

const (
	// ScopeCity restricts candidates to the requester's city node
	ScopeCity Scope = "city"
	// ScopeState restricts candidates to the requester's state node
	ScopeState Scope = "state"
)

// FindRecommendations returns up to 10 candidate user ids for the requester,
// ordered by the number of shared interests, descending. The query is a pure
// read: it excludes the requester, anyone holding a LIKES, DISLIKES or MATCHED
// edge with them in either direction, candidates outside the inclusive age
// range or the geographic scope, and pairs failing the orientation table.
func (r *Repository) FindRecommendations(ctx context.Context, userID string, scope Scope, minAge, maxAge int) ([]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (me:User {id: $userID})
		MATCH (me)-[:LIVES_IN]->(myCity:City)-[:LOCATED_IN]->(myState:State)
		MATCH (candidate:User)-[:LIVES_IN]->(candCity:City)-[:LOCATED_IN]->(candState:State)
		WHERE me.id <> candidate.id
		AND NOT (me)-[:LIKES|DISLIKES|MATCHED]-(candidate)
		AND candidate.age >= $minAge AND candidate.age <= $maxAge
		AND (
			($scope = 'city' AND myCity = candCity) OR
			($scope = 'state' AND myState = candState)
		)
		AND ` + compatibilityClause() + `
		WITH me, candidate
		OPTIONAL MATCH (me)-[:HAS_INTEREST]->(i:Interest)<-[:HAS_INTEREST]-(candidate)
		WITH candidate, count(i) AS commonInterests
		RETURN candidate.id AS id
		ORDER BY commonInterests DESC
		LIMIT 10
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
		"scope":  string(scope),
		"minAge": minAge,
		"maxAge": maxAge,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute recommendation query: %w", err)
	}

	var ids []string
	for result.Next(ctx) {
		if id := getString(result.Record(), "id", ""); id != "" {
			ids = append(ids, id)
		}
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recommendations: %w", err)
	}
	return ids, nil
}

// LovePointsByState scores each city of a state by internal activity: one
// point per LIKES edge between residents, three per MATCHED pair. Matched
// pairs are counted once by ordering on id.
func (r *Repository) LovePointsByState(ctx context.Context, state string) ([]CityLoveStats, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (s:State {name: $state})<-[:LOCATED_IN]-(c:City)<-[:LIVES_IN]-(u:User)
		OPTIONAL MATCH (u)-[l:LIKES]->(target:User)-[:LIVES_IN]->(c)
		WITH c, u, count(l) AS userLikes
		OPTIONAL MATCH (u)-[m:MATCHED]-(partner:User)-[:LIVES_IN]->(c)
		WHERE u.id < partner.id
		WITH c, u, userLikes, count(m) AS userMatches
		WITH c.name AS city,
		     count(DISTINCT u) AS users,
		     sum(userLikes) AS totalLikes,
		     sum(userMatches) AS totalMatches
		WITH city, users, (totalLikes * 1) + (totalMatches * 3) AS interactions
		WITH city, users, interactions,
		     CASE WHEN users > 0 THEN toFloat(interactions) / users ELSE 0.0 END AS loveRatio
		RETURN city, users, interactions, loveRatio
		ORDER BY loveRatio DESC
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"state": state,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute love points query: %w", err)
	}

	var stats []CityLoveStats
	for result.Next(ctx) {
		record := result.Record()
		stats = append(stats, CityLoveStats{
			City:         getString(record, "city", ""),
			Users:        getInt64(record, "users", 0),
			Interactions: getInt64(record, "interactions", 0),
			LoveRatio:    getFloat64(record, "loveRatio", 0),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate love points: %w", err)
	}
	return stats, nil
}
