package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// ============================================================================
// Like / Dislike / Match Operations
//
// Every edge-set change here is a single Cypher statement, so each runs in one
// implicit transaction. That keeps the like-to-match transform indivisible and
// lets concurrent reciprocal likes converge without any higher-level lock.
// ============================================================================

// HasLiked reports whether a LIKES edge exists from one user to another
func (r *Repository) HasLiked(ctx context.Context, fromID, toID string) (bool, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (a:User {id: $fromID})-[l:LIKES]->(b:User {id: $toID})
		RETURN count(l) > 0 AS liked
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"fromID": fromID,
		"toID":   toID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check like edge: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read like record: %w", err)
	}
	return getBool(record, "liked", false), nil
}

// AreMatched reports whether a MATCHED edge exists between two users. MATCHED
// is stored once per pair but holds for either traversal direction, so the
// pattern is direction-agnostic.
func (r *Repository) AreMatched(ctx context.Context, userID, targetID string) (bool, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (a:User {id: $userID})-[m:MATCHED]-(b:User {id: $targetID})
		RETURN count(m) > 0 AS matched
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID":   userID,
		"targetID": targetID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check matched edge: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read matched record: %w", err)
	}
	return getBool(record, "matched", false), nil
}

// MergeLike idempotently creates a LIKES edge from actor to target
func (r *Repository) MergeLike(ctx context.Context, actorID, targetID string) error {
	return r.mergeDirectedEdge(ctx, "LIKES", actorID, targetID)
}

// MergeDislike idempotently creates a DISLIKES edge from actor to target
func (r *Repository) MergeDislike(ctx context.Context, actorID, targetID string) error {
	return r.mergeDirectedEdge(ctx, "DISLIKES", actorID, targetID)
}

func (r *Repository) mergeDirectedEdge(ctx context.Context, kind, actorID, targetID string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	// kind comes from the two callers above, never from input
	query := fmt.Sprintf(`
		MATCH (a:User {id: $actorID})
		MATCH (b:User {id: $targetID})
		MERGE (a)-[r:%s]->(b)
		ON CREATE SET r.created_at = datetime($now)
		RETURN count(r) AS edges
	`, kind)

	result, err := session.Run(ctx, query, map[string]interface{}{
		"actorID":  actorID,
		"targetID": targetID,
		"now":      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to merge %s edge: %w", kind, err)
	}

	record, err := result.Single(ctx)
	if err != nil || getInt64(record, "edges", 0) == 0 {
		// Single fails when either endpoint node was missing
		return ErrUserNotFound{UserID: targetID}
	}
	return nil
}

// TransformLikeToMatch atomically removes any LIKES edges between the pair (in
// both directions) and creates the MATCHED edge. MATCHED is always stored from
// the lexicographically smaller id so a pair can never hold two of them; the
// direction-agnostic readers above make the ordering invisible to callers.
func (r *Repository) TransformLikeToMatch(ctx context.Context, actorID, targetID string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (a:User {id: $actorID})
		MATCH (b:User {id: $targetID})
		OPTIONAL MATCH (a)-[l:LIKES]-(b)
		DELETE l
		WITH DISTINCT a, b
		WITH CASE WHEN a.id < b.id THEN a ELSE b END AS lo,
		     CASE WHEN a.id < b.id THEN b ELSE a END AS hi
		MERGE (lo)-[m:MATCHED]->(hi)
		ON CREATE SET m.matched_at = datetime($now)
		RETURN count(m) AS matched
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"actorID":  actorID,
		"targetID": targetID,
		"now":      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to transform like into match: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil || getInt64(record, "matched", 0) == 0 {
		return ErrUserNotFound{UserID: targetID}
	}

	r.logger.Info("Users matched",
		zap.String("actor_id", actorID),
		zap.String("target_id", targetID),
	)
	return nil
}

// FindMatches returns the user nodes matched with the given user
func (r *Repository) FindMatches(ctx context.Context, userID string) ([]UserNode, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $userID})-[:MATCHED]-(m:User)
		RETURN m.id AS id, m.age AS age, m.sex AS sex, m.orientation AS orientation
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}

	var matches []UserNode
	for result.Next(ctx) {
		record := result.Record()
		matches = append(matches, UserNode{
			ID:          getString(record, "id", ""),
			Age:         int(getInt64(record, "age", 0)),
			Sex:         getString(record, "sex", ""),
			Orientation: getString(record, "orientation", ""),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}
	return matches, nil
}
