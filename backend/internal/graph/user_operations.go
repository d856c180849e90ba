package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// ============================================================================
// User Node Operations
// ============================================================================

// CreateUser mirrors a freshly registered profile into the graph. The node,
// its city, state and interest nodes and all edges are written in a single
// statement so a failed registration never leaves a half-built mirror. City,
// State and Interest nodes are resolved by name with MERGE, so concurrent
// first-time references never create duplicates.
func (r *Repository) CreateUser(ctx context.Context, user UserNode, city, state string, interests []string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MERGE (u:User {id: $userID})
		SET u.age = $age,
		    u.sex = $sex,
		    u.orientation = $orientation
		MERGE (s:State {name: $state})
		MERGE (c:City {name: $city})
		MERGE (c)-[:LOCATED_IN]->(s)
		MERGE (u)-[:LIVES_IN]->(c)
		WITH u
		FOREACH (name IN $interests |
			MERGE (i:Interest {name: name})
			MERGE (u)-[:HAS_INTEREST]->(i))
		RETURN u.id AS id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID":      user.ID,
		"age":         user.Age,
		"sex":         user.Sex,
		"orientation": user.Orientation,
		"city":        city,
		"state":       state,
		"interests":   interests,
	})
	if err != nil {
		return fmt.Errorf("failed to create user node: %w", err)
	}

	if _, err := result.Single(ctx); err != nil {
		return fmt.Errorf("failed to verify user node creation: %w", err)
	}

	r.logger.Info("User mirrored into graph",
		zap.String("user_id", user.ID),
		zap.String("city", city),
		zap.Int("interests", len(interests)),
	)
	return nil
}

// UpdateBasicProfile updates the age, sex and orientation mirrored on the user node
func (r *Repository) UpdateBasicProfile(ctx context.Context, userID string, age int, sex, orientation string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $userID})
		SET u.age = $age,
		    u.sex = $sex,
		    u.orientation = $orientation
		RETURN u.id AS id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID":      userID,
		"age":         age,
		"sex":         sex,
		"orientation": orientation,
	})
	if err != nil {
		return fmt.Errorf("failed to update basic profile: %w", err)
	}

	if _, err := result.Single(ctx); err != nil {
		return ErrUserNotFound{UserID: userID}
	}
	return nil
}

// UpdateInterests replaces the user's HAS_INTEREST edges with the given set.
// Interest nodes are resolved by name; abandoned nodes are left in place for
// other users.
func (r *Repository) UpdateInterests(ctx context.Context, userID string, interests []string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $userID})
		OPTIONAL MATCH (u)-[r:HAS_INTEREST]->()
		DELETE r
		WITH DISTINCT u
		FOREACH (name IN $interests |
			MERGE (i:Interest {name: name})
			MERGE (u)-[:HAS_INTEREST]->(i))
		RETURN u.id AS id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID":    userID,
		"interests": interests,
	})
	if err != nil {
		return fmt.Errorf("failed to update interests: %w", err)
	}

	if _, err := result.Single(ctx); err != nil {
		return ErrUserNotFound{UserID: userID}
	}

	r.logger.Debug("User interests replaced",
		zap.String("user_id", userID),
		zap.Int("count", len(interests)),
	)
	return nil
}

// UpdateLocation repoints the user's LIVES_IN edge at the named city, resolving
// the city and state nodes by name. City uniqueness is by name alone, so two
// states sharing a city name collide onto one node.
func (r *Repository) UpdateLocation(ctx context.Context, userID, city, state string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $userID})
		OPTIONAL MATCH (u)-[r:LIVES_IN]->()
		DELETE r
		WITH DISTINCT u
		MERGE (s:State {name: $state})
		MERGE (c:City {name: $city})
		MERGE (c)-[:LOCATED_IN]->(s)
		MERGE (u)-[:LIVES_IN]->(c)
		RETURN u.id AS id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
		"city":   city,
		"state":  state,
	})
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}

	if _, err := result.Single(ctx); err != nil {
		return ErrUserNotFound{UserID: userID}
	}

	r.logger.Debug("User location updated",
		zap.String("user_id", userID),
		zap.String("city", city),
		zap.String("state", state),
	)
	return nil
}
