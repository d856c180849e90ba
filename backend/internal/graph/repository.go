package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"lovemining/backend/pkg/logger"
)

// Repository handles all Neo4j database operations
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.Get(),
	}
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	return r.driver.Close(context.Background())
}

// Exists reports whether a user node with the given id is present in the graph
func (r *Repository) Exists(ctx context.Context, userID string) (bool, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $userID})
		RETURN count(u) > 0 AS present
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read existence record: %w", err)
	}

	return getBool(record, "present", false), nil
}

// DetachDeleteUser removes a user node and every incident edge in one statement.
// All of LIKES, DISLIKES, MATCHED, LIVES_IN and HAS_INTEREST go with the node;
// City, State and Interest nodes stay because other users share them.
func (r *Repository) DetachDeleteUser(ctx context.Context, userID string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $userID})
		DETACH DELETE u
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
	})
	if err != nil {
		return fmt.Errorf("failed to detach delete user: %w", err)
	}

	summary, err := result.Consume(ctx)
	if err != nil {
		return fmt.Errorf("failed to consume delete result: %w", err)
	}
	if summary.Counters().NodesDeleted() == 0 {
		return ErrUserNotFound{UserID: userID}
	}

	r.logger.Info("User node deleted from graph", zap.String("user_id", userID))
	return nil
}

// ErrUserNotFound is returned when a user node is missing from the graph
type ErrUserNotFound struct {
	UserID string
}

func (e ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found in graph: %s", e.UserID)
}
