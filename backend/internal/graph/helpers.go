package graph

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Record extraction helpers. Neo4j returns interface{} values; these narrow
// them with defaults instead of panicking on absent or mistyped columns.

func getString(record *neo4j.Record, key string, defaultValue string) string {
	val, ok := record.Get(key)
	if !ok {
		return defaultValue
	}
	if str, ok := val.(string); ok {
		return str
	}
	return defaultValue
}

func getBool(record *neo4j.Record, key string, defaultValue bool) bool {
	val, ok := record.Get(key)
	if !ok {
		return defaultValue
	}
	if b, ok := val.(bool); ok {
		return b
	}
	return defaultValue
}

func getInt64(record *neo4j.Record, key string, defaultValue int64) int64 {
	val, ok := record.Get(key)
	if !ok {
		return defaultValue
	}
	if n, ok := val.(int64); ok {
		return n
	}
	return defaultValue
}

func getFloat64(record *neo4j.Record, key string, defaultValue float64) float64 {
	val, ok := record.Get(key)
	if !ok {
		return defaultValue
	}
	if f, ok := val.(float64); ok {
		return f
	}
	return defaultValue
}
