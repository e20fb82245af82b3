// Package db provides error types for database operations.
package db

import "errors"

// Sentinel errors for database operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrNotFound indicates the requested session does not exist.
	ErrNotFound = errors.New("session not found")

	// ErrPersistence indicates a durable-store failure. Callers on the primary
	// response path log it and keep the reply they already computed.
	ErrPersistence = errors.New("persistence failure")
)
