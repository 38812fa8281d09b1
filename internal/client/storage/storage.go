package storage

import (
	"context"
	"strings"
)

//go:generate moq -out storage_mock.go . Storage

// Reserved store names. Application collections may not start with the
// reserved prefix, so these never collide with user data.
const (
	ReservedPrefix = "_"

	// StoreMetadata holds internal sync metadata (the pull cursor)
	StoreMetadata = "_sync_meta"

	// StoreQueue holds the durable operation queue
	StoreQueue = "_sync_queue"
)

// Storage defines the durable key/value contract the sync engine consumes.
// Values are opaque bytes (JSON in practice) addressed by store name and key.
//
// Every backend failure must wrap ErrStorageUnavailable so callers can tell
// "storage is down" from "key is absent".
type Storage interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if the key or store doesn't exist
	Get(ctx context.Context, store, key string) ([]byte, error)

	// GetAll returns every value of the store in the backend's scan order.
	// A missing store yields an empty slice.
	GetAll(ctx context.Context, store string) ([][]byte, error)

	// Set stores value under key, creating the store if needed
	Set(ctx context.Context, store, key string, value []byte) error

	// Delete removes key from the store. Deleting an absent key is not an error.
	Delete(ctx context.Context, store, key string) error

	// Clear removes all keys from the store
	Clear(ctx context.Context, store string) error
}

// IsReserved reports whether name belongs to the engine's internal stores.
func IsReserved(name string) bool {
	return strings.HasPrefix(name, ReservedPrefix)
}
