package storage

import "errors"

// Common client storage errors
var (
	// ErrKeyNotFound indicates that the requested key does not exist
	ErrKeyNotFound = errors.New("key not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")

	// ErrStorageUnavailable indicates that the backend could not serve the request
	ErrStorageUnavailable = errors.New("storage unavailable")
)
