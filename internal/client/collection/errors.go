package collection

import "errors"

// Collection errors
var (
	// ErrNotFound indicates that the document does not exist in the collection
	ErrNotFound = errors.New("document not found")

	// ErrAlreadyExists indicates that Add was given an id that is already used
	ErrAlreadyExists = errors.New("document already exists")

	// ErrInvalidDocument indicates a document whose id is not a string
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidName indicates an empty or reserved collection name
	ErrInvalidName = errors.New("invalid collection name")

	// ErrRegistryClosed is returned by lookups after Close
	ErrRegistryClosed = errors.New("collection registry is closed")
)
