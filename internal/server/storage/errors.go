package storage

import (
	"errors"

	"github.com/iudanet/gophsync/internal/models"
)

// Common storage errors
var (
	// ErrDocumentNotFound indicates that the document does not exist
	ErrDocumentNotFound = errors.New("document not found")

	// ErrConflict indicates that the document changed after the operation was made
	ErrConflict = errors.New("conflict")

	// ErrClientNotFound indicates that client was not found in storage
	ErrClientNotFound = errors.New("client not found")

	// ErrClientAlreadyExists indicates that client with this id already exists
	ErrClientAlreadyExists = errors.New("client already exists")
)

// ConflictError carries the current server copy of a conflicting document.
// errors.Is(err, ErrConflict) holds for it.
type ConflictError struct {
	Current models.Document
	Reason  string
}

func (e *ConflictError) Error() string {
	return ErrConflict.Error() + ": " + e.Reason
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
