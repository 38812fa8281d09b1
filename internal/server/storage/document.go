package storage

import (
	"context"

	"github.com/iudanet/gophsync/internal/models"
)

// StoredDocument is the server copy of a document
type StoredDocument struct {
	Data       models.Document
	Collection string
	ID         string
	UpdatedAt  int64 // timestamp последней принятой операции, Unix ms
	Version    int64
}

// Change is an accepted operation in the change log
type Change struct {
	Operation models.Operation
	ClientID  string
	Seq       int64
}

// DocumentStorage defines interface for document and change log persistence
type DocumentStorage interface {
	// ApplyOperation validates op against the current document and, when
	// accepted, writes the document and appends op to the change log.
	// An operation id that was already accepted is acknowledged again without
	// any change.
	// Returns *ConflictError (matches ErrConflict) or ErrDocumentNotFound
	ApplyOperation(ctx context.Context, clientID string, op *models.Operation) error

	// GetDocument retrieves a single document
	// Returns ErrDocumentNotFound if document doesn't exist
	GetDocument(ctx context.Context, collection, id string) (*StoredDocument, error)

	// ChangesSince returns accepted operations with seq greater than since,
	// ordered by seq. Returns empty slice if there are none
	ChangesSince(ctx context.Context, since int64) ([]Change, error)
}
