package storage

import (
	"context"

	"github.com/iudanet/gophsync/internal/models"
)

// ClientStorage defines interface for registered sync clients
type ClientStorage interface {
	// CreateClient registers a new client
	// Returns ErrClientAlreadyExists if the id is taken
	CreateClient(ctx context.Context, client *models.SyncClient) error

	// GetClient retrieves client by id
	// Returns ErrClientNotFound if client doesn't exist
	GetClient(ctx context.Context, id string) (*models.SyncClient, error)

	// ListClients returns all registered clients ordered by id
	ListClients(ctx context.Context) ([]*models.SyncClient, error)

	// DeleteClient removes client by id
	// Returns ErrClientNotFound if client doesn't exist
	DeleteClient(ctx context.Context, id string) error
}
