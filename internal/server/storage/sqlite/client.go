package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/gophsync/internal/models"
	"github.com/iudanet/gophsync/internal/server/storage"
)

// CreateClient registers a new sync client
func (s *Storage) CreateClient(ctx context.Context, client *models.SyncClient) error {
	query := `
		INSERT INTO clients (id, secret_hash, created_at)
		VALUES (?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		client.ID,
		client.SecretHash,
		client.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrClientAlreadyExists
		}
		return fmt.Errorf("failed to insert client: %w", err)
	}

	return nil
}

// GetClient retrieves client by id
func (s *Storage) GetClient(ctx context.Context, id string) (*models.SyncClient, error) {
	query := `
		SELECT id, secret_hash, created_at
		FROM clients
		WHERE id = ?
	`

	client := &models.SyncClient{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&client.ID,
		&client.SecretHash,
		&client.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return client, nil
}

// ListClients returns every registered client ordered by id
func (s *Storage) ListClients(ctx context.Context) ([]*models.SyncClient, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, secret_hash, created_at FROM clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := make([]*models.SyncClient, 0)
	for rows.Next() {
		client := &models.SyncClient{}
		if err := rows.Scan(&client.ID, &client.SecretHash, &client.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	return clients, nil
}

// DeleteClient removes client by id
func (s *Storage) DeleteClient(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return storage.ErrClientNotFound
	}

	return nil
}
