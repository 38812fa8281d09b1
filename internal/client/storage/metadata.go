package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	keyLastPulledAt = "lastPulledAt"
)

// Metadata stores internal sync metadata in the reserved metadata store
type Metadata struct {
	storage Storage
}

// NewMetadata creates a metadata accessor on top of storage
func NewMetadata(s Storage) *Metadata {
	return &Metadata{storage: s}
}

// SaveCursor saves the high-water mark of the last successful pull
func (m *Metadata) SaveCursor(ctx context.Context, cursor int64) error {
	// Конвертируем int64 в bytes
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, uint64(cursor))

	if err := m.storage.Set(ctx, StoreMetadata, keyLastPulledAt, value); err != nil {
		return fmt.Errorf("failed to save cursor: %w", err)
	}
	return nil
}

// GetCursor retrieves the pull cursor.
// Returns 0 if no pull has been performed yet
func (m *Metadata) GetCursor(ctx context.Context) (int64, error) {
	value, err := m.storage.Get(ctx, StoreMetadata, keyLastPulledAt)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			// Если cursor не найден, возвращаем 0 (первая синхронизация)
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get cursor: %w", err)
	}

	if len(value) != 8 {
		return 0, fmt.Errorf("corrupted cursor record: %d bytes", len(value))
	}

	return int64(binary.BigEndian.Uint64(value)), nil
}
