package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/iudanet/gophsync/internal/client/storage"
	"github.com/iudanet/gophsync/internal/models"
)

// ErrOperationNotFound indicates that the operation is not queued
var ErrOperationNotFound = errors.New("operation not found")

// Queue is the durable FIFO of pending operations. It keeps no in-memory copy:
// every call goes to storage, so the queue survives restarts and stays the
// single source of retry truth.
type Queue struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a queue backed by the reserved queue store
func New(s storage.Storage, logger *slog.Logger) *Queue {
	return &Queue{
		storage: s,
		logger:  logger,
	}
}

// Enqueue persists an operation. Enqueueing an id that is already queued
// replaces it in place.
func (q *Queue) Enqueue(ctx context.Context, op models.Operation) error {
	if err := op.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("failed to marshal operation: %w", err)
	}

	if err := q.storage.Set(ctx, storage.StoreQueue, op.ID, data); err != nil {
		return fmt.Errorf("failed to enqueue operation %s: %w", op.ID, err)
	}

	q.logger.Debug("Operation enqueued",
		"op_id", op.ID,
		"type", op.Type,
		"collection", op.Collection,
		"doc_id", op.DocID)

	return nil
}

// Dequeue removes an operation. Removing an unknown id is a no-op.
func (q *Queue) Dequeue(ctx context.Context, opID string) error {
	if err := q.storage.Delete(ctx, storage.StoreQueue, opID); err != nil {
		return fmt.Errorf("failed to dequeue operation %s: %w", opID, err)
	}
	return nil
}

// Get returns a queued operation.
// Returns ErrOperationNotFound if it is not queued
func (q *Queue) Get(ctx context.Context, opID string) (models.Operation, error) {
	data, err := q.storage.Get(ctx, storage.StoreQueue, opID)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return models.Operation{}, ErrOperationNotFound
		}
		return models.Operation{}, fmt.Errorf("failed to get operation %s: %w", opID, err)
	}

	var op models.Operation
	if err := json.Unmarshal(data, &op); err != nil {
		return models.Operation{}, fmt.Errorf("failed to unmarshal operation %s: %w", opID, err)
	}

	return op, nil
}

// Drain returns every queued operation ordered by timestamp ascending. The
// sort is stable, so equal timestamps keep the storage scan order. Drain does
// not remove anything.
func (q *Queue) Drain(ctx context.Context) ([]models.Operation, error) {
	values, err := q.storage.GetAll(ctx, storage.StoreQueue)
	if err != nil {
		return nil, fmt.Errorf("failed to read queue: %w", err)
	}

	ops := make([]models.Operation, 0, len(values))
	for _, data := range values {
		var op models.Operation
		if err := json.Unmarshal(data, &op); err != nil {
			// Пропускаем поврежденные записи, но не удаляем их
			q.logger.Warn("Skipping corrupted queue record", "error", err)
			continue
		}
		ops = append(ops, op)
	}

	sort.SliceStable(ops, func(i, j int) bool {
		return ops[i].Timestamp < ops[j].Timestamp
	})

	return ops, nil
}

// Len returns the number of queued operations
func (q *Queue) Len(ctx context.Context) (int, error) {
	values, err := q.storage.GetAll(ctx, storage.StoreQueue)
	if err != nil {
		return 0, fmt.Errorf("failed to read queue: %w", err)
	}
	return len(values), nil
}

// Clear drops every queued operation
func (q *Queue) Clear(ctx context.Context) error {
	if err := q.storage.Clear(ctx, storage.StoreQueue); err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}
	return nil
}
