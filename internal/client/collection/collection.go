package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/iudanet/gophsync/internal/client/state"
	"github.com/iudanet/gophsync/internal/models"
)

// Collection is the CRUD surface of one named partition.
//
// Mutations apply to the projection first, so subscribers see the optimistic
// state immediately, then persist the document and enqueue the operation
// before returning. When a durable step fails the projection and storage are
// restored and the storage error is returned.
type Collection struct {
	registry *Registry
	name     string
	mu       sync.Mutex // сериализует read-merge-write последовательности
}

// Name returns the collection name
func (c *Collection) Name() string {
	return c.name
}

// Add inserts a new document. An id is allocated when partial has none.
func (c *Collection) Add(ctx context.Context, partial models.Document) (models.Document, error) {
	doc := partial.Clone()
	if doc == nil {
		doc = models.Document{}
	}

	if _, has := doc[models.FieldID]; has && doc.ID() == "" {
		return nil, fmt.Errorf("%w: id must be a non-empty string", ErrInvalidDocument)
	}
	if doc.ID() == "" {
		doc[models.FieldID] = uuid.New().String()
	}
	id := doc.ID()

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	r := c.registry
	if _, exists := r.projection.Get(c.name, id); exists {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, id)
	}

	r.projection.Put(c.name, doc)

	if err := r.storage.Set(ctx, c.name, id, data); err != nil {
		r.projection.Remove(c.name, id)
		return nil, fmt.Errorf("failed to persist document %s: %w", id, err)
	}

	op := c.newOperation(models.OperationCreate, id, doc.Clone())
	if err := r.queue.Enqueue(ctx, op); err != nil {
		c.restore(ctx, id, nil)
		return nil, err
	}

	return doc, nil
}

// Update merges partial into the document. Only the delta is enqueued.
// Returns ErrNotFound if the document does not exist.
func (c *Collection) Update(ctx context.Context, id string, partial models.Document) (models.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := c.registry
	prev, ok := r.projection.Get(c.name, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	delta := partial.Clone()
	delete(delta, models.FieldID)
	if len(delta) == 0 {
		return prev, nil
	}

	merged := prev.Merge(delta)
	data, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	r.projection.Patch(c.name, id, delta)

	if err := r.storage.Set(ctx, c.name, id, data); err != nil {
		r.projection.Put(c.name, prev)
		return nil, fmt.Errorf("failed to persist document %s: %w", id, err)
	}

	op := c.newOperation(models.OperationUpdate, id, delta)
	if err := r.queue.Enqueue(ctx, op); err != nil {
		c.restore(ctx, id, prev)
		return nil, err
	}

	return merged, nil
}

// Delete removes the document.
// Returns ErrNotFound if the document does not exist.
func (c *Collection) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := c.registry
	prev, ok := r.projection.Get(c.name, id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	r.projection.Remove(c.name, id)

	if err := r.storage.Delete(ctx, c.name, id); err != nil {
		r.projection.Put(c.name, prev)
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}

	op := c.newOperation(models.OperationDelete, id, nil)
	if err := r.queue.Enqueue(ctx, op); err != nil {
		c.restore(ctx, id, prev)
		return err
	}

	return nil
}

// Get returns a copy of the document
func (c *Collection) Get(id string) (models.Document, bool) {
	return c.registry.projection.Get(c.name, id)
}

// GetAll returns copies of all documents in unspecified order
func (c *Collection) GetAll() []models.Document {
	return c.registry.projection.List(c.name)
}

// Subscribe registers listener for changes. The current snapshot is delivered
// before Subscribe returns.
func (c *Collection) Subscribe(listener state.Listener) func() {
	return c.registry.projection.Subscribe(c.name, listener)
}

func (c *Collection) newOperation(typ models.OperationType, id string, payload models.Document) models.Operation {
	return models.Operation{
		ID:         uuid.New().String(),
		Type:       typ,
		Collection: c.name,
		DocID:      id,
		Payload:    payload,
		Timestamp:  c.registry.clock.Tick(),
	}
}

// restore puts prev back into storage and the projection after a failed
// enqueue. A nil prev means the document did not exist.
func (c *Collection) restore(ctx context.Context, id string, prev models.Document) {
	r := c.registry

	if prev == nil {
		if err := r.storage.Delete(ctx, c.name, id); err != nil {
			r.logger.Error("Failed to roll back document", "collection", c.name, "doc_id", id, "error", err)
		}
		r.projection.Remove(c.name, id)
		return
	}

	data, err := json.Marshal(prev)
	if err == nil {
		err = r.storage.Set(ctx, c.name, id, data)
	}
	if err != nil {
		r.logger.Error("Failed to roll back document", "collection", c.name, "doc_id", id, "error", err)
	}
	r.projection.Put(c.name, prev)
}

// applyRemote writes doc to storage and then to the projection. Caller holds mu.
func (c *Collection) applyRemote(ctx context.Context, doc models.Document) error {
	id := doc.ID()
	if id == "" {
		return fmt.Errorf("%w: remote document without id", ErrInvalidDocument)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	if err := c.registry.storage.Set(ctx, c.name, id, data); err != nil {
		return fmt.Errorf("failed to persist document %s/%s: %w", c.name, id, err)
	}
	c.registry.projection.Put(c.name, doc)
	return nil
}
