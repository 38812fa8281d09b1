// Package collection provides the CRUD facade over named document collections
// and the registry that owns them.
package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/iudanet/gophsync/internal/client/queue"
	"github.com/iudanet/gophsync/internal/client/state"
	"github.com/iudanet/gophsync/internal/client/storage"
	"github.com/iudanet/gophsync/internal/clock"
	"github.com/iudanet/gophsync/internal/models"
)

// Registry owns every collection of one client. Collections are created on
// first access and live until Close.
type Registry struct {
	storage     storage.Storage
	queue       *queue.Queue
	projection  *state.Projection
	clock       *clock.Clock
	logger      *slog.Logger
	collections map[string]*Collection
	mu          sync.Mutex
	closed      bool
}

// NewRegistry creates an empty registry
func NewRegistry(s storage.Storage, q *queue.Queue, p *state.Projection, c *clock.Clock, logger *slog.Logger) *Registry {
	return &Registry{
		storage:     s,
		queue:       q,
		projection:  p,
		clock:       c,
		logger:      logger,
		collections: make(map[string]*Collection),
	}
}

// ValidateName checks that name may be used for an application collection
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if storage.IsReserved(name) {
		return fmt.Errorf("%w: %q uses reserved prefix %q", ErrInvalidName, name, storage.ReservedPrefix)
	}
	return nil
}

// Collection returns the named collection, creating it and loading its
// documents from storage on first access. A load failure is logged and the
// collection starts empty.
func (r *Registry) Collection(ctx context.Context, name string) (*Collection, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}

	if c, ok := r.collections[name]; ok {
		return c, nil
	}

	c := &Collection{name: name, registry: r}
	r.projection.SetAll(name, r.load(ctx, name))
	r.collections[name] = c

	return c, nil
}

// load reads the persisted documents of a collection
func (r *Registry) load(ctx context.Context, name string) []models.Document {
	values, err := r.storage.GetAll(ctx, name)
	if err != nil {
		// Коллекция стартует пустой, ошибка загрузки не фатальна
		r.logger.Warn("Failed to load collection, starting empty",
			"collection", name,
			"error", err)
		return nil
	}

	docs := make([]models.Document, 0, len(values))
	for _, data := range values {
		var doc models.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			r.logger.Warn("Skipping corrupted document", "collection", name, "error", err)
			continue
		}
		docs = append(docs, doc)
	}

	r.logger.Debug("Collection loaded", "collection", name, "count", len(docs))
	return docs
}

// Names returns the names of the collections opened so far, sorted
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.collections))
	for name := range r.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close drops every collection from the projection. Later lookups fail with
// ErrRegistryClosed.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true

	for name := range r.collections {
		r.projection.Drop(name)
	}
	r.collections = make(map[string]*Collection)
}

// ApplyRemote stores a document received from the remote, replacing any local
// copy. Nothing is enqueued.
func (r *Registry) ApplyRemote(ctx context.Context, collection string, doc models.Document) error {
	c, err := r.Collection(ctx, collection)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.applyRemote(ctx, doc)
}

// MergeRemote merges a remote partial update into the local copy. An unknown
// id is stored as is, unless a local delete of it is still queued: the
// partial document is not resurrected then.
func (r *Registry) MergeRemote(ctx context.Context, collection, id string, partial models.Document) error {
	c, err := r.Collection(ctx, collection)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var doc models.Document
	if existing, ok := r.projection.Get(collection, id); ok {
		doc = existing.Merge(partial)
	} else {
		pending, err := r.deletePending(ctx, collection, id)
		if err != nil {
			return err
		}
		if pending {
			r.logger.Debug("Remote update skipped, local delete is queued",
				"collection", collection, "doc_id", id)
			return nil
		}
		doc = partial.Clone()
	}
	doc[models.FieldID] = id

	return c.applyRemote(ctx, doc)
}

// RemoveRemote deletes a document the remote reported as deleted. Removing an
// unknown id is not an error.
func (r *Registry) RemoveRemote(ctx context.Context, collection, id string) error {
	c, err := r.Collection(ctx, collection)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := r.storage.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
	}
	r.projection.Remove(collection, id)
	return nil
}

// deletePending reports whether a Delete of the document waits in the queue
func (r *Registry) deletePending(ctx context.Context, collection, id string) (bool, error) {
	ops, err := r.queue.Drain(ctx)
	if err != nil {
		return false, err
	}
	for _, op := range ops {
		if op.Type == models.OperationDelete && op.Collection == collection && op.DocID == id {
			return true, nil
		}
	}
	return false, nil
}
