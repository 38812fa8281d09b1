package state

import (
	"sync"

	"github.com/iudanet/gophsync/internal/models"
)

// Listener receives the full current list of a collection after every change.
type Listener func(docs []models.Document)

// Projection is the in-memory, per-collection view of documents that UI layers
// read and observe. It performs no I/O.
//
// Every mutating call notifies the subscribers of the affected collection
// synchronously, before returning. Listeners run outside the internal lock, so
// they may call back into the projection.
type Projection struct {
	collections map[string]*collectionState
	mu          sync.RWMutex
}

type collectionState struct {
	docs      map[string]models.Document
	listeners map[uint64]Listener
	order     []uint64 // порядок подписки для детерминированной рассылки
	nextID    uint64
}

// New creates an empty projection
func New() *Projection {
	return &Projection{
		collections: make(map[string]*collectionState),
	}
}

// collection returns the state for name, creating it lazily. Caller holds mu.
func (p *Projection) collection(name string) *collectionState {
	c, ok := p.collections[name]
	if !ok {
		c = &collectionState{
			docs:      make(map[string]models.Document),
			listeners: make(map[uint64]Listener),
		}
		p.collections[name] = c
	}
	return c
}

// SetAll replaces the whole content of a collection.
func (p *Projection) SetAll(collection string, docs []models.Document) {
	p.mu.Lock()
	c := p.collection(collection)
	c.docs = make(map[string]models.Document, len(docs))
	for _, doc := range docs {
		c.docs[doc.ID()] = doc.Clone()
	}
	listeners, snapshot := c.snapshotForNotify()
	p.mu.Unlock()

	notify(listeners, snapshot)
}

// Put inserts or replaces a document.
func (p *Projection) Put(collection string, doc models.Document) {
	p.mu.Lock()
	c := p.collection(collection)
	c.docs[doc.ID()] = doc.Clone()
	listeners, snapshot := c.snapshotForNotify()
	p.mu.Unlock()

	notify(listeners, snapshot)
}

// Patch merges partial into the existing document. Patching an absent id is a
// silent no-op: nothing changes and nobody is notified. Returns whether the
// document was found.
func (p *Projection) Patch(collection, id string, partial models.Document) bool {
	p.mu.Lock()
	c := p.collection(collection)
	existing, ok := c.docs[id]
	if !ok {
		p.mu.Unlock()
		return false
	}
	merged := existing.Merge(partial)
	// id не может быть изменен через patch
	merged[models.FieldID] = id
	c.docs[id] = merged
	listeners, snapshot := c.snapshotForNotify()
	p.mu.Unlock()

	notify(listeners, snapshot)
	return true
}

// Remove deletes a document. Returns false (and notifies nobody) when it was
// not present.
func (p *Projection) Remove(collection, id string) bool {
	p.mu.Lock()
	c := p.collection(collection)
	if _, ok := c.docs[id]; !ok {
		p.mu.Unlock()
		return false
	}
	delete(c.docs, id)
	listeners, snapshot := c.snapshotForNotify()
	p.mu.Unlock()

	notify(listeners, snapshot)
	return true
}

// Get returns a copy of the document
func (p *Projection) Get(collection, id string) (models.Document, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	c, ok := p.collections[collection]
	if !ok {
		return nil, false
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, false
	}
	return doc.Clone(), true
}

// List returns a snapshot of all documents; order is unspecified.
func (p *Projection) List(collection string) []models.Document {
	p.mu.RLock()
	defer p.mu.RUnlock()

	c, ok := p.collections[collection]
	if !ok {
		return []models.Document{}
	}
	return c.snapshot()
}

// Subscribe registers listener for collection and immediately delivers the
// current snapshot to it. The returned function unsubscribes; calling it more
// than once is harmless.
func (p *Projection) Subscribe(collection string, listener Listener) func() {
	p.mu.Lock()
	c := p.collection(collection)
	id := c.nextID
	c.nextID++
	c.listeners[id] = listener
	c.order = append(c.order, id)
	snapshot := c.snapshot()
	p.mu.Unlock()

	listener(snapshot)

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()

			c, ok := p.collections[collection]
			if !ok {
				return
			}
			delete(c.listeners, id)
			for i, lid := range c.order {
				if lid == id {
					c.order = append(c.order[:i], c.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Drop forgets a collection together with its subscribers.
func (p *Projection) Drop(collection string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.collections, collection)
}

// Size returns the number of documents in a collection.
func (p *Projection) Size(collection string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	c, ok := p.collections[collection]
	if !ok {
		return 0
	}
	return len(c.docs)
}

func (c *collectionState) snapshot() []models.Document {
	out := make([]models.Document, 0, len(c.docs))
	for _, doc := range c.docs {
		out = append(out, doc.Clone())
	}
	return out
}

func (c *collectionState) snapshotForNotify() ([]Listener, []models.Document) {
	if len(c.order) == 0 {
		return nil, nil
	}
	listeners := make([]Listener, 0, len(c.order))
	for _, id := range c.order {
		listeners = append(listeners, c.listeners[id])
	}
	return listeners, c.snapshot()
}

func notify(listeners []Listener, snapshot []models.Document) {
	for _, l := range listeners {
		// Каждый подписчик получает собственную копию
		docs := make([]models.Document, len(snapshot))
		for i, doc := range snapshot {
			docs[i] = doc.Clone()
		}
		l(docs)
	}
}
