package client

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophsync/internal/client/connectivity"
	"github.com/iudanet/gophsync/internal/client/storage/boltdb"
	syncpkg "github.com/iudanet/gophsync/internal/client/sync"
	"github.com/iudanet/gophsync/internal/logging"
	"github.com/iudanet/gophsync/internal/models"
)

// memoryRemote принимает все операции и отдает их обратно при pull
type memoryRemote struct {
	changes []models.Operation
	mu      sync.Mutex
}

func (r *memoryRemote) Push(_ context.Context, ops []models.Operation) (*syncpkg.PushResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := &syncpkg.PushResult{}
	for _, op := range ops {
		r.changes = append(r.changes, op.Clone())
		res.Successful = append(res.Successful, op.ID)
	}
	return res, nil
}

func (r *memoryRemote) Pull(_ context.Context, since int64) (*syncpkg.PullResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := &syncpkg.PullResult{Cursor: since}
	for i := int(since); i < len(r.changes); i++ {
		res.Changes = append(res.Changes, r.changes[i].Clone())
	}
	if len(r.changes) > 0 {
		res.Cursor = int64(len(r.changes))
	}
	return res, nil
}

func newTestClient(t *testing.T, remote syncpkg.Remote, opts Options) *Client {
	t.Helper()

	s, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)

	opts.Storage = s
	opts.Remote = remote
	opts.Logger = logging.Discard()

	c, err := New(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrMissingStorage)

	s, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = New(context.Background(), Options{Storage: s})
	assert.ErrorIs(t, err, ErrMissingRemote)
}

func TestClient_TwoClientsConverge(t *testing.T) {
	ctx := context.Background()
	remote := &memoryRemote{}

	alice := newTestClient(t, remote, Options{Online: true})
	bob := newTestClient(t, remote, Options{Online: true})
	require.NoError(t, alice.Start(ctx))
	require.NoError(t, bob.Start(ctx))

	todos, err := alice.Collection(ctx, "todos")
	require.NoError(t, err)

	doc, err := todos.Add(ctx, models.Document{"title": "buy milk"})
	require.NoError(t, err)
	_, err = todos.Update(ctx, doc.ID(), models.Document{"done": true})
	require.NoError(t, err)

	pending, err := alice.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, pending)

	res, err := alice.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Acknowledged)

	pending, err = alice.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)

	_, err = bob.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), bob.Cursor())

	bobTodos, err := bob.Collection(ctx, "todos")
	require.NoError(t, err)
	got, ok := bobTodos.Get(doc.ID())
	require.True(t, ok)
	assert.Equal(t, "buy milk", got["title"])
	assert.Equal(t, true, got["done"])

	require.NoError(t, bobTodos.Delete(ctx, doc.ID()))
	_, err = bob.Sync(ctx)
	require.NoError(t, err)
	_, err = alice.Sync(ctx)
	require.NoError(t, err)

	_, ok = todos.Get(doc.ID())
	assert.False(t, ok)
	assert.Empty(t, todos.GetAll())
}

func TestClient_OnlineTransitionSyncs(t *testing.T) {
	ctx := context.Background()
	remote := &memoryRemote{}

	c := newTestClient(t, remote, Options{})
	require.NoError(t, c.Start(ctx))

	todos, err := c.Collection(ctx, "todos")
	require.NoError(t, err)
	_, err = todos.Add(ctx, models.Document{"title": "offline"})
	require.NoError(t, err)

	c.Signal().Set(true)

	assert.Eventually(t, func() bool {
		n, err := c.PendingCount(ctx)
		return err == nil && n == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestClient_MonitorDrivesSignal(t *testing.T) {
	ctx := context.Background()
	prober := &connectivity.ProberMock{
		PingFunc: func(ctx context.Context) error { return nil },
	}

	c := newTestClient(t, &memoryRemote{}, Options{Prober: prober, ProbeInterval: time.Hour})
	assert.False(t, c.Signal().IsOnline())

	require.NoError(t, c.Start(ctx))
	assert.Eventually(t, c.Signal().IsOnline, 2*time.Second, 10*time.Millisecond)
	assert.NotEqual(t, syncpkg.StateStopped, c.State())

	c.Stop()
	assert.Equal(t, syncpkg.StateStopped, c.State())

	_, err := c.Sync(ctx)
	assert.ErrorIs(t, err, syncpkg.ErrStopped)
}

func TestClient_PersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "client.db")

	s, err := boltdb.New(ctx, path)
	require.NoError(t, err)
	c, err := New(ctx, Options{Storage: s, Remote: &memoryRemote{}, Logger: logging.Discard()})
	require.NoError(t, err)

	todos, err := c.Collection(ctx, "todos")
	require.NoError(t, err)
	doc, err := todos.Add(ctx, models.Document{"title": "survive"})
	require.NoError(t, err)
	require.NoError(t, c.Close())

	s, err = boltdb.New(ctx, path)
	require.NoError(t, err)
	c, err = New(ctx, Options{Storage: s, Remote: &memoryRemote{}, Logger: logging.Discard()})
	require.NoError(t, err)
	defer c.Close()

	todos, err = c.Collection(ctx, "todos")
	require.NoError(t, err)
	got, ok := todos.Get(doc.ID())
	require.True(t, ok)
	assert.Equal(t, "survive", got["title"])

	pending, err := c.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
}
