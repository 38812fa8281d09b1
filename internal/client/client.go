// Package client wires the offline sync engine together: durable storage,
// collections, the operation queue, connectivity and the sync orchestrator.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/iudanet/gophsync/internal/client/collection"
	"github.com/iudanet/gophsync/internal/client/conflict"
	"github.com/iudanet/gophsync/internal/client/connectivity"
	"github.com/iudanet/gophsync/internal/client/queue"
	"github.com/iudanet/gophsync/internal/client/state"
	"github.com/iudanet/gophsync/internal/client/storage"
	syncpkg "github.com/iudanet/gophsync/internal/client/sync"
	"github.com/iudanet/gophsync/internal/clock"
	"github.com/iudanet/gophsync/internal/logging"
)

// Client errors
var (
	ErrMissingStorage = errors.New("storage is required")
	ErrMissingRemote  = errors.New("remote is required")
)

// Options configures a Client. Storage and Remote are required.
type Options struct {
	Storage  storage.Storage
	Remote   syncpkg.Remote
	Prober   connectivity.Prober // nil: connectivity is driven only through Signal().Set
	Resolver conflict.Resolver   // nil: remote wins
	Logger   *slog.Logger
	Clock    *clock.Clock

	ProbeInterval time.Duration
	ProbeTimeout  time.Duration
	SyncInterval  time.Duration

	// Online is the initial connectivity state
	Online bool
}

// Client owns every component of one sync client
type Client struct {
	storage      storage.Storage
	registry     *collection.Registry
	queue        *queue.Queue
	signal       *connectivity.Signal
	monitor      *connectivity.Monitor
	orchestrator *syncpkg.Orchestrator
	logger       *slog.Logger
}

// New builds a client over opts. Nothing runs until Start.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.Storage == nil {
		return nil, ErrMissingStorage
	}
	if opts.Remote == nil {
		return nil, ErrMissingRemote
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = conflict.RemoteWins()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}

	q := queue.New(opts.Storage, logger.With("component", "queue"))
	registry := collection.NewRegistry(opts.Storage, q, state.New(), clk, logger.With("component", "collection"))
	signal := connectivity.NewSignal(opts.Online)

	syncOpts := []syncpkg.Option{syncpkg.WithClockObserver(clk)}
	if opts.SyncInterval > 0 {
		syncOpts = append(syncOpts, syncpkg.WithInterval(opts.SyncInterval))
	}

	c := &Client{
		storage:  opts.Storage,
		registry: registry,
		queue:    q,
		signal:   signal,
		logger:   logger,
		orchestrator: syncpkg.New(
			q,
			opts.Remote,
			registry,
			storage.NewMetadata(opts.Storage),
			resolver,
			signal,
			logger.With("component", "sync"),
			syncOpts...,
		),
	}

	if opts.Prober != nil {
		var monitorOpts []connectivity.MonitorOption
		if opts.ProbeInterval > 0 {
			monitorOpts = append(monitorOpts, connectivity.WithInterval(opts.ProbeInterval))
		}
		if opts.ProbeTimeout > 0 {
			monitorOpts = append(monitorOpts, connectivity.WithTimeout(opts.ProbeTimeout))
		}
		c.monitor = connectivity.NewMonitor(opts.Prober, signal, logger.With("component", "connectivity"), monitorOpts...)
	}

	return c, nil
}

// Collection returns the named collection, loading it from storage on first use
func (c *Client) Collection(ctx context.Context, name string) (*collection.Collection, error) {
	return c.registry.Collection(ctx, name)
}

// Start starts the orchestrator and then the connectivity monitor, so the
// first online transition already finds a running orchestrator.
func (c *Client) Start(ctx context.Context) error {
	if err := c.orchestrator.Start(ctx); err != nil {
		return fmt.Errorf("failed to start sync: %w", err)
	}
	if c.monitor != nil {
		if err := c.monitor.Start(ctx); err != nil {
			c.orchestrator.Stop()
			return fmt.Errorf("failed to start connectivity monitor: %w", err)
		}
	}
	return nil
}

// Stop stops the monitor and the orchestrator. The client can be started again.
func (c *Client) Stop() {
	if c.monitor != nil {
		c.monitor.Stop()
	}
	c.orchestrator.Stop()
}

// Sync runs one sync cycle now
func (c *Client) Sync(ctx context.Context) (*syncpkg.Result, error) {
	return c.orchestrator.Trigger(ctx)
}

// PendingCount returns the number of operations awaiting push
func (c *Client) PendingCount(ctx context.Context) (int, error) {
	return c.queue.Len(ctx)
}

// Signal returns the connectivity signal. Without a prober the caller sets it.
func (c *Client) Signal() *connectivity.Signal {
	return c.signal
}

// State returns the orchestrator state
func (c *Client) State() syncpkg.State {
	return c.orchestrator.State()
}

// Cursor returns the last persisted pull cursor seen by the orchestrator
func (c *Client) Cursor() int64 {
	return c.orchestrator.Cursor()
}

// Close stops the client, tears down the collections and closes the storage
// when it is closable.
func (c *Client) Close() error {
	c.Stop()
	c.registry.Close()

	if closer, ok := c.storage.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}
	c.logger.Debug("Client closed")
	return nil
}
