// Package sync drives the push/pull protocol between the local operation
// queue and the remote store.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	stdsync "sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/iudanet/gophsync/internal/client/collection"
	"github.com/iudanet/gophsync/internal/client/conflict"
	"github.com/iudanet/gophsync/internal/client/connectivity"
	"github.com/iudanet/gophsync/internal/models"
)

// Orchestrator runs sync cycles: push the queued operations, resolve the
// rejected ones, then pull and apply remote changes. At most one cycle is in
// flight; a trigger during a cycle is dropped.
type Orchestrator struct {
	queue       Queue
	remote      Remote
	applier     Applier
	cursors     CursorStore
	resolver    conflict.Resolver
	observer    ClockObserver
	signal      *connectivity.Signal
	logger      *slog.Logger
	flight      *semaphore.Weighted
	unsubscribe func()
	stopLoop    context.CancelFunc
	wg          stdsync.WaitGroup
	mu          stdsync.Mutex
	interval    time.Duration
	cursor      int64
	state       State
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithInterval enables a periodic trigger while the signal reports online
func WithInterval(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.interval = d
	}
}

// WithClockObserver reports pulled change timestamps to obs
func WithClockObserver(obs ClockObserver) Option {
	return func(o *Orchestrator) {
		o.observer = obs
	}
}

// New creates a stopped orchestrator
func New(
	q Queue,
	remote Remote,
	applier Applier,
	cursors CursorStore,
	resolver conflict.Resolver,
	signal *connectivity.Signal,
	logger *slog.Logger,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		queue:    q,
		remote:   remote,
		applier:  applier,
		cursors:  cursors,
		resolver: resolver,
		signal:   signal,
		logger:   logger,
		flight:   semaphore.NewWeighted(1),
		state:    StateStopped,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start loads the persisted cursor and subscribes to connectivity changes.
// Cycles started by the signal or the periodic trigger run with ctx.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateStopped {
		return ErrAlreadyStarted
	}

	cursor, err := o.cursors.GetCursor(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cursor: %w", err)
	}
	o.cursor = cursor
	o.state = StateIdle

	o.unsubscribe = o.signal.Subscribe(func(online bool) {
		if online {
			o.spawn(ctx, "online")
		}
	})

	if o.interval > 0 {
		loopCtx, cancel := context.WithCancel(ctx)
		o.stopLoop = cancel
		o.wg.Add(1)
		go o.loop(loopCtx, ctx)
	}

	o.logger.Info("Sync orchestrator started", "cursor", cursor, "interval", o.interval)
	return nil
}

// Stop unsubscribes from the signal and rejects further triggers. A cycle in
// flight is not cancelled; Stop waits for cycles it spawned itself.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if o.state == StateStopped {
		o.mu.Unlock()
		return
	}
	o.state = StateStopped
	unsubscribe, stopLoop := o.unsubscribe, o.stopLoop
	o.unsubscribe, o.stopLoop = nil, nil
	o.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if stopLoop != nil {
		stopLoop()
	}
	o.wg.Wait()

	o.logger.Info("Sync orchestrator stopped")
}

// State returns the current state
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.state
}

// Cursor returns the last persisted pull cursor
func (o *Orchestrator) Cursor() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.cursor
}

// spawn runs a cycle in the background unless the orchestrator is stopped
func (o *Orchestrator) spawn(ctx context.Context, reason string) {
	o.mu.Lock()
	if o.state == StateStopped {
		o.mu.Unlock()
		return
	}
	o.wg.Add(1)
	o.mu.Unlock()

	go func() {
		defer o.wg.Done()

		if _, err := o.Trigger(ctx); err != nil && errors.Is(err, ErrSyncInProgress) {
			o.logger.Debug("Sync trigger dropped", "reason", reason)
		}
	}()
}

func (o *Orchestrator) loop(ctx, cycleCtx context.Context) {
	defer o.wg.Done()

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if o.signal.IsOnline() {
				_, _ = o.Trigger(cycleCtx)
			}
		}
	}
}

// Trigger runs one sync cycle synchronously.
// Returns ErrSyncInProgress if a cycle is already running and ErrStopped
// before Start or after Stop. Cycle failures are logged and returned; the
// queue keeps every operation that was not acknowledged or resolved.
func (o *Orchestrator) Trigger(ctx context.Context) (*Result, error) {
	o.mu.Lock()
	if o.state == StateStopped {
		o.mu.Unlock()
		return nil, ErrStopped
	}
	if !o.flight.TryAcquire(1) {
		o.mu.Unlock()
		return nil, ErrSyncInProgress
	}
	o.state = StateSyncing
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		if o.state == StateSyncing {
			o.state = StateIdle
		}
		o.mu.Unlock()
		o.flight.Release(1)
	}()

	result, err := o.cycle(ctx)
	if err != nil {
		o.logger.Error("Synchronization failed", "error", err)
		return result, err
	}
	return result, nil
}

func (o *Orchestrator) cycle(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{}

	o.logger.Info("Starting synchronization", "cursor", o.Cursor())

	if err := o.push(ctx, result); err != nil {
		result.Cursor = o.Cursor()
		result.Duration = time.Since(start)
		return result, err
	}

	if err := o.pull(ctx, result); err != nil {
		result.Cursor = o.Cursor()
		result.Duration = time.Since(start)
		return result, err
	}

	result.Cursor = o.Cursor()
	result.Duration = time.Since(start)

	o.logger.Info("Synchronization completed",
		"pushed", result.Pushed,
		"acknowledged", result.Acknowledged,
		"conflicts", result.Conflicts,
		"unresolved", result.Unresolved,
		"pulled", result.Pulled,
		"cursor", result.Cursor,
		"duration", result.Duration)

	return result, nil
}

func (o *Orchestrator) push(ctx context.Context, result *Result) error {
	ops, err := o.queue.Drain(ctx)
	if err != nil {
		return fmt.Errorf("failed to drain queue: %w", err)
	}
	if len(ops) == 0 {
		return nil
	}
	result.Pushed = len(ops)

	resp, err := o.remote.Push(ctx, ops)
	if err != nil {
		return fmt.Errorf("%w: push: %w", ErrNetworkFailure, err)
	}

	byID := make(map[string]models.Operation, len(ops))
	for _, op := range ops {
		byID[op.ID] = op
	}

	for _, id := range resp.Successful {
		if err := o.queue.Dequeue(ctx, id); err != nil {
			return err
		}
		result.Acknowledged++
	}

	for _, failed := range resp.Failed {
		op, ok := byID[failed.OperationID]
		if !ok {
			o.logger.Warn("Remote reported failure for unknown operation", "op_id", failed.OperationID)
			continue
		}
		if err := o.handleFailure(ctx, op, failed.Err, result); err != nil {
			return err
		}
	}

	return nil
}

// handleFailure routes one rejected operation through the resolver. Only
// storage errors are returned; everything else leaves the operation queued.
// A merged result is not just dequeued: it goes back to the queue as a forced
// replacement so the server converges on the merged document too.
func (o *Orchestrator) handleFailure(ctx context.Context, op models.Operation, cause error, result *Result) error {
	var rejection *models.RejectionError
	if !errors.As(cause, &rejection) || !rejection.HasRemoteState() {
		result.Unresolved++
		o.logger.Warn("Operation kept in queue",
			"op_id", op.ID,
			"collection", op.Collection,
			"doc_id", op.DocID,
			"error", fmt.Errorf("%w: %w", ErrUnresolvableConflict, cause))
		return nil
	}

	result.Conflicts++
	resolution, err := o.resolver.Resolve(ctx, models.Conflict{
		LocalOperation: op.Clone(),
		RemoteState:    rejection.RemoteState.Clone(),
	})
	if err != nil {
		result.Unresolved++
		o.logger.Warn("Conflict resolver failed, operation kept in queue", "op_id", op.ID, "error", err)
		return nil
	}

	o.logger.Debug("Conflict resolved", "op_id", op.ID, "doc_id", op.DocID, "resolution", resolution.Kind)

	switch resolution.Kind {
	case models.ResolutionRemoteWins:
		remote := rejection.RemoteState.Clone()
		remote[models.FieldID] = op.DocID
		if err := o.applier.ApplyRemote(ctx, op.Collection, remote); err != nil {
			return fmt.Errorf("failed to apply remote state for %s: %w", op.DocID, err)
		}
		if err := o.queue.Dequeue(ctx, op.ID); err != nil {
			return err
		}
		result.RemoteWins++

	case models.ResolutionLocalWins:
		// Повторная отправка с флагом forced: сервер пропускает проверку конфликта
		if !op.Forced {
			forced := op.Clone()
			forced.Forced = true
			if err := o.queue.Enqueue(ctx, forced); err != nil {
				return err
			}
		}
		result.LocalWins++

	case models.ResolutionMerged:
		merged := resolution.Document.Clone()
		merged[models.FieldID] = op.DocID
		if err := o.applier.ApplyRemote(ctx, op.Collection, merged); err != nil {
			return fmt.Errorf("failed to apply merged document for %s: %w", op.DocID, err)
		}
		// The merged document replaces the rejected operation in the queue
		replacement := op.Clone()
		replacement.Payload = merged
		replacement.Forced = true
		if replacement.Type == models.OperationDelete {
			replacement.Type = models.OperationUpdate
		}
		if err := o.queue.Enqueue(ctx, replacement); err != nil {
			return err
		}
		result.Merged++

	default:
		result.Unresolved++
		o.logger.Warn("Unknown resolution, operation kept in queue", "op_id", op.ID, "resolution", resolution.Kind)
	}

	return nil
}

func (o *Orchestrator) pull(ctx context.Context, result *Result) error {
	since := o.Cursor()

	resp, err := o.remote.Pull(ctx, since)
	if err != nil {
		return fmt.Errorf("%w: pull: %w", ErrNetworkFailure, err)
	}

	for _, change := range resp.Changes {
		if err := change.Validate(); err != nil {
			o.logger.Warn("Skipping invalid remote change", "op_id", change.ID, "error", err)
			continue
		}
		// Такое изменение не применить никогда: пропускаем, чтобы курсор не застрял
		if err := collection.ValidateName(change.Collection); err != nil {
			o.logger.Warn("Skipping remote change for invalid collection",
				"op_id", change.ID, "collection", change.Collection, "error", err)
			continue
		}
		if err := o.apply(ctx, change); err != nil {
			return fmt.Errorf("failed to apply remote change %s: %w", change.ID, err)
		}
		if o.observer != nil {
			o.observer.Observe(change.Timestamp)
		}
		result.Pulled++
	}

	// Курсор сохраняется только после применения всего пакета и не двигается назад
	if resp.Cursor > since {
		if err := o.cursors.SaveCursor(ctx, resp.Cursor); err != nil {
			return err
		}
		o.mu.Lock()
		o.cursor = resp.Cursor
		o.mu.Unlock()
	}

	return nil
}

func (o *Orchestrator) apply(ctx context.Context, change models.Operation) error {
	switch change.Type {
	case models.OperationCreate:
		doc := change.Payload.Clone()
		doc[models.FieldID] = change.DocID
		return o.applier.ApplyRemote(ctx, change.Collection, doc)
	case models.OperationUpdate:
		return o.applier.MergeRemote(ctx, change.Collection, change.DocID, change.Payload)
	case models.OperationDelete:
		return o.applier.RemoveRemote(ctx, change.Collection, change.DocID)
	default:
		return fmt.Errorf("%w: unknown type %q", models.ErrInvalidOperation, change.Type)
	}
}
