package sync

import (
	"context"

	"github.com/iudanet/gophsync/internal/models"
)

//go:generate moq -out remote_mock.go . Remote Applier

// Remote is the authoritative store the client synchronizes with
type Remote interface {
	// Push submits a timestamp-ordered batch. A transport failure is returned
	// as an error; per-operation rejections are reported in PushResult.Failed.
	Push(ctx context.Context, ops []models.Operation) (*PushResult, error)

	// Pull returns the changes after since (exclusive). since == 0 requests
	// the whole history.
	Pull(ctx context.Context, since int64) (*PullResult, error)
}

// PushResult partitions a pushed batch by outcome
type PushResult struct {
	Successful []string
	Failed     []FailedOperation
}

// FailedOperation is one rejected push item. Err is opaque; the orchestrator
// looks for a *models.RejectionError carrying the remote document.
type FailedOperation struct {
	Err         error
	OperationID string
}

// PullResult holds remote changes and the cursor to resume from
type PullResult struct {
	Changes []models.Operation
	Cursor  int64
}

// Applier writes remote outcomes into local state and storage without
// enqueueing anything.
type Applier interface {
	ApplyRemote(ctx context.Context, collection string, doc models.Document) error
	MergeRemote(ctx context.Context, collection, id string, partial models.Document) error
	RemoveRemote(ctx context.Context, collection, id string) error
}

// Queue is the part of the operation queue the orchestrator needs
type Queue interface {
	Enqueue(ctx context.Context, op models.Operation) error
	Dequeue(ctx context.Context, opID string) error
	Drain(ctx context.Context) ([]models.Operation, error)
}

// CursorStore persists the pull cursor
type CursorStore interface {
	GetCursor(ctx context.Context) (int64, error)
	SaveCursor(ctx context.Context, cursor int64) error
}

// ClockObserver is told about timestamps of pulled changes so later local
// operations order after them
type ClockObserver interface {
	Observe(remote int64)
}
