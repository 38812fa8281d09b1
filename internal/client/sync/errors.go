package sync

import "errors"

// Sync errors
var (
	// ErrSyncInProgress is returned by Trigger while another cycle runs
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrStopped is returned by Trigger on a stopped orchestrator
	ErrStopped = errors.New("sync orchestrator is stopped")

	// ErrAlreadyStarted is returned by Start on a running orchestrator
	ErrAlreadyStarted = errors.New("sync orchestrator already started")

	// ErrNetworkFailure wraps push or pull calls rejected outright
	ErrNetworkFailure = errors.New("network failure")

	// ErrUnresolvableConflict marks a rejection without a usable remote state.
	// It is only logged: the operation stays queued.
	ErrUnresolvableConflict = errors.New("unresolvable conflict")
)
