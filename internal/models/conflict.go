package models

import "fmt"

// Conflict is constructed when the remote rejects a pushed operation and
// supplies its current version of the document.
type Conflict struct {
	RemoteState    Document
	LocalOperation Operation
}

// ResolutionKind определяет исход разрешения конфликта
type ResolutionKind int

const (
	ResolutionRemoteWins ResolutionKind = iota
	ResolutionLocalWins
	ResolutionMerged
)

func (k ResolutionKind) String() string {
	switch k {
	case ResolutionRemoteWins:
		return "remote_wins"
	case ResolutionLocalWins:
		return "local_wins"
	case ResolutionMerged:
		return "merged"
	default:
		return fmt.Sprintf("resolution(%d)", int(k))
	}
}

// Resolution is the outcome of one resolver invocation. Document is set only
// for ResolutionMerged.
type Resolution struct {
	Document Document
	Kind     ResolutionKind
}

// RemoteWins keeps the remote state
func RemoteWins() Resolution {
	return Resolution{Kind: ResolutionRemoteWins}
}

// LocalWins keeps the local operation queued for retransmission
func LocalWins() Resolution {
	return Resolution{Kind: ResolutionLocalWins}
}

// Merged replaces both sides with doc
func Merged(doc Document) Resolution {
	return Resolution{Kind: ResolutionMerged, Document: doc}
}

// Rejection codes reported by the remote for a failed push item
const (
	RejectionConflict = "conflict"
	RejectionNotFound = "not_found"
	RejectionInvalid  = "invalid"
)

// RejectionError describes why the remote refused a single pushed operation.
// RemoteState is present when the cause is a version conflict.
type RejectionError struct {
	RemoteState Document
	Code        string
	Message     string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return "remote rejected operation: " + e.Code
	}
	return fmt.Sprintf("remote rejected operation: %s: %s", e.Code, e.Message)
}

// HasRemoteState reports whether the rejection carries a usable remote document.
func (e *RejectionError) HasRemoteState() bool {
	return e != nil && e.RemoteState != nil && e.RemoteState.ID() != ""
}
