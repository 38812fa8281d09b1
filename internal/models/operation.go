package models

import (
	"errors"
	"fmt"
)

// OperationType определяет вид мутации
type OperationType string

const (
	OperationCreate OperationType = "create"
	OperationUpdate OperationType = "update"
	OperationDelete OperationType = "delete"
)

// Valid reports whether t is one of the known operation types.
func (t OperationType) Valid() bool {
	switch t {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// Operation errors
var (
	ErrInvalidOperation = errors.New("invalid operation")
)

// Operation is a durable record of one mutation intent awaiting synchronization.
// Operations are immutable after creation; the queue only ever replaces an
// operation with a copy that differs in Forced.
type Operation struct {
	Payload    Document      `json:"payload,omitempty"` // полный документ для create, дельта для update, nil для delete
	ID         string        `json:"id"`                // уникальный идентификатор операции (UUID)
	Type       OperationType `json:"type"`
	Collection string        `json:"collection"`
	DocID      string        `json:"doc_id"`
	Timestamp  int64         `json:"timestamp"` // Unix milliseconds, hybrid clock
	Forced     bool          `json:"forced,omitempty"`
}

// Validate checks the payload invariant for the operation type:
// create carries a complete document with the same id, update carries a
// partial document, delete carries nothing.
func (o *Operation) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidOperation)
	}
	if o.Collection == "" {
		return fmt.Errorf("%w: empty collection", ErrInvalidOperation)
	}
	if o.DocID == "" {
		return fmt.Errorf("%w: empty document id", ErrInvalidOperation)
	}
	if !o.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidOperation, o.Type)
	}

	switch o.Type {
	case OperationCreate:
		if o.Payload == nil {
			return fmt.Errorf("%w: create without payload", ErrInvalidOperation)
		}
		if o.Payload.ID() != o.DocID {
			return fmt.Errorf("%w: payload id %q does not match %q", ErrInvalidOperation, o.Payload.ID(), o.DocID)
		}
	case OperationUpdate:
		if o.Payload == nil {
			return fmt.Errorf("%w: update without payload", ErrInvalidOperation)
		}
	case OperationDelete:
		if o.Payload != nil {
			return fmt.Errorf("%w: delete with payload", ErrInvalidOperation)
		}
	}

	return nil
}

// Clone returns a deep copy of the operation
func (o *Operation) Clone() Operation {
	c := *o
	c.Payload = o.Payload.Clone()
	return c
}
