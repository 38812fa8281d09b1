package models

import "github.com/iudanet/gophsync/pkg/api"

// ToWire converts the operation to its wire representation
func (o *Operation) ToWire() api.Operation {
	return api.Operation{
		ID:         o.ID,
		Type:       string(o.Type),
		Collection: o.Collection,
		DocID:      o.DocID,
		Payload:    o.Payload,
		Timestamp:  o.Timestamp,
		Forced:     o.Forced,
	}
}

// OperationFromWire converts a wire operation
func OperationFromWire(w api.Operation) Operation {
	return Operation{
		ID:         w.ID,
		Type:       OperationType(w.Type),
		Collection: w.Collection,
		DocID:      w.DocID,
		Payload:    Document(w.Payload),
		Timestamp:  w.Timestamp,
		Forced:     w.Forced,
	}
}

// RejectionFromWire converts a failed push item into a RejectionError
func RejectionFromWire(f api.FailedOperation) *RejectionError {
	return &RejectionError{
		Code:        f.Code,
		Message:     f.Message,
		RemoteState: Document(f.RemoteState),
	}
}
