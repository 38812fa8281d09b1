package api

// Operation types on the wire
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// Rejection codes of a failed push item
const (
	CodeConflict = "conflict"
	CodeNotFound = "not_found"
	CodeInvalid  = "invalid"
)

// Operation представляет одну мутацию документа
type Operation struct {
	Payload    map[string]any `json:"payload,omitempty"` // полный документ для create, дельта для update
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Collection string         `json:"collection"`
	DocID      string         `json:"doc_id"`
	Timestamp  int64          `json:"timestamp"` // Unix milliseconds
	Forced     bool           `json:"forced,omitempty"`
}

// PushRequest представляет пакет операций от клиента
type PushRequest struct {
	Operations []Operation `json:"operations"`
}

// FailedOperation describes why one pushed operation was rejected.
// RemoteState carries the server copy of the document on a conflict.
type FailedOperation struct {
	RemoteState map[string]any `json:"remote_state,omitempty"`
	OperationID string         `json:"operation_id"`
	Code        string         `json:"code"`
	Message     string         `json:"message,omitempty"`
}

// PushResponse partitions the pushed operations by outcome
type PushResponse struct {
	Successful []string          `json:"successful"`
	Failed     []FailedOperation `json:"failed"`
}

// PullResponse содержит изменения после курсора since
type PullResponse struct {
	Changes []Operation `json:"changes"`
	Cursor  int64       `json:"cursor"` // передается как since в следующем запросе
}
