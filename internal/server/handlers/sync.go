package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/gophsync/internal/models"
	"github.com/iudanet/gophsync/internal/server/storage"
	"github.com/iudanet/gophsync/internal/validation"
	"github.com/iudanet/gophsync/pkg/api"
)

// MaxPushOperations limits the size of one push batch
const MaxPushOperations = 1000

// DocumentStore определяет интерфейс для работы с документами
type DocumentStore interface {
	ApplyOperation(ctx context.Context, clientID string, op *models.Operation) error
	ChangesSince(ctx context.Context, since int64) ([]storage.Change, error)
}

// SyncHandler handles synchronization requests
type SyncHandler struct {
	logger  *slog.Logger
	storage DocumentStore
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(logger *slog.Logger, storage DocumentStore) *SyncHandler {
	return &SyncHandler{
		logger:  logger,
		storage: storage,
	}
}

// Push обрабатывает POST /api/v1/sync/push
// Каждая операция применяется отдельно; отклоненные возвращаются в failed
func (h *SyncHandler) Push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientID, ok := GetClientID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "client id not found in context")
		WriteError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode push request", slog.Any("error", err))
		WriteError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Operations) > MaxPushOperations {
		WriteError(h.logger, w, "too many operations in one request", http.StatusRequestEntityTooLarge)
		return
	}

	resp := api.PushResponse{
		Successful: make([]string, 0, len(req.Operations)),
		Failed:     make([]api.FailedOperation, 0),
	}

	for _, wire := range req.Operations {
		op := models.OperationFromWire(wire)

		err := op.Validate()
		if err == nil {
			err = validation.ValidateCollection(op.Collection)
		}
		if err != nil {
			resp.Failed = append(resp.Failed, api.FailedOperation{
				OperationID: op.ID,
				Code:        api.CodeInvalid,
				Message:     err.Error(),
			})
			continue
		}

		err = h.storage.ApplyOperation(ctx, clientID, &op)
		if err == nil {
			resp.Successful = append(resp.Successful, op.ID)
			continue
		}

		var conflict *storage.ConflictError
		switch {
		case errors.As(err, &conflict):
			resp.Failed = append(resp.Failed, api.FailedOperation{
				OperationID: op.ID,
				Code:        api.CodeConflict,
				Message:     conflict.Reason,
				RemoteState: conflict.Current,
			})
		case errors.Is(err, storage.ErrDocumentNotFound):
			resp.Failed = append(resp.Failed, api.FailedOperation{
				OperationID: op.ID,
				Code:        api.CodeNotFound,
				Message:     err.Error(),
			})
		default:
			// Ошибка хранилища: клиент повторит весь batch, принятые операции идемпотентны
			h.logger.ErrorContext(ctx, "failed to apply operation",
				"client_id", clientID, "op_id", op.ID, "error", err)
			WriteError(h.logger, w, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	h.logger.InfoContext(ctx, "push processed",
		"client_id", clientID,
		"received", len(req.Operations),
		"accepted", len(resp.Successful),
		"rejected", len(resp.Failed))

	WriteJSON(h.logger, w, resp, http.StatusOK)
}

// Pull обрабатывает GET /api/v1/sync/pull?since=seq
// Возвращает все изменения после указанного курсора
func (h *SyncHandler) Pull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientID, ok := GetClientID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "client id not found in context")
		WriteError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var since int64
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		var err error
		since, err = strconv.ParseInt(sinceStr, 10, 64)
		if err != nil || since < 0 {
			h.logger.WarnContext(ctx, "invalid since parameter", "since", sinceStr)
			WriteError(h.logger, w, "invalid since parameter", http.StatusBadRequest)
			return
		}
	}

	changes, err := h.storage.ChangesSince(ctx, since)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get changes", "error", err, "since", since)
		WriteError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.PullResponse{
		Changes: make([]api.Operation, 0, len(changes)),
		Cursor:  since,
	}
	for i := range changes {
		resp.Changes = append(resp.Changes, changes[i].Operation.ToWire())
		resp.Cursor = max(resp.Cursor, changes[i].Seq)
	}

	h.logger.DebugContext(ctx, "pull processed",
		"client_id", clientID, "since", since, "changes", len(changes), "cursor", resp.Cursor)

	WriteJSON(h.logger, w, resp, http.StatusOK)
}
