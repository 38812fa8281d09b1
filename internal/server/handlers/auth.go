package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/gophsync/internal/crypto"
	"github.com/iudanet/gophsync/internal/models"
	"github.com/iudanet/gophsync/internal/server/storage"
	"github.com/iudanet/gophsync/pkg/api"
)

//go:generate moq -out handlers_mock.go . ClientStore DocumentStore TokenIssuer Pinger

// ClientStore is the part of client storage the token endpoint needs
type ClientStore interface {
	GetClient(ctx context.Context, id string) (*models.SyncClient, error)
}

// TokenIssuer creates access tokens
type TokenIssuer interface {
	GenerateAccessToken(clientID string) (string, int64, error)
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger  *slog.Logger
	clients ClientStore
	tokens  TokenIssuer
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, clients ClientStore, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		clients: clients,
		tokens:  tokens,
	}
}

// Token обрабатывает POST /api/v1/auth/token
// Обмен client_id и secret на access token
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode token request", slog.Any("error", err))
		WriteError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.ClientID == "" || req.Secret == "" {
		WriteError(h.logger, w, "client_id and secret are required", http.StatusBadRequest)
		return
	}

	client, err := h.clients.GetClient(ctx, req.ClientID)
	if err != nil && !errors.Is(err, storage.ErrClientNotFound) {
		h.logger.ErrorContext(ctx, "failed to get client", slog.Any("error", err))
		WriteError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Одинаковый ответ для неизвестного клиента и неверного секрета
	if client == nil || crypto.VerifySecret(req.Secret, client.SecretHash) != nil {
		h.logger.WarnContext(ctx, "invalid client credentials", slog.String("client_id", req.ClientID))
		WriteError(h.logger, w, "invalid client credentials", http.StatusUnauthorized)
		return
	}

	token, expiresIn, err := h.tokens.GenerateAccessToken(client.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		WriteError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "access token issued", slog.String("client_id", client.ID))

	WriteJSON(h.logger, w, api.TokenResponse{
		AccessToken: token,
		ExpiresIn:   expiresIn,
	}, http.StatusOK)
}
