package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/iudanet/gophsync/internal/client/connectivity"
	syncpkg "github.com/iudanet/gophsync/internal/client/sync"
	"github.com/iudanet/gophsync/internal/models"
	"github.com/iudanet/gophsync/pkg/api"
)

// Default retry parameters
const (
	DefaultMaxRetries = 3
	DefaultBackoff    = 200 * time.Millisecond
)

// ErrUnauthorized is returned when the server rejects the access token
var ErrUnauthorized = errors.New("unauthorized")

// StatusError is a non-2xx response
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// Client представляет HTTP клиент для взаимодействия с сервером синхронизации.
// Implements sync.Remote and connectivity.Prober.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	mu         sync.RWMutex
	maxRetries uint64
	backoff    time.Duration
}

var (
	_ syncpkg.Remote      = (*Client)(nil)
	_ connectivity.Prober = (*Client)(nil)
)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetry sets how many times a transient failure is retried and the
// initial exponential backoff
func WithRetry(maxRetries uint64, backoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.backoff = backoff
	}
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
		maxRetries: DefaultMaxRetries,
		backoff:    DefaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken sets the bearer token used by push and pull
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = token
}

// Token returns the current bearer token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.token
}

// Login exchanges client credentials for an access token and stores it
func (c *Client) Login(ctx context.Context, clientID, secret string) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	req := api.TokenRequest{ClientID: clientID, Secret: secret}
	if err := c.doRequest(ctx, http.MethodPost, api.PathToken, false, req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	c.SetToken(resp.AccessToken)
	return &resp, nil
}

// Ping checks that the server is reachable
func (c *Client) Ping(ctx context.Context) error {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, api.PathHealth, false, nil, &resp); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// Push sends a batch of operations. Rejected items are returned as
// *models.RejectionError.
func (c *Client) Push(ctx context.Context, ops []models.Operation) (*syncpkg.PushResult, error) {
	req := api.PushRequest{Operations: make([]api.Operation, 0, len(ops))}
	for i := range ops {
		req.Operations = append(req.Operations, ops[i].ToWire())
	}

	var resp api.PushResponse
	if err := c.doRequest(ctx, http.MethodPost, api.PathPush, true, req, &resp); err != nil {
		return nil, fmt.Errorf("push request failed: %w", err)
	}

	result := &syncpkg.PushResult{
		Successful: resp.Successful,
		Failed:     make([]syncpkg.FailedOperation, 0, len(resp.Failed)),
	}
	for _, f := range resp.Failed {
		result.Failed = append(result.Failed, syncpkg.FailedOperation{
			OperationID: f.OperationID,
			Err:         models.RejectionFromWire(f),
		})
	}

	return result, nil
}

// Pull fetches the changes after since
func (c *Client) Pull(ctx context.Context, since int64) (*syncpkg.PullResult, error) {
	path := api.PathPull + "?" + url.Values{"since": {strconv.FormatInt(since, 10)}}.Encode()

	var resp api.PullResponse
	if err := c.doRequest(ctx, http.MethodGet, path, true, nil, &resp); err != nil {
		return nil, fmt.Errorf("pull request failed: %w", err)
	}

	result := &syncpkg.PullResult{
		Changes: make([]models.Operation, 0, len(resp.Changes)),
		Cursor:  resp.Cursor,
	}
	for _, w := range resp.Changes {
		result.Changes = append(result.Changes, models.OperationFromWire(w))
	}

	return result, nil
}

// doRequest выполняет HTTP запрос с повторами при временных ошибках:
// ошибки транспорта, 5xx и 429. Остальные 4xx не повторяются.
func (c *Client) doRequest(ctx context.Context, method, path string, auth bool, body, result any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.backoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.attempt(ctx, method, path, auth, payload, result)
		if err == nil {
			return nil
		}
		if isTransient(ctx, err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) attempt(ctx context.Context, method, path string, auth bool, payload []byte, result any) error {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		if token := c.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &transportError{err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &transportError{err: fmt.Errorf("failed to read response body: %w", err)}
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			statusErr.Message = errResp.Error
			if errResp.Message != "" {
				statusErr.Message += ": " + errResp.Message
			}
		}
		return statusErr
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

type transportError struct {
	err error
}

func (e *transportError) Error() string { return "request failed: " + e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func isTransient(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}

	var te *transportError
	if errors.As(err, &te) {
		return true
	}

	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= 500 || se.StatusCode == http.StatusTooManyRequests
	}
	return false
}
