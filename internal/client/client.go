// Package client is a typed HTTP client for the board API.
//
// Every method maps to one endpoint. Transport failures are returned as
// *NetworkError and non-2xx responses as *APIError carrying the server's
// error message and trace ID.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/kanban-api/internal/domain"
)

// DefaultTimeout bounds each request unless overridden with WithTimeout.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// API is the set of board operations the reconciler persists through.
type API interface {
	ListColumns(ctx context.Context) ([]domain.Column, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateColumn(ctx context.Context, name string) (*domain.Column, error)
	RenameColumn(ctx context.Context, id int64, name string) error
	DeleteColumn(ctx context.Context, id int64) error
	CreateTask(ctx context.Context, title string, columnID int64) (*domain.Task, error)
	RenameTask(ctx context.Context, id int64, title string) error
	MoveTask(ctx context.Context, id int64, columnID int64) error
	DeleteTask(ctx context.Context, id int64) error
}

// Client talks to the board API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:5000.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "board_client")
	return c
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type successResponse struct {
	Success bool `json:"success"`
}

type errorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id"`
}

// ListColumns calls GET /columns.
func (c *Client) ListColumns(ctx context.Context) ([]domain.Column, error) {
	var columns []domain.Column
	if err := c.do(ctx, http.MethodGet, "/columns", nil, &columns); err != nil {
		return nil, err
	}
	if columns == nil {
		columns = []domain.Column{}
	}
	return columns, nil
}

// ListTasks calls GET /tasks.
func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// CreateColumn calls POST /columns.
func (c *Client) CreateColumn(ctx context.Context, name string) (*domain.Column, error) {
	var column domain.Column
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/columns", body, &column); err != nil {
		return nil, err
	}
	return &column, nil
}

// RenameColumn calls POST /columns/{id}/update.
func (c *Client) RenameColumn(ctx context.Context, id int64, name string) error {
	body := map[string]string{"newName": name}
	return c.doSuccess(ctx, http.MethodPost, fmt.Sprintf("/columns/%d/update", id), body)
}

// DeleteColumn calls DELETE /columns/{id}.
func (c *Client) DeleteColumn(ctx context.Context, id int64) error {
	return c.doSuccess(ctx, http.MethodDelete, fmt.Sprintf("/columns/%d", id), nil)
}

// CreateTask calls POST /tasks.
func (c *Client) CreateTask(ctx context.Context, title string, columnID int64) (*domain.Task, error) {
	var task domain.Task
	body := struct {
		Title    string `json:"title"`
		ColumnID int64  `json:"columnId"`
	}{Title: title, ColumnID: columnID}
	if err := c.do(ctx, http.MethodPost, "/tasks", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// RenameTask calls POST /tasks/{id}/update.
func (c *Client) RenameTask(ctx context.Context, id int64, title string) error {
	body := map[string]string{"newTitle": title}
	return c.doSuccess(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/update", id), body)
}

// MoveTask calls POST /tasks/{id}/move.
func (c *Client) MoveTask(ctx context.Context, id int64, columnID int64) error {
	body := map[string]int64{"newColumnId": columnID}
	return c.doSuccess(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/move", id), body)
}

// DeleteTask calls DELETE /tasks/{id}.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.doSuccess(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil)
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) doSuccess(ctx context.Context, method, path string, body interface{}) error {
	var resp successResponse
	if err := c.do(ctx, method, path, body, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &APIError{StatusCode: http.StatusOK, Message: "response did not report success"}
	}
	return nil
}

// do sends the request and decodes a 2xx JSON body into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: body.Error, TraceID: body.TraceID}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
}
