package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/healthhelper/core/internal/domain/entities"
	"github.com/healthhelper/core/internal/infrastructure/logger"
	"github.com/healthhelper/core/internal/ports"
	"github.com/healthhelper/core/internal/scheduler"
)

// Client talks to the reminder API and keeps a local cached copy of the
// list for rendering. The server is the source of truth: every
// successful mutation replaces the cached record with the server's
// response, and a failed mutation rolls the cache back to its previous
// state. No request is retried automatically.
//
// Requests carry no client-side timeout unless the supplied
// *http.Client sets one; a hung request blocks its caller.
type Client struct {
	baseURL string
	http    *http.Client
	sched   *scheduler.Scheduler
	logger  *logger.Logger

	mu    sync.Mutex
	cache []entities.Reminder
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithScheduler attaches a local scheduler: loaded and mutated
// reminders are forwarded to it so notifications fire on this machine.
func WithScheduler(s *scheduler.Scheduler) Option {
	return func(c *Client) { c.sched = s }
}

// New creates a client for the API at baseURL (e.g. "http://localhost:5000")
func New(baseURL string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
		logger:  log.WithComponent("client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// pendingOp tracks one in-flight mutation. Each mutation starts
// pending and ends either confirmed (cache holds the server response)
// or rolled back (cache restored to the pre-mutation record).
type pendingOp struct {
	state opState
	prev  entities.Reminder
}

type opState int

const (
	opPending opState = iota
	opConfirmed
	opRolledBack
)

func (s opState) String() string {
	switch s {
	case opPending:
		return "pending"
	case opConfirmed:
		return "confirmed"
	case opRolledBack:
		return "rolled_back"
	}
	return "unknown"
}

func (op *pendingOp) confirm()  { op.state = opConfirmed }
func (op *pendingOp) rollback() { op.state = opRolledBack }

// apiError is the {error} body returned on failures
type apiError struct {
	Message string `json:"error"`
}

func (e *apiError) Error() string { return e.Message }

// Load fetches the full reminder list, replaces the cache and resyncs
// the attached scheduler
func (c *Client) Load(ctx context.Context) ([]entities.Reminder, error) {
	var out struct {
		Success   bool                `json:"success"`
		Reminders []entities.Reminder `json:"reminders"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/reminders", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache = out.Reminders
	c.mu.Unlock()

	if c.sched != nil {
		c.sched.Sync(out.Reminders)
	}

	return c.Reminders(), nil
}

// Reminders returns a copy of the cached list
func (c *Client) Reminders() []entities.Reminder {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entities.Reminder, len(c.cache))
	copy(out, c.cache)
	return out
}

// CreateReminder creates a reminder on the server and appends the
// server's record to the cache
func (c *Client) CreateReminder(ctx context.Context, req ports.CreateReminderRequest) (*entities.Reminder, error) {
	var out struct {
		Success  bool               `json:"success"`
		Reminder *entities.Reminder `json:"reminder"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/reminders", req, http.StatusCreated, &out); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache = append(c.cache, *out.Reminder)
	c.mu.Unlock()

	if c.sched != nil {
		c.sched.Schedule(*out.Reminder)
	}

	return out.Reminder, nil
}

// UpdateReminder sends a partial update and reconciles the cache with
// the server's response
func (c *Client) UpdateReminder(ctx context.Context, id int, req ports.UpdateReminderRequest) (*entities.Reminder, error) {
	var out struct {
		Success  bool               `json:"success"`
		Reminder *entities.Reminder `json:"reminder"`
	}
	path := fmt.Sprintf("/api/reminders/%d", id)
	if err := c.do(ctx, http.MethodPut, path, req, http.StatusOK, &out); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if idx := c.indexOf(id); idx != -1 {
		c.cache[idx] = *out.Reminder
	}
	c.mu.Unlock()

	if c.sched != nil {
		c.sched.Schedule(*out.Reminder)
	}

	return out.Reminder, nil
}

// ToggleReminder flips enabled optimistically, then confirms against
// the server. On failure the cached record and the local schedule are
// rolled back to their pre-toggle state.
func (c *Client) ToggleReminder(ctx context.Context, id int) (*entities.Reminder, error) {
	c.mu.Lock()
	idx := c.indexOf(id)
	if idx == -1 {
		c.mu.Unlock()
		return nil, entities.ErrReminderNotFound
	}
	op := &pendingOp{state: opPending, prev: c.cache[idx]}
	c.cache[idx].Enabled = !op.prev.Enabled
	desired := c.cache[idx].Enabled
	c.mu.Unlock()

	var out struct {
		Success  bool               `json:"success"`
		Reminder *entities.Reminder `json:"reminder"`
	}
	path := fmt.Sprintf("/api/reminders/%d", id)
	body := ports.UpdateReminderRequest{Enabled: &desired}
	if err := c.do(ctx, http.MethodPut, path, body, http.StatusOK, &out); err != nil {
		op.rollback()
		c.mu.Lock()
		if idx := c.indexOf(id); idx != -1 {
			c.cache[idx] = op.prev
		}
		c.mu.Unlock()
		if c.sched != nil {
			c.sched.Schedule(op.prev)
		}
		c.logger.Warnw("Toggle resolved", "reminder_id", id, "state", op.state, "error", err)
		return nil, err
	}
	op.confirm()

	c.mu.Lock()
	if idx := c.indexOf(id); idx != -1 {
		c.cache[idx] = *out.Reminder
	}
	c.mu.Unlock()

	if c.sched != nil {
		c.sched.Schedule(*out.Reminder)
	}

	c.logger.Debugw("Toggle resolved", "reminder_id", id, "state", op.state, "enabled", out.Reminder.Enabled)
	return out.Reminder, nil
}

// DeleteReminder deletes on the server, then drops the cached record
// and cancels any local timer
func (c *Client) DeleteReminder(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/reminders/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, http.StatusOK, nil); err != nil {
		return err
	}

	c.mu.Lock()
	if idx := c.indexOf(id); idx != -1 {
		c.cache = append(c.cache[:idx], c.cache[idx+1:]...)
	}
	c.mu.Unlock()

	if c.sched != nil {
		c.sched.Cancel(id)
	}

	return nil
}

// indexOf must be called with the mutex held
func (c *Client) indexOf(id int) int {
	for i := range c.cache {
		if c.cache[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, wantStatus int, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var ae apiError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&ae); decodeErr == nil && ae.Message != "" {
			return fmt.Errorf("%s %s: %w", method, path, &ae)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
