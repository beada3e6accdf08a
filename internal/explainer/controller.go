package explainer

import (
	"context"
	"strings"
	"sync"
)

// State is the request lifecycle state. Exactly one variant holds at
// any instant; transitions happen only inside the controller.
type State int

const (
	// StateIdle means no submission has produced an outcome yet
	StateIdle State = iota

	// StateLoading means one request is in flight
	StateLoading

	// StateSucceeded means the last submission produced a result
	StateSucceeded

	// StateFailed means the last submission produced an error
	StateFailed
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the controller state handed to
// presentation code. Result is non-nil only for StateSucceeded and
// Err is non-nil only for StateFailed.
type Snapshot struct {
	State  State
	Result *ExplainResult
	Err    error
}

// Explainer performs one explain request. *Client is the production
// implementation.
type Explainer interface {
	Explain(ctx context.Context, req *ExplainRequest) (*ExplainResult, error)
}

// SelectedFile is the one user-chosen file attached to a submission
type SelectedFile struct {
	Name string
	Data []byte
}

// Controller owns the query, the selected file, and the request state.
// Presentation layers read snapshots and never mutate state directly.
//
// A second submit while a request is in flight is inert: it returns the
// current snapshot and has no observable effect.
type Controller struct {
	mu      sync.Mutex
	client  Explainer
	query   string
	file    *SelectedFile
	state   State
	result  *ExplainResult
	lastErr error
	pending *ExplainRequest
}

// NewController creates a controller submitting through the given client
func NewController(client Explainer) *Controller {
	return &Controller{
		client: client,
		state:  StateIdle,
	}
}

// SetQuery updates the query text
func (c *Controller) SetQuery(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = text
}

// SetFile replaces the selected file. The previous handle is discarded.
func (c *Controller) SetFile(name string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	content := make([]byte, len(data))
	copy(content, data)
	c.file = &SelectedFile{Name: name, Data: content}
}

// Snapshot returns the current state view
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{State: c.state}
	switch c.state {
	case StateSucceeded:
		snap.Result = c.result
	case StateFailed:
		snap.Err = c.lastErr
	}
	return snap
}

// Submit runs one full request cycle: validate, transition to loading,
// perform the request, and settle on succeeded or failed. Validation
// failures transition straight to failed without any network call.
// While a request is in flight, Submit returns the current snapshot
// and does nothing.
func (c *Controller) Submit(ctx context.Context) Snapshot {
	snap, ok := c.StartSubmit()
	if !ok {
		return snap
	}
	return c.FinishSubmit(ctx)
}

// StartSubmit validates the inputs and, when they pass, enters the
// loading state and stages the outgoing request. The query text and
// file bytes are captured here, so edits made while the request is in
// flight never leak into it.
//
// The boolean reports whether a request was staged: the caller must
// follow up with FinishSubmit exactly when it is true. It is false
// when validation failed or a request is already in flight.
func (c *Controller) StartSubmit() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateLoading {
		return c.snapshotLocked(), false
	}

	if err := c.validateLocked(); err != nil {
		c.state = StateFailed
		c.lastErr = err
		c.result = nil
		return c.snapshotLocked(), false
	}

	c.state = StateLoading
	c.lastErr = nil
	c.result = nil
	c.pending = &ExplainRequest{
		Query:    c.query,
		FileName: c.file.Name,
		FileData: c.file.Data,
	}

	return c.snapshotLocked(), true
}

// FinishSubmit performs the request staged by StartSubmit and settles
// the state. Calling it without a staged request returns the current
// snapshot unchanged.
func (c *Controller) FinishSubmit(ctx context.Context) Snapshot {
	c.mu.Lock()
	req := c.pending
	c.pending = nil
	c.mu.Unlock()

	if req == nil {
		return c.Snapshot()
	}

	result, err := c.client.Explain(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = StateFailed
		c.lastErr = err
		c.result = nil
	} else {
		c.state = StateSucceeded
		c.result = result
		c.lastErr = nil
	}

	return c.snapshotLocked()
}

func (c *Controller) validateLocked() error {
	if strings.TrimSpace(c.query) == "" {
		return NewValidationError("query", "Please enter a query")
	}
	if c.file == nil {
		return NewValidationError("file", "Please choose a file")
	}
	return nil
}
