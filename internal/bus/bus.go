// Package bus is the request/response channel between the capture
// surfaces: the popup-style views and the background coordinator talk
// to page sessions through it. One request, one response, a fixed
// action set, no delivery guarantees beyond that.
package bus

import (
	"context"
	"fmt"
	"sync"

	"jobstash/internal/models"
)

// Action enumerates the message types the bus carries.
type Action string

const (
	// ActionGetJobData asks a page session for its current extraction
	// result without triggering a save.
	ActionGetJobData Action = "getJobData"
	// ActionSaveJob asks a page session to save its current posting.
	ActionSaveJob Action = "saveJob"
	// ActionOpenDashboard asks the coordinator to show the dashboard.
	ActionOpenDashboard Action = "openDashboard"
)

// Request is one message sent over the bus.
type Request struct {
	Action Action
}

// Response is the reply to a single request. Job is nil when the page
// has no detected job.
type Response struct {
	Job   *models.JobPosting
	Saved *models.SavedJob
}

// HandlerFunc serves one action.
type HandlerFunc func(ctx context.Context, req Request) (Response, error)

// Bus dispatches requests to registered action handlers.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Action]HandlerFunc
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{handlers: make(map[Action]HandlerFunc)}
}

// Handle registers the handler for an action, replacing any previous one.
func (b *Bus) Handle(action Action, fn HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[action] = fn
}

// Send dispatches a request and waits for its single response. An
// unregistered action is an error, mirroring a message with no
// listener on the other end.
func (b *Bus) Send(ctx context.Context, req Request) (Response, error) {
	b.mu.RLock()
	fn, ok := b.handlers[req.Action]
	b.mu.RUnlock()

	if !ok {
		return Response{}, fmt.Errorf("no handler for action %q", req.Action)
	}
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	return fn(ctx, req)
}
