// Package coordinator is the process-wide save relay: it accepts save
// triggers for supported platforms only, forwards them to the page
// session over the bus, and keeps the persisted badge counter in step
// with successful saves.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log"

	"jobstash/internal/bus"
	"jobstash/internal/models"
)

// ErrUnsupportedPage means the trigger fired on a URL outside the
// supported platforms' patterns.
var ErrUnsupportedPage = errors.New("page is not a supported job board")

// DashboardOpener renders the dashboard view on request.
type DashboardOpener func(ctx context.Context) error

// Coordinator relays save triggers and tracks the badge counter.
type Coordinator struct {
	bus     *bus.Bus
	counter *Counter
}

// New wires a coordinator onto the bus and registers its handlers.
func New(b *bus.Bus, counter *Counter, openDashboard DashboardOpener) *Coordinator {
	c := &Coordinator{bus: b, counter: counter}

	b.Handle(bus.ActionOpenDashboard, func(ctx context.Context, _ bus.Request) (bus.Response, error) {
		if openDashboard == nil {
			return bus.Response{}, errors.New("no dashboard view registered")
		}
		return bus.Response{}, openDashboard(ctx)
	})

	return c
}

// TriggerSave is the context-menu path: it refuses URLs outside the
// supported platforms, then relays a saveJob request to the page
// session. A successful save bumps the badge.
func (c *Coordinator) TriggerSave(ctx context.Context, pageURL string) (*models.SavedJob, error) {
	if models.DetectPlatform(pageURL) == models.PlatformUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPage, pageURL)
	}

	resp, err := c.bus.Send(ctx, bus.Request{Action: bus.ActionSaveJob})
	if err != nil {
		return nil, err
	}

	if resp.Saved != nil {
		if _, err := c.counter.Increment(); err != nil {
			// Counter drift is cosmetic; the save already succeeded.
			log.Printf("badge counter: %v", err)
		}
	}
	return resp.Saved, nil
}

// Badge returns the persisted saved-job count.
func (c *Coordinator) Badge() int {
	return c.counter.Value()
}
