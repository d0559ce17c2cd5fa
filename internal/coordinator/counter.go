package coordinator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// counterFile is the single piece of local persisted state: the
// saved-job count shown as the badge.
const counterFile = "badge_count.json"

type counterState struct {
	SavedCount int `json:"saved_count"`
}

// Counter is a file-backed integer counter.
type Counter struct {
	mu   sync.Mutex
	path string
}

// NewCounter stores the counter under dataDir, creating it if needed.
func NewCounter(dataDir string) (*Counter, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}
	return &Counter{path: filepath.Join(dataDir, counterFile)}, nil
}

// Value reads the current count. A missing or corrupt file reads as 0.
func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load().SavedCount
}

// Increment bumps the count by one and persists it.
func (c *Counter) Increment() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.load()
	state.SavedCount++
	if err := c.store(state); err != nil {
		return state.SavedCount, err
	}
	return state.SavedCount, nil
}

// Reset zeroes the count.
func (c *Counter) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store(counterState{})
}

func (c *Counter) load() counterState {
	var state counterState
	data, err := os.ReadFile(c.path)
	if err != nil {
		return state
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return counterState{}
	}
	return state
}

func (c *Counter) store(state counterState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}
