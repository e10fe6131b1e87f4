package authoring

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Saver is the persistence boundary: the whole item list goes out in one
// call, replacing prior server state wholesale. The concrete transport
// (SQL, REST, …) lives outside this package.
type Saver interface {
	SaveItems(ctx context.Context, sessionID string, items []Item) error
}

// SaveState is the session-level save status shown to the author.
type SaveState string

const (
	SaveIdle    SaveState = "idle"
	SaveSaving  SaveState = "saving"
	SaveSuccess SaveState = "success"
	SaveError   SaveState = "error"
)

var ErrSaveInFlight = errors.New("a save is already in flight")

// SaveCoordinator runs the batch save and tracks the
// idle -> saving -> {success,error} -> idle state machine. Only one save
// may be in flight; success and error revert to idle after a fixed display
// delay. A failed save leaves nothing to roll back locally, so retrying
// with the identical list is always valid.
type SaveCoordinator struct {
	saver       Saver
	revertAfter time.Duration

	mu      sync.Mutex
	state   SaveState
	lastErr error
	timer   *time.Timer
}

func NewSaveCoordinator(s Saver, revertAfter time.Duration) *SaveCoordinator {
	if revertAfter <= 0 {
		revertAfter = 3 * time.Second
	}
	return &SaveCoordinator{saver: s, revertAfter: revertAfter, state: SaveIdle}
}

// Save persists the full list. It returns ErrSaveInFlight without calling
// the saver when a save is already running.
func (c *SaveCoordinator) Save(ctx context.Context, sessionID string, items []Item) error {
	c.mu.Lock()
	if c.state == SaveSaving {
		c.mu.Unlock()
		return ErrSaveInFlight
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.state = SaveSaving
	c.lastErr = nil
	c.mu.Unlock()

	err := c.saver.SaveItems(ctx, sessionID, items)

	c.mu.Lock()
	if err != nil {
		c.state = SaveError
		c.lastErr = err
	} else {
		c.state = SaveSuccess
	}
	c.timer = time.AfterFunc(c.revertAfter, c.revert)
	c.mu.Unlock()
	return err
}

func (c *SaveCoordinator) revert() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == SaveSuccess || c.state == SaveError {
		c.state = SaveIdle
		c.timer = nil
	}
}

// State returns the current save status and, in the error state, the
// failure being displayed.
func (c *SaveCoordinator) State() (SaveState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.lastErr
}
