package http

import (
	"context"
	"sync"
	"time"

	"github.com/lumilearn/lumilearn-authoring/internal/authoring"
	"github.com/lumilearn/lumilearn-authoring/internal/storage"
)

// SessionHandle pairs one live session with its save coordinator. All
// mutations go through withLock so a session only ever sees one writer at
// a time; sessions never share state with each other.
type SessionHandle struct {
	mu      sync.Mutex
	session *authoring.Session
	saves   *authoring.SaveCoordinator
}

func (h *SessionHandle) withLock(fn func(s *authoring.Session)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.session)
}

// Registry owns the in-process map of open authoring sessions. Opening an
// id twice returns the same handle; persisted items are loaded once, on
// first open.
type Registry struct {
	store  storage.Store
	seed   authoring.SeedFunc
	revert time.Duration

	mu       sync.RWMutex
	sessions map[string]*SessionHandle
}

func NewRegistry(store storage.Store, seed authoring.SeedFunc, revert time.Duration) *Registry {
	return &Registry{
		store:    store,
		seed:     seed,
		revert:   revert,
		sessions: map[string]*SessionHandle{},
	}
}

// Open returns the live handle for a session, creating the backing row
// and loading any persisted items when the session is not yet in memory.
func (g *Registry) Open(ctx context.Context, id, courseID, title, ownerID string) (*SessionHandle, error) {
	g.mu.RLock()
	h, ok := g.sessions[id]
	g.mu.RUnlock()
	if ok {
		return h, nil
	}

	if err := g.store.CreateSession(ctx, id, courseID, title, ownerID); err != nil {
		return nil, err
	}
	items, err := g.store.LoadItems(ctx, id)
	if err != nil {
		return nil, err
	}

	opts := []authoring.SessionOption{authoring.WithItems(items)}
	if g.seed != nil {
		opts = append(opts, authoring.WithSeed(g.seed))
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if h, ok := g.sessions[id]; ok { // lost the race; keep the first
		return h, nil
	}
	h = &SessionHandle{
		session: authoring.NewSession(id, opts...),
		saves:   authoring.NewSaveCoordinator(g.store, g.revert),
	}
	g.sessions[id] = h
	return h, nil
}

// Get returns the handle only if the session is already open.
func (g *Registry) Get(id string) (*SessionHandle, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	h, ok := g.sessions[id]
	return h, ok
}

// Evict drops the in-memory session; persisted state is untouched.
func (g *Registry) Evict(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sessions, id)
}
