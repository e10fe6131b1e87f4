package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lumilearn/lumilearn-authoring/internal/authoring"
)

type memorySession struct {
	summary SessionSummary
	items   []authoring.Item
}

// MemoryStore mirrors SQLStore for tests and dev runs without a database.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]*memorySession{}}
}

func (m *MemoryStore) CreateSession(_ context.Context, id, courseID, title, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; ok {
		return nil
	}
	m.sessions[id] = &memorySession{summary: SessionSummary{
		ID: id, CourseID: courseID, Title: title, OwnerID: ownerID,
		UpdatedAt: time.Now().Unix(),
	}}
	return nil
}

func (m *MemoryStore) SaveItems(_ context.Context, sessionID string, items []authoring.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	cp := make([]authoring.Item, len(items))
	for i, it := range items {
		cp[i] = it.Clone()
	}
	sess.items = cp
	sess.summary.ItemCount = len(cp)
	sess.summary.UpdatedAt = time.Now().Unix()
	return nil
}

func (m *MemoryStore) LoadItems(_ context.Context, sessionID string) ([]authoring.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	out := make([]authoring.Item, len(sess.items))
	for i, it := range sess.items {
		c := it.Clone()
		c.ID.Kind = authoring.IdentityPersisted
		for j := range c.Options {
			c.Options[j].ID.Kind = authoring.IdentityPersisted
		}
		out[i] = c
	}
	return out, nil
}

func (m *MemoryStore) ListSessions(_ context.Context, courseID string, limit, offset int) ([]SessionSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	m.mu.RLock()
	out := []SessionSummary{}
	for _, sess := range m.sessions {
		if courseID != "" && sess.summary.CourseID != courseID {
			continue
		}
		out = append(out, sess.summary)
	}
	m.mu.RUnlock()

	// newest first, id as tiebreaker so pagination is stable
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt != out[j].UpdatedAt {
			return out[i].UpdatedAt > out[j].UpdatedAt
		}
		return out[i].ID < out[j].ID
	})
	if offset >= len(out) {
		return []SessionSummary{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) DeleteSession(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	delete(m.sessions, sessionID)
	return nil
}
