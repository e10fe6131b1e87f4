package storage

import (
	"context"

	"github.com/lumilearn/lumilearn-authoring/internal/authoring"
)

// Store is what the HTTP layer needs from persistence. SQLStore is the
// real implementation; MemoryStore backs tests and db-less dev runs.
// SaveItems doubles as the authoring.Saver boundary.
type Store interface {
	CreateSession(ctx context.Context, id, courseID, title, ownerID string) error
	SaveItems(ctx context.Context, sessionID string, items []authoring.Item) error
	LoadItems(ctx context.Context, sessionID string) ([]authoring.Item, error)
	ListSessions(ctx context.Context, courseID string, limit, offset int) ([]SessionSummary, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

var (
	_ Store = (*SQLStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
