package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lumilearn/lumilearn-authoring/internal/authoring"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionSummary is one row of the session listing.
type SessionSummary struct {
	ID        string `json:"id"`
	CourseID  string `json:"course_id,omitempty"`
	Title     string `json:"title"`
	OwnerID   string `json:"owner_id,omitempty"`
	ItemCount int    `json:"item_count"`
	UpdatedAt int64  `json:"updated_at"`
}

// SQLStore persists whole session item lists. It implements
// authoring.Saver; a batch save replaces the stored list in one upsert and
// records a SessionSaved event in the same transaction.
type SQLStore struct {
	db     *sql.DB
	siteID string
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, siteID: "local"}
}

// CreateSession registers an empty session row so saves and loads have a
// home. Upsert: opening an existing id is not an error.
func (s *SQLStore) CreateSession(ctx context.Context, id, courseID, title, ownerID string) error {
	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx, `INSERT INTO authoring_sessions (id,course_id,title,owner_id,items_json,created_at,updated_at)
		VALUES ($1,$2,$3,$4,'[]',$5,$5)
		ON CONFLICT (id) DO NOTHING`,
		id, courseID, title, ownerID, now)
	return err
}

// SaveItems implements authoring.Saver: the full list replaces whatever
// was stored before, all or nothing.
func (s *SQLStore) SaveItems(ctx context.Context, sessionID string, items []authoring.Item) error {
	buf, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	now := time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE authoring_sessions SET items_json=$1, updated_at=$2 WHERE id=$3`,
		string(buf), now, sessionID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	ev, _ := json.Marshal(map[string]any{"items": len(items)})
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO event_log (site_id, typ, key, data, created_at) VALUES ($1,$2,$3,$4,$5)`,
		s.siteID, "SessionSaved", sessionID, string(ev), now); err != nil {
		return err
	}

	return tx.Commit()
}

// LoadItems returns the persisted list for a session. Identities come back
// tagged persisted: the server has confirmed them, whatever their kind was
// when saved.
func (s *SQLStore) LoadItems(ctx context.Context, sessionID string) ([]authoring.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT items_json FROM authoring_sessions WHERE id=$1`, sessionID)
	var buf string
	if err := row.Scan(&buf); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
		}
		return nil, err
	}
	var items []authoring.Item
	if err := json.Unmarshal([]byte(buf), &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	for i := range items {
		items[i].ID.Kind = authoring.IdentityPersisted
		for j := range items[i].Options {
			items[i].Options[j].ID.Kind = authoring.IdentityPersisted
		}
	}
	return items, nil
}

// ListSessions returns summaries ordered by last update, newest first.
func (s *SQLStore) ListSessions(ctx context.Context, courseID string, limit, offset int) ([]SessionSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	var (
		rows *sql.Rows
		err  error
	)
	if courseID != "" {
		rows, err = s.db.QueryContext(ctx, `SELECT id, course_id, title, owner_id, items_json, updated_at
			FROM authoring_sessions WHERE course_id=$1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3`,
			courseID, limit, offset)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT id, course_id, title, owner_id, items_json, updated_at
			FROM authoring_sessions ORDER BY updated_at DESC LIMIT $1 OFFSET $2`,
			limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SessionSummary{}
	for rows.Next() {
		var sum SessionSummary
		var itemsJSON string
		if err := rows.Scan(&sum.ID, &sum.CourseID, &sum.Title, &sum.OwnerID, &itemsJSON, &sum.UpdatedAt); err != nil {
			return nil, err
		}
		var items []json.RawMessage
		if json.Unmarshal([]byte(itemsJSON), &items) == nil {
			sum.ItemCount = len(items)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// DeleteSession drops the session row; the event log keeps its history.
func (s *SQLStore) DeleteSession(ctx context.Context, sessionID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM authoring_sessions WHERE id=$1`, sessionID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return nil
}
