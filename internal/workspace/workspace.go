// Package workspace is a minimal SQLite-backed store for versioned
// workspace items. Each action that runs over an item writes a new
// version row rather than mutating the previous one in place, so later
// steps (annotate_timestamps backfilling citations from an earlier
// version's body) can still reach their source.
package workspace

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/google/uuid"
)

// Item is one version of a workspace document.
type Item struct {
	ID        uuid.UUID
	Version   int
	Title     string
	Body      string
	SourceID  *uuid.UUID // the item this version was derived from, if any
	CreatedAt time.Time
}

// Store persists Items in a SQLite database.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates (if needed) and opens the SQLite file at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open workspace db: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS items (
		id TEXT NOT NULL,
		version INTEGER NOT NULL,
		title TEXT NOT NULL,
		body TEXT NOT NULL,
		source_id TEXT,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (id, version)
	);
	CREATE INDEX IF NOT EXISTS idx_items_id ON items(id);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init workspace schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// NewItem inserts version 1 of a brand new item and returns it.
func (s *Store) NewItem(ctx context.Context, title, body string) (Item, error) {
	item := Item{ID: uuid.New(), Version: 1, Title: title, Body: body, CreatedAt: time.Now().UTC()}
	if err := s.insert(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// NewVersion writes the next version of id, derived from source (usually
// the item's own previous version). The caller supplies title/body since
// an action may rename as well as rewrite an item.
func (s *Store) NewVersion(ctx context.Context, source Item, title, body string) (Item, error) {
	next := Item{
		ID:        source.ID,
		Version:   source.Version + 1,
		Title:     title,
		Body:      body,
		SourceID:  &source.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.insert(ctx, next); err != nil {
		return Item{}, err
	}
	return next, nil
}

func (s *Store) insert(ctx context.Context, item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sourceID any
	if item.SourceID != nil {
		sourceID = item.SourceID.String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (id, version, title, body, source_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID.String(), item.Version, item.Title, item.Body, sourceID, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert item version: %w", err)
	}
	return nil
}

// Latest returns the highest version row for id.
func (s *Store) Latest(ctx context.Context, id uuid.UUID) (Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, version, title, body, source_id, created_at FROM items
		 WHERE id = ? ORDER BY version DESC LIMIT 1`, id.String())
	return scanItem(row)
}

// Version returns a specific (id, version) row.
func (s *Store) Version(ctx context.Context, id uuid.UUID, version int) (Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, version, title, body, source_id, created_at FROM items
		 WHERE id = ? AND version = ?`, id.String(), version)
	return scanItem(row)
}

// LatestAll returns the latest version row for every distinct item id in
// the store, ordered by id, for callers that need to sweep a whole
// collection (e.g. a scheduled pipeline re-run).
func (s *Store) LatestAll(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.version, i.title, i.body, i.source_id, i.created_at
		FROM items i
		JOIN (SELECT id, MAX(version) AS version FROM items GROUP BY id) latest
		  ON i.id = latest.id AND i.version = latest.version
		ORDER BY i.id`)
	if err != nil {
		return nil, fmt.Errorf("query latest items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItemRows(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// History returns every version of id, oldest first.
func (s *Store) History(ctx context.Context, id uuid.UUID) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, version, title, body, source_id, created_at FROM items
		 WHERE id = ? ORDER BY version ASC`, id.String())
	if err != nil {
		return nil, fmt.Errorf("query item history: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItemRows(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row *sql.Row) (Item, error) {
	return scanItemRow(row)
}

func scanItemRow(s rowScanner) (Item, error) {
	var item Item
	var idStr string
	var sourceID sql.NullString
	if err := s.Scan(&idStr, &item.Version, &item.Title, &item.Body, &sourceID, &item.CreatedAt); err != nil {
		return Item{}, fmt.Errorf("scan item: %w", err)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return Item{}, fmt.Errorf("parse item id: %w", err)
	}
	item.ID = id
	if sourceID.Valid {
		sid, err := uuid.Parse(sourceID.String)
		if err == nil {
			item.SourceID = &sid
		}
	}
	return item, nil
}

func scanItemRows(rows *sql.Rows) (Item, error) {
	return scanItemRow(rows)
}
