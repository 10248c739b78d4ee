// Package storage persists the signal catalog document between
// restarts of the signals service. It is the stand-in for the remote
// document store the original deployment kept its signals in: one
// catalog document, replaced wholesale by admin updates.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hemant18-09/DOCai/internal/model"
)

// SignalsStore persists the catalog in a single-row SQLite table.
type SignalsStore struct {
	db *sql.DB
}

// Open opens (and if needed creates) the signals database at path.
func Open(path string) (*SignalsStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open signals db: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS signals (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		doc TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create signals table: %w", err)
	}

	return &SignalsStore{db: db}, nil
}

// Save replaces the stored catalog document.
func (s *SignalsStore) Save(cat *model.Catalog) error {
	doc, err := json.Marshal(cat)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO signals(id, doc, updated_at) VALUES(1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		string(doc), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

// Load returns the stored catalog, or (nil, nil) when none has been
// saved yet so callers can fall back to the embedded default.
func (s *SignalsStore) Load() (*model.Catalog, error) {
	var doc string
	err := s.db.QueryRow(`SELECT doc FROM signals WHERE id = 1`).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var cat model.Catalog
	if err := json.Unmarshal([]byte(doc), &cat); err != nil {
		return nil, fmt.Errorf("decode stored catalog: %w", err)
	}
	return &cat, nil
}

// Close closes the underlying database.
func (s *SignalsStore) Close() error {
	return s.db.Close()
}
