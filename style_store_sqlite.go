package gocarousel

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const styleSchema = `CREATE TABLE IF NOT EXISTS default_styles (
	key        TEXT PRIMARY KEY,
	style      TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLiteStyleStore keeps styles in a SQLite table.
type SQLiteStyleStore struct {
	db *sql.DB
}

// OpenSQLiteStyleStore opens (creating if needed) the database at dsn,
// e.g. "styles.db" or "file::memory:".
func OpenSQLiteStyleStore(dsn string) (*SQLiteStyleStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open style db: %w", err)
	}
	// A single connection keeps in-memory databases alive and serializes
	// writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(styleSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create style table: %w", err)
	}
	return &SQLiteStyleStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStyleStore) Close() error { return s.db.Close() }

// Save implements StyleStore.
func (s *SQLiteStyleStore) Save(ctx context.Context, key string, st StyleSpec) error {
	if err := checkStyleKey(key); err != nil {
		return err
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode style: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO default_styles (key, style, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET style = excluded.style, updated_at = excluded.updated_at`,
		key, string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save style %q: %w", key, err)
	}
	logger().Debug("style saved", "key", key, "store", "sqlite")
	return nil
}

// Load implements StyleStore.
func (s *SQLiteStyleStore) Load(ctx context.Context, key string) (StyleSpec, error) {
	if err := checkStyleKey(key); err != nil {
		return StyleSpec{}, err
	}
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT style FROM default_styles WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return StyleSpec{}, ErrNoDefaultStyle
	}
	if err != nil {
		return StyleSpec{}, fmt.Errorf("load style %q: %w", key, err)
	}
	var st StyleSpec
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return StyleSpec{}, fmt.Errorf("decode style %q: %w", key, err)
	}
	return st, nil
}

// Delete implements StyleStore.
func (s *SQLiteStyleStore) Delete(ctx context.Context, key string) error {
	if err := checkStyleKey(key); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM default_styles WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete style %q: %w", key, err)
	}
	return nil
}
