// Package store persists engine state in a single-table sqlite database so
// the sandbox runner survives restarts. It mirrors the map-backed state used
// in tests: flat string keys, string values, nil for missing.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// SqliteState adapts a sqlite file to the engine's State interface.
// Storage errors panic: the engine treats its store as infallible, and a
// broken database file is not something an operation can recover from.
type SqliteState struct {
	db *sql.DB
}

// Open creates or opens the database at path and prepares the schema.
func Open(path string) (*SqliteState, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SqliteState{db: db}, nil
}

func (s *SqliteState) Close() error {
	return s.db.Close()
}

func (s *SqliteState) Set(key, value string) {
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		panic(fmt.Sprintf("store: set %s: %v", key, err))
	}
}

func (s *SqliteState) Get(key string) *string {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		panic(fmt.Sprintf("store: get %s: %v", key, err))
	}
	return &value
}

func (s *SqliteState) Delete(key string) {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		panic(fmt.Sprintf("store: delete %s: %v", key, err))
	}
}

// Keys returns every stored key with the given prefix, for debug dumps.
func (s *SqliteState) Keys(prefix string) []string {
	rows, err := s.db.Query(
		"SELECT key FROM kv WHERE key LIKE ? || '%' ORDER BY key", prefix,
	)
	if err != nil {
		panic(fmt.Sprintf("store: keys %s: %v", prefix, err))
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			panic(fmt.Sprintf("store: scan key: %v", err))
		}
		out = append(out, key)
	}
	if err := rows.Err(); err != nil {
		panic(fmt.Sprintf("store: iterate keys: %v", err))
	}
	return out
}
