// Package store is the SQLite event log behind `studydeck llm` and
// `studydeck runs`. Nothing in it is needed to study a deck; a failing
// store only loses history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
}

// Per-connection settings. The pool holds a single connection so they
// apply to every statement.
var pragmas = []string{
	"journal_mode = WAL",
	"busy_timeout = 5000",
	"foreign_keys = ON",
	"synchronous = NORMAL",
}

// Open opens or creates the database at dsn and migrates it.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	for _, p := range pragmas {
		if _, err := db.Exec("PRAGMA " + p); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %s: %w", p, err)
		}
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, drv: drv, seq: &sequenceCounter{drv: drv}}, nil
}

// DB exposes the connection for ad-hoc queries.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.drv.Close() }

func (s *Store) EventRepo() EventRepo {
	return &eventRepo{drv: s.drv, seq: s.seq}
}

// DefaultDBPath is $STUDYDECK_DB when set, else studydeck.db in DataDir.
// The parent directory is created.
func DefaultDBPath() (string, error) {
	path := os.Getenv("STUDYDECK_DB")
	if path == "" {
		dir, err := DataDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(dir, "studydeck.db")
	}
	return path, EnsureDir(path)
}

// DataDir is $XDG_DATA_HOME/studydeck, defaulting XDG_DATA_HOME to
// ~/.local/share. It is not created.
func DataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "studydeck"), nil
}

// EnsureDir creates the directory that will hold path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
