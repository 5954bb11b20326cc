// Package sqlite keeps baselines in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver" // registers the sqlite3 driver
	_ "github.com/ncruces/go-sqlite3/embed"  // embeds the SQLite build

	"github.com/ochairo/regguard/internal/domain/interfaces/gateways"
)

const schema = `
CREATE TABLE IF NOT EXISTS baselines (
	operation TEXT PRIMARY KEY,
	blob TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Provider opens the database file per logical operation
type Provider struct {
	path string
}

// NewProvider creates a provider for the database at path
func NewProvider(path string) (*Provider, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	return &Provider{path: path}, nil
}

// Open opens the database, creating its directory and schema when missing
func (p *Provider) Open(ctx context.Context) (gateways.BaselineStore, error) {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sql.Open("sqlite3", "file:"+p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", p.path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", p.path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &store{db: db}, nil
}

type store struct {
	db *sql.DB
}

func (s *store) Get(ctx context.Context, operation string) (string, bool, error) {
	var blob string
	err := s.db.QueryRowContext(ctx, `SELECT blob FROM baselines WHERE operation = ?`, operation).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read baseline %s: %w", operation, err)
	}
	return blob, true, nil
}

func (s *store) Put(ctx context.Context, operation, blob string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO baselines (operation, blob) VALUES (?, ?)
		ON CONFLICT(operation) DO UPDATE SET blob = excluded.blob, updated_at = CURRENT_TIMESTAMP`,
		operation, blob)
	if err != nil {
		return fmt.Errorf("failed to write baseline %s: %w", operation, err)
	}
	return nil
}

func (s *store) Close() error {
	return s.db.Close()
}
