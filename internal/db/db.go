// Package db owns the database connection lifecycle. The rest of the
// pipeline only sees an open *sql.DB and the execute operation.
package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb" // DuckDB driver

	"github.com/drshika/warm-ai-agent/internal/errors"
)

// Connection wraps an open database handle for a session
type Connection struct {
	db   *sql.DB
	path string
}

// Connect opens the DuckDB database at the given path and verifies the
// connection with a ping. When readOnly is set the database is opened
// with DuckDB's read-only access mode so write statements fail at the
// driver even before the safety layer sees them.
func Connect(ctx context.Context, path string, readOnly bool) (*Connection, error) {
	if path == "" {
		return nil, errors.New(errors.ErrTypeConfig, "database path is not configured")
	}

	dsn := path

	if readOnly {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.NewConnectionError("database file not found: "+path, err)
		}

		dsn = path + "?access_mode=read_only"
	} else {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.NewConnectionError("failed to create database directory", err)
		}
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, errors.NewConnectionError("failed to open database", err)
	}

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewConnectionError("failed to connect to database", err)
	}

	return &Connection{db: db, path: path}, nil
}

// DB returns the underlying database handle
func (c *Connection) DB() *sql.DB {
	return c.db
}

// Path returns the database file path
func (c *Connection) Path() string {
	return c.path
}

// Close releases the database connection
func (c *Connection) Close() error {
	if c == nil || c.db == nil {
		return nil
	}

	return c.db.Close()
}
