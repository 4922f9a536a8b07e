// Package duckdb persists uORF features in a DuckDB database so results of
// several runs can be queried with SQL.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding uORF features.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file, empty for in-memory stores.
func (s *Store) Path() string {
	return s.path
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		run_id VARCHAR PRIMARY KEY,
		started_at TIMESTAMP,
		assembly VARCHAR,
		gtf_path VARCHAR,
		gtf_size BIGINT,
		gtf_mtime TIMESTAMP,
		sequence_source VARCHAR,
		downstream_bases BIGINT,
		context_bases BIGINT,
		kozak_method VARCHAR
	)`); err != nil {
		return err
	}

	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS uorf_features (
		run_id VARCHAR,
		transcript_id VARCHAR,
		uorf_start BIGINT,
		uorf_end BIGINT,
		length BIGINT,
		gc_content DOUBLE,
		gc_downstream DOUBLE,
		intercistonic_distance BIGINT,
		kozak DOUBLE,
		context VARCHAR,
		PRIMARY KEY (run_id, transcript_id, uorf_start)
	)`)
	return err
}
