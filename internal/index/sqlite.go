// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteIndex stores records in a local SQLite database.
type SQLiteIndex struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, errors.New("sqlite index: empty database path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(InitMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize metadata: %w", err)
	}

	return &SQLiteIndex{db: db, path: path}, nil
}

// Fetch returns all records in listing order.
func (s *SQLiteIndex) Fetch(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, path, published FROM records ORDER BY position, id")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var published int64
		if err := rows.Scan(&r.ID, &r.Title, &r.Path, &published); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
		}
		if published > 0 {
			r.Published = time.Unix(published, 0).UTC()
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return records, nil
}

// Replace swaps the full record set in one transaction.
func (s *SQLiteIndex) Replace(ctx context.Context, records []Record) error {
	if err := validate(records); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO records (id, title, path, published, position) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		var published int64
		if !r.Published.IsZero() {
			published = r.Published.Unix()
		}
		if _, err := stmt.ExecContext(ctx, r.ID, r.Title, r.Path, published, i); err != nil {
			return fmt.Errorf("failed to insert record %q: %w", r.ID, err)
		}
	}

	now := strconv.FormatInt(time.Now().Unix(), 10)
	if _, err := tx.ExecContext(ctx, "UPDATE metadata SET value = ? WHERE key = 'last_build'", now); err != nil {
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return tx.Commit()
}

// LastBuild reports when Replace last committed, zero if never.
func (s *SQLiteIndex) LastBuild(ctx context.Context) (time.Time, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = 'last_build'").Scan(&value)
	if err != nil {
		return time.Time{}, err
	}
	secs, err := strconv.ParseInt(value, 10, 64)
	if err != nil || secs == 0 {
		return time.Time{}, err
	}
	return time.Unix(secs, 0), nil
}

// Path returns the database file path.
func (s *SQLiteIndex) Path() string {
	return s.path
}

// Close closes the database.
func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}
