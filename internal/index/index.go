// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/siteshell/internal/config"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrUnavailable means the backing store could not be reached.
	ErrUnavailable = errors.New("record index unavailable")
	// ErrBadPayload means the store answered with data that is not a record list.
	ErrBadPayload = errors.New("malformed record index payload")
)

// =============================================================================
// TYPES
// =============================================================================

// Record is one titled entry in the dynamic directory.
type Record struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Path      string    `json:"path,omitempty" yaml:"-"`
	Published time.Time `json:"-" yaml:"-"`
}

// RecordIndex lists titled records. Implementations must be safe for
// concurrent use and must honor ctx cancellation.
type RecordIndex interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// None is an index with no records.
type None struct{}

// Fetch returns an empty list.
func (None) Fetch(ctx context.Context) ([]Record, error) {
	return nil, ctx.Err()
}

// Func adapts a plain function to RecordIndex.
type Func func(ctx context.Context) ([]Record, error)

// Fetch calls f.
func (f Func) Fetch(ctx context.Context) ([]Record, error) {
	return f(ctx)
}

// =============================================================================
// FACTORY
// =============================================================================

// New builds the backend selected by cfg.Source. The returned closer
// releases backend resources and is never nil.
func New(cfg config.IndexConfig) (RecordIndex, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(cfg.Source) {
	case "", "none":
		return None{}, noop, nil
	case "sqlite":
		idx, err := OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, noop, err
		}
		return idx, idx.Close, nil
	case "http":
		return NewHTTPIndex(cfg.URL, cfg.Timeout(), cfg.RatePerSec), noop, nil
	case "markdown":
		return NewMarkdownIndex(cfg.Dir), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown index source %q", cfg.Source)
	}
}

// validate rejects the whole list if any record lacks an id or title.
func validate(records []Record) error {
	for i, r := range records {
		if strings.TrimSpace(r.ID) == "" || strings.TrimSpace(r.Title) == "" {
			return fmt.Errorf("%w: record %d missing id or title", ErrBadPayload, i)
		}
	}
	return nil
}
