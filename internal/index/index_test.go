// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/siteshell/internal/config"
	"github.com/jeranaias/siteshell/internal/logging"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

// =============================================================================
// SQLITE
// =============================================================================

func TestSQLiteIndex_ReplaceAndFetch(t *testing.T) {
	ctx := context.Background()
	idx, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "index.db"))
	require.NoError(t, err)
	defer idx.Close()

	records, err := idx.Fetch(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	published := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	want := []Record{
		{ID: "zeta", Title: "Zeta Post", Published: published},
		{ID: "alpha", Title: "Alpha Post"},
	}
	require.NoError(t, idx.Replace(ctx, want))

	got, err := idx.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "zeta", got[0].ID, "insertion order is listing order")
	assert.True(t, got[0].Published.Equal(published))
	assert.True(t, got[1].Published.IsZero())

	last, err := idx.LastBuild(ctx)
	require.NoError(t, err)
	assert.False(t, last.IsZero())

	require.NoError(t, idx.Replace(ctx, []Record{{ID: "only", Title: "Only"}}))
	got, err = idx.Fetch(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSQLiteIndex_ReplaceRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	idx, err := OpenSQLite(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	defer idx.Close()

	require.NoError(t, idx.Replace(ctx, []Record{{ID: "a", Title: "A"}}))
	err = idx.Replace(ctx, []Record{{ID: "b", Title: ""}})
	assert.ErrorIs(t, err, ErrBadPayload)

	got, err := idx.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1, "failed replace keeps old records")
}

// =============================================================================
// HTTP
// =============================================================================

func TestHTTPIndex_Fetch(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    int
		wantErr error
	}{
		{"bare array", 200, `[{"id":"1","title":"One"},{"id":"2","title":"Two"}]`, 2, nil},
		{"wrapped", 200, `{"records":[{"id":"1","title":"One"}]}`, 1, nil},
		{"server error", 500, `oops`, 0, ErrUnavailable},
		{"not json", 200, `<html>`, 0, ErrBadPayload},
		{"missing title", 200, `[{"id":"1"}]`, 0, ErrBadPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			idx := NewHTTPIndex(srv.URL, time.Second, 100)
			got, err := idx.Fetch(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestHTTPIndex_RespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewHTTPIndex(srv.URL, 5*time.Second, 100).Fetch(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)
}

// =============================================================================
// MARKDOWN
// =============================================================================

func TestMarkdownIndex_Fetch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "older.md", "---\nid: older\ntitle: Older Post\ndate: 2023-01-02\n---\nbody\n")
	writeFile(t, dir, "newer.md", "---\ntitle: Newer Post\ndate: 2024-03-04\n---\n")
	writeFile(t, dir, "heading.markdown", "# From Heading\n\ntext\n")
	writeFile(t, dir, "draft.md", "---\ntitle: Secret\ndraft: true\n---\n")
	writeFile(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.md"), 0755))

	got, err := NewMarkdownIndex(dir).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, Record{ID: "newer", Title: "Newer Post"}, withoutMeta(got[0]))
	assert.Equal(t, Record{ID: "older", Title: "Older Post"}, withoutMeta(got[1]))
	assert.Equal(t, Record{ID: "heading", Title: "From Heading"}, withoutMeta(got[2]))
	assert.Equal(t, filepath.Join(dir, "older.md"), got[1].Path)
}

func TestMarkdownIndex_Errors(t *testing.T) {
	_, err := NewMarkdownIndex(filepath.Join(t.TempDir(), "missing")).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)

	dir := t.TempDir()
	writeFile(t, dir, "a.md", "---\nid: same\n---\n")
	writeFile(t, dir, "b.md", "---\nid: same\n---\n")
	_, err = NewMarkdownIndex(dir).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrBadPayload)

	dir = t.TempDir()
	writeFile(t, dir, "bad.md", "---\ntitle: [unclosed\n---\n")
	_, err = NewMarkdownIndex(dir).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrBadPayload)
}

func withoutMeta(r Record) Record {
	return Record{ID: r.ID, Title: r.Title}
}

// =============================================================================
// FACTORY AND BUILD
// =============================================================================

func TestNew(t *testing.T) {
	dir := t.TempDir()

	idx, closeFn, err := New(config.IndexConfig{Source: "none"})
	require.NoError(t, err)
	assert.IsType(t, None{}, idx)
	assert.NoError(t, closeFn())

	idx, closeFn, err = New(config.IndexConfig{Source: "sqlite", DBPath: filepath.Join(dir, "x.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteIndex{}, idx)
	assert.NoError(t, closeFn())

	idx, _, err = New(config.IndexConfig{Source: "markdown", Dir: dir})
	require.NoError(t, err)
	assert.IsType(t, &MarkdownIndex{}, idx)

	idx, _, err = New(config.IndexConfig{Source: "http", URL: "http://localhost", TimeoutSecs: 1, RatePerSec: 1})
	require.NoError(t, err)
	assert.IsType(t, &HTTPIndex{}, idx)

	_, _, err = New(config.IndexConfig{Source: "gopher"})
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	dst, err := OpenSQLite(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	defer dst.Close()

	src := Func(func(ctx context.Context) ([]Record, error) {
		return []Record{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}, nil
	})
	n, err := Build(ctx, src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	failing := Func(func(ctx context.Context) ([]Record, error) {
		return nil, errors.New("boom")
	})
	_, err = Build(ctx, failing, dst)
	assert.Error(t, err)

	got, err := dst.Fetch(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

// =============================================================================
// WATCHER
// =============================================================================

func TestWatcher_RebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32

	w, err := NewWatcher(dir, 50*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	writeFile(t, dir, "ignored.txt", "x")
	writeFile(t, dir, "post.md", "# Post\n")

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_Due(t *testing.T) {
	w := &Watcher{debounce: time.Second}
	now := time.Now()
	assert.False(t, w.due(now))

	w.pending = true
	w.lastAt = now
	assert.False(t, w.due(now.Add(500*time.Millisecond)))
	assert.True(t, w.due(now.Add(time.Second)))
	assert.False(t, w.due(now.Add(2*time.Second)), "flag is cleared once due")
}
