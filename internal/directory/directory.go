// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package directory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/jeranaias/siteshell/internal/index"
	"github.com/jeranaias/siteshell/internal/logging"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound means a path expression names nothing in the tree.
	ErrNotFound = errors.New("no such file or directory")
	// ErrNoParent is returned for ".." at the root.
	ErrNoParent = errors.New("root has no parent")
	// ErrNotLoaded means resolving needs the dynamic section, which has not
	// been fetched yet.
	ErrNotLoaded = errors.New("directory not loaded")
)

// =============================================================================
// TYPES
// =============================================================================

// Kind tags an entry as a fixed section or a record from the index.
type Kind int

const (
	Static Kind = iota
	Dynamic
)

// Entry is one listed name.
type Entry struct {
	Name string
	Kind Kind
	// ID is the record id for dynamic entries.
	ID string
}

// Path is a working directory: ordered segments, empty at root.
type Path []string

// IsRoot reports whether p is the root.
func (p Path) IsRoot() bool { return len(p) == 0 }

// Parent returns p without its last segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return append(Path(nil), p[:len(p)-1]...)
}

// String renders p for a prompt: "~" at root, "~/a/b" below it.
func (p Path) String() string {
	if len(p) == 0 {
		return "~"
	}
	return "~/" + strings.Join(p, "/")
}

// Absolute renders p as "/a/b".
func (p Path) Absolute() string {
	return "/" + strings.Join(p, "/")
}

// Equal reports whether p and q have the same segments.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the virtual directory tree.
type Model struct {
	static  []string
	dynamic string
	src     index.RecordIndex
	timeout time.Duration
	log     logrus.FieldLogger

	group singleflight.Group

	mu      sync.RWMutex
	loaded  bool
	records []index.Record
}

// New creates a tree with the given root sections. dynamic names the
// section backed by src and may be empty.
func New(static []string, dynamic string, src index.RecordIndex, timeout time.Duration, log logrus.FieldLogger) *Model {
	if src == nil {
		src = index.None{}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Model{
		static:  append([]string(nil), static...),
		dynamic: dynamic,
		src:     src,
		timeout: timeout,
		log:     log,
	}
}

// ListRoot returns the static sections in configured order.
func (m *Model) ListRoot() []Entry {
	entries := make([]Entry, len(m.static))
	for i, name := range m.static {
		entries[i] = Entry{Name: name, Kind: Static}
	}
	return entries
}

// RootNames returns the static section names in order.
func (m *Model) RootNames() []string {
	return append([]string(nil), m.static...)
}

// DynamicName returns the name of the dynamic section.
func (m *Model) DynamicName() string {
	return m.dynamic
}

// IsDynamic reports whether name is the dynamic section.
func (m *Model) IsDynamic(name string) bool {
	return m.dynamic != "" && EqualFold(name, m.dynamic)
}

// InDynamic reports whether p is the dynamic section itself.
func (m *Model) InDynamic(p Path) bool {
	return len(p) == 1 && m.IsDynamic(p[0])
}

// Loaded reports whether the dynamic section has been fetched.
func (m *Model) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

// Titles returns the loaded record titles in index order. ok is false
// until the first successful load.
func (m *Model) Titles() (titles []string, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.loaded {
		return nil, false
	}
	titles = make([]string, len(m.records))
	for i, r := range m.records {
		titles[i] = r.Title
	}
	return titles, true
}

// Children returns the loaded children of dirName without fetching.
// ok is false when dirName is dynamic and not yet loaded.
func (m *Model) Children(dirName string) ([]Entry, bool) {
	if !m.IsDynamic(dirName) {
		return nil, true
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.loaded {
		return nil, false
	}
	return toEntries(m.records), true
}

// ListChildren returns the children of dirName, fetching the dynamic
// section if needed. Only the dynamic section has children.
func (m *Model) ListChildren(ctx context.Context, dirName string) ([]Entry, error) {
	if !m.IsDynamic(dirName) {
		return nil, nil
	}
	return m.Load(ctx)
}

// Load fetches the dynamic section once. Concurrent callers share one
// request. A failed fetch is not cached, so a later call retries.
func (m *Model) Load(ctx context.Context) ([]Entry, error) {
	m.mu.RLock()
	if m.loaded {
		entries := toEntries(m.records)
		m.mu.RUnlock()
		return entries, nil
	}
	m.mu.RUnlock()

	ch := m.group.DoChan("load", func() (interface{}, error) {
		// The shared fetch outlives any single caller's context.
		fctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		start := time.Now()
		records, err := m.src.Fetch(fctx)
		if err != nil {
			m.log.WithError(err).WithField("section", m.dynamic).Warn("record fetch failed")
			return nil, err
		}

		m.mu.Lock()
		if !m.loaded {
			m.records = append([]index.Record(nil), records...)
			m.loaded = true
		}
		records = m.records
		m.mu.Unlock()

		m.log.WithFields(logrus.Fields{
			"section": m.dynamic,
			"records": len(records),
			"elapsed": time.Since(start).String(),
		}).Info("records loaded")
		return toEntries(records), nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Entry), nil
	}
}

// Lookup finds a loaded record by exact case-insensitive title.
func (m *Model) Lookup(title string) (index.Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return findTitle(m.records, title)
}

// LookupID finds a loaded record by id.
func (m *Model) LookupID(id string) (index.Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.records {
		if r.ID == id {
			return r, true
		}
	}
	return index.Record{}, false
}

func findTitle(records []index.Record, title string) (index.Record, bool) {
	want := Fold(title)
	for _, r := range records {
		if Fold(r.Title) == want {
			return r, true
		}
	}
	return index.Record{}, false
}

func toEntries(records []index.Record) []Entry {
	entries := make([]Entry, len(records))
	for i, r := range records {
		entries[i] = Entry{Name: r.Title, Kind: Dynamic, ID: r.ID}
	}
	return entries
}
