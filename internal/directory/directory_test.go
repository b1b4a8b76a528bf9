// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package directory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/siteshell/internal/index"
)

var sections = []string{"about", "projects", "blogs", "experience", "contact"}

var posts = []index.Record{
	{ID: "p1", Title: "Hello World"},
	{ID: "p2", Title: "Go Concurrency"},
	{ID: "p3", Title: "Café Notes"},
}

func newModel(src index.RecordIndex) *Model {
	return New(sections, "blogs", src, time.Second, nil)
}

func staticIndex(records []index.Record) index.Func {
	return func(ctx context.Context) ([]index.Record, error) {
		return records, nil
	}
}

func loadedModel(t *testing.T) *Model {
	t.Helper()
	m := newModel(staticIndex(posts))
	_, err := m.Load(context.Background())
	require.NoError(t, err)
	return m
}

func TestListRoot_StableOrder(t *testing.T) {
	m := newModel(nil)
	first := m.ListRoot()
	second := m.ListRoot()
	assert.Equal(t, first, second)
	require.Len(t, first, len(sections))
	for i, e := range first {
		assert.Equal(t, sections[i], e.Name)
		assert.Equal(t, Static, e.Kind)
	}

	first[0].Name = "mutated"
	assert.Equal(t, "about", m.ListRoot()[0].Name)
}

func TestListChildren(t *testing.T) {
	m := newModel(staticIndex(posts))
	ctx := context.Background()

	children, err := m.ListChildren(ctx, "about")
	require.NoError(t, err)
	assert.Empty(t, children)

	_, ok := m.Children("blogs")
	assert.False(t, ok, "not loaded yet")

	children, err = m.ListChildren(ctx, "BLOGS")
	require.NoError(t, err)
	require.Len(t, children, 3)
	assert.Equal(t, Entry{Name: "Hello World", Kind: Dynamic, ID: "p1"}, children[0])

	cached, ok := m.Children("blogs")
	assert.True(t, ok)
	assert.Equal(t, children, cached)
}

func TestLoad_CoalescesConcurrentCalls(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	m := newModel(index.Func(func(ctx context.Context) ([]index.Record, error) {
		calls.Add(1)
		<-release
		return posts, nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entries, err := m.Load(context.Background())
			assert.NoError(t, err)
			assert.Len(t, entries, 3)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	_, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLoad_FailureIsNotCached(t *testing.T) {
	var calls atomic.Int32
	m := newModel(index.Func(func(ctx context.Context) ([]index.Record, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("offline")
		}
		return posts, nil
	}))

	_, err := m.Load(context.Background())
	require.Error(t, err)
	assert.False(t, m.Loaded())

	entries, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.True(t, m.Loaded())
}

func TestLoad_CallerContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	m := newModel(index.Func(func(ctx context.Context) ([]index.Record, error) {
		<-release
		return posts, nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolve(t *testing.T) {
	m := loadedModel(t)

	tests := []struct {
		name string
		expr string
		cwd  Path
		want Path
		err  error
	}{
		{"empty is root", "", Path{"about"}, Path{}, nil},
		{"tilde is root", "~", Path{"blogs", "Hello World"}, Path{}, nil},
		{"slash is root", "/", Path{"about"}, Path{}, nil},
		{"section from root", "projects", Path{}, Path{"projects"}, nil},
		{"section case insensitive", "PROJECTS", Path{}, Path{"projects"}, nil},
		{"section from section", "contact", Path{"about"}, Path{"contact"}, nil},
		{"leading slash", "/about", Path{"blogs"}, Path{"about"}, nil},
		{"tilde slash", "~/about", Path{"blogs"}, Path{"about"}, nil},
		{"trailing slash", "blogs/", Path{}, Path{"blogs"}, nil},
		{"dot", ".", Path{"about"}, Path{"about"}, nil},
		{"parent of nested", "..", Path{"blogs", "Hello World"}, Path{"blogs"}, nil},
		{"parent of section", "..", Path{"about"}, Path{}, nil},
		{"parent of root", "..", Path{}, nil, ErrNoParent},
		{"title inside blogs", "hello world", Path{"blogs"}, Path{"blogs", "Hello World"}, nil},
		{"title prefix is not enough", "hello", Path{"blogs"}, nil, ErrNotFound},
		{"title outside blogs", "Hello World", Path{}, nil, ErrNotFound},
		{"compound", "blogs/go concurrency", Path{}, Path{"blogs", "Go Concurrency"}, nil},
		{"compound from elsewhere", "Blogs/Hello World", Path{"about"}, Path{"blogs", "Hello World"}, nil},
		{"compound with slash prefix", "/blogs/Hello World", Path{"about"}, Path{"blogs", "Hello World"}, nil},
		{"compound unknown child", "blogs/nope", Path{}, nil, ErrNotFound},
		{"compound static parent", "about/me", Path{}, nil, ErrNotFound},
		{"compound unknown parent", "nope/Hello World", Path{}, nil, ErrNotFound},
		{"unicode fold", "CAFÉ NOTES", Path{"blogs"}, Path{"blogs", "Café Notes"}, nil},
		{"nonexistent", "nonexistent-xyz", Path{"about"}, nil, ErrNotFound},
		{"slash title only root", "/Hello World", Path{"blogs"}, nil, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Resolve(tt.expr, tt.cwd)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "Resolve(%q, %v) = %v, want %v", tt.expr, tt.cwd, got, tt.want)
		})
	}
}

func TestResolve_NotLoaded(t *testing.T) {
	m := newModel(staticIndex(posts))

	_, err := m.Resolve("blogs/Hello World", Path{})
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.True(t, m.NeedsLoad("blogs/Hello World", Path{}))

	_, err = m.Resolve("Hello World", Path{"blogs"})
	assert.ErrorIs(t, err, ErrNotLoaded)

	_, err = m.Resolve("about", Path{"blogs"})
	assert.ErrorIs(t, err, ErrNotLoaded, "a section name may still be a title")
	assert.True(t, m.NeedsLoad("about", Path{"blogs"}))

	got, err := m.Resolve("~/about", Path{"blogs"})
	require.NoError(t, err)
	assert.Equal(t, Path{"about"}, got)

	got, err = m.Resolve("blogs", Path{})
	require.NoError(t, err)
	assert.Equal(t, Path{"blogs"}, got)
}

func TestResolve_TitleNamedLikeSection(t *testing.T) {
	m := newModel(staticIndex([]index.Record{{ID: "about-me", Title: "About"}}))

	_, err := m.Resolve("about", Path{"blogs"})
	require.ErrorIs(t, err, ErrNotLoaded)

	_, err = m.Load(context.Background())
	require.NoError(t, err)

	got, err := m.Resolve("about", Path{"blogs"})
	require.NoError(t, err)
	assert.Equal(t, Path{"blogs", "About"}, got)

	got, err = m.Resolve("about", Path{})
	require.NoError(t, err)
	assert.Equal(t, Path{"about"}, got)
}

func TestRoute_AgreesWithLookup(t *testing.T) {
	m := loadedModel(t)

	route, ok := m.Route(Path{})
	assert.True(t, ok)
	assert.Equal(t, "/", route)

	route, ok = m.Route(Path{"about"})
	assert.True(t, ok)
	assert.Equal(t, "/about", route)

	for _, rec := range posts {
		p, err := m.Resolve("blogs/"+rec.Title, Path{})
		require.NoError(t, err)
		route, ok := m.Route(p)
		require.True(t, ok)
		assert.Equal(t, "/blogs/"+rec.ID, route)

		byID, found := m.LookupID(rec.ID)
		require.True(t, found)
		assert.Equal(t, rec.Title, byID.Title)
	}

	_, ok = newModel(nil).Route(Path{"blogs", "Hello World"})
	assert.False(t, ok)
}

func TestPath(t *testing.T) {
	assert.Equal(t, "~", Path{}.String())
	assert.Equal(t, "~/blogs/Hello World", Path{"blogs", "Hello World"}.String())
	assert.Equal(t, "/", Path{}.Absolute())
	assert.Equal(t, "/about", Path{"about"}.Absolute())
	assert.Nil(t, Path{}.Parent())
	assert.Equal(t, Path{"a"}, Path{"a", "b"}.Parent())
}

func TestTrimFoldPrefix(t *testing.T) {
	tests := []struct {
		s, prefix string
		rest      string
		ok        bool
	}{
		{"Hello World", "hel", "lo World", true},
		{"Hello World", "HELLO WORLD", "", true},
		{"Hello", "world", "", false},
		{"Hi", "Hiya", "", false},
		{"Café Notes", "CAFÉ", " Notes", true},
		{"anything", "", "anything", true},
	}
	for _, tt := range tests {
		rest, ok := TrimFoldPrefix(tt.s, tt.prefix)
		if ok != tt.ok || rest != tt.rest {
			t.Errorf("TrimFoldPrefix(%q, %q) = (%q, %v), want (%q, %v)", tt.s, tt.prefix, rest, ok, tt.rest, tt.ok)
		}
	}
}
