// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package directory

import (
	"strings"
)

// Resolve turns a cd argument into a new working directory.
//
// Accepted forms:
//   - "" "~" "/" : root
//   - ".." : parent of cwd (ErrNoParent at root)
//   - "."  : cwd
//   - "name" : an entry of cwd's listing, else a root section
//   - "/name" "~/name" : a root section
//   - "parent/child" : child title inside a root section that has children
//
// A trailing "/" is ignored. Resolution never fetches; when the answer
// depends on an unloaded dynamic section it returns ErrNotLoaded and the
// caller may Load and retry.
func (m *Model) Resolve(expr string, cwd Path) (Path, error) {
	expr = strings.TrimSpace(expr)
	rootOnly := false

	switch {
	case strings.HasPrefix(expr, "~/"):
		expr = expr[2:]
		rootOnly = true
	case strings.HasPrefix(expr, "/"):
		expr = expr[1:]
		rootOnly = true
	}
	if len(expr) > 1 {
		expr = strings.TrimSuffix(expr, "/")
	}

	switch expr {
	case "", "~", "/":
		return Path{}, nil
	case "..":
		if rootOnly {
			return nil, ErrNotFound
		}
		if cwd.IsRoot() {
			return nil, ErrNoParent
		}
		return cwd.Parent(), nil
	case ".":
		if rootOnly {
			return Path{}, nil
		}
		return append(Path(nil), cwd...), nil
	}

	if parent, child, ok := strings.Cut(expr, "/"); ok {
		return m.resolveChild(parent, child)
	}

	if !rootOnly && m.InDynamic(cwd) {
		m.mu.RLock()
		loaded := m.loaded
		rec, found := findTitle(m.records, expr)
		m.mu.RUnlock()

		if found {
			return Path{m.dynamic, rec.Title}, nil
		}
		// Any name may be a title, and titles win over sections.
		if !loaded {
			return nil, ErrNotLoaded
		}
		if name, ok := m.matchRoot(expr); ok {
			return Path{name}, nil
		}
		return nil, ErrNotFound
	}

	if name, ok := m.matchRoot(expr); ok {
		return Path{name}, nil
	}
	return nil, ErrNotFound
}

func (m *Model) resolveChild(parent, child string) (Path, error) {
	name, ok := m.matchRoot(parent)
	if !ok || !m.IsDynamic(name) || child == "" {
		return nil, ErrNotFound
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.loaded {
		return nil, ErrNotLoaded
	}
	rec, found := findTitle(m.records, child)
	if !found {
		return nil, ErrNotFound
	}
	return Path{name, rec.Title}, nil
}

// matchRoot returns the configured spelling of a root section.
func (m *Model) matchRoot(name string) (string, bool) {
	for _, s := range m.static {
		if EqualFold(s, name) {
			return s, true
		}
	}
	return "", false
}

// NeedsLoad reports whether resolving expr from cwd would touch the
// unloaded dynamic section.
func (m *Model) NeedsLoad(expr string, cwd Path) bool {
	if m.Loaded() {
		return false
	}
	_, err := m.Resolve(expr, cwd)
	return err == ErrNotLoaded
}

// Route returns the page route for p: "/", "/section" or
// "/section/<record id>". ok is false if p names a record that is not
// loaded.
func (m *Model) Route(p Path) (string, bool) {
	switch len(p) {
	case 0:
		return "/", true
	case 1:
		return "/" + p[0], true
	}
	if !m.IsDynamic(p[0]) {
		return "/" + strings.Join(p, "/"), true
	}
	rec, ok := m.Lookup(p[1])
	if !ok {
		return "", false
	}
	return "/" + p[0] + "/" + rec.ID, true
}
