// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package index provides the record index behind the dynamic directory.
//
// A record index is anything that can list titled records (id + title).
// The shell only ever calls Fetch; the backends differ in where the
// records live.
//
// # Backends
//
//   - SQLiteIndex: a local SQLite database (modernc.org/sqlite, no cgo)
//   - HTTPIndex: a remote JSON endpoint, rate limited
//   - MarkdownIndex: a directory of markdown files with YAML frontmatter
//   - None: an always-empty index
//
// # Building
//
// Build copies any index into a SQLiteIndex. Watcher rebuilds on
// filesystem changes:
//
//	src := index.NewMarkdownIndex("content/blogs")
//	dst, _ := index.OpenSQLite("index.db")
//	n, err := index.Build(ctx, src, dst)
package index
