// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package directory models the virtual filesystem the shell navigates.
//
// The root holds a fixed, ordered list of sections. Exactly one section may
// be dynamic: its children are the records of a record index, fetched the
// first time they are needed and then kept for the life of the Model.
//
// # Key Types
//
//   - Model: the tree, with lazy loading of the dynamic section
//   - Path: a working directory as ordered segments (empty is root)
//   - Entry: one listed name with its kind
//
// # Matching
//
// Names and titles match case-insensitively on their full text. Folding
// uses Unicode case folding after NFC normalization, so "Café" typed with
// a combining accent still matches.
package directory
