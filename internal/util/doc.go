// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across siteshell packages.
//
// # Files
//
//   - atomic.go: crash-safe file writes used when saving config
//   - text.go: display-width aware truncation and padding for the terminal
package util
