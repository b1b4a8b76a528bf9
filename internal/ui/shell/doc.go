// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell is the Bubble Tea host for the command interpreter. It owns
// the prompt line with its ghost suggestion, the output panel, the route
// bar and the confetti overlay, and it supplies the interpreter's system
// collaborators (clipboard, browser, theme, reload).
package shell
