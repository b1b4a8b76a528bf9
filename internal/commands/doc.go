// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the shell's command set.
//
// A [Registry] maps command words to handlers. The [Interpreter] parses a
// submitted line, runs the handler against a [Context], and feeds timer and
// background results back into the session. Handlers never block: anything
// slow (loading the dynamic section, clipboard writes, opening a browser)
// runs as a tea.Cmd whose result carries the submission epoch so results
// from superseded submissions are dropped.
package commands
