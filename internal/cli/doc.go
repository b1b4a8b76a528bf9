// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the siteshell command line.
//
// Without a subcommand it starts the shell: the full-screen UI when stdin
// and stdout are terminals, the line-mode shell otherwise or with --plain.
// Subcommands manage the record index, the config file and the version.
package cli
