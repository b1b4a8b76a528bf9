// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for siteshell.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ShellConfig: Prompt, username and interpreter switches
//   - ProfileConfig: Resume, email and social links shown by their commands
//   - SectionsConfig: The virtual directory tree (static root + dynamic section)
//   - IndexConfig: Record index backend selection
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (SITESHELL_*)
//   - ~/.siteshell/config.toml
//   - ~/.siteshell/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	user := cfg.Shell.Username
//	delay := cfg.Timing.RebootDelay()
package config
