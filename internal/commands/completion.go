// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"

	"github.com/jeranaias/siteshell/internal/directory"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completer produces the ghost suggestion for a partially typed line.
// It only reads state; it never fetches.
type Completer struct {
	registry *Registry
	dir      *directory.Model
}

// NewCompleter creates a completer over reg and dir.
func NewCompleter(reg *Registry, dir *directory.Model) *Completer {
	return &Completer{registry: reg, dir: dir}
}

// Suggest returns the characters that would complete input, never
// repeating what is already typed. Only the first candidate in vocabulary
// order is considered, and nothing is offered once the typed text equals
// that candidate.
func (c *Completer) Suggest(input string, cwd directory.Path) string {
	if IsPartialCommand(input) {
		return firstPrefix(c.registry.Names(), input)
	}

	name, arg, hasArg := SplitInput(input)
	if !hasArg || arg == "" {
		return ""
	}
	cmd := c.registry.Get(name)
	if cmd == nil || !cmd.CompletesPaths {
		return ""
	}
	return c.suggestPath(arg, cwd)
}

// Complete returns input with its suggestion appended.
func (c *Completer) Complete(input string, cwd directory.Path) string {
	return input + c.Suggest(input, cwd)
}

func (c *Completer) suggestPath(arg string, cwd directory.Path) string {
	rootOnly := false
	switch {
	case strings.HasPrefix(arg, "~/"):
		arg = arg[2:]
		rootOnly = true
	case strings.HasPrefix(arg, "/"):
		arg = arg[1:]
		rootOnly = true
	}
	if arg == "" {
		return ""
	}

	if parent, child, ok := strings.Cut(arg, "/"); ok {
		if !c.dir.IsDynamic(parent) {
			return ""
		}
		titles, loaded := c.dir.Titles()
		if !loaded {
			return ""
		}
		return firstFoldPrefix(titles, child)
	}

	// Inside a loaded dynamic section bare names complete titles only.
	if !rootOnly && c.dir.InDynamic(cwd) {
		if titles, loaded := c.dir.Titles(); loaded {
			return firstFoldPrefix(titles, arg)
		}
	}
	return firstFoldPrefix(c.dir.RootNames(), arg)
}

// =============================================================================
// MATCHING
// =============================================================================

// firstPrefix is a case-sensitive first-match prefix completion.
func firstPrefix(candidates []string, partial string) string {
	for _, cand := range candidates {
		if strings.HasPrefix(cand, partial) {
			return cand[len(partial):]
		}
	}
	return ""
}

// firstFoldPrefix is a case-insensitive first-match prefix completion that
// returns the rest of the candidate in its original case.
func firstFoldPrefix(candidates []string, partial string) string {
	for _, cand := range candidates {
		if rest, ok := directory.TrimFoldPrefix(cand, partial); ok {
			return rest
		}
	}
	return ""
}
