// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"unicode"
)

// ParseResult is a submitted line split into command and argument.
type ParseResult struct {
	// Command is the first word, lower-cased.
	Command string
	// Arg is the rest of the line, trimmed. Inner spaces are kept so
	// multi-word titles survive.
	Arg string
	// Raw is the original line.
	Raw string
}

// Parse splits line on its first run of whitespace. ok is false for
// empty or whitespace-only lines.
func Parse(line string) (ParseResult, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ParseResult{Raw: line}, false
	}

	name, rest := splitFirst(trimmed)
	return ParseResult{
		Command: strings.ToLower(name),
		Arg:     strings.TrimSpace(rest),
		Raw:     line,
	}, true
}

// splitFirst returns the text before the first whitespace rune and
// everything after it, including further whitespace.
func splitFirst(s string) (head, rest string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

// IsPartialCommand reports whether input is still the command word, i.e.
// non-empty with no whitespace.
func IsPartialCommand(input string) bool {
	return input != "" && strings.IndexFunc(input, unicode.IsSpace) < 0
}

// SplitInput splits raw input for suggestions: the command word and the
// argument with leading whitespace removed and trailing whitespace kept.
func SplitInput(input string) (name, arg string, hasArg bool) {
	s := strings.TrimLeftFunc(input, unicode.IsSpace)
	name, rest := splitFirst(s)
	if rest == "" {
		return name, "", false
	}
	return name, strings.TrimLeftFunc(rest, unicode.IsSpace), true
}
