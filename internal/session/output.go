// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strings"
	"time"
)

// =============================================================================
// OUTPUT KINDS
// =============================================================================

// OutputKind tags what an Output carries and how long it stays.
type OutputKind int

const (
	KindNone OutputKind = iota
	KindText
	KindList
	KindHelp
	KindError
	KindSuccess
	KindWarning
	KindASCII
	KindLoading
)

// String returns the kind name.
func (k OutputKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindList:
		return "list"
	case KindHelp:
		return "help"
	case KindError:
		return "error"
	case KindSuccess:
		return "success"
	case KindWarning:
		return "warning"
	case KindASCII:
		return "ascii"
	case KindLoading:
		return "loading"
	default:
		return "none"
	}
}

// TTL returns how long an Output of this kind stays visible.
// Zero means it stays until replaced.
func (k OutputKind) TTL() time.Duration {
	switch k {
	case KindText:
		return 5 * time.Second
	case KindList:
		return 8 * time.Second
	case KindHelp:
		return 15 * time.Second
	case KindError:
		return 4 * time.Second
	case KindSuccess:
		return 3500 * time.Millisecond
	case KindWarning:
		return 3 * time.Second
	case KindASCII:
		return 10 * time.Second
	default:
		return 0
	}
}

// =============================================================================
// OUTPUT
// =============================================================================

// Output is the content of the panel. Exactly one is visible at a time.
type Output struct {
	Kind OutputKind
	// Text is the body for text, help (markdown), ascii, loading and the
	// message of error, success and warning.
	Text string
	// Items is the body of a list.
	Items []string
	// Title and Tip decorate error outputs.
	Title string
	Tip   string
}

// IsZero reports whether o shows nothing.
func (o Output) IsZero() bool {
	return o.Kind == KindNone
}

// Lines returns the body as display lines.
func (o Output) Lines() []string {
	if o.Kind == KindList {
		return append([]string(nil), o.Items...)
	}
	if o.Text == "" {
		return nil
	}
	return strings.Split(o.Text, "\n")
}

// Text builds a text output from lines.
func Text(lines ...string) Output {
	return Output{Kind: KindText, Text: strings.Join(lines, "\n")}
}

// List builds a list output.
func List(items ...string) Output {
	return Output{Kind: KindList, Items: items}
}

// Help builds a help output from markdown.
func Help(markdown string) Output {
	return Output{Kind: KindHelp, Text: markdown}
}

// Error builds an error output.
func Error(message string) Output {
	return Output{Kind: KindError, Text: message}
}

// ErrorWithTip builds an error output with a title and a hint.
func ErrorWithTip(title, message, tip string) Output {
	return Output{Kind: KindError, Title: title, Text: message, Tip: tip}
}

// Success builds a success output.
func Success(message string) Output {
	return Output{Kind: KindSuccess, Text: message}
}

// Warning builds a warning output.
func Warning(message string) Output {
	return Output{Kind: KindWarning, Text: message}
}

// ASCII builds an ascii art output. Whitespace is kept verbatim.
func ASCII(art string) Output {
	return Output{Kind: KindASCII, Text: art}
}

// Loading builds a loading output.
func Loading(message string) Output {
	return Output{Kind: KindLoading, Text: message}
}
