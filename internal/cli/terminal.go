// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TERMINAL DETECTION
// =============================================================================

const (
	// DefaultTerminalWidth is used when stdout is not a terminal.
	DefaultTerminalWidth = 80
	// MinTerminalWidth keeps help tables readable in narrow windows.
	MinTerminalWidth = 40
)

// IsTTY reports whether stdin is a terminal. The full-screen shell needs
// keystrokes, so without one the line mode is used.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY reports whether stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// GetTerminalWidth returns the width of stdout, clamped to
// MinTerminalWidth, or DefaultTerminalWidth when it cannot be read.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	switch {
	case err != nil || width <= 0:
		return DefaultTerminalWidth
	case width < MinTerminalWidth:
		return MinTerminalWidth
	default:
		return width
	}
}

// GetColorProfile returns the color profile for line-mode output.
// NO_COLOR and CLICOLOR_FORCE are honored; a redirected stdout gets none.
func GetColorProfile() termenv.Profile {
	return termenv.NewOutput(os.Stdout).EnvColorProfile()
}
