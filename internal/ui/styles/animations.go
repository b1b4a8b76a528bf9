// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// LineSpinner - Simple line rotation, used while a section loads
var LineSpinner = SpinnerConfig{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    10,
}

// DotsSpinner - Classic three-dot animation
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.FPS)
}

// Spinner converts the config for use with bubbles/spinner.
func (s SpinnerConfig) Spinner() spinner.Spinner {
	return spinner.Spinner{
		Frames: append([]string(nil), s.Frames...),
		FPS:    s.Duration(),
	}
}

// =============================================================================
// CONFETTI
// =============================================================================

// ConfettiGlyphs are the particles drawn when disco ends.
var ConfettiGlyphs = []string{"*", "+", "o", ".", "~", "x"}

// ConfettiFPS is the confetti frame rate.
const ConfettiFPS = 30

// EaseOutQuad decelerates to zero velocity.
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}
