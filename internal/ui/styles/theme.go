// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme variants.
const (
	VariantDark  = "dark"
	VariantLight = "light"
	VariantAuto  = "auto"
)

// ErrUnknownVariant is returned by Set for anything but light or dark.
var ErrUnknownVariant = errors.New("unknown theme variant")

// Theme holds all the styled components for the shell.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	variant string
	palette Palette
	preview *Swatch

	// ==========================================================================
	// ROUTE BAR
	// ==========================================================================

	App       lipgloss.Style
	RouteBar  lipgloss.Style
	RouteText lipgloss.Style

	// ==========================================================================
	// PROMPT AND INPUT
	// ==========================================================================

	PromptUser   lipgloss.Style
	PromptHost   lipgloss.Style
	PromptPath   lipgloss.Style
	PromptBranch lipgloss.Style
	PromptSymbol lipgloss.Style
	InputText    lipgloss.Style
	Ghost        lipgloss.Style
	Transient    lipgloss.Style

	// ==========================================================================
	// OUTPUT PANEL
	// ==========================================================================

	Panel        lipgloss.Style
	PanelFooter  lipgloss.Style
	Text         lipgloss.Style
	ListItem     lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorMessage lipgloss.Style
	ErrorTip     lipgloss.Style
	Success      lipgloss.Style
	Warning      lipgloss.Style
	ASCII        lipgloss.Style
	Loading      lipgloss.Style
	Spinner      lipgloss.Style
	Link         lipgloss.Style
}

// NewTheme creates a theme for variant. "auto" asks the terminal.
func NewTheme(variant string) *Theme {
	// Detect terminal capabilities
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
		variant:      resolveVariant(variant),
	}
	t.initStyles()
	return t
}

func resolveVariant(variant string) string {
	switch strings.ToLower(variant) {
	case VariantLight:
		return VariantLight
	case VariantAuto:
		return Detect()
	default:
		return VariantDark
	}
}

// Detect asks the terminal for its background and returns the matching
// variant.
func Detect() string {
	if termenv.HasDarkBackground() {
		return VariantDark
	}
	return VariantLight
}

// Current returns the active variant, ignoring any preview.
func (t *Theme) Current() string { return t.variant }

// Palette returns the colors in effect.
func (t *Theme) Palette() Palette { return t.palette }

// Previewing reports whether a disco swatch is shown.
func (t *Theme) Previewing() bool { return t.preview != nil }

// Set switches to variant and drops any preview. Setting the current
// variant again is allowed.
func (t *Theme) Set(variant string) error {
	v := strings.ToLower(variant)
	if v != VariantLight && v != VariantDark {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
	t.variant = v
	t.preview = nil
	t.initStyles()
	return nil
}

// Preview shows s until Restore or Set.
func (t *Theme) Preview(s Swatch) {
	t.preview = &s
	t.initStyles()
}

// Restore drops any preview and returns to variant.
func (t *Theme) Restore(variant string) {
	t.variant = resolveVariant(variant)
	t.preview = nil
	t.initStyles()
}

// GlamourStyle names the glamour standard style matching the variant.
func (t *Theme) GlamourStyle() string {
	if t.variant == VariantLight {
		return "light"
	}
	return "dark"
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	p := PaletteFor(t.variant)
	if s := t.preview; s != nil {
		p.Primary = s.Primary
		p.Accent = s.Accent
		p.Surface = s.Background
		p.Dim = s.Background
		p.Text = s.Text
		p.Border = s.Accent
	}
	t.palette = p

	t.App = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Surface)

	// Route bar
	t.RouteBar = lipgloss.NewStyle().
		Background(p.Dim).
		Foreground(p.Secondary).
		Padding(0, 1)

	t.RouteText = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	// Prompt
	t.PromptUser = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)

	t.PromptHost = lipgloss.NewStyle().
		Foreground(p.Secondary)

	t.PromptPath = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	t.PromptBranch = lipgloss.NewStyle().
		Foreground(p.Warning)

	t.PromptSymbol = lipgloss.NewStyle().
		Foreground(p.Text)

	t.InputText = lipgloss.NewStyle().
		Foreground(p.Text)

	t.Ghost = lipgloss.NewStyle().
		Foreground(p.Muted)

	t.Transient = lipgloss.NewStyle().
		Foreground(p.Error)

	// Output panel
	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	t.PanelFooter = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	t.Text = lipgloss.NewStyle().
		Foreground(p.Text)

	t.ListItem = lipgloss.NewStyle().
		Foreground(p.Primary)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(p.Text)

	t.ErrorTip = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Italic(true)

	t.Success = lipgloss.NewStyle().
		Foreground(p.Success).
		Bold(true)

	t.Warning = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	t.ASCII = lipgloss.NewStyle().
		Foreground(p.Accent)

	t.Loading = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Italic(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(p.Primary)

	t.Link = lipgloss.NewStyle().
		Foreground(p.Link).
		Underline(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
