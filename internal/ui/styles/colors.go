// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"math/rand"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Purple - Primary accent, prompt path, selections
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - Brand color, prompt user, commands
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Success states
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings, git branch
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// LinkColor - URLs in socials and resume output
var LinkColor = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Route bar and panel backgrounds
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Ghost suggestions, hints
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// PALETTE
// =============================================================================

// Palette is one variant's resolved colors. The theme switches variants
// explicitly, so each AdaptiveColor is pinned to one side.
type Palette struct {
	Primary   lipgloss.Color
	Accent    lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
	Link      lipgloss.Color
	Text      lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Surface   lipgloss.Color
	Dim       lipgloss.Color
	Border    lipgloss.Color
}

// PaletteFor returns the palette for "light" or "dark". Anything else is
// treated as dark.
func PaletteFor(variant string) Palette {
	dark := variant != VariantLight
	pick := func(c lipgloss.AdaptiveColor) lipgloss.Color {
		if dark {
			return lipgloss.Color(c.Dark)
		}
		return lipgloss.Color(c.Light)
	}
	return Palette{
		Primary:   pick(Cyan),
		Accent:    pick(Purple),
		Success:   pick(Emerald),
		Error:     pick(Rose),
		Warning:   pick(Amber),
		Link:      pick(LinkColor),
		Text:      pick(TextPrimary),
		Secondary: pick(TextSecondary),
		Muted:     pick(TextMuted),
		Surface:   pick(Surface),
		Dim:       pick(SurfaceDim),
		Border:    pick(Overlay),
	}
}

// =============================================================================
// SWATCHES
// =============================================================================

// Swatch is a temporary color override shown while disco runs.
type Swatch struct {
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
}

// discoColors are saturated hues that read on both backgrounds.
var discoColors = []lipgloss.Color{
	"#F43F5E", "#F97316", "#EAB308", "#22C55E", "#14B8A6",
	"#06B6D4", "#3B82F6", "#8B5CF6", "#D946EF", "#EC4899",
}

var discoBackgrounds = []lipgloss.Color{
	"#1E1B4B", "#3B0764", "#0C4A6E", "#052E16", "#450A0A", "#422006",
}

// RandomSwatch picks a swatch using r. Primary and Accent always differ.
func RandomSwatch(r *rand.Rand) Swatch {
	i := r.Intn(len(discoColors))
	j := (i + 1 + r.Intn(len(discoColors)-1)) % len(discoColors)
	return Swatch{
		Primary:    discoColors[i],
		Accent:     discoColors[j],
		Background: discoBackgrounds[r.Intn(len(discoBackgrounds))],
		Text:       lipgloss.Color("#FFFFFF"),
	}
}

// =============================================================================
// ACCESSIBILITY: Shapes alongside colors
// =============================================================================

// StatusIndicatorSet contains text indicators for output kinds so status
// does not depend on color alone.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
	Pending string
}

// StatusIndicators are ASCII-only for maximum terminal compatibility.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
	Pending: "[ ]",
}
