// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// Styles for line-mode output and subcommands. Colors are ANSI 256
// indexes so they read on both dark and light backgrounds.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	// LabelStyle pads record ids into a column.
	LabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(24)

	ValueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	ArtStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
)
