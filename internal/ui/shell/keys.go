// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the shell's key bindings. Every other key edits the line.
type KeyMap struct {
	Submit   key.Binding
	Complete key.Binding
	Dismiss  key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "run"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "accept suggestion"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close output"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns the hint line bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Complete, k.Submit, k.Dismiss, k.Quit}
}
