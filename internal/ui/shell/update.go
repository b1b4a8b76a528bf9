// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/siteshell/internal/session"
)

// Init starts the cursor blinking.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles a message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		if !m.loading() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case confettiFrameMsg:
		return m, m.confetti.Update(msg)

	case reloadMsg:
		return m, m.restart()
	}

	cmd := m.interp.Update(msg)
	return m, tea.Batch(cmd, m.syncSpinner())
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.interp.Session().Dispose()
		m.log.Info("quit")
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		line := m.input.Value()
		m.input.Reset()
		cmd := m.interp.Submit(line)
		return m, tea.Batch(cmd, m.syncSpinner())

	case key.Matches(msg, m.keys.Complete):
		m.input.SetValue(m.interp.Complete(m.input.Value()))
		m.input.CursorEnd()
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.interp.Dismiss()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		return m, tea.Batch(cmd, m.interp.Type(after))
	}
	return m, cmd
}

func (m *Model) loading() bool {
	return m.interp.Session().Output().Kind == session.KindLoading
}

// syncSpinner starts the spinner when a loading output appears.
func (m *Model) syncSpinner() tea.Cmd {
	if m.spinning || !m.loading() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}
