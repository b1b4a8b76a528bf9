// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/siteshell/internal/commands"
	"github.com/jeranaias/siteshell/internal/session"
	"github.com/jeranaias/siteshell/internal/ui/styles"
	"github.com/jeranaias/siteshell/internal/util"
)

// artTabWidth is the tab stop used when drawing ascii art.
const artTabWidth = 4

// View renders the shell.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderRouteBar())
	b.WriteString("\n\n")

	if m.confetti.Active() {
		b.WriteString(m.confetti.View())
		b.WriteString("\n")
	}

	if out := m.interp.Session().Output(); !out.IsZero() {
		b.WriteString(m.renderPanel(out))
		b.WriteString("\n")
	}

	b.WriteString(m.renderPrompt())
	return m.theme.App.Render(b.String())
}

func (m *Model) renderRouteBar() string {
	bar := "route " + m.theme.RouteText.Render(m.route)
	style := m.theme.RouteBar
	if m.width > 0 {
		style = style.Width(m.width)
	}
	return style.Render(bar)
}

// renderPrompt draws "user@site:~/path (branch) $ " followed by the line,
// or the transient message in place of the line.
func (m *Model) renderPrompt() string {
	ctx := m.interp.Context()
	d := ctx.Display
	t := m.theme

	var b strings.Builder
	b.WriteString(t.PromptUser.Render(d.User()))
	b.WriteString(t.PromptHost.Render("@" + commands.Host + ":"))
	b.WriteString(t.PromptPath.Render(ctx.Session.WorkingDirectory().String()))
	if br := d.Branch(); br != "" {
		b.WriteString(" ")
		b.WriteString(t.PromptBranch.Render("(" + br + ")"))
	}
	b.WriteString(" ")
	b.WriteString(t.PromptSymbol.Render(d.Symbol()))
	b.WriteString(" ")

	if msg, ok := ctx.Session.Transient(); ok {
		b.WriteString(t.Transient.Render(msg))
		return b.String()
	}

	b.WriteString(m.input.View())
	if value := m.input.Value(); m.input.Position() == len([]rune(value)) {
		if ghost := m.interp.Suggest(value); ghost != "" {
			b.WriteString(t.Ghost.Render(ghost))
		}
	}
	return b.String()
}

func (m *Model) panelWidth() int {
	if m.width <= 0 {
		return 76
	}
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) renderPanel(out session.Output) string {
	t := m.theme
	width := m.panelWidth()
	var body string

	switch out.Kind {
	case session.KindText:
		body = t.Text.Render(out.Text)

	case session.KindList:
		if len(out.Items) == 0 {
			body = t.PanelFooter.Render("(empty)")
			break
		}
		lines := make([]string, len(out.Items))
		for i, item := range out.Items {
			lines[i] = t.ListItem.Render(util.TruncateWidth(item, width))
		}
		body = strings.Join(lines, "\n")

	case session.KindHelp:
		body = m.renderMarkdown(out.Text, width)

	case session.KindError:
		lines := []string{}
		if out.Title != "" {
			lines = append(lines, t.ErrorTitle.Render(styles.StatusIndicators.Error+" "+out.Title))
			lines = append(lines, t.ErrorMessage.Render(out.Text))
		} else {
			lines = append(lines, t.ErrorTitle.Render(styles.StatusIndicators.Error+" "+out.Text))
		}
		if out.Tip != "" {
			lines = append(lines, t.ErrorTip.Render(out.Tip))
		}
		body = strings.Join(lines, "\n")

	case session.KindSuccess:
		body = t.Success.Render(styles.StatusIndicators.Success + " " + out.Text)

	case session.KindWarning:
		body = t.Warning.Render(styles.StatusIndicators.Warning + " " + out.Text)

	case session.KindASCII:
		body = t.ASCII.Render(util.ExpandTabs(out.Text, artTabWidth))

	case session.KindLoading:
		body = t.Spinner.Render(m.spinner.View()) + " " + t.Loading.Render(out.Text)
	}

	footer := t.PanelFooter.Render("esc to close")
	return t.Panel.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, body, footer))
}

// renderMarkdown renders help text with glamour, falling back to the raw
// markdown if rendering fails.
func (m *Model) renderMarkdown(md string, width int) string {
	style := m.theme.GlamourStyle()
	key := style + "/" + strconv.Itoa(width)
	if m.mdKey != key {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			m.log.WithError(err).Warn("markdown renderer unavailable")
			r = nil
		}
		m.md, m.mdKey = r, key
	}
	if m.md == nil {
		return md
	}
	out, err := m.md.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
