// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/siteshell/internal/session"
	"github.com/jeranaias/siteshell/internal/util"
)

// RenderOutput formats an output for line mode. width wraps help text;
// zero or less means 80 columns.
func RenderOutput(out session.Output, width int) string {
	if width <= 0 {
		width = 80
	}

	switch out.Kind {
	case session.KindNone:
		return ""
	case session.KindList:
		return strings.Join(out.Items, "\n")
	case session.KindHelp:
		return renderMarkdown(out.Text, width)
	case session.KindASCII:
		return ArtStyle.Render(util.ExpandTabs(out.Text, 4))
	case session.KindLoading:
		return DimStyle.Render(out.Text)
	case session.KindSuccess:
		return SuccessStyle.Render(out.Text)
	case session.KindWarning:
		return WarningStyle.Render(out.Text)
	case session.KindError:
		var b strings.Builder
		if out.Title != "" {
			b.WriteString(ErrorStyle.Render(out.Title + ": "))
		}
		b.WriteString(ErrorStyle.Render(out.Text))
		if out.Tip != "" {
			b.WriteString("\n")
			b.WriteString(DimStyle.Render(out.Tip))
		}
		return b.String()
	default:
		return out.Text
	}
}

func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	rendered, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(rendered, "\n")
}
