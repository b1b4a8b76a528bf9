// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/siteshell/internal/session"
)

// Interpreter turns submitted lines into command runs and routes the
// resulting timer and async messages back into the session.
type Interpreter struct {
	ctx       *Context
	completer *Completer
}

// NewInterpreter creates an interpreter over ctx.
func NewInterpreter(ctx *Context) *Interpreter {
	return &Interpreter{
		ctx:       ctx,
		completer: NewCompleter(ctx.Registry, ctx.Dir),
	}
}

// Context returns the interpreter's handler context.
func (in *Interpreter) Context() *Context { return in.ctx }

// Session returns the session being driven.
func (in *Interpreter) Session() *session.Session { return in.ctx.Session }

// Submit runs one line of input. Blank lines do nothing. Every other line
// is recorded in history. Unknown commands leave the session untouched
// apart from clearing the input.
func (in *Interpreter) Submit(line string) tea.Cmd {
	ctx := in.ctx
	s := ctx.Session
	if s.Disposed() {
		return nil
	}

	parsed, ok := Parse(line)
	if !ok {
		s.SetBuffer("")
		return nil
	}
	s.AppendHistory(parsed.Raw)

	cmd, err := ctx.Registry.Resolve(parsed.Command)
	if err != nil {
		s.SetBuffer("")
		ctx.Log.WithField("command", parsed.Command).Debug("unknown command")
		if ctx.Display.ReportUnknown {
			return s.Show(session.Error("command not found: " + parsed.Command))
		}
		return nil
	}

	if task, ok := s.CancelTask(); ok {
		ctx.Theme.Restore(task.Restore)
	}

	// The previous output and its expiry end here. A handler that has
	// something to show replaces the empty panel.
	s.Clear()
	s.Begin()
	defer s.End()
	ctx.Log.WithField("command", cmd.Name).Info("running command")
	return cmd.Handler(ctx, parsed.Arg)
}

// Update routes msg to whichever part of the shell owns it. It returns
// nil for messages it does not know.
func (in *Interpreter) Update(msg tea.Msg) tea.Cmd {
	s := in.ctx.Session

	switch msg := msg.(type) {
	case session.ExpireMsg:
		s.HandleExpire(msg)
		return nil
	case session.TransientClearMsg:
		s.HandleTransientClear(msg)
		return nil
	}

	cmd, _ := in.ctx.handleResult(msg)
	return cmd
}

// Type records the current input buffer. When the input is heading into
// the dynamic section, its contents are fetched in the background so
// suggestions can include them.
func (in *Interpreter) Type(input string) tea.Cmd {
	ctx := in.ctx
	ctx.Session.SetBuffer(input)
	if in.wantsDynamic(input) {
		return ctx.Prefetch()
	}
	return nil
}

func (in *Interpreter) wantsDynamic(input string) bool {
	dir := in.ctx.Dir
	dyn := dir.DynamicName()
	if dyn == "" || dir.Loaded() {
		return false
	}
	if dir.InDynamic(in.ctx.Session.WorkingDirectory()) {
		return true
	}

	name, arg, hasArg := SplitInput(input)
	if !hasArg {
		return false
	}
	cmd := in.ctx.Registry.Get(name)
	if cmd == nil || !cmd.CompletesPaths {
		return false
	}
	arg = strings.TrimPrefix(strings.TrimPrefix(arg, "~"), "/")
	parent, _, nested := strings.Cut(arg, "/")
	return nested && dir.IsDynamic(parent)
}

// Suggest returns the ghost text for input.
func (in *Interpreter) Suggest(input string) string {
	return in.completer.Suggest(input, in.ctx.Session.WorkingDirectory())
}

// Complete accepts the current suggestion. It returns the new buffer.
func (in *Interpreter) Complete(input string) string {
	completed := in.completer.Complete(input, in.ctx.Session.WorkingDirectory())
	in.ctx.Session.SetBuffer(completed)
	return completed
}

// Dismiss closes the output panel.
func (in *Interpreter) Dismiss() {
	in.ctx.Session.Clear()
}

// Prompt renders the prompt for the current directory.
func (in *Interpreter) Prompt() string {
	return in.ctx.Display.Prompt(in.ctx.Session.WorkingDirectory())
}
