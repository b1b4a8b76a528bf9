// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/siteshell/internal/commands"
	"github.com/jeranaias/siteshell/internal/config"
	"github.com/jeranaias/siteshell/internal/directory"
	"github.com/jeranaias/siteshell/internal/index"
	"github.com/jeranaias/siteshell/internal/session"
	"github.com/jeranaias/siteshell/internal/ui/shell"
)

// =============================================================================
// LINE READER
// =============================================================================

// LineReader reads one line of input after printing a prompt.
// It returns io.EOF when input ends.
type LineReader interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// linerReader reads from the terminal with line editing. Tab accepts the
// current suggestion.
type linerReader struct {
	state *liner.State
}

func newLinerReader(complete func(line string) []string) *linerReader {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	st.SetCompleter(complete)
	return &linerReader{state: st}
}

func (r *linerReader) Prompt(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if err == nil && strings.TrimSpace(line) != "" {
		r.state.AppendHistory(line)
	}
	return line, err
}

func (r *linerReader) Close() error {
	return r.state.Close()
}

// =============================================================================
// RUNNER
// =============================================================================

const (
	// settleIdle ends a settle once no message has arrived for this long.
	settleIdle = 250 * time.Millisecond
	// settleLimit caps a single settle.
	settleLimit = 5 * time.Second

	plainRebootDelay = 10 * time.Millisecond
	plainDiscoFrame  = 10 * time.Millisecond
)

// plainRebootMsg restarts the runner's session.
type plainRebootMsg struct{}

// Runner is the line-mode shell. It drives the same interpreter as the
// full-screen UI and prints each new output once.
type Runner struct {
	cfg    *config.Config
	src    index.RecordIndex
	log    logrus.FieldLogger
	out    io.Writer
	reload func() (*config.Config, error)

	clipboard commands.Clipboard
	opener    commands.Opener
	theme     *commands.MemoryTheme

	width int
	idle  time.Duration
	limit time.Duration

	interp    *commands.Interpreter
	lastToken uint64

	msgs chan tea.Msg
	done chan struct{}
}

// NewRunner creates a line-mode shell over cfg writing to out.
func NewRunner(cfg *config.Config, src index.RecordIndex, log logrus.FieldLogger, out io.Writer) *Runner {
	if src == nil {
		src = index.None{}
	}
	r := &Runner{
		src:       src,
		log:       log,
		out:       out,
		clipboard: shell.SystemClipboard{},
		opener:    shell.BrowserOpener{},
		theme:     &commands.MemoryTheme{Variant: cfg.UI.Theme},
		width:     GetTerminalWidth(),
		idle:      settleIdle,
		limit:     settleLimit,
		msgs:      make(chan tea.Msg),
		done:      make(chan struct{}),
	}
	r.boot(cfg)
	return r
}

func (r *Runner) boot(cfg *config.Config) {
	dir := directory.New(cfg.Sections.Root, cfg.Sections.Dynamic, r.src, cfg.Index.Timeout(), r.log)
	reg := commands.NewRegistry(cfg.Sections.Root)
	sess := session.New()

	display := commands.DisplayFromConfig(cfg)
	display.RebootDelay = plainRebootDelay
	display.DiscoInterval = plainDiscoFrame
	display.DiscoDuration = plainDiscoFrame

	ctx := commands.NewContext(sess, dir, reg, display)
	ctx.Clipboard = r.clipboard
	ctx.Opener = r.opener
	ctx.Theme = r.theme
	ctx.Reloader = r
	ctx.Log = r.log.WithField("session", sess.ID())

	r.cfg = cfg
	r.interp = commands.NewInterpreter(ctx)
	r.lastToken = sess.OutputToken()
	r.log.WithField("session", sess.ID()).Info("session started")
}

// Interpreter returns the interpreter of the current session.
func (r *Runner) Interpreter() *commands.Interpreter { return r.interp }

// Reload schedules a restart of the session.
func (r *Runner) Reload() tea.Cmd {
	return func() tea.Msg { return plainRebootMsg{} }
}

func (r *Runner) restart() {
	cfg := r.cfg
	if r.reload != nil {
		fresh, err := r.reload()
		if err != nil {
			r.log.WithError(err).Warn("config reload failed, keeping current config")
		} else {
			cfg = fresh
		}
	}
	r.interp.Session().Dispose()
	r.theme.Restore(cfg.UI.Theme)
	r.boot(cfg)
}

// Run reads and executes lines until input ends or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, in LineReader) error {
	defer close(r.done)

	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := in.Prompt(r.interp.Prompt() + " ")
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, liner.ErrPromptAborted):
			return nil
		case err != nil:
			return fmt.Errorf("read input: %w", err)
		}
		r.Execute(ctx, line)
	}
}

// Execute runs one line and waits for its follow-up work to settle.
func (r *Runner) Execute(ctx context.Context, line string) {
	r.preload(ctx, line)
	r.spawn(r.interp.Submit(line))
	r.flush()
	r.settle(ctx)
}

// preload fetches the dynamic section up front when line needs it, so
// the answer is printed without an intermediate loading message.
func (r *Runner) preload(ctx context.Context, line string) {
	parsed, ok := commands.Parse(line)
	if !ok || (parsed.Command != "cd" && parsed.Command != "ls") {
		return
	}
	dir := r.interp.Context().Dir
	if dir.Loaded() || dir.DynamicName() == "" {
		return
	}
	cwd := r.interp.Session().WorkingDirectory()

	need := dir.NeedsLoad(parsed.Arg, cwd)
	if !need && parsed.Command == "ls" {
		target := cwd
		if parsed.Arg != "" {
			if p, err := dir.Resolve(parsed.Arg, cwd); err == nil {
				target = p
			}
		}
		need = dir.InDynamic(target)
	}
	if !need {
		return
	}
	if _, err := dir.Load(ctx); err != nil {
		r.log.WithError(err).Debug("preload failed")
	}
}

// spawn runs cmd in the background and delivers its message.
func (r *Runner) spawn(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		msg := cmd()
		if msg == nil {
			return
		}
		select {
		case r.msgs <- msg:
		case <-r.done:
		}
	}()
}

// settle feeds messages back to the interpreter until none arrive for
// the idle window.
func (r *Runner) settle(ctx context.Context) {
	idle := time.NewTimer(r.idle)
	defer idle.Stop()
	limit := time.NewTimer(r.limit)
	defer limit.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-limit.C:
			return
		case <-idle.C:
			return
		case msg := <-r.msgs:
			r.dispatch(msg)
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(r.idle)
		}
	}
}

func (r *Runner) dispatch(msg tea.Msg) {
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, cmd := range msg {
			r.spawn(cmd)
		}
	case plainRebootMsg:
		r.restart()
		fmt.Fprintln(r.out, DimStyle.Render("Rebooted."))
	default:
		r.spawn(r.interp.Update(msg))
		r.flush()
	}
}

// flush prints the transient message and any output not yet printed.
func (r *Runner) flush() {
	s := r.interp.Session()
	if msg, ok := s.Transient(); ok {
		fmt.Fprintln(r.out, WarningStyle.Render(msg))
		s.DismissTransient()
	}
	if tok := s.OutputToken(); tok != r.lastToken {
		r.lastToken = tok
		if text := RenderOutput(s.Output(), r.width); text != "" {
			fmt.Fprintln(r.out, text)
		}
	}
}

// complete offers the line with its suggestion accepted.
func (r *Runner) complete(line string) []string {
	if ghost := r.interp.Suggest(line); ghost != "" {
		return []string{line + ghost}
	}
	return nil
}
