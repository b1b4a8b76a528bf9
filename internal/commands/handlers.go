// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/siteshell/internal/directory"
	"github.com/jeranaias/siteshell/internal/session"
	"github.com/jeranaias/siteshell/internal/ui/styles"
	"github.com/jeranaias/siteshell/internal/util"
)

var (
	errClipboardUnavailable = errors.New("clipboard unavailable")
	errOpenerUnavailable    = errors.New("no browser available")
)

// =============================================================================
// ASYNC RESULT MESSAGES
// =============================================================================

// Results of background work. Each carries the submission epoch it
// belongs to; the interpreter drops results from older submissions.

type listLoadedMsg struct {
	epoch uint64
	arg   string
	cwd   directory.Path
	err   error
}

type cdLoadedMsg struct {
	epoch uint64
	arg   string
	cwd   directory.Path
	err   error
}

type clipboardDoneMsg struct {
	epoch uint64
	text  string
	err   error
}

type openDoneMsg struct {
	epoch uint64
	url   string
	err   error
}

type discoFrameMsg struct {
	task  uint64
	frame int
}

type rebootMsg struct {
	sessionID string
}

// PrefetchDoneMsg reports that a background load of the dynamic section
// finished. It carries no state change; receiving it is a cue to re-render
// so new suggestions can show.
type PrefetchDoneMsg struct {
	Err error
}

// loadCmd loads the dynamic section off the event loop.
func loadCmd(dir *directory.Model, done func(err error) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		_, err := dir.Load(context.Background())
		return done(err)
	}
}

// =============================================================================
// NAVIGATION
// =============================================================================

// HandleCd changes the working directory.
func HandleCd(ctx *Context, arg string) tea.Cmd {
	return cd(ctx, arg, ctx.Session.WorkingDirectory(), true)
}

func cd(ctx *Context, arg string, cwd directory.Path, mayLoad bool) tea.Cmd {
	target, err := ctx.Dir.Resolve(arg, cwd)
	switch {
	case err == nil:
		return changeDir(ctx, target)

	case errors.Is(err, directory.ErrNoParent):
		return nil

	case errors.Is(err, directory.ErrNotLoaded) && mayLoad:
		epoch := ctx.Session.Epoch()
		show := ctx.Session.Show(session.Loading(loadingText(ctx)))
		return tea.Batch(show, loadCmd(ctx.Dir, func(err error) tea.Msg {
			return cdLoadedMsg{epoch: epoch, arg: arg, cwd: cwd, err: err}
		}))

	default:
		return ctx.Session.ShowTransient(cdErrorText(arg), ctx.Display.transient())
	}
}

func cdErrorText(arg string) string {
	return "cd: no such file or directory: " + arg
}

func loadingText(ctx *Context) string {
	return "Loading " + ctx.Dir.DynamicName() + "..."
}

func changeDir(ctx *Context, target directory.Path) tea.Cmd {
	ctx.Session.SetWorkingDirectory(target)
	if route, ok := ctx.Dir.Route(target); ok {
		ctx.Router.Navigate(route)
	}
	ctx.Log.WithField("path", target.Absolute()).Debug("directory changed")

	if ctx.Dir.InDynamic(target) {
		return ctx.Prefetch()
	}
	return nil
}

// Prefetch starts a background load of the dynamic section if it is not
// loaded and no prefetch is running.
func (ctx *Context) Prefetch() tea.Cmd {
	if ctx.Dir.DynamicName() == "" || ctx.Dir.Loaded() || ctx.prefetching {
		return nil
	}
	ctx.prefetching = true
	return loadCmd(ctx.Dir, func(err error) tea.Msg {
		return PrefetchDoneMsg{Err: err}
	})
}

// HandleLs lists a directory, the working directory by default.
func HandleLs(ctx *Context, arg string) tea.Cmd {
	return ls(ctx, arg, ctx.Session.WorkingDirectory(), true)
}

func ls(ctx *Context, arg string, cwd directory.Path, mayLoad bool) tea.Cmd {
	target := cwd
	if arg != "" {
		resolved, err := ctx.Dir.Resolve(arg, cwd)
		switch {
		case err == nil:
			target = resolved
		case errors.Is(err, directory.ErrNoParent):
			target = directory.Path{}
		case errors.Is(err, directory.ErrNotLoaded) && mayLoad:
			return lsLoad(ctx, arg, cwd)
		default:
			return ctx.Session.Show(session.Error(fmt.Sprintf("ls: cannot access '%s': No such file or directory", arg)))
		}
	}

	switch {
	case target.IsRoot():
		var items []string
		for _, e := range ctx.Dir.ListRoot() {
			items = append(items, e.Name+"/")
		}
		return ctx.Session.Show(session.List(items...))

	case ctx.Dir.InDynamic(target):
		entries, loaded := ctx.Dir.Children(target[0])
		if !loaded {
			if !mayLoad {
				return ctx.Session.Show(session.Error("ls: " + ctx.Dir.DynamicName() + " is not available"))
			}
			return lsLoad(ctx, arg, cwd)
		}
		items := make([]string, len(entries))
		for i, e := range entries {
			items[i] = e.Name
		}
		return ctx.Session.Show(session.List(items...))

	default:
		return ctx.Session.Show(session.List())
	}
}

func lsLoad(ctx *Context, arg string, cwd directory.Path) tea.Cmd {
	epoch := ctx.Session.Epoch()
	show := ctx.Session.Show(session.Loading(loadingText(ctx)))
	return tea.Batch(show, loadCmd(ctx.Dir, func(err error) tea.Msg {
		return listLoadedMsg{epoch: epoch, arg: arg, cwd: cwd, err: err}
	}))
}

// HandlePwd prints the working directory.
func HandlePwd(ctx *Context, arg string) tea.Cmd {
	return ctx.Session.Show(session.Text(ctx.Session.WorkingDirectory().Absolute()))
}

// =============================================================================
// INFO
// =============================================================================

// HandleDate prints the current time in date(1) format.
func HandleDate(ctx *Context, arg string) tea.Cmd {
	return ctx.Session.Show(session.Text(ctx.Now().Format(time.UnixDate)))
}

// HandleWhoami prints the username.
func HandleWhoami(ctx *Context, arg string) tea.Cmd {
	return ctx.Session.Show(session.Text(ctx.Display.User()))
}

// HandleEcho prints its argument.
func HandleEcho(ctx *Context, arg string) tea.Cmd {
	return ctx.Session.Show(session.Text(arg))
}

// HandleHistory lists earlier submissions, most recent first. The history
// command itself is not included.
func HandleHistory(ctx *Context, arg string) tea.Cmd {
	return ctx.Session.Show(session.List(ctx.Session.Recent(ctx.Display.HistoryLimit(), 1)...))
}

// HandleClear empties the output panel.
func HandleClear(ctx *Context, arg string) tea.Cmd {
	ctx.Session.Clear()
	return nil
}

// =============================================================================
// PROFILE
// =============================================================================

// HandleResume opens the configured resume.
func HandleResume(ctx *Context, arg string) tea.Cmd {
	url := strings.TrimSpace(ctx.Display.ResumeURL)
	if url == "" {
		return ctx.Session.Show(session.Text("Resume is not available right now. Try 'email' to get in touch."))
	}

	epoch := ctx.Session.Epoch()
	opener := ctx.Opener
	show := ctx.Session.Show(session.Success("Opening resume: " + url))
	return tea.Batch(show, func() tea.Msg {
		return openDoneMsg{epoch: epoch, url: url, err: opener.Open(url)}
	})
}

// HandleEmail copies the contact email to the clipboard.
func HandleEmail(ctx *Context, arg string) tea.Cmd {
	email := strings.TrimSpace(ctx.Display.Email)
	if email == "" {
		return ctx.Session.Show(session.Text("No email address is configured. Try 'socials' instead."))
	}

	epoch := ctx.Session.Epoch()
	clip := ctx.Clipboard
	return func() tea.Msg {
		return clipboardDoneMsg{epoch: epoch, text: email, err: clip.WriteText(email)}
	}
}

// HandleSocials lists social links.
func HandleSocials(ctx *Context, arg string) tea.Cmd {
	socials := ctx.Display.Socials
	if len(socials) == 0 {
		return ctx.Session.Show(session.Text("No social links are configured."))
	}

	names := make([]string, len(socials))
	for i, s := range socials {
		names[i] = s.Name
	}
	width := util.MaxWidth(names) + 2

	items := make([]string, len(socials))
	for i, s := range socials {
		items[i] = util.PadRight(s.Name, width) + s.URL
	}
	return ctx.Session.Show(session.List(items...))
}

// =============================================================================
// APPEARANCE
// =============================================================================

// HandleTheme reports or changes the theme.
func HandleTheme(ctx *Context, arg string) tea.Cmd {
	current := ctx.Theme.Current()
	variant := strings.ToLower(arg)

	switch variant {
	case "":
		return ctx.Session.Show(session.Text("Current theme: " + current))
	case "toggle":
		variant = "light"
		if current == "light" {
			variant = "dark"
		}
	case "light", "dark":
	default:
		return ctx.Session.Show(session.ErrorWithTip(
			"theme",
			fmt.Sprintf("invalid theme '%s'", arg),
			"Usage: theme [light|dark|toggle]",
		))
	}

	if err := ctx.Theme.Set(variant); err != nil {
		ctx.Log.WithError(err).WithField("variant", variant).Warn("theme change failed")
		return ctx.Session.Show(session.Error("theme: " + err.Error()))
	}
	ctx.Log.WithField("variant", variant).Info("theme changed")
	return ctx.Session.Show(session.Success("Theme set to " + variant))
}

// HandleASCII shows a random piece of art.
func HandleASCII(ctx *Context, arg string) tea.Cmd {
	art := append(append([]string(nil), builtinArt...), ctx.Display.ASCIIArt...)
	pick := art[ctx.Rand.Intn(len(art))]
	return ctx.Session.Show(session.ASCII(pick))
}

// HandleDisco flashes random theme previews for a while, then restores
// the active theme and celebrates. It runs as a session task, so a new
// submission stops it.
func HandleDisco(ctx *Context, arg string) tea.Cmd {
	interval, _ := ctx.Display.discoTiming()
	task := ctx.Session.StartTask("disco", ctx.Theme.Current())
	ctx.Theme.Preview(styles.RandomSwatch(ctx.Rand))

	show := ctx.Session.Show(session.Success("Disco mode!"))
	return tea.Batch(show, discoTick(interval, task.ID, 1))
}

func discoTick(interval time.Duration, task uint64, frame int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return discoFrameMsg{task: task, frame: frame}
	})
}

// =============================================================================
// SYSTEM
// =============================================================================

// HandleReboot warns, then reloads the application after a delay. Once
// issued it cannot be cancelled.
func HandleReboot(ctx *Context, arg string) tea.Cmd {
	ctx.Log.Info("reboot requested")
	show := ctx.Session.Show(session.Warning("Rebooting..."))
	id := ctx.Session.ID()
	return tea.Batch(show, tea.Tick(ctx.Display.rebootDelay(), func(time.Time) tea.Msg {
		return rebootMsg{sessionID: id}
	}))
}

// HandleHelp shows the command table, or one command's usage.
func HandleHelp(ctx *Context, arg string) tea.Cmd {
	if arg == "" {
		return ctx.Session.Show(session.Help(helpMarkdown(ctx.Registry)))
	}

	cmd := ctx.Registry.Get(arg)
	if cmd == nil || cmd.Hidden {
		return ctx.Session.Show(session.ErrorWithTip("help", "no such command: "+arg, "Type 'help' to list commands"))
	}
	return ctx.Session.Show(session.Help(commandMarkdown(cmd)))
}

func helpMarkdown(reg *Registry) string {
	var b strings.Builder
	b.WriteString("# Commands\n")
	groups := reg.ByCategory()
	for _, cat := range reg.Categories() {
		b.WriteString("\n## " + cat + "\n\n")
		b.WriteString("| Command | Description |\n|---|---|\n")
		for _, cmd := range groups[cat] {
			fmt.Fprintf(&b, "| `%s` | %s |\n", cmd.Usage, cmd.Description)
		}
	}
	b.WriteString("\nPress **Tab** to accept a suggestion, **Esc** to close this panel.\n")
	return b.String()
}

func commandMarkdown(cmd *Command) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", cmd.Name, cmd.Description)
	fmt.Fprintf(&b, "Usage: `%s`\n", cmd.Usage)
	if len(cmd.Args) > 0 {
		b.WriteString("\n")
		for _, a := range cmd.Args {
			line := "- `" + a.Name + "`"
			if a.Required {
				line += " (required)"
			}
			if a.Description != "" {
				line += ": " + a.Description
			}
			if len(a.Values) > 0 {
				line += " one of " + strings.Join(a.Values, ", ")
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// =============================================================================
// RESULT HANDLING
// =============================================================================

// handleResult applies an async result or timer message. It reports
// whether msg was one of ours.
func (ctx *Context) handleResult(msg tea.Msg) (tea.Cmd, bool) {
	s := ctx.Session

	switch msg := msg.(type) {
	case listLoadedMsg:
		if !s.IsCurrent(msg.epoch) {
			ctx.Log.WithField("epoch", msg.epoch).Debug("dropping stale listing")
			return nil, true
		}
		if msg.err != nil {
			return s.Show(session.ErrorWithTip(
				"ls",
				"could not load "+ctx.Dir.DynamicName()+": "+msg.err.Error(),
				"Try again in a moment",
			)), true
		}
		return ls(ctx, msg.arg, msg.cwd, false), true

	case cdLoadedMsg:
		if !s.IsCurrent(msg.epoch) {
			ctx.Log.WithField("epoch", msg.epoch).Debug("dropping stale cd")
			return nil, true
		}
		s.Clear()
		if msg.err != nil {
			// Without titles a bare name can still leave for a section.
			if !strings.Contains(msg.arg, "/") {
				if target, err := ctx.Dir.Resolve("~/"+msg.arg, msg.cwd); err == nil {
					return changeDir(ctx, target), true
				}
			}
			return s.Show(session.Error("cd: could not load " + ctx.Dir.DynamicName() + ": " + msg.err.Error())), true
		}
		return cd(ctx, msg.arg, msg.cwd, false), true

	case clipboardDoneMsg:
		if msg.err != nil {
			ctx.Log.WithError(msg.err).Warn("clipboard write failed")
		}
		if !s.IsCurrent(msg.epoch) {
			return nil, true
		}
		if msg.err != nil {
			return s.Show(session.ErrorWithTip("email", "Could not access the clipboard", "Email: "+msg.text)), true
		}
		return s.Show(session.Success("Copied " + msg.text + " to clipboard")), true

	case openDoneMsg:
		if msg.err == nil {
			return nil, true
		}
		ctx.Log.WithError(msg.err).WithField("url", msg.url).Warn("open failed")
		if !s.IsCurrent(msg.epoch) {
			return nil, true
		}
		return s.Show(session.ErrorWithTip("resume", "Could not open a browser", "Resume: "+msg.url)), true

	case discoFrameMsg:
		if !s.Alive(msg.task) {
			return nil, true
		}
		interval, frames := ctx.Display.discoTiming()
		if msg.frame < frames {
			ctx.Theme.Preview(styles.RandomSwatch(ctx.Rand))
			return discoTick(interval, msg.task, msg.frame+1), true
		}
		task, _ := s.ActiveTask()
		s.FinishTask(msg.task)
		ctx.Theme.Restore(task.Restore)
		if !ctx.Display.Confetti {
			return nil, true
		}
		return ctx.Effects.Celebrate(), true

	case rebootMsg:
		if msg.sessionID != s.ID() {
			return nil, true
		}
		ctx.Log.Info("reloading")
		return ctx.Reloader.Reload(), true

	case PrefetchDoneMsg:
		ctx.prefetching = false
		if msg.Err != nil {
			ctx.Log.WithFields(logrus.Fields{"error": msg.Err}).Debug("prefetch failed")
		}
		return nil, true
	}
	return nil, false
}
