// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/siteshell/internal/commands"
	"github.com/jeranaias/siteshell/internal/config"
	"github.com/jeranaias/siteshell/internal/directory"
	"github.com/jeranaias/siteshell/internal/index"
	"github.com/jeranaias/siteshell/internal/logging"
	"github.com/jeranaias/siteshell/internal/session"
	"github.com/jeranaias/siteshell/internal/ui/styles"
)

// Options configures a Model.
type Options struct {
	Config *config.Config
	Index  index.RecordIndex
	Log    logrus.FieldLogger

	// Reload re-reads configuration when the shell reboots. Nil keeps the
	// current configuration.
	Reload func() (*config.Config, error)

	// Clipboard and Opener default to the system implementations.
	Clipboard commands.Clipboard
	Opener    commands.Opener
}

// reloadMsg restarts the shell with a new session.
type reloadMsg struct{}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the shell.
type Model struct {
	cfg    *config.Config
	index  index.RecordIndex
	log    logrus.FieldLogger
	reload func() (*config.Config, error)

	clipboard commands.Clipboard
	opener    commands.Opener

	interp *commands.Interpreter
	theme  *styles.Theme
	keys   KeyMap
	rand   *rand.Rand

	// UI Components
	input    textinput.Model
	spinner  spinner.Model
	spinning bool
	confetti Confetti

	// Dimensions
	width  int
	height int

	// Route of the page the shell is on
	route string

	// Cached markdown renderer, rebuilt when style or width changes
	md    *glamour.TermRenderer
	mdKey string

	quitting bool
}

// New creates the shell model.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	src := opts.Index
	if src == nil {
		src = index.None{}
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type 'help' to get started"
	ti.CharLimit = 256
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = styles.LineSpinner.Spinner()

	m := &Model{
		cfg:       cfg,
		index:     src,
		log:       log,
		reload:    opts.Reload,
		clipboard: opts.Clipboard,
		opener:    opts.Opener,
		theme:     styles.NewTheme(cfg.UI.Theme),
		keys:      DefaultKeyMap(),
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		input:     ti,
		spinner:   sp,
	}
	if m.clipboard == nil {
		m.clipboard = SystemClipboard{}
	}
	if m.opener == nil {
		m.opener = BrowserOpener{}
	}
	m.boot(cfg)
	return m
}

// boot starts a fresh session over cfg.
func (m *Model) boot(cfg *config.Config) {
	dir := directory.New(cfg.Sections.Root, cfg.Sections.Dynamic, m.index, cfg.Index.Timeout(), m.log)
	reg := commands.NewRegistry(cfg.Sections.Root)
	sess := session.New()

	ctx := commands.NewContext(sess, dir, reg, commands.DisplayFromConfig(cfg))
	ctx.Router = m
	ctx.Clipboard = m.clipboard
	ctx.Theme = m.theme
	ctx.Reloader = m
	ctx.Opener = m.opener
	ctx.Effects = m
	ctx.Log = m.log.WithField("session", sess.ID())
	ctx.Rand = m.rand

	m.cfg = cfg
	m.interp = commands.NewInterpreter(ctx)
	m.route = "/"
	m.log.WithField("session", sess.ID()).Info("session started")
}

// Interpreter returns the interpreter of the current session.
func (m *Model) Interpreter() *commands.Interpreter { return m.interp }

// Theme returns the shell's theme.
func (m *Model) Theme() *styles.Theme { return m.theme }

// Route returns the current page route.
func (m *Model) Route() string { return m.route }

// =============================================================================
// COLLABORATORS
// =============================================================================

// Navigate moves the page to route.
func (m *Model) Navigate(route string) {
	m.route = route
}

// Reload asks the shell to restart. The restart happens when the
// returned command's message comes back through Update.
func (m *Model) Reload() tea.Cmd {
	return func() tea.Msg { return reloadMsg{} }
}

// Celebrate starts confetti.
func (m *Model) Celebrate() tea.Cmd {
	return m.confetti.Start(m.confettiSize())
}

func (m *Model) confettiSize() (int, int, *rand.Rand) {
	w, h := m.width, m.height/3
	if w <= 0 {
		w = 80
	}
	if h < 6 {
		h = 6
	}
	return w, h, m.rand
}

// restart disposes the session and boots a new one from reloaded config.
func (m *Model) restart() tea.Cmd {
	cfg := m.cfg
	if m.reload != nil {
		fresh, err := m.reload()
		if err != nil {
			m.log.WithError(err).Warn("config reload failed, keeping current config")
		} else {
			cfg = fresh
		}
	}

	m.interp.Session().Dispose()
	m.confetti.Stop()
	m.spinning = false
	m.input.Reset()
	m.theme.Restore(cfg.UI.Theme)
	m.boot(cfg)
	return textinput.Blink
}
