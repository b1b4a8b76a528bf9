// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/siteshell/internal/directory"
	"github.com/jeranaias/siteshell/internal/logging"
	"github.com/jeranaias/siteshell/internal/session"
	"github.com/jeranaias/siteshell/internal/ui/styles"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Router moves the host application to a page route. Fire and forget.
type Router interface {
	Navigate(route string)
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// Theme switches and previews color variants.
type Theme interface {
	// Current returns "light" or "dark".
	Current() string
	// Set makes variant the active theme.
	Set(variant string) error
	// Preview shows transient colors without changing the active theme.
	Preview(s styles.Swatch)
	// Restore drops any preview and shows variant.
	Restore(variant string)
}

// Reloader restarts the application.
type Reloader interface {
	Reload() tea.Cmd
}

// Opener opens a URL in the user's browser.
type Opener interface {
	Open(url string) error
}

// Effects triggers celebratory visuals.
type Effects interface {
	Celebrate() tea.Cmd
}

// =============================================================================
// CONTEXT
// =============================================================================

// Context carries everything a handler may read or call. Handlers never
// hold on to it past their return; async work captures what it needs.
type Context struct {
	Session  *session.Session
	Dir      *directory.Model
	Registry *Registry
	Display  Display

	Router    Router
	Clipboard Clipboard
	Theme     Theme
	Reloader  Reloader
	Opener    Opener
	Effects   Effects

	Log  logrus.FieldLogger
	Now  func() time.Time
	Rand *rand.Rand

	prefetching bool
}

// NewContext creates a context with no-op collaborators. Callers replace
// the ones they provide.
func NewContext(sess *session.Session, dir *directory.Model, reg *Registry, display Display) *Context {
	return &Context{
		Session:   sess,
		Dir:       dir,
		Registry:  reg,
		Display:   display,
		Router:    nopRouter{},
		Clipboard: nopClipboard{},
		Theme:     &MemoryTheme{Variant: "dark"},
		Reloader:  nopReloader{},
		Opener:    nopOpener{},
		Effects:   nopEffects{},
		Log:       logging.Discard(),
		Now:       time.Now,
		Rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// =============================================================================
// DEFAULT COLLABORATORS
// =============================================================================

type nopRouter struct{}

func (nopRouter) Navigate(string) {}

type nopClipboard struct{}

func (nopClipboard) WriteText(string) error { return errClipboardUnavailable }

type nopReloader struct{}

func (nopReloader) Reload() tea.Cmd { return nil }

type nopOpener struct{}

func (nopOpener) Open(string) error { return errOpenerUnavailable }

type nopEffects struct{}

func (nopEffects) Celebrate() tea.Cmd { return nil }

// MemoryTheme is a Theme that only remembers its state. The plain REPL
// uses it, since a line-mode terminal has no theme to switch.
type MemoryTheme struct {
	Variant    string
	Previewing *styles.Swatch
}

// Current returns the remembered variant.
func (t *MemoryTheme) Current() string { return t.Variant }

// Set remembers variant.
func (t *MemoryTheme) Set(variant string) error {
	t.Variant = variant
	t.Previewing = nil
	return nil
}

// Preview remembers the swatch.
func (t *MemoryTheme) Preview(s styles.Swatch) { t.Previewing = &s }

// Restore clears the preview and remembers variant.
func (t *MemoryTheme) Restore(variant string) {
	t.Variant = variant
	t.Previewing = nil
}
