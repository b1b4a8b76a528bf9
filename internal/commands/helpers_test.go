// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/siteshell/internal/config"
	"github.com/jeranaias/siteshell/internal/directory"
	"github.com/jeranaias/siteshell/internal/index"
	"github.com/jeranaias/siteshell/internal/session"
	"github.com/jeranaias/siteshell/internal/ui/styles"
)

var testSections = []string{"about", "projects", "blogs", "experience", "contact"}

var testPosts = []index.Record{
	{ID: "hello-world", Title: "Hello World"},
	{ID: "go-concurrency", Title: "Go Concurrency"},
	{ID: "cafe", Title: "Café Notes"},
}

// recordingTheme counts calls so tests can assert on side effects.
type recordingTheme struct {
	mu       sync.Mutex
	variant  string
	sets     []string
	previews int
	restores []string
	setErr   error
}

func (t *recordingTheme) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.variant
}

func (t *recordingTheme) Set(variant string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sets = append(t.sets, variant)
	if t.setErr != nil {
		return t.setErr
	}
	t.variant = variant
	return nil
}

func (t *recordingTheme) Preview(styles.Swatch) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.previews++
}

func (t *recordingTheme) Restore(variant string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.restores = append(t.restores, variant)
	t.variant = variant
}

type recordingRouter struct {
	routes []string
}

func (r *recordingRouter) Navigate(route string) { r.routes = append(r.routes, route) }

type fakeClipboard struct {
	mu    sync.Mutex
	text  string
	err   error
	block chan struct{}
}

func (c *fakeClipboard) WriteText(s string) error {
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.text = s
	return nil
}

type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) Open(url string) error {
	o.opened = append(o.opened, url)
	return o.err
}

type countingReloader struct{ n int }

type reloadedMsg struct{}

func (r *countingReloader) Reload() tea.Cmd {
	r.n++
	return func() tea.Msg { return reloadedMsg{} }
}

type celebratedMsg struct{}

type countingEffects struct{ n int }

func (e *countingEffects) Celebrate() tea.Cmd {
	e.n++
	return func() tea.Msg { return celebratedMsg{} }
}

type fixture struct {
	in       *Interpreter
	ctx      *Context
	sess     *session.Session
	dir      *directory.Model
	theme    *recordingTheme
	router   *recordingRouter
	clip     *fakeClipboard
	opener   *fakeOpener
	reloader *countingReloader
	effects  *countingEffects
}

func newFixture(t *testing.T, src index.RecordIndex) *fixture {
	t.Helper()
	cfg := config.Default()
	cfg.Profile.Email = "me@example.com"
	cfg.Profile.ResumeURL = "https://example.com/resume.pdf"
	cfg.Profile.Socials = []config.Social{
		{Name: "GitHub", URL: "https://github.com/example"},
		{Name: "LinkedIn", URL: "https://linkedin.com/in/example"},
	}
	display := DisplayFromConfig(cfg)
	display.DiscoInterval = 5 * time.Millisecond
	display.DiscoDuration = 20 * time.Millisecond
	display.RebootDelay = 5 * time.Millisecond
	display.Transient = 50 * time.Millisecond

	f := &fixture{
		sess:     session.New(),
		dir:      directory.New(testSections, "blogs", src, time.Second, nil),
		theme:    &recordingTheme{variant: "dark"},
		router:   &recordingRouter{},
		clip:     &fakeClipboard{},
		opener:   &fakeOpener{},
		reloader: &countingReloader{},
		effects:  &countingEffects{},
	}
	f.ctx = NewContext(f.sess, f.dir, NewRegistry(testSections), display)
	f.ctx.Theme = f.theme
	f.ctx.Router = f.router
	f.ctx.Clipboard = f.clip
	f.ctx.Opener = f.opener
	f.ctx.Reloader = f.reloader
	f.ctx.Effects = f.effects
	f.ctx.Now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC) }
	f.ctx.Rand = rand.New(rand.NewSource(1))
	f.in = NewInterpreter(f.ctx)
	return f
}

func postsIndex() index.Func {
	return func(ctx context.Context) ([]index.Record, error) {
		return testPosts, nil
	}
}

func failingIndex() index.Func {
	return func(ctx context.Context) ([]index.Record, error) {
		return nil, errors.New("connection refused")
	}
}

// gatedIndex blocks each fetch until release is closed.
func gatedIndex(release <-chan struct{}) index.Func {
	return func(ctx context.Context) ([]index.Record, error) {
		<-release
		return testPosts, nil
	}
}

func (f *fixture) load(t *testing.T) {
	t.Helper()
	if _, err := f.dir.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
}

// drain runs cmd and any batched children, returning the messages that
// arrive within wait. Long timers simply miss the window.
func drain(cmd tea.Cmd, wait time.Duration) []tea.Msg {
	if cmd == nil {
		return nil
	}
	out := make(chan tea.Msg, 64)
	var run func(c tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		go func() {
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, sub := range batch {
					run(sub)
				}
				return
			}
			if msg != nil {
				out <- msg
			}
		}()
	}
	run(cmd)

	var msgs []tea.Msg
	timer := time.NewTimer(wait)
	defer timer.Stop()
	for {
		select {
		case msg := <-out:
			msgs = append(msgs, msg)
		case <-timer.C:
			return msgs
		}
	}
}

// pump feeds every message from cmd back through the interpreter until no
// new message arrives within wait.
func (f *fixture) pump(cmd tea.Cmd, wait time.Duration) []tea.Msg {
	var seen []tea.Msg
	for cmd != nil {
		var next []tea.Cmd
		for _, msg := range drain(cmd, wait) {
			seen = append(seen, msg)
			if c := f.in.Update(msg); c != nil {
				next = append(next, c)
			}
		}
		cmd = tea.Batch(next...)
	}
	return seen
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
