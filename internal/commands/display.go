// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"time"

	"github.com/jeranaias/siteshell/internal/config"
	"github.com/jeranaias/siteshell/internal/directory"
)

// Host is the machine name shown in the prompt.
const Host = "site"

// Display is a read-only snapshot of the values commands show. Every
// field is optional; the accessor methods supply fallbacks.
type Display struct {
	Username      string
	PromptSymbol  string
	ShowGitBranch bool
	GitBranch     string
	ASCIIArt      []string

	ResumeURL string
	Email     string
	Socials   []config.Social

	ReportUnknown  bool
	HistoryDisplay int
	Confetti       bool

	DiscoInterval time.Duration
	DiscoDuration time.Duration
	RebootDelay   time.Duration
	Transient     time.Duration
}

// DisplayFromConfig snapshots cfg.
func DisplayFromConfig(cfg *config.Config) Display {
	return Display{
		Username:       cfg.Shell.Username,
		PromptSymbol:   cfg.Shell.PromptSymbol,
		ShowGitBranch:  cfg.Shell.ShowGitBranch,
		GitBranch:      cfg.Shell.GitBranch,
		ASCIIArt:       append([]string(nil), cfg.ASCII.Art...),
		ResumeURL:      cfg.Profile.ResumeURL,
		Email:          cfg.Profile.Email,
		Socials:        append([]config.Social(nil), cfg.Profile.Socials...),
		ReportUnknown:  cfg.Shell.ReportUnknown,
		HistoryDisplay: cfg.Shell.HistoryDisplay,
		Confetti:       cfg.UI.Confetti,
		DiscoInterval:  cfg.Timing.DiscoInterval(),
		DiscoDuration:  cfg.Timing.DiscoDuration(),
		RebootDelay:    cfg.Timing.RebootDelay(),
		Transient:      cfg.Timing.Transient(),
	}
}

// User returns the username, "Visitor" if unset.
func (d Display) User() string {
	if u := strings.TrimSpace(d.Username); u != "" {
		return u
	}
	return "Visitor"
}

// Symbol returns the prompt symbol, "$" if unset.
func (d Display) Symbol() string {
	if d.PromptSymbol != "" {
		return d.PromptSymbol
	}
	return "$"
}

// Branch returns the git branch to show, or "" when disabled.
func (d Display) Branch() string {
	if !d.ShowGitBranch {
		return ""
	}
	if d.GitBranch == "" {
		return "main"
	}
	return d.GitBranch
}

// HistoryLimit returns how many entries history prints.
func (d Display) HistoryLimit() int {
	if d.HistoryDisplay > 0 {
		return d.HistoryDisplay
	}
	return 10
}

func (d Display) discoTiming() (interval time.Duration, frames int) {
	interval = d.DiscoInterval
	if interval <= 0 {
		interval = 150 * time.Millisecond
	}
	total := d.DiscoDuration
	if total <= 0 {
		total = 3 * time.Second
	}
	frames = int(total / interval)
	if frames < 1 {
		frames = 1
	}
	return interval, frames
}

func (d Display) rebootDelay() time.Duration {
	if d.RebootDelay > 0 {
		return d.RebootDelay
	}
	return 1500 * time.Millisecond
}

func (d Display) transient() time.Duration {
	if d.Transient > 0 {
		return d.Transient
	}
	return 2 * time.Second
}

// Prompt renders "user@site:~/path (branch) $".
func (d Display) Prompt(wd directory.Path) string {
	var b strings.Builder
	b.WriteString(d.User())
	b.WriteString("@")
	b.WriteString(Host)
	b.WriteString(":")
	b.WriteString(wd.String())
	if br := d.Branch(); br != "" {
		b.WriteString(" (")
		b.WriteString(br)
		b.WriteString(")")
	}
	b.WriteString(" ")
	b.WriteString(d.Symbol())
	return b.String()
}
