// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/siteshell/internal/directory"
)

// =============================================================================
// STATE
// =============================================================================

// State is the observable phase of the session.
type State int

const (
	// Idle: no output, empty buffer.
	Idle State = iota
	// AwaitingInput: the buffer holds an unsubmitted line.
	AwaitingInput
	// Executing: a submission is being dispatched.
	Executing
	// OutputVisible: an output is shown.
	OutputVisible
	// Disposed: the session has ended.
	Disposed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingInput:
		return "awaiting-input"
	case Executing:
		return "executing"
	case OutputVisible:
		return "output-visible"
	case Disposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// =============================================================================
// MESSAGES
// =============================================================================

// ExpireMsg asks the session to drop the output armed with Token.
type ExpireMsg struct {
	SessionID string
	Token     uint64
}

// TransientClearMsg asks the session to drop the transient message armed
// with Token.
type TransientClearMsg struct {
	SessionID string
	Token     uint64
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the state of one shell. Its methods are safe for concurrent
// use, though the UI drives it from a single goroutine.
type Session struct {
	mu sync.Mutex

	id        string
	createdAt time.Time
	disposed  bool

	wd      directory.Path
	buffer  string
	history []string

	output      Output
	outputToken uint64
	shownAt     time.Time

	transient      string
	transientToken uint64

	executing bool
	epoch     uint64

	task *Task
}

// sequence numbers epochs and tasks across all sessions, so a message
// from a disposed session can never match its successor.
var sequence atomic.Uint64

func nextSeq() uint64 { return sequence.Add(1) }

// New creates a session at the root with no history.
func New() *Session {
	return &Session{
		id:        "sess_" + uuid.NewString(),
		createdAt: time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Dispose ends the session: the disco task is cancelled, the output is
// cleared and all pending timer messages become no-ops.
func (s *Session) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.task != nil {
		s.task.cancelled = true
		s.task = nil
	}
	s.output = Output{}
	s.outputToken++
	s.transient = ""
	s.transientToken++
	s.disposed = true
}

// Disposed reports whether Dispose was called.
func (s *Session) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// State derives the current phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.disposed:
		return Disposed
	case s.executing:
		return Executing
	case s.output.Kind != KindNone:
		return OutputVisible
	case s.buffer != "":
		return AwaitingInput
	default:
		return Idle
	}
}

// =============================================================================
// WORKING DIRECTORY
// =============================================================================

// WorkingDirectory returns a copy of the current path.
func (s *Session) WorkingDirectory() directory.Path {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(directory.Path{}, s.wd...)
}

// SetWorkingDirectory replaces the current path.
func (s *Session) SetWorkingDirectory(p directory.Path) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wd = append(directory.Path{}, p...)
}

// =============================================================================
// INPUT BUFFER
// =============================================================================

// Buffer returns the unsubmitted line.
func (s *Session) Buffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// SetBuffer replaces the unsubmitted line. Editing the line dismisses a
// transient message.
func (s *Session) SetBuffer(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transient != "" && text != "" {
		s.transient = ""
		s.transientToken++
	}
	s.buffer = text
}

// Transient returns the transient message shown in place of the prompt.
func (s *Session) Transient() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transient, s.transient != ""
}

// ShowTransient replaces the input line with msg for d, then resets it to
// empty. The returned command delivers the matching TransientClearMsg.
func (s *Session) ShowTransient(msg string, d time.Duration) tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return nil
	}
	s.transientToken++
	s.transient = msg
	s.buffer = ""

	done := TransientClearMsg{SessionID: s.id, Token: s.transientToken}
	return tea.Tick(d, func(time.Time) tea.Msg { return done })
}

// HandleTransientClear drops the transient message if msg is current.
func (s *Session) HandleTransientClear(msg TransientClearMsg) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg.SessionID != s.id || msg.Token != s.transientToken || s.transient == "" {
		return false
	}
	s.transient = ""
	s.buffer = ""
	return true
}

// DismissTransient drops the transient message now.
func (s *Session) DismissTransient() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transient == "" {
		return
	}
	s.transient = ""
	s.transientToken++
}

// =============================================================================
// HISTORY
// =============================================================================

// AppendHistory records a submitted line.
func (s *Session) AppendHistory(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, line)
}

// History returns all submitted lines, oldest first.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// Recent returns up to n submitted lines, most recent first, skipping the
// newest skip entries.
func (s *Session) Recent(n, skip int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	end := len(s.history) - skip
	if end < 0 {
		end = 0
	}
	start := end - n
	if start < 0 {
		start = 0
	}
	out := make([]string, 0, end-start)
	for i := end - 1; i >= start; i-- {
		out = append(out, s.history[i])
	}
	return out
}

// =============================================================================
// OUTPUT
// =============================================================================

// Output returns the visible output.
func (s *Session) Output() Output {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output
}

// OutputToken returns the token of the visible output.
func (s *Session) OutputToken() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outputToken
}

// Show replaces the visible output. Any pending expiry for the previous
// output is invalidated. For kinds with a lifetime the returned command
// delivers the matching ExpireMsg; otherwise it is nil.
func (s *Session) Show(o Output) tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return nil
	}
	s.outputToken++
	s.output = o
	s.shownAt = time.Now()

	ttl := o.Kind.TTL()
	if ttl <= 0 {
		return nil
	}
	expire := ExpireMsg{SessionID: s.id, Token: s.outputToken}
	return tea.Tick(ttl, func(time.Time) tea.Msg { return expire })
}

// Clear removes the visible output and cancels its expiry.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputToken++
	s.output = Output{}
}

// HandleExpire clears the output if msg is for the current output.
func (s *Session) HandleExpire(msg ExpireMsg) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg.SessionID != s.id || msg.Token != s.outputToken || s.output.Kind == KindNone {
		return false
	}
	s.outputToken++
	s.output = Output{}
	return true
}

// Remaining returns how long the visible output has left, and false if it
// has no lifetime.
func (s *Session) Remaining() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ttl := s.output.Kind.TTL()
	if ttl <= 0 {
		return 0, false
	}
	left := ttl - time.Since(s.shownAt)
	if left < 0 {
		left = 0
	}
	return left, true
}

// =============================================================================
// SUBMISSIONS
// =============================================================================

// Begin marks the start of a submission and returns its epoch. Async
// results tagged with an older epoch are stale.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch = nextSeq()
	s.executing = true
	s.buffer = ""
	return s.epoch
}

// End marks the synchronous part of a submission as finished.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.executing = false
}

// Epoch returns the latest submission epoch.
func (s *Session) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// IsCurrent reports whether epoch is the latest submission.
func (s *Session) IsCurrent(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.disposed && epoch == s.epoch
}
