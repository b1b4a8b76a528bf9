// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "time"

// Task is a handle for a timed animation owned by the session. At most one
// task is active; starting a new one cancels the old one. A task's timer
// messages must check Alive before acting.
type Task struct {
	ID        uint64
	Name      string
	StartedAt time.Time
	// Restore is the theme variant to put back when the task ends or is
	// cancelled.
	Restore string

	cancelled bool
}

// StartTask cancels any active task and starts a new one.
func (s *Session) StartTask(name, restore string) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.task != nil {
		s.task.cancelled = true
	}
	s.task = &Task{
		ID:        nextSeq(),
		Name:      name,
		StartedAt: time.Now(),
		Restore:   restore,
	}
	t := *s.task
	return &t
}

// ActiveTask returns a copy of the active task, if any.
func (s *Session) ActiveTask() (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.task == nil {
		return Task{}, false
	}
	return *s.task, true
}

// Alive reports whether the task with id is still the active one.
func (s *Session) Alive(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.disposed && s.task != nil && s.task.ID == id && !s.task.cancelled
}

// CancelTask stops the active task and returns it so the caller can undo
// its effects. ok is false if nothing was running.
func (s *Session) CancelTask() (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.task == nil {
		return Task{}, false
	}
	s.task.cancelled = true
	t := *s.task
	s.task = nil
	return t, true
}

// FinishTask ends the task with id normally. It reports false if that
// task was already cancelled or replaced.
func (s *Session) FinishTask(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.task == nil || s.task.ID != id || s.task.cancelled {
		return false
	}
	s.task = nil
	return true
}
