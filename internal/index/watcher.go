// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// =============================================================================
// FSNOTIFY WATCHER
// =============================================================================

// Watcher calls a rebuild function when markdown files in a directory
// change. Bursts of events are collapsed by a debounce window.
type Watcher struct {
	dir      string
	debounce time.Duration
	rebuild  func(ctx context.Context) error
	log      logrus.FieldLogger

	watcher *fsnotify.Watcher

	mu      sync.Mutex
	pending bool
	lastAt  time.Time
}

// NewWatcher creates a watcher over dir. It does nothing until Run.
func NewWatcher(dir string, debounce time.Duration, rebuild func(ctx context.Context) error, log logrus.FieldLogger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		rebuild:  rebuild,
		log:      log,
		watcher:  fw,
	}, nil
}

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	ticker := time.NewTicker(w.debounce / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !IsMarkdown(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.pending = true
			w.lastAt = time.Now()
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watch error")

		case <-ticker.C:
			if !w.due(time.Now()) {
				continue
			}
			if err := w.rebuild(ctx); err != nil {
				w.log.WithError(err).WithField("dir", w.dir).Error("index rebuild failed")
			}
		}
	}
}

// due clears and reports the pending flag once the debounce window passed.
func (w *Watcher) due(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.pending || now.Sub(w.lastAt) < w.debounce {
		return false
	}
	w.pending = false
	return true
}
