// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refcheck

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the docs tree must stay quiet before a
// watched run starts.
const DefaultDebounce = 300 * time.Millisecond

// Watcher re-runs the battery whenever a document under the docs
// directory changes.
type Watcher struct {
	corpus   *Corpus
	debounce time.Duration
	onRun    func([]Issue)
}

// NewWatcher returns a Watcher over corpus that hands each run's issues
// to onRun.
func NewWatcher(corpus *Corpus, onRun func([]Issue)) *Watcher {
	return &Watcher{corpus: corpus, debounce: DefaultDebounce, onRun: onRun}
}

// WithDebounce sets the quiet period before a run.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Run performs one run immediately, then one per settled burst of
// changes, until ctx is cancelled. Each run builds a fresh collector.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	docs := filepath.Join(w.corpus.Root, w.corpus.Layout.DocsDir)
	if err := addTree(fw, docs); err != nil {
		return fmt.Errorf("watching %s: %w", docs, err)
	}
	logf("watch: watching %s", docs)

	w.runOnce()

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logf("watch: context cancelled")
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) && isDir(ev.Name) {
				if err := addTree(fw, ev.Name); err != nil {
					logf("watch: adding %s: %v", ev.Name, err)
				}
			}
			if !relevant(ev) {
				continue
			}
			logf("watch: %s %s", ev.Op, ev.Name)
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logf("watch: error: %v", err)

		case <-timer.C:
			w.runOnce()
		}
	}
}

func (w *Watcher) runOnce() {
	issues := NewEngine(w.corpus).Run().Issues()
	if w.onRun != nil {
		w.onRun(issues)
	}
}

// relevant filters out events that cannot change a check result.
func relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	return filepath.Ext(ev.Name) == ".md" || isDir(ev.Name) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

// addTree watches root and every directory below it.
func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(p)
		}
		return nil
	})
}
