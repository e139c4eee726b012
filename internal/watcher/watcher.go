// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package watcher re-runs a callback whenever a document file changes.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/appcfg/internal/logger"
)

// DefaultDebounce is used when a non-positive debounce is configured.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches one file. The parent directory is watched rather than
// the file itself so that editors that replace the file on save (write to
// a temporary file, then rename) keep triggering events.
type Watcher struct {
	path     string
	debounce time.Duration
}

// New returns a Watcher for path.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving watched path: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{path: abs, debounce: debounce}, nil
}

// Run calls onChange once immediately and then after every burst of
// writes to the file, at most once per debounce interval. It blocks until
// ctx is cancelled, returning nil, or until the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context)) error {
	log := logger.FromContext(ctx)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("error watching %s: %w", filepath.Dir(w.path), err)
	}

	onChange(ctx)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("document changed")
			timer.Reset(w.debounce)

		case <-timer.C:
			onChange(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("file watcher failed: %w", err)
		}
	}
}
