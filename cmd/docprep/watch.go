package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	docprep "github.com/alnah/go-docprep"
)

// watchDebounce collapses the burst of events one save produces.
const watchDebounce = 200 * time.Millisecond

// runWatch reprocesses source documents as they are written or created,
// until ctx is done.
func runWatch(ctx context.Context, runner *docprep.Runner, sourceDir, outputDir string, env *Environment, logger *slog.Logger, quiet, verbose bool) error {
	w, err := newSourceWatcher(sourceDir)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	if !quiet {
		fmt.Fprintf(env.Stdout, "Watching %s for changes (Ctrl+C to stop)\n", sourceDir)
	}
	return watchLoop(ctx, w, func(name string) {
		printResult(runner.ProcessFile(ctx, sourceDir, outputDir, name), quiet, verbose, env)
	}, logger)
}

// newSourceWatcher watches sourceDir itself; subdirectories are not
// processed, so they are not watched.
func newSourceWatcher(sourceDir string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := w.Add(sourceDir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watching %s: %w", sourceDir, err)
	}
	return w, nil
}

// watchLoop calls process with the name of every changed document, once per
// burst of events, until ctx is done or the watcher closes.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, process func(name string), logger *slog.Logger) error {
	changed := make(chan string)
	trigger := newDebouncer(ctx, watchDebounce, changed)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if name, ok := documentEvent(ev); ok {
				logger.Debug("change detected", "name", name, "op", ev.Op.String())
				trigger(name)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		case name := <-changed:
			process(name)
		}
	}
}

// documentEvent returns the document name an event concerns, if it is a
// write or create of a visible .md file.
func documentEvent(ev fsnotify.Event) (string, bool) {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
		return "", false
	}
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".md") {
		return "", false
	}
	return name, true
}

// newDebouncer returns a trigger that sends name on out once no trigger
// for the same name happened for delay.
func newDebouncer(ctx context.Context, delay time.Duration, out chan<- string) func(name string) {
	var mu sync.Mutex
	timers := make(map[string]*time.Timer)

	return func(name string) {
		mu.Lock()
		defer mu.Unlock()
		if t, ok := timers[name]; ok {
			t.Stop()
		}
		var t *time.Timer
		t = time.AfterFunc(delay, func() {
			mu.Lock()
			if timers[name] == t {
				delete(timers, name)
			}
			mu.Unlock()
			select {
			case out <- name:
			case <-ctx.Done():
			}
		})
		timers[name] = t
	}
}
