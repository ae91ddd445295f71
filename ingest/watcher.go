package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rvsalt/logger"
	"rvsalt/tabular"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the data directory when export files change. File-save
// bursts (editors and copy tools fire several events per save) collapse into
// one reload via a trailing debounce, and a generation guard drops a slow
// reload that was overtaken by a newer one, so the freshest files always
// win.
type Watcher struct {
	dataDir  string
	fsw      *fsnotify.Watcher
	debounce *tabular.Debouncer
	guard    tabular.ReloadGuard
}

// NewWatcher watches dataDir, debouncing reloads by delay.
func NewWatcher(dataDir string, delay time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if err := fsw.Add(dataDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching data directory '%s': %w", dataDir, err)
	}
	return &Watcher{
		dataDir:  dataDir,
		fsw:      fsw,
		debounce: tabular.NewDebouncer(delay),
	}, nil
}

// Run processes events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	logger.Info("Watching data directory '%s' for export changes", w.dataDir)
	for {
		select {
		case <-ctx.Done():
			w.debounce.Stop()
			w.fsw.Close()
			logger.Info("Data directory watcher stopped.")
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(strings.ToLower(event.Name), ".json") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			logger.Debug("Watcher: %s on %s, scheduling reload", event.Op, event.Name)
			w.debounce.Trigger(w.reload)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Error("Watcher: fsnotify error: %v", err)
		}
	}
}

// reload parses first and applies second: the parse result of a reload that
// is no longer the newest is discarded before it can overwrite fresher data.
func (w *Watcher) reload() {
	gen := w.guard.Next()
	parsed, err := ParseDir(w.dataDir)
	if err != nil {
		logger.Error("Watcher: Reload parse failed: %v", err)
		return
	}
	if !w.guard.Accept(gen) {
		logger.Debug("Watcher: Discarding stale reload (generation %d)", gen)
		return
	}
	if err := Apply(parsed); err != nil {
		logger.Error("Watcher: Reload apply failed: %v", err)
		return
	}
	logger.Info("Watcher: Reloaded %d source(s) from '%s'", len(parsed), w.dataDir)
}
