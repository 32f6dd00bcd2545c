package config

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 500 * time.Millisecond

// Watcher reloads the configuration file into a Manager when it changes on
// disk, so client toggles apply without a restart.
type Watcher struct {
	watcher       *fsnotify.Watcher
	manager       *Manager
	path          string
	debounceTimer *time.Timer
	debounceMutex sync.Mutex
	stopChan      chan struct{}
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(manager *Manager, path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  fw,
		manager:  manager,
		path:     path,
		stopChan: make(chan struct{}),
	}, nil
}

// Start begins watching the config file. Editors replace files rather than
// write in place, so the parent directory is watched and events filtered by
// name.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	go w.watchLoop()
	slog.Info("Config watcher started", "path", w.path)
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.stopChan)

	w.debounceMutex.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.debounceMutex.Unlock()

	w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Config watcher error", "error", err)
		case <-w.stopChan:
			return
		}
	}
}

// scheduleReload debounces rapid successive events into one reload.
func (w *Watcher) scheduleReload() {
	w.debounceMutex.Lock()
	defer w.debounceMutex.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(debounce, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := readConfig(w.path)
	if err != nil {
		slog.Warn("Config reload failed, keeping previous configuration", "path", w.path, "error", err)
		return
	}
	w.manager.Update(cfg)
	slog.Info("Configuration reloaded", "path", w.path)
}
