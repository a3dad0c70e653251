package codebase

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// FileWatcher polls the codebase root for added, changed and removed
// source files.
type FileWatcher struct {
	codebase *Codebase
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
	seen     map[string]time.Time
}

// fileEvent is one difference between two polls of the source tree.
type fileEvent struct {
	path    string
	removed bool
}

func NewFileWatcher(c *Codebase, interval time.Duration) *FileWatcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &FileWatcher{
		codebase: c,
		interval: interval,
		stop:     make(chan struct{}),
		seen:     make(map[string]time.Time),
	}
}

func (w *FileWatcher) Start() {
	go w.loop()
}

// Stop ends polling. It may be called more than once.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
}

func (w *FileWatcher) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.poll()
		select {
		case <-w.stop:
			return
		case <-ticker.C:
		}
	}
}

// poll applies every change since the previous poll to the codebase.
func (w *FileWatcher) poll() {
	for _, ev := range w.changes(w.snapshot()) {
		w.apply(ev)
	}
}

// apply hands ev to the codebase unless an editor owns the file, in which
// case the editor's copy stays authoritative until it is closed.
func (w *FileWatcher) apply(ev fileEvent) {
	if w.codebase.IsOpen(ev.path) {
		log.Debugf("watcher: %s is open, ignoring disk change", ev.path)
		return
	}
	if ev.removed {
		w.codebase.RemoveFile(ev.path)
		return
	}
	if err := w.codebase.ScanFile(ev.path); err != nil {
		log.Debugf("watcher: %s", err)
	}
}

// snapshot maps every source file below the root, outside hidden
// directories, to its modification time.
func (w *FileWatcher) snapshot() map[string]time.Time {
	root := w.codebase.RootDir()
	files := make(map[string]time.Time)
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		switch {
		case err != nil:
			return nil
		case info.IsDir():
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
		case filepath.Ext(path) == SourceExt:
			files[path] = info.ModTime()
		}
		return nil
	})
	return files
}

// changes diffs current against the previous snapshot and remembers
// current for the next poll. Events are sorted by path.
func (w *FileWatcher) changes(current map[string]time.Time) []fileEvent {
	var events []fileEvent
	for path, mod := range current {
		if last, ok := w.seen[path]; !ok || mod.After(last) {
			events = append(events, fileEvent{path: path})
		}
	}
	for path := range w.seen {
		if _, ok := current[path]; !ok {
			events = append(events, fileEvent{path: path, removed: true})
		}
	}
	w.seen = current

	sort.Slice(events, func(i, j int) bool { return events[i].path < events[j].path })
	return events
}
