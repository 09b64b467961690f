package debrix

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchEvent reports one debounced rebuild, or a watcher error
type WatchEvent struct {
	// Paths are the rebuilt sources, relative to the source root.
	Paths []string

	// Removed are sources that disappeared; their outputs were deleted.
	Removed []string

	Report *BuildReport
	Err    error
}

// Watcher rebuilds the files of a project as they change
type Watcher struct {
	project  *Project
	debounce time.Duration
	onEvent  func(WatchEvent)
	logger   *zap.Logger
}

// NewWatcher creates a watcher for project. onEvent is called from the
// watching goroutine after every rebuild and error; it may be nil.
func NewWatcher(project *Project, onEvent func(WatchEvent)) *Watcher {
	if onEvent == nil {
		onEvent = func(WatchEvent) {}
	}
	return &Watcher{
		project:  project,
		debounce: WatchDebounce,
		onEvent:  onEvent,
		logger:   project.logger,
	}
}

// SetDebounce changes how long the watcher waits for events to settle
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Run watches the source root recursively until ctx is done. Events are
// collected until none arrive for the debounce interval, then the
// changed files are rebuilt together.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return NewIOError(ErrMsgWatchFailed, w.project.config.SourceDir(), err)
	}
	defer fw.Close()

	root := w.project.config.SourceDir()
	if err := w.addTree(fw, root); err != nil {
		return NewIOError(ErrMsgWatchFailed, root, err)
	}
	w.logger.Info(LogMsgWatchStart, zap.String(LogFieldPath, root))

	debounce := time.NewTimer(w.debounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	changed := make(map[string]struct{})
	removed := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			w.logger.Info(LogMsgWatchStop)
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.logger.Debug(LogMsgWatchEvent,
				zap.String(LogFieldPath, event.Name),
				zap.String(LogFieldEvent, event.Op.String()))

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(fw, event.Name); err != nil {
						w.logger.Error(LogMsgWatchError, zap.Error(err))
					}
					continue
				}
			}

			rel, ok := w.relevant(event.Name)
			if !ok {
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				if _, err := os.Stat(event.Name); errors.Is(err, fs.ErrNotExist) {
					delete(changed, rel)
					removed[rel] = struct{}{}
					debounce.Reset(w.debounce)
					continue
				}
			}
			delete(removed, rel)
			changed[rel] = struct{}{}
			debounce.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error(LogMsgWatchError, zap.Error(err))
			w.onEvent(WatchEvent{Err: err})

		case <-debounce.C:
			event := WatchEvent{
				Paths:   sortedKeys(changed),
				Removed: sortedKeys(removed),
			}
			clear(changed)
			clear(removed)

			for _, rel := range event.Removed {
				w.removeOutputs(rel)
			}
			if len(event.Paths) > 0 {
				w.logger.Info(LogMsgWatchRebuild, zap.Int(LogFieldFiles, len(event.Paths)))
				event.Report, event.Err = w.project.BuildFiles(ctx, event.Paths)
			}
			w.onEvent(event)
		}
	}
}

// relevant maps an event path to its source-relative form and reports
// whether it names an included template
func (w *Watcher) relevant(path string) (string, bool) {
	rel, err := filepath.Rel(w.project.config.SourceDir(), path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	return rel, w.project.config.Includes(rel)
}

// addTree adds dir and its subdirectories, skipping the output directory
// and hidden directories
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) error {
	out := filepath.Clean(w.project.config.OutputDir())
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && (filepath.Clean(path) == out || strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

func (w *Watcher) removeOutputs(rel string) {
	out := w.project.OutputPath(rel)
	for _, path := range []string{out, out + SourceMapExtension} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			w.logger.Warn(LogMsgWatchError, zap.String(LogFieldPath, path), zap.Error(err))
		}
	}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
