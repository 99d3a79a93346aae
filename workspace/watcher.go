package workspace

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 250 * time.Millisecond

// Watcher rechecks files of a workspace as they change on disk. Bursts
// of events are collapsed: files are rechecked once no event has arrived
// for Debounce.
type Watcher struct {
	ws       *Workspace
	onChange func(changed []string)
	Debounce time.Duration
}

// NewWatcher returns a watcher that calls onChange with the sorted paths
// whose results changed, removed files included.
func NewWatcher(ws *Workspace, onChange func(changed []string)) *Watcher {
	return &Watcher{
		ws:       ws,
		onChange: onChange,
		Debounce: DefaultDebounce,
	}
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addWatchRecursive(watcher, w.ws.RootDir()); err != nil {
		return err
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(event.Name)
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					if err := addWatchRecursive(watcher, path); err != nil {
						log.Warningf("watching %s: %s", path, err)
					}
					continue
				}
			}
			if !IsJavaFile(path) || event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending[path] = true
			timer.Reset(debounce)
		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			clear(pending)
			slices.Sort(paths)
			if changed := w.refresh(paths); len(changed) > 0 {
				w.onChange(changed)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

// refresh rechecks paths and returns those whose results changed.
func (w *Watcher) refresh(paths []string) []string {
	var changed []string
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if w.ws.RemoveFile(path) {
				changed = append(changed, path)
			}
			continue
		}
		_, updated, err := w.ws.ScanFile(path)
		if err != nil {
			log.Errorf("checking %s: %s", path, err)
			continue
		}
		if updated {
			changed = append(changed, path)
		}
	}
	return changed
}

func addWatchRecursive(watcher *fsnotify.Watcher, root string) error {
	root = filepath.Clean(root)
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && skipDir(entry.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
