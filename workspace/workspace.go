// Package workspace keeps the check results of a tree of Java files up to
// date as the files change, on disk or in an editor.
//
// Results are cached by content hash, so a file saved without changes, or
// reopened in an editor, is not checked again.
package workspace

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/javalint/check"
)

var log = commonlog.GetLogger("javalint.workspace")

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	runner  *check.Runner
	files   map[string]*FileInfo

	hits, misses int
}

// FileInfo holds the latest results for one file.
type FileInfo struct {
	Path       string
	Hash       [32]byte
	Violations []check.Violation
}

// Stats describes the cache.
type Stats struct {
	Files  int
	Hits   int
	Misses int
}

func New(rootDir string, runner *check.Runner) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		runner:  runner,
		files:   make(map[string]*FileInfo),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// IsJavaFile reports whether path names a Java source file.
func IsJavaFile(path string) bool {
	return filepath.Ext(path) == ".java"
}

// skipDir reports whether the directory named name below the root is
// left out of scans and watches.
func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules" || name == "target" || name == "build"
}

// JavaFiles lists the Java files below root, in lexical order.
func JavaFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != root && skipDir(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if IsJavaFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

// ScanAll checks every Java file below the root directory.
func (w *Workspace) ScanAll(ctx context.Context) error {
	paths, err := JavaFiles(w.rootDir)
	if err != nil {
		return err
	}
	g, ctx := errgroup.WithContext(ctx)
	if w.runner.Jobs > 0 {
		g.SetLimit(w.runner.Jobs)
	}
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, _, err := w.ScanFile(path)
			return err
		})
	}
	return g.Wait()
}

// ScanFile checks the file at path as it is on disk.
func (w *Workspace) ScanFile(path string) (*FileInfo, bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return w.UpdateFile(path, content)
}

// UpdateFile checks content as the new text of path. It reports whether
// the results may differ from the previous ones, which is false when the
// content hash is unchanged.
func (w *Workspace) UpdateFile(path string, content []byte) (*FileInfo, bool, error) {
	hash := blake3.Sum256(content)

	w.mu.Lock()
	if f, ok := w.files[path]; ok && f.Hash == hash {
		w.hits++
		w.mu.Unlock()
		return f, false, nil
	}
	w.misses++
	w.mu.Unlock()

	violations, err := w.runner.CheckSource(path, content)
	if err != nil {
		return nil, false, err
	}
	log.Debugf("checked %s: %d violations", path, len(violations))

	f := &FileInfo{Path: path, Hash: hash, Violations: violations}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = f
	return f, true, nil
}

// RemoveFile forgets path. It reports whether path was known.
func (w *Workspace) RemoveFile(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[path]
	delete(w.files, path)
	return ok
}

func (w *Workspace) GetFile(path string) *FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Paths lists the known files in lexical order.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.files))
	for path := range w.files {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

// Violations returns the violations of every known file, sorted.
func (w *Workspace) Violations() []check.Violation {
	w.mu.RLock()
	var out []check.Violation
	for _, f := range w.files {
		out = append(out, f.Violations...)
	}
	w.mu.RUnlock()
	check.SortViolations(out)
	return out
}

func (w *Workspace) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return Stats{Files: len(w.files), Hits: w.hits, Misses: w.misses}
}
