package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/javalint/check"
	"github.com/dhamidi/javalint/checks"
)

const finalClassSource = "class A {\n  private A() {}\n}\n"

func newWorkspace(t *testing.T, root string) *Workspace {
	t.Helper()
	return New(root, &check.Runner{
		Registry: checks.NewRegistry(),
		Specs:    []check.Spec{{Name: "FinalClass", Severity: check.Error}},
		Jobs:     2,
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestUpdateFileCachesByContent(t *testing.T) {
	ws := newWorkspace(t, t.TempDir())

	info, changed, err := ws.UpdateFile("A.java", []byte(finalClassSource))
	require.NoError(t, err)
	assert.True(t, changed)
	require.Len(t, info.Violations, 1)
	assert.Equal(t, "FinalClass", info.Violations[0].Check)

	again, changed, err := ws.UpdateFile("A.java", []byte(finalClassSource))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Same(t, info, again)

	_, changed, err = ws.UpdateFile("A.java", []byte("final class A {}\n"))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, ws.GetFile("A.java").Violations)

	assert.Equal(t, Stats{Files: 1, Hits: 1, Misses: 2}, ws.Stats())
}

func TestRemoveFile(t *testing.T) {
	ws := newWorkspace(t, t.TempDir())
	_, _, err := ws.UpdateFile("A.java", []byte(finalClassSource))
	require.NoError(t, err)

	assert.True(t, ws.RemoveFile("A.java"))
	assert.False(t, ws.RemoveFile("A.java"))
	assert.Nil(t, ws.GetFile("A.java"))
	assert.Empty(t, ws.Violations())
}

func TestScanAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "A.java"), finalClassSource)
	writeFile(t, filepath.Join(root, "src", "b", "B.java"), "class B {\n\n  private B() {}\n}\n")
	writeFile(t, filepath.Join(root, "src", "C.java"), "final class C {}\n")
	writeFile(t, filepath.Join(root, "README.md"), "not java")
	writeFile(t, filepath.Join(root, ".git", "D.java"), finalClassSource)
	writeFile(t, filepath.Join(root, "target", "E.java"), finalClassSource)

	ws := newWorkspace(t, root)
	require.NoError(t, ws.ScanAll(context.Background()))

	assert.Equal(t, []string{
		filepath.Join(root, "src", "A.java"),
		filepath.Join(root, "src", "C.java"),
		filepath.Join(root, "src", "b", "B.java"),
	}, ws.Paths())

	vs := ws.Violations()
	require.Len(t, vs, 2)
	assert.Equal(t, filepath.Join(root, "src", "A.java"), vs[0].File)
	assert.Equal(t, filepath.Join(root, "src", "b", "B.java"), vs[1].File)
}

func TestDiagnostics(t *testing.T) {
	diags := Diagnostics([]check.Violation{
		{File: "A.java", Line: 3, Column: 5, Severity: check.Warning, Check: "RequireThis", Message: "m"},
		{File: "A.java", Line: 1, Column: 1, Severity: check.Error, Check: "SyntaxError", Message: "e"},
	})
	require.Len(t, diags, 2)

	d := diags[0]
	assert.Equal(t, protocol.Position{Line: 2, Character: 4}, d.Range.Start)
	assert.Equal(t, protocol.Position{Line: 2, Character: 5}, d.Range.End)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *d.Severity)
	assert.Equal(t, "RequireThis", d.Code.Value)
	assert.Equal(t, "javalint", *d.Source)
	assert.Equal(t, "m", d.Message)

	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[1].Severity)
	assert.Empty(t, Diagnostics(nil))
}

func TestURIToPath(t *testing.T) {
	path, err := uriToPath("file:///home/u/A%20B.java")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/A B.java", path)

	path, err = uriToPath("untitled:1")
	require.NoError(t, err)
	assert.Equal(t, "untitled:1", path)
}

func TestWatcher(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "A.java")
	writeFile(t, path, "final class A {}\n")

	ws := newWorkspace(t, root)
	require.NoError(t, ws.ScanAll(context.Background()))

	changes := make(chan []string, 4)
	w := NewWatcher(ws, func(changed []string) { changes <- changed })
	w.Debounce = 100 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, finalClassSource)

	select {
	case changed := <-changes:
		assert.Equal(t, []string{path}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	require.Len(t, ws.GetFile(path).Violations, 1)

	require.NoError(t, os.Remove(path))
	select {
	case changed := <-changes:
		assert.Equal(t, []string{path}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("no removal reported")
	}
	assert.Nil(t, ws.GetFile(path))
}
