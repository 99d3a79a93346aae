package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javalint/check"
	"github.com/dhamidi/javalint/java/ast"
)

func TestListKinds(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, listKinds(&out, []string{"CLASS_DEF", "1"}))
	assert.Equal(t, fmt.Sprintf("%d\tCLASS_DEF\n1\tEOF\n", int(ast.ClassDef)), out.String())

	err := listKinds(&out, []string{"NOT_A_KIND"})
	assert.ErrorIs(t, err, ast.ErrUnknownKindName)

	out.Reset()
	require.NoError(t, listKinds(&out, nil))
	assert.Contains(t, out.String(), "\tCLASS_DEF\n")
}

func TestListJavadocKinds(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, listJavadocKinds(&out, []string{"JAVADOC"}))
	assert.Equal(t, fmt.Sprintf("%d\tJAVADOC\n", int(ast.Javadoc)), out.String())
}

func TestJavaFiles(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "A.java")
	b := filepath.Join(root, "p", "B.java")
	require.NoError(t, os.MkdirAll(filepath.Dir(b), 0o755))
	require.NoError(t, os.WriteFile(a, []byte("class A {}"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("class B {}"), 0o644))

	paths, err := javaFiles([]string{root})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, paths)

	_, err = javaFiles([]string{filepath.Join(root, "missing")})
	assert.Error(t, err)
}

func TestCheckCommandExitsOnErrors(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "A.java"), []byte("class A {\n  private A() {}\n}\n"), 0o644))

	var out bytes.Buffer
	cmd := newCheckCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--format", "json", "--severity", "error", root})
	err := cmd.Execute()
	assert.ErrorIs(t, err, errViolations)
	assert.Contains(t, out.String(), `"check": "FinalClass"`)

	assert.False(t, hasErrors([]check.Violation{{Severity: check.Warning}}))
}
