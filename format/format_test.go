package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/javalint/java/ast"
	"github.com/dhamidi/javalint/java/parser"
)

func parse(t *testing.T, src string) *ast.Tree {
	t.Helper()
	tree, err := parser.ParseFile("A.java", []byte(src))
	require.NoError(t, err)
	return tree
}

func TestJSONEncoder(t *testing.T) {
	tree := parse(t, "class A {}")
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(tree))

	var root Node
	require.NoError(t, json.Unmarshal(buf.Bytes(), &root))
	assert.Equal(t, "COMPILATION_UNIT", root.Kind)
	require.NotEmpty(t, root.Children)

	class := root.Children[0]
	assert.Equal(t, "CLASS_DEF", class.Kind)
	assert.True(t, class.Imaginary)
	assert.Empty(t, class.Text)
	assert.Equal(t, 1, class.Line)

	var ident *Node
	for _, c := range class.Children {
		if c.Kind == "IDENT" {
			ident = c
		}
	}
	require.NotNil(t, ident)
	assert.Equal(t, "A", ident.Text)
	assert.Equal(t, 7, ident.Column)
}

func TestYAMLEncoder(t *testing.T) {
	tree := parse(t, "class A { int x; }")
	var buf bytes.Buffer
	require.NoError(t, NewYAMLEncoder(&buf).Encode(tree))

	var root Node
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &root))
	assert.Equal(t, NewNode(tree.Root()), &root)
}

func TestTextEncoder(t *testing.T) {
	tree := parse(t, "class A {}")
	var buf bytes.Buffer
	enc, err := NewEncoder("text", &buf)
	require.NoError(t, err)
	require.NoError(t, enc.Encode(tree))
	assert.Equal(t, tree.String(), buf.String())

	buf.Reset()
	positions := NewTextEncoder(&buf)
	positions.Positions = true
	require.NoError(t, positions.Encode(tree))
	assert.True(t, strings.Contains(buf.String(), "[1:7]"), buf.String())
}

func TestNewEncoder(t *testing.T) {
	for _, name := range Names {
		_, err := NewEncoder(name, &bytes.Buffer{})
		assert.NoError(t, err, name)
	}
	_, err := NewEncoder("xml", &bytes.Buffer{})
	assert.ErrorIs(t, err, ast.ErrInvalidArgument)
}
