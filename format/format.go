// Package format writes syntax trees as text, JSON or YAML.
package format

import (
	"io"

	"github.com/dhamidi/javalint/java/ast"
)

// Encoder writes one tree per call.
type Encoder interface {
	Encode(tree *ast.Tree) error
}

// Names lists the supported formats.
var Names = []string{"text", "json", "yaml"}

// NewEncoder returns the encoder for the format called name.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "text", "":
		return &TextEncoder{w: w}, nil
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	}
	return nil, ast.InvalidArgument("unknown tree format %q", name)
}

// TextEncoder writes the indented KIND -> text form, one node per line.
type TextEncoder struct {
	w io.Writer
	// Positions appends [line:column] to every node.
	Positions bool
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(tree *ast.Tree) error {
	text := tree.String()
	if e.Positions {
		text = tree.StringWithPositions()
	}
	_, err := io.WriteString(e.w, text)
	return err
}
