package format

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/javalint/java/ast"
)

// Node is the serialized form of a syntax tree node.
type Node struct {
	Kind      string  `json:"kind" yaml:"kind"`
	Text      string  `json:"text,omitempty" yaml:"text,omitempty"`
	Line      int     `json:"line" yaml:"line"`
	Column    int     `json:"column" yaml:"column"`
	Imaginary bool    `json:"imaginary,omitempty" yaml:"imaginary,omitempty"`
	Children  []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// NewNode converts the subtree rooted at n. Imaginary nodes carry no
// text of their own.
func NewNode(n ast.Node) *Node {
	out := &Node{
		Kind:      n.Kind().String(),
		Line:      n.Line(),
		Column:    n.Column(),
		Imaginary: n.IsImaginary(),
	}
	if !out.Imaginary {
		out.Text = n.Text()
	}
	if n.HasChildren() {
		out.Children = make([]*Node, 0, n.ChildCount())
		for c := range n.Children() {
			out.Children = append(out.Children, NewNode(c))
		}
	}
	return out
}

type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(tree *ast.Tree) error {
	text, err := e.MarshalTree(tree)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalTree(tree *ast.Tree) ([]byte, error) {
	return json.MarshalIndent(NewNode(tree.Root()), "", "  ")
}

type YAMLEncoder struct {
	w io.Writer
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) Encode(tree *ast.Tree) error {
	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(2)
	if err := enc.Encode(NewNode(tree.Root())); err != nil {
		return err
	}
	return enc.Close()
}
