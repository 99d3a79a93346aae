// Package astutil provides navigation helpers over java/ast trees.
package astutil

import (
	"strings"

	"github.com/dhamidi/javalint/java/ast"
)

// FindFirstChild returns the first direct child of n for which match
// returns true.
func FindFirstChild(n ast.Node, match func(ast.Node) bool) (ast.Node, bool) {
	for c := n.FirstChild(); !c.IsZero(); c = c.NextSibling() {
		if match(c) {
			return c, true
		}
	}
	return ast.Node{}, false
}

// ForEachChildOfKind calls fn for every direct child of n of the given
// kind, in sibling order.
func ForEachChildOfKind(n ast.Node, kind ast.Kind, fn func(ast.Node)) {
	for c := n.FirstChild(); !c.IsZero(); c = c.NextSibling() {
		if c.Kind() == kind {
			fn(c)
		}
	}
}

// NextSiblingSkip returns the next sibling of n whose kind is not in skip.
// The zero node is returned at the end of the sibling list.
func NextSiblingSkip(n ast.Node, skip ...ast.Kind) ast.Node {
	s := n.NextSibling()
	for s.Is(skip...) {
		s = s.NextSibling()
	}
	return s
}

// PreviousSiblingSkip is the backward form of NextSiblingSkip.
func PreviousSiblingSkip(n ast.Node, skip ...ast.Kind) ast.Node {
	s := n.PreviousSibling()
	for s.Is(skip...) {
		s = s.PreviousSibling()
	}
	return s
}

var commentKinds = []ast.Kind{ast.SingleLineComment, ast.BlockCommentBegin}

func NextSiblingSkipComments(n ast.Node) ast.Node {
	return NextSiblingSkip(n, commentKinds...)
}

func PreviousSiblingSkipComments(n ast.Node) ast.Node {
	return PreviousSiblingSkip(n, commentKinds...)
}

// IsBeforeInSource reports whether a starts strictly before b.
func IsBeforeInSource(a, b ast.Node) bool {
	return a.Line() < b.Line() || a.Line() == b.Line() && a.Column() < b.Column()
}

// AreOnSameLine reports whether a and b start on the same line.
func AreOnSameLine(a, b ast.Node) bool {
	return a.Line() == b.Line()
}

// FirstNode returns the node of the subtree rooted at root that starts
// first in the source. Ties go to the node visited first in preorder.
func FirstNode(root ast.Node) ast.Node {
	first := root
	Inspect(root, func(n ast.Node) bool {
		if IsBeforeInSource(n, first) {
			first = n
		}
		return true
	}, nil)
	return first
}

// Inspect walks the subtree rooted at root depth-first. enter is called
// before the children of a node; when it returns false the children are
// skipped. leave is called after the children, for every node enter was
// called on. Either callback may be nil.
//
// The walk follows sibling and parent links and uses no stack, so it does
// not grow with the depth of the tree.
func Inspect(root ast.Node, enter func(ast.Node) bool, leave func(ast.Node)) {
	if root.IsZero() {
		return
	}
	n := root
	for {
		descend := enter == nil || enter(n)
		if descend && n.HasChildren() {
			n = n.FirstChild()
			continue
		}
		for {
			if leave != nil {
				leave(n)
			}
			if n == root {
				return
			}
			if next := n.NextSibling(); !next.IsZero() {
				n = next
				break
			}
			n = n.Parent()
		}
	}
}

// FullIdent rebuilds a dotted name such as java.lang.Override from an
// IDENT or a DOT chain. Type arguments and annotations between the
// operands of a DOT are left out.
func FullIdent(n ast.Node) (string, error) {
	var sb strings.Builder
	if err := writeIdent(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeIdent(sb *strings.Builder, n ast.Node) error {
	switch n.Kind() {
	case ast.Dot:
		left := n.FirstChild()
		right := n.LastChild()
		for right.Is(ast.SingleLineComment, ast.BlockCommentBegin) {
			right = right.PreviousSibling()
		}
		if left.IsZero() || right.IsZero() || left == right {
			return ast.Malformed(n, "operand of '.'")
		}
		if err := writeIdent(sb, left); err != nil {
			return err
		}
		sb.WriteByte('.')
		return writeIdent(sb, right)
	case ast.Ident, ast.Star, ast.LiteralThis, ast.LiteralSuper, ast.LiteralClass, ast.LiteralNew:
		sb.WriteString(n.Text())
		return nil
	}
	if n.IsZero() {
		return ast.Malformed(n, "identifier")
	}
	return ast.Malformed(n, "identifier or '.'")
}

// IsTypeDeclaration reports whether kind declares a class, interface,
// enum, record or annotation type.
func IsTypeDeclaration(kind ast.Kind) bool {
	return kind.IsTypeDeclaration()
}

// IsOfType reports whether n has one of the given kinds.
func IsOfType(n ast.Node, kinds ...ast.Kind) bool {
	return n.Is(kinds...)
}

// IsReceiverParameter reports whether n is an explicit receiver
// parameter such as `Outer this` or `Outer Outer.this`.
func IsReceiverParameter(n ast.Node) bool {
	return n.Is(ast.ParameterDef) && n.FindFirstToken(ast.Ident).IsZero()
}

// IsLambdaParameter reports whether n declares a parameter of a lambda
// expression, either as a PARAMETER_DEF or as the bare identifier of
// `x -> ...`.
func IsLambdaParameter(n ast.Node) bool {
	switch n.Kind() {
	case ast.ParameterDef:
		params := n.Parent()
		return params.Is(ast.Parameters) && params.Parent().Is(ast.Lambda)
	case ast.Ident:
		return n.Parent().Is(ast.Lambda) && n.PreviousSibling().IsZero()
	}
	return false
}

// EnclosingOfKind returns the nearest proper ancestor of n with one of
// kinds.
func EnclosingOfKind(n ast.Node, kinds ...ast.Kind) ast.Node {
	for p := n.Parent(); !p.IsZero(); p = p.Parent() {
		if p.Is(kinds...) {
			return p
		}
	}
	return ast.Node{}
}
