// Package decl describes Java declarations: their modifiers, qualified
// names, and the facts checks gather about types and variables while
// walking a file.
package decl

import (
	"github.com/dhamidi/javalint/java/ast"
)

// HasModifier reports whether the MODIFIERS child of n contains a
// modifier of the given kind.
func HasModifier(n ast.Node, kind ast.Kind) bool {
	return !n.FindFirstToken(ast.Modifiers).FindFirstToken(kind).IsZero()
}

func IsFinal(n ast.Node) bool    { return HasModifier(n, ast.Final) }
func IsStatic(n ast.Node) bool   { return HasModifier(n, ast.LiteralStatic) }
func IsAbstract(n ast.Node) bool { return HasModifier(n, ast.Abstract) }

// QualifiedName joins the name of a type declaration with its context.
// An empty string stands for an absent package or outer type. The outer
// type's qualified name takes precedence over the package.
func QualifiedName(pkg, outer, simple string) string {
	switch {
	case outer != "":
		return outer + "." + simple
	case pkg != "":
		return pkg + "." + simple
	}
	return simple
}

// SimpleName returns the part of a qualified name after the last dot.
func SimpleName(qualified string) string {
	for i := len(qualified) - 1; i >= 0; i-- {
		if qualified[i] == '.' {
			return qualified[i+1:]
		}
	}
	return qualified
}

// MatchingPrefix returns the index of the last dot in the longest common
// prefix of two qualified names, or 0 when they share no package or outer
// type. Larger values mean the names are declared closer together.
func MatchingPrefix(a, b string) int {
	result := 0
	for i := 0; i < len(a) && i < len(b) && a[i] == b[i]; i++ {
		if a[i] == '.' {
			result = i
		}
	}
	return result
}
