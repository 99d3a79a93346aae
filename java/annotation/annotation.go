// Package annotation finds annotations on Java declarations.
//
// Names are compared against the annotation name exactly as written:
// a lookup for "Override" does not match @java.lang.Override. Callers that
// accept both spellings look up each one.
package annotation

import (
	"strings"

	"github.com/dhamidi/javalint/java/ast"
	"github.com/dhamidi/javalint/java/astutil"
)

// Holder returns the node whose ANNOTATION children annotate decl: the
// ANNOTATIONS child of enum constants and package declarations and the
// MODIFIERS child of everything else. The zero node is returned when decl
// has no holder.
func Holder(decl ast.Node) ast.Node {
	if decl.Is(ast.EnumConstantDef, ast.PackageDef) {
		return decl.FindFirstToken(ast.Annotations)
	}
	return decl.FindFirstToken(ast.Modifiers)
}

// Contains reports whether decl carries at least one annotation.
func Contains(decl ast.Node) bool {
	return !Holder(decl).FindFirstToken(ast.Annotation).IsZero()
}

// Has reports whether decl is annotated with name.
func Has(decl ast.Node, name string) (bool, error) {
	_, ok, err := Find(decl, name)
	return ok, err
}

// HasAny reports whether decl is annotated with one of names.
func HasAny(decl ast.Node, names ...string) (bool, error) {
	if err := checkNames(decl, names...); err != nil {
		return false, err
	}
	_, ok, err := first(decl, func(got string) bool {
		for _, name := range names {
			if got == name {
				return true
			}
		}
		return false
	})
	return ok, err
}

// Find returns the first annotation of decl named name.
func Find(decl ast.Node, name string) (ast.Node, bool, error) {
	if err := checkNames(decl, name); err != nil {
		return ast.Node{}, false, err
	}
	return first(decl, func(got string) bool { return got == name })
}

// Name returns the name of an ANNOTATION node as written, for example
// "Override" or "java.lang.Override".
func Name(annotation ast.Node) (string, error) {
	if !annotation.Is(ast.Annotation) {
		return "", ast.InvalidArgument("%v is not an annotation", annotation)
	}
	if ident := annotation.FindFirstToken(ast.Ident); !ident.IsZero() {
		return ident.Text(), nil
	}
	dot := annotation.FindFirstToken(ast.Dot)
	if dot.IsZero() {
		return "", ast.Malformed(annotation, "annotation name")
	}
	return astutil.FullIdent(dot)
}

func checkNames(decl ast.Node, names ...string) error {
	if decl.IsZero() {
		return ast.InvalidArgument("no declaration")
	}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return ast.InvalidArgument("annotation name is empty or blank")
		}
	}
	return nil
}

func first(decl ast.Node, match func(string) bool) (ast.Node, bool, error) {
	holder := Holder(decl)
	for c := holder.FirstChild(); !c.IsZero(); c = c.NextSibling() {
		if !c.Is(ast.Annotation) {
			continue
		}
		name, err := Name(c)
		if err != nil {
			return ast.Node{}, false, err
		}
		if match(name) {
			return c, true, nil
		}
	}
	return ast.Node{}, false, nil
}
