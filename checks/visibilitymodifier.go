package checks

import (
	"regexp"

	"github.com/dhamidi/javalint/check"
	"github.com/dhamidi/javalint/java/annotation"
	"github.com/dhamidi/javalint/java/ast"
	"github.com/dhamidi/javalint/java/decl"
	"github.com/dhamidi/javalint/java/visibility"
)

const msgVisibilityModifier = "Variable '%s' must be private and have accessor methods."

// VisibilityModifier reports fields of classes that are not private.
// Static final fields are always allowed.
type VisibilityModifier struct {
	check.Base
	PackageAllowed         bool
	ProtectedAllowed       bool
	AllowPublicFinalFields bool
	// PublicMemberPattern names public fields that are allowed.
	PublicMemberPattern *regexp.Regexp
	// IgnoreAnnotations exempts fields carrying one of these annotations,
	// by qualified or simple name.
	IgnoreAnnotations []string
}

var defaultIgnoredFieldAnnotations = []string{
	"org.junit.Rule",
	"org.junit.ClassRule",
	"com.google.common.annotations.VisibleForTesting",
}

func NewVisibilityModifier(props check.Properties) (check.Check, error) {
	c := &VisibilityModifier{}
	var err error
	if c.PackageAllowed, err = props.Bool("packageAllowed", false); err != nil {
		return nil, err
	}
	if c.ProtectedAllowed, err = props.Bool("protectedAllowed", false); err != nil {
		return nil, err
	}
	if c.AllowPublicFinalFields, err = props.Bool("allowPublicFinalFields", false); err != nil {
		return nil, err
	}
	if c.PublicMemberPattern, err = props.Pattern("publicMemberPattern", "^serialVersionUID$"); err != nil {
		return nil, err
	}
	if c.IgnoreAnnotations, err = props.Strings("ignoreAnnotationCanonicalNames", defaultIgnoredFieldAnnotations); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *VisibilityModifier) Name() string      { return "VisibilityModifier" }
func (c *VisibilityModifier) Kinds() []ast.Kind { return []ast.Kind{ast.VariableDef} }

func (c *VisibilityModifier) Visit(def ast.Node) error {
	block := def.Parent()
	if !visibility.IsClassFieldDef(def) || !block.Is(ast.ObjBlock) ||
		block.Parent().Is(ast.LiteralNew) || visibility.IsInInterfaceOrAnnotationBlock(def) {
		return nil
	}
	ignored, err := annotatedWithAny(def, c.IgnoreAnnotations)
	if err != nil {
		return err
	}
	name := def.FindFirstToken(ast.Ident)
	if ignored || name.IsZero() || c.isAllowed(def, name.Text()) {
		return nil
	}
	c.Report(name, msgVisibilityModifier, name.Text())
	return nil
}

func (c *VisibilityModifier) isAllowed(def ast.Node, name string) bool {
	scope, _ := visibility.FromModifiers(def.FindFirstToken(ast.Modifiers))
	switch {
	case scope == visibility.Private:
		return true
	case decl.IsStatic(def) && decl.IsFinal(def):
		return true
	case scope == visibility.Package:
		return c.PackageAllowed
	case scope == visibility.Protected:
		return c.ProtectedAllowed
	}
	return c.PublicMemberPattern.MatchString(name) ||
		(c.AllowPublicFinalFields && decl.IsFinal(def))
}

// annotatedWithAny reports whether def has an annotation whose name, or
// whose last name segment, is one of names.
func annotatedWithAny(def ast.Node, names []string) (bool, error) {
	for a := range annotation.Holder(def).Children() {
		if !a.Is(ast.Annotation) {
			continue
		}
		name, err := annotation.Name(a)
		if err != nil {
			return false, err
		}
		for _, want := range names {
			if want == name || decl.SimpleName(want) == decl.SimpleName(name) {
				return true, nil
			}
		}
	}
	return false, nil
}
