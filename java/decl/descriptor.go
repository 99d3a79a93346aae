package decl

import (
	"github.com/dhamidi/javalint/java/ast"
)

// TypeFacts are observations about a type declaration made while walking
// the rest of the file. Each field counts the constructs seen, so a pass
// that visits a construct twice shows up as a count of two.
type TypeFacts struct {
	PrivateCtors        int
	NonPrivateCtors     int
	NestedSubclasses    int
	AnonymousSubclasses int
}

func (f TypeFacts) HasPrivateCtor() bool         { return f.PrivateCtors > 0 }
func (f TypeFacts) HasNonPrivateCtor() bool      { return f.NonPrivateCtors > 0 }
func (f TypeFacts) HasNestedSubclass() bool      { return f.NestedSubclasses > 0 }
func (f TypeFacts) HasAnonymousInnerClass() bool { return f.AnonymousSubclasses > 0 }

// TypeDeclaration describes one class, interface, enum, record or
// annotation type of a file.
type TypeDeclaration struct {
	Node          ast.Node
	QualifiedName string
	// Depth counts the type declarations enclosing this one.
	Depth    int
	Final    bool
	Abstract bool
	Facts    TypeFacts
}

// NewTypeDeclaration describes node. The final and abstract modifiers are
// read once, here.
func NewTypeDeclaration(node ast.Node, qualifiedName string, depth int) *TypeDeclaration {
	return &TypeDeclaration{
		Node:          node,
		QualifiedName: qualifiedName,
		Depth:         depth,
		Final:         IsFinal(node),
		Abstract:      IsAbstract(node),
	}
}

// Name returns the simple name of the type.
func (d *TypeDeclaration) Name() string {
	return SimpleName(d.QualifiedName)
}

// Variable describes a variable a check tracks until the end of its scope.
type Variable struct {
	Name string
	// Ident is the IDENT of the declaration.
	Ident ast.Node
	// Type is the TYPE node of the declaration.
	Type ast.Node
	// Scope is the node whose subtree the variable is visible in.
	Scope ast.Node
	// Used is set once a read of the variable is found.
	Used bool
	// InstanceOrClassVar marks a descriptor standing for a field. Fields
	// are tracked only so that references to them are not counted as uses
	// of a local with the same name.
	InstanceOrClassVar bool
}

// NewVariable describes the variable declared by a VARIABLE_DEF.
func NewVariable(def ast.Node) (*Variable, error) {
	ident := def.FindFirstToken(ast.Ident)
	if ident.IsZero() {
		return nil, ast.Malformed(def, "variable name")
	}
	scope := def.Parent()
	if scope.Is(ast.ForInit, ast.ForEachClause) {
		scope = scope.Parent()
	}
	return &Variable{
		Name:  ident.Text(),
		Ident: ident,
		Type:  def.FindFirstToken(ast.Type),
		Scope: scope,
	}, nil
}
