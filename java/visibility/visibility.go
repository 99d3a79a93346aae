// Package visibility classifies the accessibility of Java declarations.
package visibility

import (
	"strings"

	"github.com/dhamidi/javalint/java/ast"
)

// Scope is the accessibility of a declaration. Scopes are totally ordered
// from the widest, Nothing, to the narrowest, AnonInner.
type Scope int

const (
	Nothing Scope = iota
	Public
	Protected
	Package
	Private
	AnonInner
)

var scopeNames = [...]string{
	Nothing:   "nothing",
	Public:    "public",
	Protected: "protected",
	Package:   "package",
	Private:   "private",
	AnonInner: "anoninner",
}

func (s Scope) String() string {
	if s < Nothing || s > AnonInner {
		return "unknown"
	}
	return scopeNames[s]
}

// IsIn reports whether s is contained in other, that is, whether a
// declaration with scope s is visible wherever one with scope other is.
func (s Scope) IsIn(other Scope) bool {
	return s <= other
}

// ParseScope returns the scope named name, ignoring case and surrounding
// blanks.
func ParseScope(name string) (Scope, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for s, n := range scopeNames {
		if n == want {
			return Scope(s), nil
		}
	}
	return Nothing, ast.InvalidArgument("unknown scope %q", name)
}

// MarshalText and UnmarshalText let scopes appear by name in
// configuration files.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Scope) UnmarshalText(text []byte) error {
	parsed, err := ParseScope(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// FromModifiers returns the scope spelled out in a MODIFIERS node. Every
// modifier is examined and the last access modifier wins. When there is
// none, FromModifiers returns Package and false.
func FromModifiers(mods ast.Node) (Scope, bool) {
	scope, explicit := Package, false
	for c := range mods.Children() {
		switch c.Kind() {
		case ast.LiteralPublic:
			scope, explicit = Public, true
		case ast.LiteralProtected:
			scope, explicit = Protected, true
		case ast.LiteralPrivate:
			scope, explicit = Private, true
		}
	}
	return scope, explicit
}

// Of returns the effective scope of a declaration: the scope of its
// modifiers if they name one, else the default for where it is declared.
//
// Defaults: enum constants are public, enum constructors private and other
// enum members package-private; members of interfaces and annotation types
// are public, constructors included; everything else is package-private.
func Of(decl ast.Node) Scope {
	if mods := decl.FindFirstToken(ast.Modifiers); !mods.IsZero() {
		if scope, ok := FromModifiers(mods); ok {
			return scope
		}
	}
	switch {
	case IsInEnumBlock(decl):
		switch decl.Kind() {
		case ast.EnumConstantDef:
			return Public
		case ast.CtorDef:
			return Private
		}
		return Package
	case IsInInterfaceOrAnnotationBlock(decl):
		return Public
	}
	return Package
}

// Surrounding returns the narrowest scope among the type declarations
// enclosing n, n itself included. Crossing an object creation expression
// yields AnonInner. It returns false when n is not inside any type.
func Surrounding(n ast.Node) (Scope, bool) {
	scope, found := Nothing, false
	for t := n; !t.IsZero(); t = t.Parent() {
		switch {
		case t.Kind().IsTypeDeclaration():
			if s := Of(t); !found || scope.IsIn(s) {
				scope, found = s, true
			}
		case t.Is(ast.LiteralNew):
			return AnonInner, true
		}
	}
	return scope, found
}

// enclosingBlock returns the kind of the nearest type declaration or
// object creation expression strictly above n.
func enclosingBlock(n ast.Node) ast.Kind {
	for p := n.Parent(); !p.IsZero(); p = p.Parent() {
		if p.Kind().IsTypeDeclaration() || p.Is(ast.LiteralNew) {
			return p.Kind()
		}
	}
	return 0
}

func IsInEnumBlock(n ast.Node) bool       { return enclosingBlock(n) == ast.EnumDef }
func IsInInterfaceBlock(n ast.Node) bool  { return enclosingBlock(n) == ast.InterfaceDef }
func IsInAnnotationBlock(n ast.Node) bool { return enclosingBlock(n) == ast.AnnotationDef }
func IsInRecordBlock(n ast.Node) bool     { return enclosingBlock(n) == ast.RecordDef }

func IsInInterfaceOrAnnotationBlock(n ast.Node) bool {
	k := enclosingBlock(n)
	return k == ast.InterfaceDef || k == ast.AnnotationDef
}

// IsInCodeBlock reports whether n is inside a method, constructor,
// initializer or lambda body.
func IsInCodeBlock(n ast.Node) bool {
	for p := n.Parent(); !p.IsZero(); p = p.Parent() {
		if p.Is(ast.MethodDef, ast.CtorDef, ast.CompactCtorDef, ast.InstanceInit, ast.StaticInit, ast.Lambda) {
			return true
		}
	}
	return false
}

// IsOuterMostType reports whether no type declaration encloses n.
func IsOuterMostType(n ast.Node) bool {
	for p := n.Parent(); !p.IsZero(); p = p.Parent() {
		if p.Kind().IsTypeDeclaration() {
			return false
		}
	}
	return true
}

// IsLocalVariableDef reports whether n declares a local variable: a
// variable in a block or for header, a declared try resource or a catch
// parameter.
func IsLocalVariableDef(n ast.Node) bool {
	switch n.Kind() {
	case ast.VariableDef:
		return n.Parent().Is(ast.Slist, ast.ForInit, ast.ForEachClause)
	case ast.Resource:
		return n.ChildCount() > 1
	case ast.ParameterDef:
		return n.Parent().Is(ast.LiteralCatch)
	}
	return false
}

// IsClassFieldDef reports whether n is a VARIABLE_DEF declaring a field.
func IsClassFieldDef(n ast.Node) bool {
	return n.Is(ast.VariableDef) && !IsLocalVariableDef(n)
}
