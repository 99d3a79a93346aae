package checks

import (
	"strings"

	"github.com/dhamidi/javalint/check"
	"github.com/dhamidi/javalint/java/ast"
	"github.com/dhamidi/javalint/java/astutil"
	"github.com/dhamidi/javalint/java/decl"
	"github.com/dhamidi/javalint/java/scope"
	"github.com/dhamidi/javalint/java/visibility"
)

const msgFinalClass = "Class %s should be declared as final."

// FinalClass reports classes that can only be instantiated from inside
// themselves, because all their constructors are private, and that are
// not extended anywhere in the file, yet are not declared final.
type FinalClass struct {
	check.Base

	pkg   string
	types []*decl.TypeDeclaration
	// classes are the classes of the current top-level type, by
	// qualified name, in declaration order.
	classes map[string]*decl.TypeDeclaration
	order   []string
	// anonymous maps each anonymous class creation to the type
	// declaration it appears in.
	anonymous []anonymousClass
}

type anonymousClass struct {
	node  ast.Node
	outer *decl.TypeDeclaration
}

func NewFinalClass(check.Properties) (check.Check, error) {
	return &FinalClass{}, nil
}

func (c *FinalClass) Name() string { return "FinalClass" }

func (c *FinalClass) Kinds() []ast.Kind {
	return []ast.Kind{
		ast.PackageDef, ast.ClassDef, ast.EnumDef, ast.InterfaceDef,
		ast.AnnotationDef, ast.RecordDef, ast.CtorDef, ast.LiteralNew,
	}
}

func (c *FinalClass) Begin(ctx *check.Context) error {
	c.pkg = ""
	c.types = nil
	c.reset()
	return c.Base.Begin(ctx)
}

func (c *FinalClass) reset() {
	c.classes = make(map[string]*decl.TypeDeclaration)
	c.order = nil
	c.anonymous = nil
}

func (c *FinalClass) Visit(n ast.Node) error {
	switch n.Kind() {
	case ast.PackageDef:
		name, err := astutil.FullIdent(n.FindFirstToken(ast.Annotations).NextSibling())
		if err != nil {
			return err
		}
		c.pkg = name
	case ast.ClassDef, ast.EnumDef, ast.InterfaceDef, ast.AnnotationDef, ast.RecordDef:
		name := n.FindFirstToken(ast.Ident)
		if name.IsZero() {
			return ast.Malformed(n, "type name")
		}
		outer := ""
		if len(c.types) > 0 {
			outer = c.types[len(c.types)-1].QualifiedName
		}
		d := decl.NewTypeDeclaration(n, decl.QualifiedName(c.pkg, outer, name.Text()), len(c.types))
		c.types = append(c.types, d)
		if n.Is(ast.ClassDef) {
			c.classes[d.QualifiedName] = d
			c.order = append(c.order, d.QualifiedName)
		}
	case ast.CtorDef:
		if visibility.IsInEnumBlock(n) || visibility.IsInRecordBlock(n) || len(c.types) == 0 {
			return nil
		}
		facts := &c.types[len(c.types)-1].Facts
		if decl.HasModifier(n, ast.LiteralPrivate) {
			facts.PrivateCtors++
		} else {
			facts.NonPrivateCtors++
		}
	case ast.LiteralNew:
		if scope.IsAnonymousClass(n) && len(c.types) > 0 {
			c.anonymous = append(c.anonymous, anonymousClass{node: n, outer: c.types[len(c.types)-1]})
		}
	}
	return nil
}

func (c *FinalClass) Leave(n ast.Node) error {
	if !astutil.IsTypeDeclaration(n.Kind()) {
		return nil
	}
	c.types = c.types[:len(c.types)-1]
	if len(c.types) > 0 {
		return nil
	}

	for _, anon := range c.anonymous {
		super, ok, err := classTypeName(anon.node)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if d := c.nearest(super, anon.outer.QualifiedName); d != nil {
			d.Facts.AnonymousSubclasses++
		}
	}
	for _, name := range c.order {
		d := c.classes[name]
		super, ok, err := classTypeName(d.Node.FindFirstToken(ast.ExtendsClause))
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if base := c.nearest(super, name); base != nil {
			base.Facts.NestedSubclasses++
		}
	}
	for _, name := range c.order {
		d := c.classes[name]
		if shouldBeFinal(d) {
			c.Report(d.Node, msgFinalClass, d.Name())
		}
	}
	c.reset()
	return nil
}

func shouldBeFinal(d *decl.TypeDeclaration) bool {
	return d.Facts.HasPrivateCtor() &&
		!d.Facts.HasNonPrivateCtor() &&
		!d.Facts.HasNestedSubclass() &&
		!d.Facts.HasAnonymousInnerClass() &&
		!d.Final && !d.Abstract
}

// nearest finds the class named name as seen from the type declaration
// qualified as from. Among the classes whose qualified name ends with
// name it prefers the one sharing the longest prefix with from, then the
// shallowest. Failing that, name is taken as a qualified name.
func (c *FinalClass) nearest(name, from string) *decl.TypeDeclaration {
	suffix := "." + name
	var best *decl.TypeDeclaration
	bestMatch := -1
	for _, qn := range c.order {
		if !strings.HasSuffix(qn, suffix) {
			continue
		}
		d := c.classes[qn]
		match := decl.MatchingPrefix(from, qn)
		if match > bestMatch || (match == bestMatch && d.Depth < best.Depth) {
			best, bestMatch = d, match
		}
	}
	if best != nil {
		return best
	}
	return c.classes[name]
}

// classTypeName returns the name of the class type written as a child of
// n, as in an extends clause or an object creation, without type
// arguments.
func classTypeName(n ast.Node) (string, bool, error) {
	typ, ok := astutil.FindFirstChild(n, func(c ast.Node) bool {
		return c.Is(ast.Ident, ast.Dot)
	})
	if !ok {
		return "", false, nil
	}
	name, err := astutil.FullIdent(typ)
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}
