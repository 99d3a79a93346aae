// Package javadoc classifies comments by the declaration they document.
//
// A comment node is inserted into the tree as the previous sibling of the
// node built from the token that follows it. Where that token lands
// depends on how the declaration starts, so a doc comment can take one of
// a few shapes:
//
//   - plain: the declaration starts with its keyword or name, the comment
//     is a child of the declaration and the MODIFIERS before it are empty;
//   - plain class member: the declaration starts with its type or type
//     parameters, the comment is inside TYPE or TYPE_PARAMETERS;
//   - with modifiers: the comment is the first thing in MODIFIERS;
//   - with an annotation: the comment is the first thing in the first
//     ANNOTATION;
//   - enum constant and package, which carry ANNOTATIONS instead.
package javadoc

import (
	"strings"

	"github.com/dhamidi/javalint/java/ast"
	"github.com/dhamidi/javalint/java/astutil"
)

// DeclarationKind names what a doc comment documents.
type DeclarationKind int

const (
	Class DeclarationKind = iota + 1
	Interface
	Enum
	Record
	AnnotationDef
	Method
	Field
	Constructor
	CompactConstructor
	EnumConstant
	AnnotationField
	Package
)

var declarationKindNames = [...]string{
	Class:              "class",
	Interface:          "interface",
	Enum:               "enum",
	Record:             "record",
	AnnotationDef:      "annotation",
	Method:             "method",
	Field:              "field",
	Constructor:        "constructor",
	CompactConstructor: "compact constructor",
	EnumConstant:       "enum constant",
	AnnotationField:    "annotation field",
	Package:            "package",
}

func (k DeclarationKind) String() string {
	if k <= 0 || int(k) >= len(declarationKindNames) {
		return "unknown"
	}
	return declarationKindNames[k]
}

// IsType reports whether k is a type declaration.
func (k DeclarationKind) IsType() bool {
	return k >= Class && k <= AnnotationDef
}

// IsMember reports whether k is a member of a type.
func (k DeclarationKind) IsMember() bool {
	return k >= Method && k <= AnnotationField
}

func IsOnClass(comment ast.Node) bool {
	return isOnPlainToken(comment, ast.ClassDef, ast.LiteralClass) ||
		isOnTokenWithModifiers(comment, ast.ClassDef) ||
		isOnTokenWithAnnotation(comment, ast.ClassDef)
}

func IsOnInterface(comment ast.Node) bool {
	return isOnPlainToken(comment, ast.InterfaceDef, ast.LiteralInterface) ||
		isOnTokenWithModifiers(comment, ast.InterfaceDef) ||
		isOnTokenWithAnnotation(comment, ast.InterfaceDef)
}

func IsOnEnum(comment ast.Node) bool {
	return isOnPlainToken(comment, ast.EnumDef, ast.Enum) ||
		isOnTokenWithModifiers(comment, ast.EnumDef) ||
		isOnTokenWithAnnotation(comment, ast.EnumDef)
}

func IsOnRecord(comment ast.Node) bool {
	return isOnPlainToken(comment, ast.RecordDef, ast.LiteralRecord) ||
		isOnTokenWithModifiers(comment, ast.RecordDef) ||
		isOnTokenWithAnnotation(comment, ast.RecordDef)
}

func IsOnAnnotationDef(comment ast.Node) bool {
	return isOnPlainToken(comment, ast.AnnotationDef, ast.At) ||
		isOnTokenWithModifiers(comment, ast.AnnotationDef) ||
		isOnTokenWithAnnotation(comment, ast.AnnotationDef)
}

// IsOnType reports whether comment documents a type declaration.
func IsOnType(comment ast.Node) bool {
	return IsOnClass(comment) || IsOnInterface(comment) || IsOnEnum(comment) ||
		IsOnRecord(comment) || IsOnAnnotationDef(comment)
}

func IsOnMethod(comment ast.Node) bool {
	return isOnPlainClassMember(comment, ast.MethodDef) ||
		isOnTokenWithModifiers(comment, ast.MethodDef) ||
		isOnTokenWithAnnotation(comment, ast.MethodDef)
}

// IsOnField reports whether comment documents a field. Local variables
// have the same shapes and are excluded.
func IsOnField(comment ast.Node) bool {
	if isOnPlainClassMember(comment, ast.VariableDef) {
		return true
	}
	if isOnTokenWithModifiers(comment, ast.VariableDef) {
		return comment.Parent().Parent().Parent().Is(ast.ObjBlock)
	}
	if isOnTokenWithAnnotation(comment, ast.VariableDef) {
		return comment.Parent().Parent().Parent().Parent().Is(ast.ObjBlock)
	}
	return false
}

func IsOnConstructor(comment ast.Node) bool {
	return isOnPlainToken(comment, ast.CtorDef, ast.Ident) ||
		isOnTokenWithModifiers(comment, ast.CtorDef) ||
		isOnTokenWithAnnotation(comment, ast.CtorDef) ||
		isOnPlainClassMember(comment, ast.CtorDef)
}

func IsOnCompactConstructor(comment ast.Node) bool {
	return isOnPlainToken(comment, ast.CompactCtorDef, ast.Ident) ||
		isOnTokenWithModifiers(comment, ast.CompactCtorDef) ||
		isOnTokenWithAnnotation(comment, ast.CompactCtorDef)
}

// IsOnEnumConstant reports whether comment documents an enum constant,
// either directly before its name or before its first annotation.
func IsOnEnumConstant(comment ast.Node) bool {
	parent := comment.Parent()
	switch {
	case parent.Is(ast.EnumConstantDef):
		prev := astutil.PreviousSiblingSkipComments(comment)
		return prev.Is(ast.Annotations) && !prev.HasChildren()
	case parent.Is(ast.Annotation):
		return parent.Parent().Parent().Is(ast.EnumConstantDef) &&
			astutil.PreviousSiblingSkipComments(parent).IsZero() &&
			astutil.PreviousSiblingSkipComments(comment).IsZero()
	}
	return false
}

func IsOnAnnotationField(comment ast.Node) bool {
	return isOnPlainClassMember(comment, ast.AnnotationFieldDef) ||
		isOnTokenWithModifiers(comment, ast.AnnotationFieldDef) ||
		isOnTokenWithAnnotation(comment, ast.AnnotationFieldDef)
}

// IsOnMember reports whether comment documents a member of a type.
func IsOnMember(comment ast.Node) bool {
	return IsOnMethod(comment) || IsOnField(comment) || IsOnConstructor(comment) ||
		IsOnEnumConstant(comment) || IsOnAnnotationField(comment) ||
		IsOnCompactConstructor(comment)
}

// IsOnPackage reports whether comment documents the package declaration.
// Line comments may sit between the two.
func IsOnPackage(comment ast.Node) bool {
	if isOnTokenWithAnnotation(comment, ast.PackageDef) {
		return true
	}
	next := astutil.NextSiblingSkip(comment, ast.SingleLineComment)
	return next.Is(ast.PackageDef)
}

// DocumentationFor returns the kind of declaration comment documents.
func DocumentationFor(comment ast.Node) (DeclarationKind, bool) {
	for _, c := range classifiers {
		if c.match(comment) {
			return c.kind, true
		}
	}
	return 0, false
}

var classifiers = []struct {
	kind  DeclarationKind
	match func(ast.Node) bool
}{
	{Class, IsOnClass},
	{Interface, IsOnInterface},
	{Enum, IsOnEnum},
	{Record, IsOnRecord},
	{AnnotationDef, IsOnAnnotationDef},
	{Method, IsOnMethod},
	{Field, IsOnField},
	{Constructor, IsOnConstructor},
	{CompactConstructor, IsOnCompactConstructor},
	{EnumConstant, IsOnEnumConstant},
	{AnnotationField, IsOnAnnotationField},
	{Package, IsOnPackage},
}

// Documented returns the declaration comment is positioned to document:
// a type or member definition, or PACKAGE_DEF.
func Documented(comment ast.Node) (ast.Node, bool) {
	kind, ok := DocumentationFor(comment)
	if !ok {
		return ast.Node{}, false
	}
	parent := comment.Parent()
	switch {
	case kind == Package:
		if parent.Is(ast.Annotation) {
			return parent.Parent().Parent(), true
		}
		return astutil.NextSiblingSkip(comment, ast.SingleLineComment), true
	case kind == EnumConstant:
		if parent.Is(ast.Annotation) {
			return parent.Parent().Parent(), true
		}
		return parent, true
	case parent.Is(ast.Modifiers):
		return parent.Parent(), true
	case parent.Is(ast.Annotation):
		return parent.Parent().Parent(), true
	}
	for parent.Is(ast.Dot) {
		parent = parent.Parent()
	}
	if parent.Is(ast.Type, ast.TypeParameters) {
		return parent.Parent(), true
	}
	return parent, true
}

// IsJavadocComment reports whether the content of a block comment, the
// text between "/*" and "*/", marks it as a doc comment.
func IsJavadocComment(content string) bool {
	return strings.HasPrefix(content, "*")
}

// Content returns the text between the delimiters of a block comment.
func Content(comment ast.Node) string {
	return comment.FindFirstToken(ast.CommentContent).Text()
}

// IsDocComment reports whether comment is a block comment with doc
// content.
func IsDocComment(comment ast.Node) bool {
	return comment.Is(ast.BlockCommentBegin) && IsJavadocComment(Content(comment))
}

// IsCorrectPosition reports whether a doc comment documents a declaration.
// Of several doc comments before the same declaration only the last one
// does.
func IsCorrectPosition(comment ast.Node) bool {
	for s := comment.NextSibling(); !s.IsZero(); s = s.NextSibling() {
		if s.Is(ast.SingleLineComment) {
			continue
		}
		if !s.Is(ast.BlockCommentBegin) {
			break
		}
		if IsDocComment(s) {
			return false
		}
	}
	return IsOnType(comment) || IsOnMember(comment) || IsOnPackage(comment)
}

// DocCommentOf returns the doc comment documenting decl, a type or member
// definition or PACKAGE_DEF.
func DocCommentOf(decl ast.Node) (ast.Node, bool) {
	var candidates []ast.Node
	if decl.Is(ast.PackageDef) {
		for p := decl.PreviousSibling(); p.Is(ast.SingleLineComment, ast.BlockCommentBegin); p = p.PreviousSibling() {
			candidates = append(candidates, p)
		}
	}
	done := false
	astutil.Inspect(decl, func(n ast.Node) bool {
		switch {
		case n == decl:
			return true
		case done:
		case n.Is(ast.SingleLineComment, ast.BlockCommentBegin):
			candidates = append(candidates, n)
		case n.Is(ast.Dot):
			return true
		case !n.IsImaginary():
			done = true
		default:
			return true
		}
		return false
	}, nil)

	for _, c := range candidates {
		if !IsDocComment(c) || !IsCorrectPosition(c) {
			continue
		}
		if documented, ok := Documented(c); ok && documented == decl {
			return c, true
		}
	}
	return ast.Node{}, false
}

func isOnPlainToken(comment ast.Node, parentKind, nextKind ast.Kind) bool {
	return comment.Parent().Is(parentKind) &&
		!astutil.PreviousSiblingSkipComments(comment).HasChildren() &&
		astutil.NextSiblingSkipComments(comment).Is(nextKind)
}

func isOnTokenWithModifiers(comment ast.Node, kind ast.Kind) bool {
	parent := comment.Parent()
	return parent.Is(ast.Modifiers) &&
		parent.Parent().Is(kind) &&
		astutil.PreviousSiblingSkipComments(comment).IsZero()
}

func isOnTokenWithAnnotation(comment ast.Node, kind ast.Kind) bool {
	parent := comment.Parent()
	return parent.Is(ast.Annotation) &&
		astutil.PreviousSiblingSkipComments(parent).IsZero() &&
		parent.Parent().Parent().Is(kind) &&
		astutil.PreviousSiblingSkipComments(comment).IsZero()
}

// isOnPlainClassMember matches a comment before the type of a member
// without modifiers. The type may be qualified.
func isOnPlainClassMember(comment ast.Node, kind ast.Kind) bool {
	if !leading(comment) {
		return false
	}
	parent := comment.Parent()
	for parent.Is(ast.Dot) {
		if !leading(parent) {
			return false
		}
		parent = parent.Parent()
	}
	member := parent.Parent()
	return parent.Is(ast.Type, ast.TypeParameters) &&
		parent.PreviousSibling().Is(ast.Modifiers) &&
		!parent.PreviousSibling().HasChildren() &&
		member.Is(kind) &&
		member.Parent().Is(ast.ObjBlock)
}

// leading reports whether only comments precede n among its siblings.
func leading(n ast.Node) bool {
	for p := n.PreviousSibling(); !p.IsZero(); p = p.PreviousSibling() {
		if !p.Is(ast.SingleLineComment, ast.BlockCommentBegin) {
			return false
		}
	}
	return true
}
