package javadoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javalint/java/ast"
	"github.com/dhamidi/javalint/java/astutil"
	"github.com/dhamidi/javalint/java/parser"
)

func parse(t *testing.T, src string) ast.Node {
	t.Helper()
	tree, err := parser.ParseFile("T.java", []byte(src), parser.WithComments())
	require.NoError(t, err)
	return tree.Root()
}

// comment returns the block comment whose content contains marker.
func comment(t *testing.T, root ast.Node, marker string) ast.Node {
	t.Helper()
	var found ast.Node
	astutil.Inspect(root, func(n ast.Node) bool {
		if found.IsZero() && n.Is(ast.BlockCommentBegin, ast.SingleLineComment) && strings.Contains(Content(n), marker) {
			found = n
		}
		return found.IsZero()
	}, nil)
	require.False(t, found.IsZero(), "no comment %q", marker)
	return found
}

const shapes = `
/** package */
package p;

/** plain class */
class A {
  /** plain field */
  int a;
  /** qualified field */
  java.util.List<String> list;
  /** modified field */
  private int b;
  /** annotated field */
  @Deprecated int c;
  /** plain method */
  void m() {
    /** local */
    int local;
    /** modified local */
    final int other = 1;
  }
  /** generic method */
  <T> T id(T t) { return t; }
  /** plain ctor */
  A() {}
  /** modified ctor */
  public A(int x) {}
  /** annotated method */
  @Override public String toString() { return ""; }
  @Deprecated /** between */ public void late() {}
}

/** modified class */
public final class B {}

/** annotated class */
@SuppressWarnings("x")
class C {}

/** plain interface */
interface I {}

/** plain enum */
enum E {
  /** plain constant */
  ONE,
  /** annotated constant */
  @Deprecated TWO;
  /** enum ctor */
  private E() {}
}

/** plain record */
record R(int x) {
  /** compact ctor */
  R {}
}

/** plain annotation */
@interface Ann {
  /** annotation field */
  String value();
}
`

func TestDocumentationFor(t *testing.T) {
	root := parse(t, shapes)

	tests := []struct {
		marker string
		want   DeclarationKind
	}{
		{"package", Package},
		{"plain class", Class},
		{"plain field", Field},
		{"qualified field", Field},
		{"modified field", Field},
		{"annotated field", Field},
		{"plain method", Method},
		{"generic method", Method},
		{"plain ctor", Constructor},
		{"modified ctor", Constructor},
		{"annotated method", Method},
		{"modified class", Class},
		{"annotated class", Class},
		{"plain interface", Interface},
		{"plain enum", Enum},
		{"plain constant", EnumConstant},
		{"annotated constant", EnumConstant},
		{"enum ctor", Constructor},
		{"plain record", Record},
		{"compact ctor", CompactConstructor},
		{"plain annotation", AnnotationDef},
		{"annotation field", AnnotationField},
	}
	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			c := comment(t, root, tt.marker)
			got, ok := DocumentationFor(c)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsCorrectPosition(c))
			assert.Equal(t, tt.want.IsType(), IsOnType(c))
			assert.Equal(t, tt.want.IsMember(), IsOnMember(c))
		})
	}

	for _, marker := range []string{"local", "modified local", "between"} {
		c := comment(t, root, marker)
		_, ok := DocumentationFor(c)
		assert.False(t, ok, marker)
		assert.False(t, IsCorrectPosition(c), marker)
	}
}

func TestDocumented(t *testing.T) {
	root := parse(t, shapes)

	tests := []struct {
		marker string
		kind   ast.Kind
		name   string
	}{
		{"plain class", ast.ClassDef, "A"},
		{"qualified field", ast.VariableDef, "list"},
		{"annotated field", ast.VariableDef, "c"},
		{"generic method", ast.MethodDef, "id"},
		{"annotated constant", ast.EnumConstantDef, "TWO"},
		{"compact ctor", ast.CompactCtorDef, "R"},
	}
	for _, tt := range tests {
		decl, ok := Documented(comment(t, root, tt.marker))
		require.True(t, ok, tt.marker)
		assert.Equal(t, tt.kind, decl.Kind(), tt.marker)
		assert.Equal(t, tt.name, decl.FindFirstToken(ast.Ident).Text(), tt.marker)
	}

	pkg, ok := Documented(comment(t, root, "package"))
	require.True(t, ok)
	assert.Equal(t, ast.PackageDef, pkg.Kind())
}

func TestLastDocCommentWins(t *testing.T) {
	root := parse(t, `
/** first */
// in between
/** second */
class A {
  /** only */
  /* plain block */
  void m() {}
}
`)
	first := comment(t, root, "first")
	second := comment(t, root, "second")
	assert.True(t, IsOnClass(first), "shape alone matches")
	assert.False(t, IsCorrectPosition(first))
	assert.True(t, IsCorrectPosition(second))

	class := root.FindFirstToken(ast.ClassDef)
	doc, ok := DocCommentOf(class)
	require.True(t, ok)
	assert.Equal(t, second, doc)

	method := class.FindFirstToken(ast.ObjBlock).FindFirstToken(ast.MethodDef)
	doc, ok = DocCommentOf(method)
	require.True(t, ok)
	assert.Equal(t, comment(t, root, "only"), doc, "plain block comments do not hide doc comments")
	assert.False(t, IsDocComment(comment(t, root, "plain block")))
}

func TestDocCommentOf(t *testing.T) {
	root := parse(t, shapes)

	pkg := root.FindFirstToken(ast.PackageDef)
	doc, ok := DocCommentOf(pkg)
	require.True(t, ok)
	assert.Equal(t, comment(t, root, "package"), doc)

	var late, enumCtor ast.Node
	astutil.Inspect(root, func(n ast.Node) bool {
		switch {
		case n.Is(ast.MethodDef) && n.FindFirstToken(ast.Ident).Text() == "late":
			late = n
		case n.Is(ast.CtorDef) && n.Parent().Parent().Is(ast.EnumDef):
			enumCtor = n
		}
		return true
	}, nil)

	_, ok = DocCommentOf(late)
	assert.False(t, ok, "a doc comment after an annotation documents nothing")

	doc, ok = DocCommentOf(enumCtor)
	require.True(t, ok)
	assert.Equal(t, comment(t, root, "enum ctor"), doc)

	undocumented := parse(t, "class Z { void m() {} }")
	_, ok = DocCommentOf(undocumented.FindFirstToken(ast.ClassDef))
	assert.False(t, ok)
}

func TestIsJavadocComment(t *testing.T) {
	assert.True(t, IsJavadocComment("* doc "))
	assert.True(t, IsJavadocComment("**"))
	assert.False(t, IsJavadocComment(" plain "))
	assert.False(t, IsJavadocComment(""))

	root := parse(t, "/**/ class A {}")
	var c ast.Node
	astutil.Inspect(root, func(n ast.Node) bool {
		if n.Is(ast.BlockCommentBegin) {
			c = n
		}
		return true
	}, nil)
	assert.Equal(t, "", Content(c))
	assert.False(t, IsDocComment(c), "an empty block comment is not a doc comment")
}

func TestDeclarationKindString(t *testing.T) {
	assert.Equal(t, "enum constant", EnumConstant.String())
	assert.Equal(t, "unknown", DeclarationKind(0).String())
	assert.Equal(t, "unknown", DeclarationKind(99).String())
}

func TestArrayTypedMembers(t *testing.T) {
	root := parse(t, `
class A {
  /** array field */
  int[] f;
  /** array method */
  String[] m() { return null; }
  /** matrix field */
  String[][] grid;
  /** qualified array */
  java.util.List[] lists;
  int /** inside type */ [] h;
}
`)

	tests := []struct {
		marker string
		want   DeclarationKind
		kind   ast.Kind
		name   string
	}{
		{"array field", Field, ast.VariableDef, "f"},
		{"array method", Method, ast.MethodDef, "m"},
		{"matrix field", Field, ast.VariableDef, "grid"},
		{"qualified array", Field, ast.VariableDef, "lists"},
	}
	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			c := comment(t, root, tt.marker)
			got, ok := DocumentationFor(c)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsCorrectPosition(c))

			decl, ok := Documented(c)
			require.True(t, ok)
			assert.Equal(t, tt.kind, decl.Kind())
			assert.Equal(t, tt.name, decl.FindFirstToken(ast.Ident).Text())

			doc, ok := DocCommentOf(decl)
			require.True(t, ok)
			assert.Equal(t, c, doc)
		})
	}

	inside := comment(t, root, "inside type")
	_, ok := DocumentationFor(inside)
	assert.False(t, ok)
	assert.False(t, IsCorrectPosition(inside))
}
