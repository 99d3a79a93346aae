package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javalint/java/ast"
	"github.com/dhamidi/javalint/java/astutil"
	"github.com/dhamidi/javalint/java/parser"
)

func parse(t *testing.T, src string) ast.Node {
	t.Helper()
	tree, err := parser.ParseFile("T.java", []byte(src))
	require.NoError(t, err)
	return tree.Root()
}

// idents returns every IDENT named name, in source order.
func idents(root ast.Node, name string) []ast.Node {
	var out []ast.Node
	astutil.Inspect(root, func(n ast.Node) bool {
		if n.Is(ast.Ident) && n.Text() == name {
			out = append(out, n)
		}
		return true
	}, nil)
	return out
}

// frameAt returns the innermost frame enclosing n.
func frameAt(fs *Frames, n ast.Node) *Frame {
	for p := n.Parent(); !p.IsZero(); p = p.Parent() {
		if f, ok := fs.Lookup(p); ok {
			return f
		}
	}
	return nil
}

const nested = `
class Outer {
  int field;
  void m(int p) {
    for (int i = 0; i < p; i++) {
      try {
        Runnable r = new Runnable() {
          public void run() { int inner; }
        };
      } catch (Exception e) {
        { int deep; }
      }
    }
  }
  static class Nested {
    Nested() {}
    record R(int c) { R {} }
  }
}
`

func TestCollectSymmetry(t *testing.T) {
	root := parse(t, nested)
	fs := Collect(root)
	stats := fs.Stats()

	assert.Equal(t, stats.Pushes, stats.Pops)
	assert.Equal(t, fs.Len(), stats.Pushes)

	// Replaying the frames must track the nesting of frame-defining
	// nodes at every point of the walk.
	stack := NewStack(fs)
	depth, maxDepth := 0, 0
	astutil.Inspect(root, func(n ast.Node) bool {
		if _, ok := frameKindOf(n); ok {
			depth++
		}
		stack.Enter(n)
		assert.Equal(t, depth, stack.Depth(), "entering %v", n)
		maxDepth = max(maxDepth, depth)
		return true
	}, func(n ast.Node) {
		stack.Leave(n)
		if _, ok := frameKindOf(n); ok {
			depth--
		}
		assert.Equal(t, depth, stack.Depth(), "leaving %v", n)
	})
	assert.Equal(t, 0, stack.Depth())
	assert.Nil(t, stack.Current())
	assert.Equal(t, maxDepth, stats.MaxDepth)
}

func TestFrameKinds(t *testing.T) {
	root := parse(t, nested)
	fs := Collect(root)

	kinds := map[FrameKind]int{}
	astutil.Inspect(root, func(n ast.Node) bool {
		if f, ok := fs.Lookup(n); ok {
			kinds[f.Kind]++
			assert.Equal(t, n, f.Node)
		}
		return true
	}, nil)
	assert.Equal(t, 3, kinds[ClassFrame])
	assert.Equal(t, 1, kinds[AnonymousClassFrame])
	assert.Equal(t, 2, kinds[CtorFrame])
	assert.Equal(t, 2, kinds[MethodFrame])
	assert.Equal(t, 1, kinds[ForFrame])
	assert.Equal(t, 1, kinds[CatchFrame])
	assert.Equal(t, 8, kinds[BlockFrame])

	inner := idents(root, "inner")[0]
	f := frameAt(fs, inner)
	require.NotNil(t, f)
	assert.Equal(t, BlockFrame, f.Kind)
	assert.Equal(t, MethodFrame, f.Parent.Kind)
	assert.Equal(t, "run", f.Parent.Name.Text())
	assert.Equal(t, AnonymousClassFrame, f.Parent.Parent.Kind)
	assert.Equal(t, "Outer", f.EnclosingClass().Parent.EnclosingClass().Name.Text())
}

func TestDeclarations(t *testing.T) {
	root := parse(t, nested)
	fs := Collect(root)

	i := idents(root, "i")[0]
	forFrame, ok := fs.Lookup(i.Parent().Parent().Parent())
	require.True(t, ok)
	assert.Equal(t, ForFrame, forFrame.Kind)
	assert.Equal(t, []ast.Node{i}, forFrame.Idents())

	e := idents(root, "e")[0]
	catchFrame := frameAt(fs, e)
	assert.Equal(t, CatchFrame, catchFrame.Kind)
	assert.Equal(t, []ast.Node{e}, catchFrame.Idents())

	p := idents(root, "p")[0]
	method := frameAt(fs, p)
	assert.Equal(t, MethodFrame, method.Kind)
	assert.Equal(t, []ast.Node{p}, method.Idents())

	outer := method.Parent
	require.True(t, outer.IsClass())
	assert.True(t, outer.HasInstanceMember(idents(root, "field")[0]))
	assert.False(t, outer.HasStaticMember(idents(root, "field")[0]))

	c := idents(root, "c")[0]
	record := frameAt(fs, c)
	assert.Equal(t, "R", record.Name.Text())
	assert.True(t, record.HasInstanceMember(c))
	assert.True(t, record.HasFinalField(c))
}

func TestLocalsAreOrdered(t *testing.T) {
	root := parse(t, "class A { void m() { use(local); int local = 1; use(local); } }")
	fs := Collect(root)

	uses := idents(root, "local")
	require.Len(t, uses, 3)
	before, decl, after := uses[0], uses[1], uses[2]

	block := frameAt(fs, before)
	require.Equal(t, BlockFrame, block.Kind)

	assert.False(t, block.Contains(before, false))
	assert.Nil(t, block.Resolve(before, false))
	assert.True(t, block.Contains(after, false))
	assert.Equal(t, block, block.Resolve(after, false))
	assert.Equal(t, decl, block.Declaration(after))
	assert.False(t, block.Contains(after, true), "blocks never declare methods")
}

func TestClassMembersAreUnordered(t *testing.T) {
	root := parse(t, `
class A {
  void m() { use(f); helper(1); helper(); stat(1, 2); }
  int f;
  void helper(int x) {}
  static void stat(int a, int b) {}
  static int counter;
}
`)
	fs := Collect(root)

	f := idents(root, "f")[0]
	frame := frameAt(fs, f).Resolve(f, false)
	require.NotNil(t, frame)
	assert.Equal(t, ClassFrame, frame.Kind)
	assert.True(t, frame.HasInstanceMember(f))
	assert.Equal(t, idents(root, "f")[1], frame.Declaration(f))

	helpers := idents(root, "helper")
	current := frameAt(fs, helpers[0])
	assert.Equal(t, frame, current.Resolve(helpers[0], true), "one argument matches helper(int)")
	assert.Nil(t, current.Resolve(helpers[1], true), "no helper without parameters")
	assert.True(t, frame.HasInstanceMethod(helpers[0]))
	assert.False(t, frame.HasStaticMethod(helpers[0]))

	stat := idents(root, "stat")[0]
	assert.True(t, frame.HasStaticMethod(stat))
	assert.False(t, frame.HasInstanceMethod(stat))

	assert.Equal(t, frame, current.Resolve(f, true), "a field of the same name stops method lookup")
	assert.False(t, frame.HasFinalField(f))
}

func TestFieldStopsMethodLookup(t *testing.T) {
	root := parse(t, `
class Outer {
  void foo() {}
  int bar;
  class Inner {
    int foo;
    void m() { foo(); bar(); }
  }
}
`)
	fs := Collect(root)

	call := idents(root, "foo")[2]
	current := frameAt(fs, call)
	inner := current.Resolve(call, true)
	require.NotNil(t, inner)
	assert.Equal(t, ClassFrame, inner.Kind)
	assert.Equal(t, "Inner", inner.Name.Text())
	assert.Equal(t, inner, FindClassFrame(current, call, true))
	assert.False(t, inner.HasInstanceMethod(call))

	bar := idents(root, "bar")[1]
	outer := FindClassFrame(frameAt(fs, bar), bar, true)
	require.NotNil(t, outer)
	assert.Equal(t, "Outer", outer.Name.Text())
}

func TestFindClassFrame(t *testing.T) {
	root := parse(t, `
class A {
  int x;
  final int y = 0;
  void m(int x) { use(x); use(y); use(z); }
}
`)
	fs := Collect(root)

	x := idents(root, "x")[2]
	method := frameAt(fs, x).Parent
	require.Equal(t, MethodFrame, method.Kind)

	assert.Equal(t, method, frameAt(fs, x).Resolve(x, false))
	class := FindClassFrame(frameAt(fs, x), x, false)
	require.NotNil(t, class)
	assert.Equal(t, ClassFrame, class.Kind)

	y := idents(root, "y")[1]
	assert.Equal(t, class, FindClassFrame(frameAt(fs, y), y, false))
	assert.True(t, class.HasFinalField(y))

	z := idents(root, "z")[0]
	assert.Nil(t, FindClassFrame(frameAt(fs, z), z, false))
}

func TestStaticMembers(t *testing.T) {
	root := parse(t, `
interface I { int K = 1; }
enum E { ONE, TWO; int ordinalish; }
`)
	fs := Collect(root)

	k := idents(root, "K")[0]
	iface := frameAt(fs, k)
	assert.True(t, iface.HasStaticMember(k))
	assert.False(t, iface.HasInstanceMember(k))

	one := idents(root, "ONE")[0]
	enum := frameAt(fs, one)
	assert.True(t, enum.HasStaticMember(one))
	assert.True(t, enum.HasInstanceMember(idents(root, "ordinalish")[0]))
}

func TestArgumentCount(t *testing.T) {
	root := parse(t, "class A { void m() { a(); b(1, x -> x, 3); this.c(1); d.e(); } }")

	tests := []struct {
		name string
		want int
		ok   bool
	}{
		{"a", 0, true},
		{"b", 3, true},
		{"c", 1, true},
		{"e", 0, true},
		{"d", 0, false},
		{"m", 0, false},
	}
	for _, tt := range tests {
		got, ok := ArgumentCount(idents(root, tt.name)[0])
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}
