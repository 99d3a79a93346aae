package scope

import (
	"github.com/dhamidi/javalint/java/ast"
	"github.com/dhamidi/javalint/java/astutil"
	"github.com/dhamidi/javalint/java/decl"
	"github.com/dhamidi/javalint/java/visibility"
)

// Stats describes the frame stack during collection.
type Stats struct {
	Pushes   int
	Pops     int
	MaxDepth int
}

// Frames holds the frames of one file, keyed by their defining nodes.
type Frames struct {
	byNode map[ast.NodeID]*Frame
	stats  Stats
}

// Collect walks the tree under root once and records every frame and the
// declarations made directly in it.
func Collect(root ast.Node) *Frames {
	fs := &Frames{byNode: make(map[ast.NodeID]*Frame)}
	var stack []*Frame
	current := func() *Frame {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}
	push := func(f *Frame) {
		f.Parent = current()
		fs.byNode[f.Node.ID()] = f
		stack = append(stack, f)
		fs.stats.Pushes++
		fs.stats.MaxDepth = max(fs.stats.MaxDepth, len(stack))
	}

	astutil.Inspect(root, func(n ast.Node) bool {
		declare(current(), n)
		if kind, ok := frameKindOf(n); ok {
			push(&Frame{Kind: kind, Node: n, Name: n.FindFirstToken(ast.Ident)})
		}
		return true
	}, func(n ast.Node) {
		if f := current(); f != nil && f.Node == n {
			stack = stack[:len(stack)-1]
			fs.stats.Pops++
		}
	})
	return fs
}

// Lookup returns the frame defined by n.
func (fs *Frames) Lookup(n ast.Node) (*Frame, bool) {
	if fs == nil || n.IsZero() {
		return nil, false
	}
	f, ok := fs.byNode[n.ID()]
	return f, ok && f.Node == n
}

// Len returns the number of frames.
func (fs *Frames) Len() int { return len(fs.byNode) }

func (fs *Frames) Stats() Stats { return fs.stats }

// frameKindOf reports whether n defines a frame and of which kind.
func frameKindOf(n ast.Node) (FrameKind, bool) {
	switch n.Kind() {
	case ast.ClassDef, ast.InterfaceDef, ast.EnumDef, ast.AnnotationDef, ast.RecordDef:
		return ClassFrame, true
	case ast.LiteralNew:
		if IsAnonymousClass(n) {
			return AnonymousClassFrame, true
		}
	case ast.CtorDef, ast.CompactCtorDef:
		return CtorFrame, true
	case ast.MethodDef:
		return MethodFrame, true
	case ast.Slist:
		return BlockFrame, true
	case ast.LiteralCatch:
		return CatchFrame, true
	case ast.LiteralFor:
		return ForFrame, true
	}
	return 0, false
}

// IsAnonymousClass reports whether n is an object creation expression
// with a class body.
func IsAnonymousClass(n ast.Node) bool {
	return n.Is(ast.LiteralNew) && n.LastChild().Is(ast.ObjBlock)
}

// declare records the declaration made by n, if any, in frame.
func declare(frame *Frame, n ast.Node) {
	if frame == nil {
		return
	}
	switch n.Kind() {
	case ast.VariableDef:
		ident := n.FindFirstToken(ast.Ident)
		switch {
		case ident.IsZero():
		case !frame.IsClass():
			frame.addIdent(ident)
		case visibility.IsInInterfaceBlock(n) || decl.IsStatic(n):
			frame.staticMembers = append(frame.staticMembers, ident)
		default:
			frame.instanceMembers = append(frame.instanceMembers, ident)
		}
	case ast.RecordComponentDef:
		if frame.IsClass() {
			frame.instanceMembers = append(frame.instanceMembers, n.FindFirstToken(ast.Ident))
		}
	case ast.ParameterDef:
		if !astutil.IsReceiverParameter(n) && !astutil.IsLambdaParameter(n) {
			frame.addIdent(n.FindFirstToken(ast.Ident))
		}
	case ast.MethodDef:
		if !frame.IsClass() {
			return
		}
		ident := n.FindFirstToken(ast.Ident)
		if !decl.IsStatic(n) {
			frame.instanceMethods = append(frame.instanceMethods, ident)
		} else {
			frame.staticMethods = append(frame.staticMethods, ident)
		}
	case ast.EnumConstantDef:
		if frame.IsClass() {
			frame.staticMembers = append(frame.staticMembers, n.FindFirstToken(ast.Ident))
		}
	}
}
