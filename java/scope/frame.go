// Package scope tracks the lexical frames of a Java file and resolves
// identifiers to the frame that declares them.
//
// Frames are collected in one pass over the tree with [Collect]. A check
// then replays them during its own walk with a [Stack], entering and
// leaving the frame of each frame-defining node it passes.
//
// Resolution is name based. Locals are visible only after their
// declaration; members of a class are visible throughout its body.
// Methods are matched by name and number of parameters.
package scope

import (
	"github.com/dhamidi/javalint/java/ast"
	"github.com/dhamidi/javalint/java/astutil"
)

type FrameKind int

const (
	ClassFrame FrameKind = iota
	AnonymousClassFrame
	CtorFrame
	MethodFrame
	BlockFrame
	CatchFrame
	ForFrame
)

var frameKindNames = [...]string{
	ClassFrame:          "class",
	AnonymousClassFrame: "anonymous class",
	CtorFrame:           "constructor",
	MethodFrame:         "method",
	BlockFrame:          "block",
	CatchFrame:          "catch",
	ForFrame:            "for",
}

func (k FrameKind) String() string {
	if k < 0 || int(k) >= len(frameKindNames) {
		return "unknown"
	}
	return frameKindNames[k]
}

// Frame is one lexical scope.
type Frame struct {
	Kind FrameKind
	// Node is the node defining the frame.
	Node ast.Node
	// Name is the IDENT naming a class, method or constructor frame.
	Name   ast.Node
	Parent *Frame

	idents []ast.Node

	instanceMembers []ast.Node
	staticMembers   []ast.Node
	instanceMethods []ast.Node
	staticMethods   []ast.Node
}

// IsClass reports whether f is the frame of a type body, named or
// anonymous.
func (f *Frame) IsClass() bool {
	return f.Kind == ClassFrame || f.Kind == AnonymousClassFrame
}

// Idents returns the identifiers declared directly in a non-class frame,
// in source order.
func (f *Frame) Idents() []ast.Node { return f.idents }

func (f *Frame) addIdent(ident ast.Node) { f.idents = append(f.idents, ident) }

// Contains reports whether f declares the name of ident in a way that is
// visible at ident.
//
// A class frame contains a field with the same name wherever it is
// declared and, when looking for a method, a method with the same name
// and parameter count as the call around ident. Any other frame contains
// only variables, and only those declared before ident.
func (f *Frame) Contains(ident ast.Node, lookForMethod bool) bool {
	if f.IsClass() {
		if lookForMethod && (f.HasInstanceMethod(ident) || f.HasStaticMethod(ident)) {
			return true
		}
		return f.HasInstanceMember(ident) || f.HasStaticMember(ident)
	}
	if lookForMethod {
		return false
	}
	return !f.Declaration(ident).IsZero()
}

// Declaration returns the IDENT that declares the name of ident in f, or
// the zero node. In a non-class frame this is the last matching
// declaration before ident.
func (f *Frame) Declaration(ident ast.Node) ast.Node {
	if f.IsClass() {
		if d := findMember(f.instanceMembers, ident); !d.IsZero() {
			return d
		}
		return findMember(f.staticMembers, ident)
	}
	var found ast.Node
	for _, d := range f.idents {
		if !astutil.IsBeforeInSource(d, ident) {
			break
		}
		if d.Text() == ident.Text() {
			found = d
		}
	}
	return found
}

// Resolve returns the innermost frame, starting at f, that contains the
// name of ident, or nil.
func (f *Frame) Resolve(ident ast.Node, lookForMethod bool) *Frame {
	for frame := f; frame != nil; frame = frame.Parent {
		if frame.Contains(ident, lookForMethod) {
			return frame
		}
	}
	return nil
}

// FindClassFrame resolves ident starting at f, skipping over non-class
// frames that declare the same name, and returns the class frame that
// declares it or nil.
func FindClassFrame(f *Frame, ident ast.Node, lookForMethod bool) *Frame {
	frame := f
	for frame != nil {
		frame = frame.Resolve(ident, lookForMethod)
		if frame == nil || frame.IsClass() {
			return frame
		}
		frame = frame.Parent
	}
	return nil
}

// EnclosingClass returns the nearest class frame at or above f.
func (f *Frame) EnclosingClass() *Frame {
	for frame := f; frame != nil; frame = frame.Parent {
		if frame.IsClass() {
			return frame
		}
	}
	return nil
}

func (f *Frame) HasInstanceMember(ident ast.Node) bool {
	return !findMember(f.instanceMembers, ident).IsZero()
}

func (f *Frame) HasStaticMember(ident ast.Node) bool {
	return !findMember(f.staticMembers, ident).IsZero()
}

func (f *Frame) HasInstanceMethod(ident ast.Node) bool {
	return hasSimilarMethod(f.instanceMethods, ident)
}

func (f *Frame) HasStaticMethod(ident ast.Node) bool {
	return hasSimilarMethod(f.staticMethods, ident)
}

// HasFinalField reports whether f has a final instance field named like
// ident. Record components are final.
func (f *Frame) HasFinalField(ident ast.Node) bool {
	for _, m := range f.instanceMembers {
		if m.Text() != ident.Text() {
			continue
		}
		def := m.Parent()
		if def.Is(ast.RecordComponentDef) {
			return true
		}
		if !def.FindFirstToken(ast.Modifiers).FindFirstToken(ast.Final).IsZero() {
			return true
		}
	}
	return false
}

func findMember(members []ast.Node, ident ast.Node) ast.Node {
	for _, m := range members {
		if m.Text() == ident.Text() {
			return m
		}
	}
	return ast.Node{}
}

// hasSimilarMethod reports whether one of the method names in methods
// matches the call around ident by name and argument count.
func hasSimilarMethod(methods []ast.Node, ident ast.Node) bool {
	args, ok := ArgumentCount(ident)
	if !ok {
		return false
	}
	for _, m := range methods {
		if m.Text() == ident.Text() && ParameterCount(m.Parent()) == args {
			return true
		}
	}
	return false
}

// ArgumentCount returns the number of arguments of the method call whose
// callee is ident, either directly or as the selected name of a DOT.
func ArgumentCount(ident ast.Node) (int, bool) {
	call := ident.Parent()
	if call.Is(ast.Dot) && call.LastChild() == ident {
		call = call.Parent()
	}
	elist := call.FindFirstToken(ast.Elist)
	if !call.Is(ast.MethodCall) || elist.IsZero() {
		return 0, false
	}
	return elist.ChildCountOf(ast.Expr), true
}

// ParameterCount returns the number of declared parameters of a method
// or constructor definition.
func ParameterCount(def ast.Node) int {
	return def.FindFirstToken(ast.Parameters).ChildCountOf(ast.ParameterDef)
}
