package scope

import "github.com/dhamidi/javalint/java/ast"

// Stack replays collected frames during a walk of the same tree.
type Stack struct {
	frames *Frames
	stack  []*Frame
}

func NewStack(frames *Frames) *Stack {
	return &Stack{frames: frames}
}

// Enter pushes the frame defined by n, if there is one.
func (s *Stack) Enter(n ast.Node) {
	if f, ok := s.frames.Lookup(n); ok {
		s.stack = append(s.stack, f)
	}
}

// Leave pops the frame defined by n, if it is the current one.
func (s *Stack) Leave(n ast.Node) {
	if f := s.Current(); f != nil && f.Node == n {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// Current returns the innermost frame, or nil outside of any type.
func (s *Stack) Current() *Frame {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

func (s *Stack) Depth() int { return len(s.stack) }
