package ast

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKindID   = errors.New("unknown token id")
	ErrUnknownKindName = errors.New("unknown token name")
	ErrMalformedTree   = errors.New("malformed tree")
	ErrInvalidArgument = errors.New("invalid argument")
)

// UnknownKindError reports a registry lookup that found nothing.
type UnknownKindError struct {
	ID      int
	Name    string
	Javadoc bool
	err     error
}

func (e *UnknownKindError) Error() string {
	ns := "token"
	if e.Javadoc {
		ns = "javadoc token"
	}
	if e.Name != "" || errors.Is(e.err, ErrUnknownKindName) {
		return fmt.Sprintf("unknown %s name %q", ns, e.Name)
	}
	return fmt.Sprintf("unknown %s id %d", ns, e.ID)
}

func (e *UnknownKindError) Unwrap() error { return e.err }

// MalformedTreeError reports a node that lacks a structurally required child.
type MalformedTreeError struct {
	Node     Node
	Expected string
}

// Malformed returns a MalformedTreeError for n.
func Malformed(n Node, expected string) error {
	return &MalformedTreeError{Node: n, Expected: expected}
}

func (e *MalformedTreeError) Error() string {
	if e.Node.IsZero() {
		return fmt.Sprintf("malformed tree: missing %s", e.Expected)
	}
	return fmt.Sprintf("malformed tree: %s at %d:%d: missing %s",
		e.Node.Kind(), e.Node.Line(), e.Node.Column(), e.Expected)
}

func (e *MalformedTreeError) Unwrap() error { return ErrMalformedTree }

// InvalidArgument returns an error wrapping ErrInvalidArgument.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
