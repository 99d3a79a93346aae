package ast

import (
	"iter"
	"strconv"
	"strings"
)

// NodeID indexes a node inside its Tree.
type NodeID int32

const none NodeID = -1

type node struct {
	kind      Kind
	text      string
	line      int32
	column    int32
	imaginary bool
	parent    NodeID
	first     NodeID
	last      NodeID
	next      NodeID
	prev      NodeID
}

// Tree is the arena holding every node of one compilation unit. A Tree is
// immutable once returned by Builder.Finish and may be shared between
// goroutines.
type Tree struct {
	File  string
	nodes []node
	root  NodeID
}

// Root returns the COMPILATION_UNIT node.
func (t *Tree) Root() Node {
	if t == nil || t.root == none {
		return Node{}
	}
	return Node{t: t, id: t.root}
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Node returns the handle for id, or the zero Node if id is out of range.
func (t *Tree) Node(id NodeID) Node {
	if t == nil || id < 0 || int(id) >= len(t.nodes) {
		return Node{}
	}
	return Node{t: t, id: id}
}

func (t *Tree) String() string {
	var sb strings.Builder
	t.Root().write(&sb, 0, false)
	return sb.String()
}

// StringWithPositions is String with [line:column] after every node.
func (t *Tree) StringWithPositions() string {
	var sb strings.Builder
	t.Root().write(&sb, 0, true)
	return sb.String()
}

// Node is a lightweight handle to a node in a Tree. Handles are comparable
// and may be used as map keys; the zero Node means "absent".
type Node struct {
	t  *Tree
	id NodeID
}

func (n Node) IsZero() bool { return n.t == nil }

func (n Node) Tree() *Tree { return n.t }

func (n Node) ID() NodeID { return n.id }

func (n Node) raw() *node { return &n.t.nodes[n.id] }

func (n Node) at(id NodeID) Node {
	if id == none {
		return Node{}
	}
	return Node{t: n.t, id: id}
}

func (n Node) Kind() Kind {
	if n.IsZero() {
		return 0
	}
	return n.raw().kind
}

// Text returns the source text of a token node, or the kind name for
// imaginary nodes.
func (n Node) Text() string {
	if n.IsZero() {
		return ""
	}
	return n.raw().text
}

// IsImaginary reports whether n was synthesized rather than read from a token.
func (n Node) IsImaginary() bool {
	return !n.IsZero() && n.raw().imaginary
}

// Line is 1-based.
func (n Node) Line() int {
	if n.IsZero() {
		return 0
	}
	return int(n.raw().line)
}

// Column is 1-based.
func (n Node) Column() int {
	if n.IsZero() {
		return 0
	}
	return int(n.raw().column)
}

func (n Node) Parent() Node {
	if n.IsZero() {
		return Node{}
	}
	return n.at(n.raw().parent)
}

func (n Node) FirstChild() Node {
	if n.IsZero() {
		return Node{}
	}
	return n.at(n.raw().first)
}

func (n Node) LastChild() Node {
	if n.IsZero() {
		return Node{}
	}
	return n.at(n.raw().last)
}

func (n Node) NextSibling() Node {
	if n.IsZero() {
		return Node{}
	}
	return n.at(n.raw().next)
}

func (n Node) PreviousSibling() Node {
	if n.IsZero() {
		return Node{}
	}
	return n.at(n.raw().prev)
}

func (n Node) HasChildren() bool {
	return !n.FirstChild().IsZero()
}

// Is reports whether n is present and has one of kinds.
func (n Node) Is(kinds ...Kind) bool {
	if n.IsZero() {
		return false
	}
	k := n.Kind()
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// FindFirstToken returns the first direct child of kind k.
func (n Node) FindFirstToken(k Kind) Node {
	for c := n.FirstChild(); !c.IsZero(); c = c.NextSibling() {
		if c.Kind() == k {
			return c
		}
	}
	return Node{}
}

// ChildCount returns the number of direct children.
func (n Node) ChildCount() int {
	count := 0
	for c := n.FirstChild(); !c.IsZero(); c = c.NextSibling() {
		count++
	}
	return count
}

// ChildCountOf returns the number of direct children of kind k.
func (n Node) ChildCountOf(k Kind) int {
	count := 0
	for c := n.FirstChild(); !c.IsZero(); c = c.NextSibling() {
		if c.Kind() == k {
			count++
		}
	}
	return count
}

// Children iterates over the direct children in source order.
func (n Node) Children() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for c := n.FirstChild(); !c.IsZero(); c = c.NextSibling() {
			if !yield(c) {
				return
			}
		}
	}
}

func (n Node) String() string {
	if n.IsZero() {
		return "<nil>"
	}
	return n.Kind().String() + " -> " + n.Text() + " [" +
		strconv.Itoa(n.Line()) + ":" + strconv.Itoa(n.Column()) + "]"
}

func (n Node) write(sb *strings.Builder, indent int, showPositions bool) {
	if n.IsZero() {
		return
	}
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Kind().String())
	if !n.IsImaginary() {
		sb.WriteString(" -> ")
		sb.WriteString(strconv.Quote(n.Text()))
	}
	if showPositions {
		sb.WriteString(" [")
		sb.WriteString(strconv.Itoa(n.Line()))
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(n.Column()))
		sb.WriteString("]")
	}
	sb.WriteString("\n")
	for c := n.FirstChild(); !c.IsZero(); c = c.NextSibling() {
		c.write(sb, indent+1, showPositions)
	}
}
