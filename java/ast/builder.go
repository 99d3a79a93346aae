package ast

import (
	"strings"
	"unicode/utf8"
)

// Comment is a comment token as read by the lexer, including delimiters.
type Comment struct {
	Text   string
	Line   int
	Column int
}

// Block reports whether c is a /* ... */ comment.
func (c Comment) Block() bool {
	return strings.HasPrefix(c.Text, "/*")
}

// Builder assembles a Tree. Nodes are created detached and linked with
// Append; Finish computes positions of imaginary nodes, materializes
// comments and compacts the arena into preorder.
type Builder struct {
	tree     *Tree
	hidden   map[NodeID][]Comment
	comments bool
}

// NewBuilder returns a builder for file. When withComments is false,
// comments passed to Hide and Finish are dropped.
func NewBuilder(file string, withComments bool) *Builder {
	return &Builder{
		tree:     &Tree{File: file, root: none},
		hidden:   make(map[NodeID][]Comment),
		comments: withComments,
	}
}

func (b *Builder) add(n node) Node {
	n.parent, n.first, n.last, n.next, n.prev = none, none, none, none, none
	b.tree.nodes = append(b.tree.nodes, n)
	return Node{t: b.tree, id: NodeID(len(b.tree.nodes) - 1)}
}

// Token creates a detached node read from source text at line:column.
func (b *Builder) Token(kind Kind, text string, line, column int) Node {
	return b.add(node{kind: kind, text: text, line: int32(line), column: int32(column)})
}

// Imaginary creates a detached synthesized node whose text is its kind name.
func (b *Builder) Imaginary(kind Kind) Node {
	return b.add(node{kind: kind, text: kind.String(), imaginary: true})
}

// SetKind reclassifies a node created by this builder.
func (b *Builder) SetKind(n Node, kind Kind) {
	r := n.raw()
	r.kind = kind
	if r.imaginary {
		r.text = kind.String()
	}
}

// Hide records comments that precede the token n was created from.
func (b *Builder) Hide(n Node, comments []Comment) {
	if !b.comments || len(comments) == 0 || n.IsZero() {
		return
	}
	b.hidden[n.id] = append(b.hidden[n.id], comments...)
}

func (b *Builder) unlink(n Node) {
	r := n.raw()
	if r.parent == none {
		return
	}
	p := &b.tree.nodes[r.parent]
	if r.prev != none {
		b.tree.nodes[r.prev].next = r.next
	} else {
		p.first = r.next
	}
	if r.next != none {
		b.tree.nodes[r.next].prev = r.prev
	} else {
		p.last = r.prev
	}
	r.parent, r.next, r.prev = none, none, none
}

// Append makes child the last child of parent. A zero child is ignored; an
// attached child is moved.
func (b *Builder) Append(parent, child Node) {
	if child.IsZero() || parent.IsZero() {
		return
	}
	b.unlink(child)
	p := parent.raw()
	c := child.raw()
	c.parent = parent.id
	c.prev = p.last
	if p.last != none {
		b.tree.nodes[p.last].next = child.id
	} else {
		p.first = child.id
	}
	p.last = child.id
}

func (b *Builder) insertBefore(ref, n Node) {
	b.unlink(n)
	r := ref.raw()
	c := n.raw()
	c.parent = r.parent
	c.next = ref.id
	c.prev = r.prev
	if r.prev != none {
		b.tree.nodes[r.prev].next = n.id
	} else if r.parent != none {
		b.tree.nodes[r.parent].first = n.id
	}
	r.prev = n.id
}

func (b *Builder) insertAfter(ref, n Node) {
	next := ref.NextSibling()
	if !next.IsZero() {
		b.insertBefore(next, n)
		return
	}
	b.Append(ref.Parent(), n)
}

// Clone deep-copies n without its hidden comments.
func (b *Builder) Clone(n Node) Node {
	if n.IsZero() {
		return Node{}
	}
	src := *n.raw()
	cp := b.add(node{kind: src.kind, text: src.text, line: src.line, column: src.column, imaginary: src.imaginary})
	for c := n.FirstChild(); !c.IsZero(); c = c.NextSibling() {
		b.Append(cp, b.Clone(c))
	}
	return cp
}

// Finish completes the tree rooted at root. Trailing comments follow the
// last node in preorder.
func (b *Builder) Finish(root Node, trailing []Comment) *Tree {
	b.tree.root = root.id
	b.resolvePositions(root)

	if b.comments {
		for id, comments := range b.hidden {
			target := Node{t: b.tree, id: id}
			if target.id == root.id {
				continue
			}
			for _, c := range comments {
				b.insertBefore(target, b.commentNode(c))
			}
		}
		if len(trailing) > 0 {
			last := root
			for last.HasChildren() {
				last = last.LastChild()
			}
			for _, c := range trailing {
				cn := b.commentNode(c)
				if last.id == root.id {
					b.Append(root, cn)
				} else {
					b.insertAfter(last, cn)
				}
				last = cn
			}
		}
	}

	return b.compact(root)
}

func (b *Builder) commentNode(c Comment) Node {
	if !c.Block() {
		begin := b.Token(SingleLineComment, "//", c.Line, c.Column)
		content := strings.TrimPrefix(c.Text, "//")
		b.Append(begin, b.Token(CommentContent, content, c.Line, c.Column+2))
		return begin
	}
	begin := b.Token(BlockCommentBegin, "/*", c.Line, c.Column)
	body := strings.TrimPrefix(c.Text, "/*")
	closed := strings.HasSuffix(body, "*/") && len(c.Text) >= 4
	if closed {
		body = strings.TrimSuffix(body, "*/")
	}
	b.Append(begin, b.Token(CommentContent, body, c.Line, c.Column+2))
	if closed {
		line, col := c.Line, c.Column+2
		if i := strings.LastIndexByte(body, '\n'); i >= 0 {
			line += strings.Count(body, "\n")
			col = utf8.RuneCountInString(body[i+1:]) + 1
		} else {
			col += utf8.RuneCountInString(body)
		}
		b.Append(begin, b.Token(BlockCommentEnd, "*/", line, col))
	}
	return begin
}

// resolvePositions gives imaginary nodes the position of their earliest
// descendant, or of the nearest following sibling when they have no
// children. A token child may hold descendants that start before it, as
// the element type of int[].class does.
func (b *Builder) resolvePositions(root Node) {
	nodes := b.tree.nodes
	type pos struct{ line, col int32 }
	earliestOf := make([]pos, len(nodes))

	var resolve func(id NodeID) pos
	var earliest func(id NodeID) pos

	// earliest returns the smallest position in the subtree of id.
	earliest = func(id NodeID) pos {
		if p := earliestOf[id]; p.line > 0 {
			return p
		}
		best := resolve(id)
		for c := nodes[id].first; c != none; c = nodes[c].next {
			if p := earliest(c); p.line < best.line || p.line == best.line && p.col < best.col {
				best = p
			}
		}
		earliestOf[id] = best
		return best
	}

	resolve = func(id NodeID) pos {
		r := &nodes[id]
		if r.line > 0 {
			return pos{r.line, r.column}
		}
		var best pos
		if r.first != none {
			for c := r.first; c != none; c = nodes[c].next {
				p := earliest(c)
				if best.line == 0 || p.line < best.line || p.line == best.line && p.col < best.col {
					best = p
				}
			}
		} else {
			for cur := id; cur != none; cur = nodes[cur].parent {
				if next := nodes[cur].next; next != none {
					best = earliest(next)
					break
				}
			}
		}
		if best.line == 0 {
			best = pos{1, 1}
		}
		r.line, r.column = best.line, best.col
		return best
	}

	stack := []NodeID{root.id}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		resolve(id)
		for c := nodes[id].first; c != none; c = nodes[c].next {
			stack = append(stack, c)
		}
	}
}

// compact copies the nodes reachable from root into a new arena in
// preorder, so ids grow in document order.
func (b *Builder) compact(root Node) *Tree {
	src := b.tree.nodes
	out := &Tree{File: b.tree.File, nodes: make([]node, 0, len(src))}
	remap := make(map[NodeID]NodeID, len(src))

	stack := []NodeID{root.id}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		remap[id] = NodeID(len(out.nodes))
		out.nodes = append(out.nodes, src[id])
		var children []NodeID
		for c := src[id].first; c != none; c = src[c].next {
			children = append(children, c)
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	link := func(id NodeID) NodeID {
		if id == none {
			return none
		}
		if nid, ok := remap[id]; ok {
			return nid
		}
		return none
	}
	for i := range out.nodes {
		n := &out.nodes[i]
		n.parent = link(n.parent)
		n.first = link(n.first)
		n.last = link(n.last)
		n.next = link(n.next)
		n.prev = link(n.prev)
	}
	out.nodes[0].parent, out.nodes[0].next, out.nodes[0].prev = none, none, none
	out.root = 0
	return out
}
