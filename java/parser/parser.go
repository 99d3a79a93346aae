package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/javalint/java/ast"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithComments materializes comments as tree nodes.
func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

// SyntaxError is a parse error at a source position.
type SyntaxError struct {
	Pos     Position
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

type Parser struct {
	file            string
	includeComments bool
	reader          io.Reader
	input           []byte
	tokens          []Token
	pos             int
	b               *ast.Builder
	carry           []ast.Comment
	errs            []error
	lastErrPos      int
	parens          map[ast.Node]parenGroup
}

type parenGroup struct {
	open  []ast.Node
	close []ast.Node
}

func ParseCompilationUnit(r io.Reader, opts ...Option) *Parser {
	p := &Parser{reader: r}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile is ParseCompilationUnit over an in-memory source.
func ParseFile(file string, src []byte, opts ...Option) (*ast.Tree, error) {
	p := &Parser{file: file, input: src}
	for _, opt := range opts {
		opt(p)
	}
	return p.Finish()
}

func (p *Parser) readAll() error {
	if p.input != nil {
		return nil
	}
	if p.reader == nil {
		p.input = []byte{}
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	p.input = data
	return nil
}

// Finish parses the whole input. The returned tree is usable even when the
// error is non-nil; the error joins every SyntaxError found.
func (p *Parser) Finish() (*ast.Tree, error) {
	if err := p.readAll(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", p.file, err)
	}
	p.b = ast.NewBuilder(p.file, p.includeComments)
	p.tokens = nil
	p.pos = 0
	p.errs = nil
	p.carry = nil
	p.lastErrPos = -1
	p.parens = make(map[ast.Node]parenGroup)
	p.tokenize(NewLexer(p.input, p.file))

	root := p.parseCompilationUnit()
	eof := p.peek()
	trailing := append(p.carry, eof.Comments...)
	tree := p.b.Finish(root, trailing)
	return tree, errors.Join(p.errs...)
}

// Errors returns the syntax errors of the last Finish.
func (p *Parser) Errors() []error {
	return p.errs
}

func (p *Parser) tokenize(lx *Lexer) {
	var pending []ast.Comment
	for {
		tok := lx.NextToken()
		if tok.Kind == ast.SingleLineComment || tok.Kind == ast.BlockCommentBegin {
			if tok.Err != "" {
				p.errorAt(tok.Pos, tok.Err)
			}
			pending = append(pending, ast.Comment{Text: tok.Literal, Line: tok.Pos.Line, Column: tok.Pos.Column})
			continue
		}
		tok.Comments = pending
		pending = nil
		p.tokens = append(p.tokens, tok)
		if tok.Kind == ast.EOF {
			break
		}
	}
}

func (p *Parser) peek() Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) tokenAt(i int) Token {
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) check(kind ast.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...ast.Kind) bool {
	k := p.peek().Kind
	for _, kind := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// checkWord reports whether the current token is the contextual keyword w.
func (p *Parser) checkWord(w string) bool {
	tok := p.peek()
	return tok.Kind == ast.Ident && tok.Literal == w
}

func (p *Parser) wordAt(n int, w string) bool {
	tok := p.peekN(n)
	return tok.Kind == ast.Ident && tok.Literal == w
}

// take consumes the current token and returns a node of the token's kind.
func (p *Parser) take() ast.Node {
	return p.leaf(p.peek().Kind)
}

// leaf consumes the current token and returns a node of the given kind.
func (p *Parser) leaf(kind ast.Kind) ast.Node {
	tok := p.peek()
	if tok.Kind == ast.EOF {
		return ast.Node{}
	}
	p.pos++
	if tok.Err != "" {
		p.errorAt(tok.Pos, tok.Err)
	}
	if kind == 0 {
		p.errorAt(tok.Pos, "unexpected "+tok.String())
		p.carry = append(p.carry, tok.Comments...)
		return ast.Node{}
	}
	n := p.b.Token(kind, tok.Literal, tok.Pos.Line, tok.Pos.Column)
	p.hide(n, tok)
	return n
}

// hide attaches the comments preceding tok, including any carried over
// from skipped tokens, to n.
func (p *Parser) hide(n ast.Node, tok Token) {
	if len(p.carry) > 0 {
		p.b.Hide(n, p.carry)
		p.carry = nil
	}
	p.b.Hide(n, tok.Comments)
}

// skip consumes the current token without creating a node.
func (p *Parser) skip() {
	tok := p.peek()
	if tok.Kind == ast.EOF {
		return
	}
	p.pos++
	p.carry = append(p.carry, tok.Comments...)
}

// expect consumes a token of kind or records an error and returns the zero node.
func (p *Parser) expect(kind ast.Kind) ast.Node {
	if p.check(kind) {
		return p.take()
	}
	p.errorf("expected %s, got %s", describe(kind), p.peek())
	return ast.Node{}
}

func (p *Parser) expectIdent() ast.Node {
	if p.check(ast.Ident) {
		return p.take()
	}
	p.errorf("expected identifier, got %s", p.peek())
	return ast.Node{}
}

func (p *Parser) imaginary(kind ast.Kind) ast.Node {
	return p.b.Imaginary(kind)
}

func (p *Parser) add(parent ast.Node, children ...ast.Node) {
	for _, c := range children {
		p.b.Append(parent, c)
	}
}

// mustProgress returns a function that reports whether the parser has
// advanced since the call, skipping one token when it has not.
func (p *Parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		if p.pos == saved {
			if !p.check(ast.EOF) {
				p.skip()
			}
			return false
		}
		return true
	}
}

func (p *Parser) errorAt(pos Position, msg string) {
	if pos.Offset == p.lastErrPos {
		return
	}
	p.lastErrPos = pos.Offset
	pos.File = p.file
	p.errs = append(p.errs, &SyntaxError{Pos: pos, Message: msg})
}

func (p *Parser) errorf(format string, args ...any) {
	p.errorAt(p.peek().Pos, fmt.Sprintf(format, args...))
}

// recoverTo skips tokens until one of kinds or EOF.
func (p *Parser) recoverTo(kinds ...ast.Kind) {
	if !p.check(ast.EOF) {
		p.skip()
	}
	for !p.check(ast.EOF) && !p.match(kinds...) {
		p.skip()
	}
}

// splitGT turns a leading '>' of >>, >>>, >=, >>= or >>>= into its own token.
func (p *Parser) splitGT() {
	tok := p.peek()
	if tok.Kind == ast.Gt || len(tok.Literal) < 2 || tok.Literal[0] != '>' {
		return
	}
	restText := tok.Literal[1:]
	restKind := ast.Gt
	for _, op := range operators['>'] {
		if op.text == restText {
			restKind = op.kind
		}
	}
	if restText == "=" {
		restKind = ast.Assign
	}
	rest := Token{
		Kind:    restKind,
		Literal: restText,
		Pos:     Position{File: tok.Pos.File, Offset: tok.Pos.Offset + 1, Line: tok.Pos.Line, Column: tok.Pos.Column + 1},
	}
	tok.Kind = ast.Gt
	tok.Literal = ">"
	p.tokens[p.pos] = tok
	p.tokens = append(p.tokens[:p.pos+1], append([]Token{rest}, p.tokens[p.pos+1:]...)...)
}

func (p *Parser) checkGT() bool {
	switch p.peek().Kind {
	case ast.Gt, ast.Sr, ast.Bsr, ast.Ge, ast.SrAssign, ast.BsrAssign:
		return true
	}
	return false
}

func describe(kind ast.Kind) string {
	for _, ops := range operators {
		for _, op := range ops {
			if op.kind == kind {
				return fmt.Sprintf("%q", op.text)
			}
		}
	}
	for word, k := range keywords {
		if k == kind {
			return fmt.Sprintf("%q", word)
		}
	}
	return kind.String()
}
