package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/javalint/java/ast"
)

// Lexer splits Java source into tokens. Whitespace is dropped; comments are
// returned as SINGLE_LINE_COMMENT or BLOCK_COMMENT_BEGIN tokens carrying the
// whole comment text.
type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) peekRune() (rune, int) {
	if l.pos >= len(l.input) {
		return 0, 0
	}
	if b := l.input[l.pos]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(l.input[l.pos:])
}

// advance consumes one byte. Columns count characters, so UTF-8
// continuation bytes do not move the column.
func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	switch {
	case ch == '\n':
		l.line++
		l.column = 1
	case ch&0xC0 != 0x80:
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r', '\n', '\f':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	start := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: ast.EOF, Pos: start}
	}

	ch := l.peek()

	if ch == '/' && l.peekN(1) == '/' {
		return l.scanLineComment(start)
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(start)
	}

	if r, _ := l.peekRune(); isJavaLetter(r) {
		return l.scanIdentOrKeyword(start)
	}

	if isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))) {
		return l.scanNumber(start)
	}

	if ch == '\'' {
		return l.scanCharLiteral(start)
	}

	if ch == '"' {
		if l.peekN(1) == '"' && l.peekN(2) == '"' {
			return l.scanTextBlock(start)
		}
		return l.scanStringLiteral(start)
	}

	return l.scanOperator(start)
}

func (l *Lexer) token(kind ast.Kind, start Position) Token {
	return Token{
		Kind:    kind,
		Pos:     start,
		Literal: string(l.input[start.Offset:l.pos]),
	}
}

func (l *Lexer) scanLineComment(start Position) Token {
	l.advanceN(2)
	for l.peek() != 0 && l.peek() != '\n' && l.peek() != '\r' {
		l.advance()
	}
	return l.token(ast.SingleLineComment, start)
}

func (l *Lexer) scanBlockComment(start Position) Token {
	l.advanceN(2)
	for {
		if l.pos >= len(l.input) {
			tok := l.token(ast.BlockCommentBegin, start)
			tok.Err = "unterminated comment"
			return tok
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advance()
	}
	return l.token(ast.BlockCommentBegin, start)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for {
		r, size := l.peekRune()
		if size == 0 || !isJavaLetterOrDigit(r) {
			break
		}
		l.advanceN(size)
	}
	literal := string(l.input[start.Offset:l.pos])

	if literal == "non" && l.peek() == '-' {
		remaining := l.input[l.pos:]
		if len(remaining) >= 7 && string(remaining[:7]) == "-sealed" {
			if len(remaining) == 7 || !isJavaLetterOrDigit(rune(remaining[7])) {
				l.advanceN(7)
				return l.token(ast.LiteralNonSealed, start)
			}
		}
	}

	return l.token(LookupKeyword(literal), start)
}

func (l *Lexer) scanDigits(valid func(byte) bool) {
	for valid(l.peek()) || l.peek() == '_' {
		l.advance()
	}
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		return l.scanHexNumber(start)
	}
	if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		l.advanceN(2)
		l.scanDigits(func(c byte) bool { return c == '0' || c == '1' })
		return l.integerSuffix(start)
	}

	isFloat := false
	l.scanDigits(isDigit)

	if l.peek() == '.' && (isDigit(l.peekN(1)) || !isJavaLetter(rune(l.peekN(1)))) {
		isFloat = true
		l.advance()
		l.scanDigits(isDigit)
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		l.scanDigits(isDigit)
	}

	switch l.peek() {
	case 'f', 'F':
		l.advance()
		return l.token(ast.NumFloat, start)
	case 'd', 'D':
		l.advance()
		return l.token(ast.NumDouble, start)
	}
	if isFloat {
		return l.token(ast.NumDouble, start)
	}
	return l.integerSuffix(start)
}

func (l *Lexer) integerSuffix(start Position) Token {
	if l.peek() == 'l' || l.peek() == 'L' {
		l.advance()
		return l.token(ast.NumLong, start)
	}
	return l.token(ast.NumInt, start)
}

func (l *Lexer) scanHexNumber(start Position) Token {
	l.advanceN(2)
	l.scanDigits(isHexDigit)
	isFloat := false
	if l.peek() == '.' {
		isFloat = true
		l.advance()
		l.scanDigits(isHexDigit)
	}
	if l.peek() == 'p' || l.peek() == 'P' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		l.scanDigits(isDigit)
	}
	if !isFloat {
		return l.integerSuffix(start)
	}
	switch l.peek() {
	case 'f', 'F':
		l.advance()
		return l.token(ast.NumFloat, start)
	case 'd', 'D':
		l.advance()
	}
	return l.token(ast.NumDouble, start)
}

func (l *Lexer) scanCharLiteral(start Position) Token {
	l.advance()
	for l.peek() != 0 && l.peek() != '\'' && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() != '\'' {
		tok := l.token(ast.CharLiteral, start)
		tok.Err = "unterminated character literal"
		return tok
	}
	l.advance()
	return l.token(ast.CharLiteral, start)
}

func (l *Lexer) scanStringLiteral(start Position) Token {
	l.advance()
	for l.peek() != 0 && l.peek() != '"' && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() != '"' {
		tok := l.token(ast.StringLiteral, start)
		tok.Err = "unterminated string literal"
		return tok
	}
	l.advance()
	return l.token(ast.StringLiteral, start)
}

func (l *Lexer) scanTextBlock(start Position) Token {
	l.advanceN(3)
	for l.peek() != 0 {
		if l.peek() == '"' && l.peekN(1) == '"' && l.peekN(2) == '"' {
			l.advanceN(3)
			return l.token(ast.TextBlockLiteralBegin, start)
		}
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	tok := l.token(ast.TextBlockLiteralBegin, start)
	tok.Err = "unterminated text block"
	return tok
}

type operator struct {
	text string
	kind ast.Kind
}

// operators is ordered longest first within each leading character.
var operators = map[byte][]operator{
	'(': {{"(", ast.Lparen}},
	')': {{")", ast.Rparen}},
	'{': {{"{", ast.Lcurly}},
	'}': {{"}", ast.Rcurly}},
	'[': {{"[", ast.Lbrack}},
	']': {{"]", ast.Rbrack}},
	';': {{";", ast.Semi}},
	',': {{",", ast.Comma}},
	'@': {{"@", ast.At}},
	'~': {{"~", ast.Bnot}},
	'?': {{"?", ast.Question}},
	'.': {{"...", ast.Ellipsis}, {".", ast.Dot}},
	':': {{"::", ast.DoubleColon}, {":", ast.Colon}},
	'=': {{"==", ast.Equal}, {"=", ast.Assign}},
	'!': {{"!=", ast.NotEqual}, {"!", ast.Lnot}},
	'<': {{"<<=", ast.SlAssign}, {"<<", ast.Sl}, {"<=", ast.Le}, {"<", ast.Lt}},
	'>': {{">>>=", ast.BsrAssign}, {">>>", ast.Bsr}, {">>=", ast.SrAssign}, {">>", ast.Sr}, {">=", ast.Ge}, {">", ast.Gt}},
	'&': {{"&&", ast.Land}, {"&=", ast.BandAssign}, {"&", ast.Band}},
	'|': {{"||", ast.Lor}, {"|=", ast.BorAssign}, {"|", ast.Bor}},
	'^': {{"^=", ast.BxorAssign}, {"^", ast.Bxor}},
	'+': {{"++", ast.Inc}, {"+=", ast.PlusAssign}, {"+", ast.Plus}},
	'-': {{"--", ast.Dec}, {"-=", ast.MinusAssign}, {"->", ast.Lambda}, {"-", ast.Minus}},
	'*': {{"*=", ast.StarAssign}, {"*", ast.Star}},
	'/': {{"/=", ast.DivAssign}, {"/", ast.Div}},
	'%': {{"%=", ast.ModAssign}, {"%", ast.Mod}},
}

func (l *Lexer) scanOperator(start Position) Token {
	rest := l.input[l.pos:]
	for _, op := range operators[l.peek()] {
		if len(rest) >= len(op.text) && string(rest[:len(op.text)]) == op.text {
			l.advanceN(len(op.text))
			return l.token(op.kind, start)
		}
	}

	_, size := l.peekRune()
	l.advanceN(max(size, 1))
	tok := l.token(0, start)
	tok.Err = "illegal character"
	return tok
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isJavaLetter(r rune) bool {
	if r >= utf8.RuneSelf {
		return unicode.IsLetter(r)
	}
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '$'
}

func isJavaLetterOrDigit(r rune) bool {
	if r >= utf8.RuneSelf {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	return isJavaLetter(r) || (r >= '0' && r <= '9')
}
