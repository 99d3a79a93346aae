package parser

import (
	"fmt"

	"github.com/dhamidi/javalint/java/ast"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a lexed token. Kind is the node kind the token produces by
// default; the parser may reclassify it. Comments holds the comments that
// precede the token.
type Token struct {
	Kind     ast.Kind
	Literal  string
	Pos      Position
	Comments []ast.Comment
	Err      string
}

func (t Token) String() string {
	if t.Kind == 0 {
		return fmt.Sprintf("illegal %q", t.Literal)
	}
	if t.Kind == ast.EOF {
		return "end of file"
	}
	return fmt.Sprintf("%q", t.Literal)
}

var keywords = map[string]ast.Kind{
	"abstract":     ast.Abstract,
	"assert":       ast.LiteralAssert,
	"boolean":      ast.LiteralBoolean,
	"break":        ast.LiteralBreak,
	"byte":         ast.LiteralByte,
	"case":         ast.LiteralCase,
	"catch":        ast.LiteralCatch,
	"char":         ast.LiteralChar,
	"class":        ast.LiteralClass,
	"continue":     ast.LiteralContinue,
	"default":      ast.LiteralDefault,
	"do":           ast.LiteralDo,
	"double":       ast.LiteralDouble,
	"else":         ast.LiteralElse,
	"enum":         ast.Enum,
	"extends":      ast.ExtendsClause,
	"final":        ast.Final,
	"finally":      ast.LiteralFinally,
	"float":        ast.LiteralFloat,
	"for":          ast.LiteralFor,
	"if":           ast.LiteralIf,
	"implements":   ast.ImplementsClause,
	"import":       ast.Import,
	"instanceof":   ast.LiteralInstanceof,
	"int":          ast.LiteralInt,
	"interface":    ast.LiteralInterface,
	"long":         ast.LiteralLong,
	"native":       ast.LiteralNative,
	"new":          ast.LiteralNew,
	"package":      ast.PackageDef,
	"private":      ast.LiteralPrivate,
	"protected":    ast.LiteralProtected,
	"public":       ast.LiteralPublic,
	"return":       ast.LiteralReturn,
	"short":        ast.LiteralShort,
	"static":       ast.LiteralStatic,
	"strictfp":     ast.Strictfp,
	"super":        ast.LiteralSuper,
	"switch":       ast.LiteralSwitch,
	"synchronized": ast.LiteralSynchronized,
	"this":         ast.LiteralThis,
	"throw":        ast.LiteralThrow,
	"throws":       ast.LiteralThrows,
	"transient":    ast.LiteralTransient,
	"try":          ast.LiteralTry,
	"void":         ast.LiteralVoid,
	"volatile":     ast.LiteralVolatile,
	"while":        ast.LiteralWhile,
	"true":         ast.LiteralTrue,
	"false":        ast.LiteralFalse,
	"null":         ast.LiteralNull,
}

// LookupKeyword returns the kind of a reserved word, or IDENT. Contextual
// keywords (var, yield, record, sealed, permits, when) lex as IDENT.
func LookupKeyword(ident string) ast.Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return ast.Ident
}

func isPrimitive(k ast.Kind) bool {
	switch k {
	case ast.LiteralBoolean, ast.LiteralByte, ast.LiteralChar, ast.LiteralShort,
		ast.LiteralInt, ast.LiteralLong, ast.LiteralFloat, ast.LiteralDouble:
		return true
	}
	return false
}

func isModifier(k ast.Kind) bool {
	switch k {
	case ast.LiteralPublic, ast.LiteralProtected, ast.LiteralPrivate,
		ast.Abstract, ast.LiteralStatic, ast.Final, ast.Strictfp,
		ast.LiteralNative, ast.LiteralSynchronized, ast.LiteralTransient,
		ast.LiteralVolatile, ast.LiteralDefault, ast.LiteralNonSealed:
		return true
	}
	return false
}

func isAssignOp(k ast.Kind) bool {
	switch k {
	case ast.Assign, ast.PlusAssign, ast.MinusAssign, ast.StarAssign,
		ast.DivAssign, ast.ModAssign, ast.SrAssign, ast.BsrAssign,
		ast.SlAssign, ast.BandAssign, ast.BxorAssign, ast.BorAssign:
		return true
	}
	return false
}

func isLiteral(k ast.Kind) bool {
	switch k {
	case ast.NumInt, ast.NumLong, ast.NumFloat, ast.NumDouble,
		ast.CharLiteral, ast.StringLiteral, ast.TextBlockLiteralBegin,
		ast.LiteralTrue, ast.LiteralFalse, ast.LiteralNull:
		return true
	}
	return false
}
