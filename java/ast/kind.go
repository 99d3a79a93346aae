package ast

import "fmt"

// Kind identifies the token type of a node. Ids are dense and start at 1;
// the zero Kind is never assigned to a node.
type Kind int

const (
	EOF Kind = iota + 1

	// Compilation unit level
	CompilationUnit
	PackageDef
	Import
	StaticImport

	// Type declarations
	ClassDef
	InterfaceDef
	EnumDef
	RecordDef
	AnnotationDef
	AnnotationFieldDef
	ObjBlock
	ExtendsClause
	ImplementsClause
	PermitsClause

	// Modifiers and annotations
	Modifiers
	Annotations
	Annotation
	AnnotationMemberValuePair
	AnnotationArrayInit

	// Types
	Type
	TypeArguments
	TypeArgument
	TypeParameters
	TypeParameter
	TypeUpperBounds
	TypeLowerBounds
	TypeExtensionAnd
	WildcardType
	GenericStart
	GenericEnd
	ArrayDeclarator

	// Members
	MethodDef
	CtorDef
	CompactCtorDef
	VariableDef
	Parameters
	ParameterDef
	RecordComponents
	RecordComponentDef
	EnumConstantDef
	StaticInit
	InstanceInit
	Ellipsis
	CtorCall
	SuperCtorCall

	// Statements
	Slist
	LabeledStat
	EmptyStat
	CaseGroup
	SwitchRule
	ForInit
	ForCondition
	ForIterator
	ForEachClause
	ResourceSpecification
	Resources
	Resource
	DoWhile

	// Expressions
	Expr
	Elist
	MethodCall
	IndexOp
	Typecast
	Lambda
	MethodRef
	ArrayInit
	PostInc
	PostDec
	UnaryMinus
	UnaryPlus
	PatternVariableDef
	RecordPatternDef
	RecordPatternComponents
	PatternDef
	UnnamedPatternDef

	// Keywords
	LiteralVoid
	LiteralBoolean
	LiteralByte
	LiteralChar
	LiteralShort
	LiteralInt
	LiteralFloat
	LiteralLong
	LiteralDouble
	LiteralPrivate
	LiteralPublic
	LiteralProtected
	LiteralStatic
	LiteralTransient
	LiteralNative
	LiteralSynchronized
	LiteralVolatile
	LiteralClass
	LiteralInterface
	LiteralThis
	LiteralSuper
	LiteralTrue
	LiteralFalse
	LiteralNull
	LiteralNew
	LiteralInstanceof
	LiteralIf
	LiteralElse
	LiteralFor
	LiteralWhile
	LiteralDo
	LiteralBreak
	LiteralContinue
	LiteralReturn
	LiteralSwitch
	LiteralCase
	LiteralDefault
	LiteralThrow
	LiteralThrows
	LiteralTry
	LiteralCatch
	LiteralFinally
	LiteralAssert
	LiteralYield
	LiteralRecord
	LiteralSealed
	LiteralNonSealed
	LiteralPermits
	LiteralWhen
	Abstract
	Final
	Strictfp
	Enum

	// Operators and punctuation
	Assign
	PlusAssign
	MinusAssign
	StarAssign
	DivAssign
	ModAssign
	SrAssign
	BsrAssign
	SlAssign
	BandAssign
	BxorAssign
	BorAssign
	Question
	Lor
	Land
	Bor
	Bxor
	Band
	NotEqual
	Equal
	Lt
	Gt
	Le
	Ge
	Sl
	Sr
	Bsr
	Plus
	Minus
	Star
	Div
	Mod
	Inc
	Dec
	Bnot
	Lnot
	Dot
	Colon
	DoubleColon
	Comma
	Semi
	Lparen
	Rparen
	Lcurly
	Rcurly
	Lbrack
	Rbrack
	At

	// Literals
	Ident
	NumInt
	NumLong
	NumFloat
	NumDouble
	CharLiteral
	StringLiteral
	TextBlockLiteralBegin
	TextBlockContent
	TextBlockLiteralEnd

	// Comments
	SingleLineComment
	BlockCommentBegin
	BlockCommentEnd
	CommentContent

	kindCount
)

var kindNames = [kindCount]string{
	EOF:                       "EOF",
	CompilationUnit:           "COMPILATION_UNIT",
	PackageDef:                "PACKAGE_DEF",
	Import:                    "IMPORT",
	StaticImport:              "STATIC_IMPORT",
	ClassDef:                  "CLASS_DEF",
	InterfaceDef:              "INTERFACE_DEF",
	EnumDef:                   "ENUM_DEF",
	RecordDef:                 "RECORD_DEF",
	AnnotationDef:             "ANNOTATION_DEF",
	AnnotationFieldDef:        "ANNOTATION_FIELD_DEF",
	ObjBlock:                  "OBJBLOCK",
	ExtendsClause:             "EXTENDS_CLAUSE",
	ImplementsClause:          "IMPLEMENTS_CLAUSE",
	PermitsClause:             "PERMITS_CLAUSE",
	Modifiers:                 "MODIFIERS",
	Annotations:               "ANNOTATIONS",
	Annotation:                "ANNOTATION",
	AnnotationMemberValuePair: "ANNOTATION_MEMBER_VALUE_PAIR",
	AnnotationArrayInit:       "ANNOTATION_ARRAY_INIT",
	Type:                      "TYPE",
	TypeArguments:             "TYPE_ARGUMENTS",
	TypeArgument:              "TYPE_ARGUMENT",
	TypeParameters:            "TYPE_PARAMETERS",
	TypeParameter:             "TYPE_PARAMETER",
	TypeUpperBounds:           "TYPE_UPPER_BOUNDS",
	TypeLowerBounds:           "TYPE_LOWER_BOUNDS",
	TypeExtensionAnd:          "TYPE_EXTENSION_AND",
	WildcardType:              "WILDCARD_TYPE",
	GenericStart:              "GENERIC_START",
	GenericEnd:                "GENERIC_END",
	ArrayDeclarator:           "ARRAY_DECLARATOR",
	MethodDef:                 "METHOD_DEF",
	CtorDef:                   "CTOR_DEF",
	CompactCtorDef:            "COMPACT_CTOR_DEF",
	VariableDef:               "VARIABLE_DEF",
	Parameters:                "PARAMETERS",
	ParameterDef:              "PARAMETER_DEF",
	RecordComponents:          "RECORD_COMPONENTS",
	RecordComponentDef:        "RECORD_COMPONENT_DEF",
	EnumConstantDef:           "ENUM_CONSTANT_DEF",
	StaticInit:                "STATIC_INIT",
	InstanceInit:              "INSTANCE_INIT",
	Ellipsis:                  "ELLIPSIS",
	CtorCall:                  "CTOR_CALL",
	SuperCtorCall:             "SUPER_CTOR_CALL",
	Slist:                     "SLIST",
	LabeledStat:               "LABELED_STAT",
	EmptyStat:                 "EMPTY_STAT",
	CaseGroup:                 "CASE_GROUP",
	SwitchRule:                "SWITCH_RULE",
	ForInit:                   "FOR_INIT",
	ForCondition:              "FOR_CONDITION",
	ForIterator:               "FOR_ITERATOR",
	ForEachClause:             "FOR_EACH_CLAUSE",
	ResourceSpecification:     "RESOURCE_SPECIFICATION",
	Resources:                 "RESOURCES",
	Resource:                  "RESOURCE",
	DoWhile:                   "DO_WHILE",
	Expr:                      "EXPR",
	Elist:                     "ELIST",
	MethodCall:                "METHOD_CALL",
	IndexOp:                   "INDEX_OP",
	Typecast:                  "TYPECAST",
	Lambda:                    "LAMBDA",
	MethodRef:                 "METHOD_REF",
	ArrayInit:                 "ARRAY_INIT",
	PostInc:                   "POST_INC",
	PostDec:                   "POST_DEC",
	UnaryMinus:                "UNARY_MINUS",
	UnaryPlus:                 "UNARY_PLUS",
	PatternVariableDef:        "PATTERN_VARIABLE_DEF",
	RecordPatternDef:          "RECORD_PATTERN_DEF",
	RecordPatternComponents:   "RECORD_PATTERN_COMPONENTS",
	PatternDef:                "PATTERN_DEF",
	UnnamedPatternDef:         "UNNAMED_PATTERN_DEF",
	LiteralVoid:               "LITERAL_VOID",
	LiteralBoolean:            "LITERAL_BOOLEAN",
	LiteralByte:               "LITERAL_BYTE",
	LiteralChar:               "LITERAL_CHAR",
	LiteralShort:              "LITERAL_SHORT",
	LiteralInt:                "LITERAL_INT",
	LiteralFloat:              "LITERAL_FLOAT",
	LiteralLong:               "LITERAL_LONG",
	LiteralDouble:             "LITERAL_DOUBLE",
	LiteralPrivate:            "LITERAL_PRIVATE",
	LiteralPublic:             "LITERAL_PUBLIC",
	LiteralProtected:          "LITERAL_PROTECTED",
	LiteralStatic:             "LITERAL_STATIC",
	LiteralTransient:          "LITERAL_TRANSIENT",
	LiteralNative:             "LITERAL_NATIVE",
	LiteralSynchronized:       "LITERAL_SYNCHRONIZED",
	LiteralVolatile:           "LITERAL_VOLATILE",
	LiteralClass:              "LITERAL_CLASS",
	LiteralInterface:          "LITERAL_INTERFACE",
	LiteralThis:               "LITERAL_THIS",
	LiteralSuper:              "LITERAL_SUPER",
	LiteralTrue:               "LITERAL_TRUE",
	LiteralFalse:              "LITERAL_FALSE",
	LiteralNull:               "LITERAL_NULL",
	LiteralNew:                "LITERAL_NEW",
	LiteralInstanceof:         "LITERAL_INSTANCEOF",
	LiteralIf:                 "LITERAL_IF",
	LiteralElse:               "LITERAL_ELSE",
	LiteralFor:                "LITERAL_FOR",
	LiteralWhile:              "LITERAL_WHILE",
	LiteralDo:                 "LITERAL_DO",
	LiteralBreak:              "LITERAL_BREAK",
	LiteralContinue:           "LITERAL_CONTINUE",
	LiteralReturn:             "LITERAL_RETURN",
	LiteralSwitch:             "LITERAL_SWITCH",
	LiteralCase:               "LITERAL_CASE",
	LiteralDefault:            "LITERAL_DEFAULT",
	LiteralThrow:              "LITERAL_THROW",
	LiteralThrows:             "LITERAL_THROWS",
	LiteralTry:                "LITERAL_TRY",
	LiteralCatch:              "LITERAL_CATCH",
	LiteralFinally:            "LITERAL_FINALLY",
	LiteralAssert:             "LITERAL_ASSERT",
	LiteralYield:              "LITERAL_YIELD",
	LiteralRecord:             "LITERAL_RECORD",
	LiteralSealed:             "LITERAL_SEALED",
	LiteralNonSealed:          "LITERAL_NON_SEALED",
	LiteralPermits:            "LITERAL_PERMITS",
	LiteralWhen:               "LITERAL_WHEN",
	Abstract:                  "ABSTRACT",
	Final:                     "FINAL",
	Strictfp:                  "STRICTFP",
	Enum:                      "ENUM",
	Assign:                    "ASSIGN",
	PlusAssign:                "PLUS_ASSIGN",
	MinusAssign:               "MINUS_ASSIGN",
	StarAssign:                "STAR_ASSIGN",
	DivAssign:                 "DIV_ASSIGN",
	ModAssign:                 "MOD_ASSIGN",
	SrAssign:                  "SR_ASSIGN",
	BsrAssign:                 "BSR_ASSIGN",
	SlAssign:                  "SL_ASSIGN",
	BandAssign:                "BAND_ASSIGN",
	BxorAssign:                "BXOR_ASSIGN",
	BorAssign:                 "BOR_ASSIGN",
	Question:                  "QUESTION",
	Lor:                       "LOR",
	Land:                      "LAND",
	Bor:                       "BOR",
	Bxor:                      "BXOR",
	Band:                      "BAND",
	NotEqual:                  "NOT_EQUAL",
	Equal:                     "EQUAL",
	Lt:                        "LT",
	Gt:                        "GT",
	Le:                        "LE",
	Ge:                        "GE",
	Sl:                        "SL",
	Sr:                        "SR",
	Bsr:                       "BSR",
	Plus:                      "PLUS",
	Minus:                     "MINUS",
	Star:                      "STAR",
	Div:                       "DIV",
	Mod:                       "MOD",
	Inc:                       "INC",
	Dec:                       "DEC",
	Bnot:                      "BNOT",
	Lnot:                      "LNOT",
	Dot:                       "DOT",
	Colon:                     "COLON",
	DoubleColon:               "DOUBLE_COLON",
	Comma:                     "COMMA",
	Semi:                      "SEMI",
	Lparen:                    "LPAREN",
	Rparen:                    "RPAREN",
	Lcurly:                    "LCURLY",
	Rcurly:                    "RCURLY",
	Lbrack:                    "LBRACK",
	Rbrack:                    "RBRACK",
	At:                        "AT",
	Ident:                     "IDENT",
	NumInt:                    "NUM_INT",
	NumLong:                   "NUM_LONG",
	NumFloat:                  "NUM_FLOAT",
	NumDouble:                 "NUM_DOUBLE",
	CharLiteral:               "CHAR_LITERAL",
	StringLiteral:             "STRING_LITERAL",
	TextBlockLiteralBegin:     "TEXT_BLOCK_LITERAL_BEGIN",
	TextBlockContent:          "TEXT_BLOCK_CONTENT",
	TextBlockLiteralEnd:       "TEXT_BLOCK_LITERAL_END",
	SingleLineComment:         "SINGLE_LINE_COMMENT",
	BlockCommentBegin:         "BLOCK_COMMENT_BEGIN",
	BlockCommentEnd:           "BLOCK_COMMENT_END",
	CommentContent:            "COMMENT_CONTENT",
}

var kindsByName = make(map[string]Kind, len(kindNames))

func init() {
	for id, name := range kindNames {
		if name == "" {
			continue
		}
		kindsByName[name] = Kind(id)
	}
}

// String returns the registry name of k, or Kind(n) for ids outside the table.
func (k Kind) String() string {
	if name, err := KindName(k); err == nil {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is a registered kind.
func (k Kind) Valid() bool {
	return k > 0 && k < kindCount && kindNames[k] != ""
}

// IsComment reports whether k is one of the four comment kinds.
func (k Kind) IsComment() bool {
	switch k {
	case SingleLineComment, BlockCommentBegin, BlockCommentEnd, CommentContent:
		return true
	}
	return false
}

// KindName returns the registry name for id.
func KindName(id Kind) (string, error) {
	if !id.Valid() {
		return "", &UnknownKindError{ID: int(id), err: ErrUnknownKindID}
	}
	return kindNames[id], nil
}

// KindByName returns the id registered under name.
func KindByName(name string) (Kind, error) {
	if k, ok := kindsByName[name]; ok {
		return k, nil
	}
	return 0, &UnknownKindError{Name: name, err: ErrUnknownKindName}
}

// IsCommentKindName reports whether name denotes a comment kind.
func IsCommentKindName(name string) (bool, error) {
	k, err := KindByName(name)
	if err != nil {
		return false, err
	}
	return k.IsComment(), nil
}

// Kinds returns every registered kind in id order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindsByName))
	for id := Kind(1); id < kindCount; id++ {
		if kindNames[id] != "" {
			out = append(out, id)
		}
	}
	return out
}

// IsTypeDeclaration reports whether k declares a class-like type.
func (k Kind) IsTypeDeclaration() bool {
	switch k {
	case ClassDef, InterfaceDef, EnumDef, RecordDef, AnnotationDef:
		return true
	}
	return false
}
