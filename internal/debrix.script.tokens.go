package internal

// TokenKind identifies the kind of a script token
type TokenKind int

// Literal and identifier token kinds
const (
	TokenEOF TokenKind = iota
	TokenIdentifier
	TokenNumeric
	TokenString
	TokenTemplate

	// keywords
	TokenTrue
	TokenFalse
	TokenNull
	TokenDelete
	TokenIn
	TokenInstanceof
	TokenNew
	TokenReturn
	TokenThis
	TokenTypeof
	TokenVoid

	// operators and punctuation
	TokenNot
	TokenNotEqual
	TokenStrictNotEqual
	TokenModulo
	TokenModuloAssign
	TokenBitAnd
	TokenLogicalAnd
	TokenBitAndAssign
	TokenMultiply
	TokenExponent
	TokenExponentAssign
	TokenMultiplyAssign
	TokenPlus
	TokenIncrement
	TokenPlusAssign
	TokenMinus
	TokenDecrement
	TokenMinusAssign
	TokenDivide
	TokenDivideAssign
	TokenLessThan
	TokenLeftShift
	TokenLeftShiftAssign
	TokenLessThanEqual
	TokenGreaterThan
	TokenRightShift
	TokenRightShiftAssign
	TokenUnsignedRightShift
	TokenUnsignedRightShiftAssign
	TokenGreaterThanEqual
	TokenAssign
	TokenEqual
	TokenStrictEqual
	TokenArrow
	TokenBitXor
	TokenBitXorAssign
	TokenBitOr
	TokenLogicalOr
	TokenBitOrAssign
	TokenDot
	TokenEllipsis
	TokenOpenParen
	TokenCloseParen
	TokenOpenBracket
	TokenCloseBracket
	TokenOpenBrace
	TokenCloseBrace
	TokenComma
	TokenSemicolon
	TokenColon
	TokenQuestion
	TokenBitNot
)

// Token is a span of script source. The text is re-sliced from the input on demand.
type Token struct {
	Kind  TokenKind
	Start int
	End   int
}

// keywords maps reserved words to their token kinds
var keywords = map[string]TokenKind{
	"true":       TokenTrue,
	"false":      TokenFalse,
	"null":       TokenNull,
	"delete":     TokenDelete,
	"in":         TokenIn,
	"instanceof": TokenInstanceof,
	"new":        TokenNew,
	"return":     TokenReturn,
	"this":       TokenThis,
	"typeof":     TokenTypeof,
	"void":       TokenVoid,
}

// operatorText holds the source text of every keyword and operator kind
var operatorText = map[TokenKind]string{
	TokenTrue:                     "true",
	TokenFalse:                    "false",
	TokenNull:                     "null",
	TokenDelete:                   "delete",
	TokenIn:                       "in",
	TokenInstanceof:               "instanceof",
	TokenNew:                      "new",
	TokenReturn:                   "return",
	TokenThis:                     "this",
	TokenTypeof:                   "typeof",
	TokenVoid:                     "void",
	TokenNot:                      "!",
	TokenNotEqual:                 "!=",
	TokenStrictNotEqual:           "!==",
	TokenModulo:                   "%",
	TokenModuloAssign:             "%=",
	TokenBitAnd:                   "&",
	TokenLogicalAnd:               "&&",
	TokenBitAndAssign:             "&=",
	TokenMultiply:                 "*",
	TokenExponent:                 "**",
	TokenExponentAssign:           "**=",
	TokenMultiplyAssign:           "*=",
	TokenPlus:                     "+",
	TokenIncrement:                "++",
	TokenPlusAssign:               "+=",
	TokenMinus:                    "-",
	TokenDecrement:                "--",
	TokenMinusAssign:              "-=",
	TokenDivide:                   "/",
	TokenDivideAssign:             "/=",
	TokenLessThan:                 "<",
	TokenLeftShift:                "<<",
	TokenLeftShiftAssign:          "<<=",
	TokenLessThanEqual:            "<=",
	TokenGreaterThan:              ">",
	TokenRightShift:               ">>",
	TokenRightShiftAssign:         ">>=",
	TokenUnsignedRightShift:       ">>>",
	TokenUnsignedRightShiftAssign: ">>>=",
	TokenGreaterThanEqual:         ">=",
	TokenAssign:                   "=",
	TokenEqual:                    "==",
	TokenStrictEqual:              "===",
	TokenArrow:                    "=>",
	TokenBitXor:                   "^",
	TokenBitXorAssign:             "^=",
	TokenBitOr:                    "|",
	TokenLogicalOr:                "||",
	TokenBitOrAssign:              "|=",
	TokenDot:                      ".",
	TokenEllipsis:                 "...",
	TokenOpenParen:                "(",
	TokenCloseParen:               ")",
	TokenOpenBracket:              "[",
	TokenCloseBracket:             "]",
	TokenOpenBrace:                "{",
	TokenCloseBrace:               "}",
	TokenComma:                    ",",
	TokenSemicolon:                ";",
	TokenColon:                    ":",
	TokenQuestion:                 "?",
	TokenBitNot:                   "~",
}

// Token kind names for literal classes
const (
	TokenNameEOF        = "EOF"
	TokenNameIdentifier = "identifier"
	TokenNameNumeric    = "number"
	TokenNameString     = "string"
	TokenNameTemplate   = "template"
	TokenNameUnknown    = "unknown"
)

// operatorsByLength lists operator spellings longest first, so the lexer
// always takes the longest match.
var operatorsByLength = [][]TokenKind{
	{TokenUnsignedRightShiftAssign},
	{TokenStrictNotEqual, TokenExponentAssign, TokenLeftShiftAssign, TokenRightShiftAssign,
		TokenUnsignedRightShift, TokenStrictEqual, TokenEllipsis},
	{TokenNotEqual, TokenModuloAssign, TokenLogicalAnd, TokenBitAndAssign, TokenExponent,
		TokenMultiplyAssign, TokenIncrement, TokenPlusAssign, TokenDecrement, TokenMinusAssign,
		TokenDivideAssign, TokenLeftShift, TokenLessThanEqual, TokenRightShift,
		TokenGreaterThanEqual, TokenEqual, TokenArrow, TokenBitXorAssign, TokenLogicalOr,
		TokenBitOrAssign},
	{TokenNot, TokenModulo, TokenBitAnd, TokenMultiply, TokenPlus, TokenMinus, TokenDivide,
		TokenLessThan, TokenGreaterThan, TokenAssign, TokenBitXor, TokenBitOr, TokenDot,
		TokenOpenParen, TokenCloseParen, TokenOpenBracket, TokenCloseBracket, TokenOpenBrace,
		TokenCloseBrace, TokenComma, TokenSemicolon, TokenColon, TokenQuestion, TokenBitNot},
}

// String returns the source spelling of operators and keywords, or a
// description for literal classes
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return TokenNameEOF
	case TokenIdentifier:
		return TokenNameIdentifier
	case TokenNumeric:
		return TokenNameNumeric
	case TokenString:
		return TokenNameString
	case TokenTemplate:
		return TokenNameTemplate
	}
	if text, ok := operatorText[k]; ok {
		return text
	}
	return TokenNameUnknown
}

// IsKeyword reports whether k is a reserved word
func (k TokenKind) IsKeyword() bool {
	return k >= TokenTrue && k <= TokenVoid
}

// IsBinary reports whether k continues an expression as a binary operator
func (k TokenKind) IsBinary() bool {
	switch k {
	case TokenPlus, TokenMinus, TokenMultiply, TokenDivide, TokenModulo, TokenExponent,
		TokenLeftShift, TokenRightShift, TokenUnsignedRightShift,
		TokenLessThan, TokenGreaterThan, TokenLessThanEqual, TokenGreaterThanEqual,
		TokenEqual, TokenNotEqual, TokenStrictEqual, TokenStrictNotEqual,
		TokenBitAnd, TokenBitOr, TokenBitXor, TokenLogicalAnd, TokenLogicalOr,
		TokenInstanceof, TokenIn:
		return true
	}
	return false
}

// IsAssignment reports whether k is an assignment operator
func (k TokenKind) IsAssignment() bool {
	switch k {
	case TokenAssign, TokenPlusAssign, TokenMinusAssign, TokenMultiplyAssign,
		TokenDivideAssign, TokenModuloAssign, TokenExponentAssign,
		TokenLeftShiftAssign, TokenRightShiftAssign, TokenUnsignedRightShiftAssign,
		TokenBitAndAssign, TokenBitOrAssign, TokenBitXorAssign:
		return true
	}
	return false
}

// IsUnary reports whether k starts a prefix unary expression
func (k TokenKind) IsUnary() bool {
	switch k {
	case TokenMinus, TokenPlus, TokenIncrement, TokenDecrement, TokenNot, TokenBitNot,
		TokenTypeof, TokenVoid, TokenDelete:
		return true
	}
	return false
}
