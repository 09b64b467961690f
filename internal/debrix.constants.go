package internal

// Character constants
const (
	CharNull         = 0
	CharLessThan     = '<'
	CharGreaterThan  = '>'
	CharOpenBrace    = '{'
	CharCloseBrace   = '}'
	CharHash         = '#'
	CharSlash        = '/'
	CharBackslash    = '\\'
	CharEquals       = '='
	CharDoubleQuote  = '"'
	CharSingleQuote  = '\''
	CharBacktick     = '`'
	CharExclamation  = '!'
	CharComma        = ','
	CharDot          = '.'
	CharDollar       = '$'
	CharUnderscore   = '_'
	CharNewline      = '\n'
	CharStar         = '*'
	CharSpace        = ' '
	CharTab          = '\t'
	CharCarriageRet  = '\r'
)

// Template syntax literals
const (
	StrUsing        = "using"
	StrFrom         = "from"
	StrAs           = "as"
	StrIn           = "in"
	StrWhen         = "#when"
	StrElse         = "#else"
	StrEach         = "#each"
	StrWhenKeyword  = "when"
	StrCommentOpen  = "<!--"
	StrCommentClose = "-->"
	StrEndTagOpen   = "</"
	StrSpread       = "..."
	StrLineComment  = "//"
	StrBlockOpen    = "/*"
	StrBlockClose   = "*/"
	StrHTMLPrefix   = "html:"
	StrBindPrefix   = "bind:"
)

// Expected-token descriptions used in parser errors
const (
	ExpectIdentifier = "identifier"
	ExpectExpression = "expression"
	ExpectSpecifier  = "specifier"
	ExpectString     = "string"
	ExpectTagName    = "tag name"
	ExpectAttribute  = "attribute"
	ExpectNode       = "node"
	ExpectEndOfInput = "end of input"
)

// Special attribute and slot names
const (
	AttrAs           = "as"
	AttrSlot         = "slot"
	AttrName         = "name"
	TagSlot          = "slot"
	DefaultSlotName  = "main"
	DefaultExport    = "default"
	ReceiverName     = "$self"
	FamilyName       = "FAMILY"
	FamilyProperty   = "__family"
	RenderPrefix     = "render_"
	BaseFragmentName = "render_fragment"
)

// InternalModule is the import source of every runtime helper.
const InternalModule = "@debrix/internal"

// Runtime helper names
const (
	HelperComponent      = "Component"
	HelperElement        = "element"
	HelperText           = "text"
	HelperSpace          = "space"
	HelperComment        = "comment"
	HelperAttr           = "attr"
	HelperBind           = "bind"
	HelperBindAttr       = "bind_attr"
	HelperBindAttrSpread = "bind_attr_spread"
	HelperBindText       = "bind_text"
	HelperBindWhen       = "bind_when"
	HelperBindEach       = "bind_each"
	HelperInsert         = "insert"
	HelperComputedNot    = "computed_not"
	HelperComputedAnd    = "computed_and"
	HelperComputedOr     = "computed_or"
)

// Local variable base names
const (
	LocalFragment = "fragment"
	LocalFlow     = "flow"
	LocalAccessor = "accessor"
	LocalText     = "text"
	LocalSpace    = "space"
	LocalComment  = "comment"
)

// Compiler error messages
const (
	ErrMsgNodeNotAllowed          = "Node is not allowed here."
	ErrMsgAttributeNeedsValue     = "Attribute must have value."
	ErrMsgAttributeMustBeStatic   = "Attribute must be static."
	ErrMsgInvalidComponentName    = "Component cannot be named non-valid javascript identifiers. %q is not a valid identifier."
	ErrMsgDefaultAlreadyDefined   = "Component is already defined!"
	ErrMsgComponentAlreadyDefined = "Component %s is already defined!"
	ErrMsgVariableAlreadyDefined  = "Variable '%s' for '%s' is already defined."
	ErrMsgSpreadOnce              = "Attributes can only be expanded once. Occured at %d..%d."
	ErrMsgSpecialTwice            = "Special attribute cannot be defined twice."
	ErrMsgSpecialNeedsValue       = "Special attribute must have value."
	ErrMsgSpecialMustBeStatic     = "Special attribute must be static."
	ErrMsgUndefinedBinder         = "Undefined binder '%s'."
)

// Error message formats
const (
	ErrFmtUnexpected         = "Unexpected at %d."
	ErrFmtUnexpectedExpected = "Unexpected at %d, expected %s."
	ErrFmtCompiler           = "%s (%d..%d)"
	ErrStrNull               = "NULL"
	ErrStrOr                 = " or "
	ErrStrListSep            = ", "
)

// Log message constants
const (
	LogMsgParserCreated     = "template parser created"
	LogMsgParserStart       = "starting template parse"
	LogMsgParserEnd         = "template parse complete"
	LogMsgGeneratorCreated  = "generator created"
	LogMsgGeneratorStart    = "starting generation"
	LogMsgGeneratorEnd      = "generation complete"
	LogMsgComponentRendered = "component rendered"
	LogMsgFragmentRendered  = "fragment rendered"
	LogMsgDependency        = "dependency rendered"
)

// Log field constants
const (
	LogFieldSource    = "source_length"
	LogFieldNodes     = "nodes"
	LogFieldOutput    = "output_length"
	LogFieldMappings  = "mappings"
	LogFieldComponent = "component"
	LogFieldFragment  = "fragment"
	LogFieldSourceRef = "source"
)

// Declaration kinds as written in dependency statements
const (
	KindModel     = "model"
	KindComponent = "component"
	KindBinder    = "binder"
)

// ReservedKeywords lists names that cannot be used as generated identifiers.
var ReservedKeywords = map[string]struct{}{
	"abstract": {}, "arguments": {}, "await": {}, "boolean": {}, "break": {}, "byte": {},
	"case": {}, "catch": {}, "char": {}, "class": {}, "const": {}, "continue": {},
	"debugger": {}, "default": {}, "delete": {}, "do": {}, "double": {}, "else": {},
	"enum": {}, "eval": {}, "export": {}, "extends": {}, "false": {}, "final": {},
	"finally": {}, "float": {}, "for": {}, "function": {}, "goto": {}, "if": {},
	"implements": {}, "import": {}, "in": {}, "instanceof": {}, "int": {}, "interface": {},
	"let": {}, "long": {}, "native": {}, "new": {}, "null": {}, "package": {},
	"private": {}, "protected": {}, "public": {}, "return": {}, "short": {}, "static": {},
	"super": {}, "switch": {}, "synchronized": {}, "this": {}, "throw": {}, "throws": {},
	"transient": {}, "true": {}, "try": {}, "typeof": {}, "var": {}, "void": {},
	"volatile": {}, "while": {}, "with": {}, "yield": {},
}

// IsReserved reports whether name is a reserved keyword.
func IsReserved(name string) bool {
	_, ok := ReservedKeywords[name]
	return ok
}

// globalNames are identifiers that always refer to the global value.
var globalNames = map[string]struct{}{
	"null": {}, "undefined": {}, "NaN": {}, "Infinity": {}, "false": {}, "true": {},
}
