package token

// TokenType classifies a lexical token of the C89 dialect we scan
type TokenType int

const (
	// Special tokens
	EOF     TokenType = iota // end of input sentinel, exactly one per stream
	ILLEGAL                  // malformed lexeme, details in the diagnostic bag

	// Words
	KEYWORD    // one of the 32 C89 reserved words
	IDENTIFIER // letter-or-underscore followed by letters/digits/underscore

	// Constants and literals
	INTEGER   // 42, 052, 0x2A, optional u/U l/L suffixes
	FLOAT     // 3.14, 1e6, 2.5e-3f, optional f/F l/L suffix
	CHARACTER // 'a', '\n', '\x41'
	STRING    // "..." with escape sequences

	// Structure
	PUNCTUATOR // operators and separators, longest match (<<= before << before <)
	DIRECTIVE  // raw #-line, content uninterpreted, continuations spliced
	COMMENT    // only emitted when comment pass-through is enabled
)

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case ILLEGAL:
		return "ILLEGAL"
	case KEYWORD:
		return "KEYWORD"
	case IDENTIFIER:
		return "IDENTIFIER"
	case INTEGER:
		return "INTEGER"
	case FLOAT:
		return "FLOAT"
	case CHARACTER:
		return "CHARACTER"
	case STRING:
		return "STRING"
	case PUNCTUATOR:
		return "PUNCTUATOR"
	case DIRECTIVE:
		return "DIRECTIVE"
	case COMMENT:
		return "COMMENT"
	default:
		return "UNKNOWN"
	}
}

// Value holds the normalized payload of a constant or literal token.
// Tokens that are not constants or literals carry a nil *Value.
type Value struct {
	Int         uint64  // INTEGER and CHARACTER tokens
	Float       float64 // FLOAT tokens
	Text        []byte  // decoded bytes of STRING and CHARACTER tokens
	Base        int     // 8, 10, 16 (36 with the int36 extension)
	Unsigned    bool    // u/U suffix present
	Long        bool    // l/L suffix present
	FloatSuffix bool    // f/F suffix present
}

// Token represents one lexical token. Tokens are produced once by the
// lexer and never mutated; Lexeme is the exact source substring consumed,
// so concatenating lexemes with the skipped whitespace/comment spans
// reconstructs the input byte-for-byte.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int // 1-based line of the first character
	Column int // 1-based column of the first character
	Value  *Value
}

// String returns the token lexeme (for testing and debugging)
func (t Token) String() string {
	return t.Lexeme
}

// Keywords is the fixed C89 reserved word set. Immutable after init,
// safe to share across concurrent scans.
var Keywords = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true,
	"const": true, "continue": true, "default": true, "do": true,
	"double": true, "else": true, "enum": true, "extern": true,
	"float": true, "for": true, "goto": true, "if": true,
	"int": true, "long": true, "register": true, "return": true,
	"short": true, "signed": true, "sizeof": true, "static": true,
	"struct": true, "switch": true, "typedef": true, "union": true,
	"unsigned": true, "void": true, "volatile": true, "while": true,
}

// ThreeCharPuncts maps three-character punctuator sequences
var ThreeCharPuncts = map[string]bool{
	"<<=": true,
	">>=": true,
	"...": true,
}

// TwoCharPuncts maps two-character punctuator sequences
var TwoCharPuncts = map[string]bool{
	"->": true, "++": true, "--": true,
	"<<": true, ">>": true,
	"<=": true, ">=": true, "==": true, "!=": true,
	"&&": true, "||": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true,
}

// SingleCharPuncts maps single-character punctuators and separators
var SingleCharPuncts = map[byte]bool{
	'+': true, '-': true, '*': true, '/': true, '%': true,
	'&': true, '|': true, '^': true, '~': true, '!': true,
	'=': true, '<': true, '>': true,
	'(': true, ')': true, '{': true, '}': true, '[': true, ']': true,
	';': true, ':': true, ',': true, '.': true, '?': true,
}
