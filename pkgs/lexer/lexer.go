package lexer

import (
	"log/slog"
	"os"

	"github.com/aledsdavies/clex/pkgs/diag"
	"github.com/aledsdavies/clex/pkgs/token"
)

// ASCII character lookup tables for fast classification
var (
	isWhitespace [128]bool
	isLetter     [128]bool
	isDigit      [128]bool
	isIdentStart [128]bool
	isIdentPart  [128]bool
	isHexDigit   [128]bool
	isOctalDigit [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isWhitespace[i] = ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f' || ch == '\v'
		isLetter[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
		isDigit[i] = '0' <= ch && ch <= '9'
		isIdentStart[i] = isLetter[i] || ch == '_'
		isIdentPart[i] = isIdentStart[i] || isDigit[i]
		isHexDigit[i] = isDigit[i] || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
		isOctalDigit[i] = '0' <= ch && ch <= '7'
	}
}

// State represents the driver's scan state
type State int

const (
	Scanning    State = iota // dispatching recognizers
	InDirective              // consuming a #-line with its continuations
	Done                     // EOF token emitted
	Fatal                    // unterminated block comment reached EOF
)

func (s State) String() string {
	switch s {
	case Scanning:
		return "Scanning"
	case InDirective:
		return "InDirective"
	case Done:
		return "Done"
	case Fatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}

// Result is the outcome of a full scan: the ordered token stream, the
// recoverable diagnostics in scan order, and the fatal diagnostic if the
// scan halted early. On a fatal scan Tokens holds only the tokens emitted
// before the failure point and there is no EOF token.
type Result struct {
	Tokens      []token.Token
	Diagnostics []diag.Diagnostic
	Fatal       *diag.Diagnostic
}

// Lexer scans one in-memory C89 source buffer. Each instance owns a
// private cursor and diagnostic bag, so independent instances can run
// concurrently with no synchronization.
type Lexer struct {
	cursor *Cursor
	config Config
	state  State
	bag    *diag.Bag
	fatal  *diag.Diagnostic
	logger *slog.Logger

	// int36 extension context, mirrors the dialect's declaration tracking
	prev        *token.Token
	inDecl      bool
	expectIdent bool
	declIsInt36 bool
}

// New creates a Lexer over src with the given dialect options
func New(src string, opts ...LexerOpt) *Lexer {
	config := Config{}
	for _, opt := range opts {
		opt(&config)
	}

	return &Lexer{
		cursor: NewCursor(src),
		config: config,
		state:  Scanning,
		bag:    diag.NewBag(),
		logger: newDebugLogger(),
	}
}

// newDebugLogger builds the lexer trace logger. Debug output is gated by
// the CLEX_DEBUG_LEXER environment variable.
func newDebugLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("CLEX_DEBUG_LEXER") != "" {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Timestamp and level are noise in a character-level trace
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// State returns the driver state
func (l *Lexer) State() State {
	return l.state
}

// Diagnostics returns the diagnostics collected so far, in scan order
func (l *Lexer) Diagnostics() []diag.Diagnostic {
	return l.bag.Diagnostics()
}

// FatalDiagnostic returns the fatal diagnostic, or nil
func (l *Lexer) FatalDiagnostic() *diag.Diagnostic {
	return l.fatal
}

// Tokenize scans the whole buffer and returns the materialized stream
func (l *Lexer) Tokenize() Result {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if l.state == Fatal {
			break
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return Result{Tokens: tokens, Diagnostics: l.bag.Diagnostics(), Fatal: l.fatal}
}

// NextToken returns the next token from the input. After the stream ends
// (Done or Fatal) it keeps returning EOF tokens.
func (l *Lexer) NextToken() token.Token {
	if l.state == Done || l.state == Fatal {
		return l.eofToken()
	}

	// Skip noise: whitespace and comments (unless comments pass through)
	for {
		l.skipWhitespace()

		if l.cursor.Current() == '/' && l.cursor.Peek(1) == '*' {
			tok, emitted, ok := l.lexBlockComment()
			if !ok {
				return l.eofToken()
			}
			if emitted {
				return tok
			}
			continue
		}

		if l.config.lineComments && l.cursor.Current() == '/' && l.cursor.Peek(1) == '/' {
			tok, emitted := l.lexLineComment()
			if emitted {
				return tok
			}
			continue
		}

		break
	}

	if l.cursor.AtEOF() {
		l.state = Done
		return l.eofToken()
	}

	ch := l.cursor.Current()
	l.logger.Debug("[LEXER] dispatch",
		"state", l.state,
		"ch", string(rune(ch)),
		"line", l.cursor.Line(),
		"column", l.cursor.Column())

	var tok token.Token
	switch {
	case ch == '#' && l.cursor.AtLineStart():
		tok = l.lexDirective()
	case ch < 128 && isIdentStart[ch]:
		tok = l.lexIdentifierOrKeyword()
	case ch < 128 && isDigit[ch]:
		tok = l.lexNumber()
	case ch == '\'':
		tok = l.lexCharConstant()
	case ch == '"':
		tok = l.lexStringLiteral()
	default:
		tok = l.lexPunctuator()
	}

	if l.config.int36 {
		l.applyInt36Context(&tok)
	}
	prev := tok
	l.prev = &prev
	return tok
}

// skipWhitespace consumes spaces, tabs, newlines and the rest of the
// whitespace set while keeping line/column bookkeeping exact
func (l *Lexer) skipWhitespace() {
	for {
		ch := l.cursor.Current()
		if l.cursor.AtEOF() || ch >= 128 || !isWhitespace[ch] {
			return
		}
		l.cursor.Advance()
	}
}

func (l *Lexer) eofToken() token.Token {
	return token.Token{
		Type:   token.EOF,
		Lexeme: "",
		Line:   l.cursor.Line(),
		Column: l.cursor.Column(),
	}
}

// inExprContext is the int36 extension's coarse check for whether the
// next token sits in expression position
func (l *Lexer) inExprContext() bool {
	t := l.prev
	if t == nil {
		return true
	}
	if t.Type == token.PUNCTUATOR {
		switch t.Lexeme {
		case "(", ",", "{", "[", ";",
			"=", "+", "-", "*", "/", "%", "&", "|", "^",
			"==", "!=", "<=", ">=", "<", ">", "&&", "||", "?", ":":
			return true
		}
	}
	if t.Type == token.KEYWORD && t.Lexeme == "return" {
		return true
	}
	return false
}

// applyInt36Context reclassifies tokens for the int36 dialect and keeps
// the declaration-tracking state in step with the emitted stream
func (l *Lexer) applyInt36Context(tok *token.Token) {
	if tok.Type == token.IDENTIFIER && base36Shape(tok.Lexeme) &&
		!l.expectIdent && l.inExprContext() {
		tok.Type = token.INTEGER
		reinterpretBase36(tok)
	}

	// Inside an int36 initializer plain decimal integers are base-36
	// numerals; hex and octal constants keep their standard meaning
	if l.inDecl && l.declIsInt36 && !l.expectIdent && l.inExprContext() &&
		tok.Type == token.INTEGER && tok.Value != nil && tok.Value.Base == 10 {
		reinterpretBase36(tok)
	}

	switch {
	case tok.Type == token.KEYWORD && tok.Lexeme == "int36":
		l.inDecl = true
		l.declIsInt36 = true
		l.expectIdent = true
	case tok.Type == token.PUNCTUATOR && tok.Lexeme == ";":
		l.inDecl = false
		l.declIsInt36 = false
		l.expectIdent = false
	case l.inDecl:
		if l.expectIdent && tok.Type == token.IDENTIFIER {
			l.expectIdent = false
		}
		if tok.Type == token.PUNCTUATOR && tok.Lexeme == "," {
			l.expectIdent = true
		}
	}
}

// base36Shape reports whether lexeme is letters and digits only, with at
// least one of each (the bare base-36 numeral shape)
func base36Shape(lexeme string) bool {
	hasAlpha := false
	hasDigit := false
	for i := 0; i < len(lexeme); i++ {
		ch := lexeme[i]
		switch {
		case '0' <= ch && ch <= '9':
			hasDigit = true
		case ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z'):
			hasAlpha = true
		default:
			return false
		}
	}
	return hasAlpha && hasDigit
}
