package lexer

import (
	"github.com/aledsdavies/clex/pkgs/diag"
	"github.com/aledsdavies/clex/pkgs/token"
)

// lexDirective consumes a whole #-line, honoring backslash-newline
// continuations. The terminating newline is not part of the lexeme.
func (l *Lexer) lexDirective() token.Token {
	l.state = InDirective
	start := l.cursor.Mark()

	for !l.cursor.AtEOF() {
		if l.cursor.Current() == '\\' && l.cursor.Peek(1) == '\n' {
			l.cursor.Advance()
			l.cursor.Advance()
			continue
		}
		if l.cursor.Current() == '\n' {
			break
		}
		l.cursor.Advance()
	}

	l.state = Scanning
	return token.Token{
		Type:   token.DIRECTIVE,
		Lexeme: l.cursor.Slice(start.offset),
		Line:   start.line,
		Column: start.column,
	}
}

// lexBlockComment consumes a /* ... */ span. emitted is true when comment
// pass-through is on and tok holds a COMMENT token; ok is false when the
// comment never closes, which is the one fatal lexical error.
func (l *Lexer) lexBlockComment() (tok token.Token, emitted bool, ok bool) {
	start := l.cursor.Mark()
	l.cursor.Advance() // '/'
	l.cursor.Advance() // '*'

	for {
		if l.cursor.AtEOF() {
			d := diag.NewFatal(diag.CodeUnterminatedComment,
				"unterminated block comment",
				l.cursor.Slice(start.offset), start.line, start.column)
			l.bag.Add(d)
			l.fatal = &d
			l.state = Fatal
			return token.Token{}, false, false
		}
		if l.cursor.Current() == '*' && l.cursor.Peek(1) == '/' {
			l.cursor.Advance()
			l.cursor.Advance()
			break
		}
		l.cursor.Advance()
	}

	if l.config.commentTokens {
		return token.Token{
			Type:   token.COMMENT,
			Lexeme: l.cursor.Slice(start.offset),
			Line:   start.line,
			Column: start.column,
		}, true, true
	}
	return token.Token{}, false, true
}

// lexLineComment consumes a // comment up to (not including) the newline
func (l *Lexer) lexLineComment() (tok token.Token, emitted bool) {
	start := l.cursor.Mark()
	for !l.cursor.AtEOF() && l.cursor.Current() != '\n' {
		l.cursor.Advance()
	}

	if l.config.commentTokens {
		return token.Token{
			Type:   token.COMMENT,
			Lexeme: l.cursor.Slice(start.offset),
			Line:   start.line,
			Column: start.column,
		}, true
	}
	return token.Token{}, false
}

// lexIdentifierOrKeyword reads a letter-or-underscore run and classifies
// it against the reserved word table. Case-sensitive, no length cap.
func (l *Lexer) lexIdentifierOrKeyword() token.Token {
	start := l.cursor.Mark()
	for {
		ch := l.cursor.Current()
		if ch >= 128 || !isIdentPart[ch] {
			break
		}
		l.cursor.Advance()
	}

	text := l.cursor.Slice(start.offset)
	typ := token.IDENTIFIER
	if token.Keywords[text] || (l.config.int36 && text == "int36") {
		typ = token.KEYWORD
	}

	return token.Token{Type: typ, Lexeme: text, Line: start.line, Column: start.column}
}

// lexNumber reads an integer or floating constant. The base is decided by
// longest match: 0x/0X hex, leading 0 octal, otherwise decimal, with a
// floating constant whenever the digit sequence carries a fractional part,
// an exponent, or an f/F suffix.
func (l *Lexer) lexNumber() token.Token {
	start := l.cursor.Mark()

	// Hexadecimal: 0x prefix, hex digits, integer suffixes, no exponent
	if l.cursor.Current() == '0' && (l.cursor.Peek(1) == 'x' || l.cursor.Peek(1) == 'X') {
		l.cursor.Advance()
		l.cursor.Advance()
		digitsStart := l.cursor.Offset()
		for {
			ch := l.cursor.Current()
			if ch >= 128 || !isHexDigit[ch] {
				break
			}
			l.cursor.Advance()
		}
		if l.cursor.Offset() == digitsStart {
			return l.invalidNumber(start, "hexadecimal constant has no digits")
		}
		val := integerValue(l.cursor.Slice(digitsStart), 16)
		return l.finishInteger(start, val, 16)
	}

	// Octal: leading 0 followed by more digits. A 8/9 digit poisons the
	// constant; a fractional part or exponent means it was really a
	// decimal float, so rewind and rescan.
	if next := l.cursor.Peek(1); l.cursor.Current() == '0' && next < 128 && isDigit[next] {
		digitsStart := l.cursor.Offset()
		l.cursor.Advance()
		for {
			ch := l.cursor.Current()
			if ch >= 128 || !isOctalDigit[ch] {
				break
			}
			l.cursor.Advance()
		}
		ch := l.cursor.Current()
		switch {
		case ch == '8' || ch == '9':
			return l.invalidNumber(start, "invalid digit in octal constant")
		case (ch == '.' && isDigitByte(l.cursor.Peek(1))) || ch == 'e' || ch == 'E':
			l.cursor.Rewind(start)
		default:
			val := integerValue(l.cursor.Slice(digitsStart), 8)
			return l.finishInteger(start, val, 8)
		}
	}

	// Decimal integer or floating constant
	digitsStart := l.cursor.Offset()
	l.readDigits()
	isFloat := false

	if l.cursor.Current() == '.' && isDigitByte(l.cursor.Peek(1)) {
		l.cursor.Advance()
		l.readDigits()
		isFloat = true
	}

	// Exponent, with backtracking: "10elephants" is INTEGER(10) followed
	// by IDENTIFIER(elephants), not a malformed constant
	if ch := l.cursor.Current(); ch == 'e' || ch == 'E' {
		m := l.cursor.Mark()
		l.cursor.Advance()
		if s := l.cursor.Current(); s == '+' || s == '-' {
			l.cursor.Advance()
		}
		if isDigitByte(l.cursor.Current()) {
			l.readDigits()
			isFloat = true
		} else {
			l.cursor.Rewind(m)
			return l.finishBacktrackedNumber(start, digitsStart, isFloat)
		}
	}

	mantissa := l.cursor.Slice(digitsStart)

	if ch := l.cursor.Current(); isFloat || ch == 'f' || ch == 'F' {
		fsuffix, long, ok := l.scanFloatSuffix()
		if !ok {
			return l.invalidNumber(start, "malformed floating constant suffix")
		}
		return token.Token{
			Type:   token.FLOAT,
			Lexeme: l.cursor.Slice(start.offset),
			Line:   start.line,
			Column: start.column,
			Value:  &token.Value{Float: floatValue(mantissa), Base: 10, Long: long, FloatSuffix: fsuffix},
		}
	}

	return l.finishInteger(start, integerValue(mantissa, 10), 10)
}

// finishBacktrackedNumber emits the constant ending right before a
// rejected exponent. No suffix scan: the following characters belong to
// the next (identifier) token.
func (l *Lexer) finishBacktrackedNumber(start Mark, digitsStart int, isFloat bool) token.Token {
	text := l.cursor.Slice(digitsStart)
	if isFloat {
		return token.Token{
			Type:   token.FLOAT,
			Lexeme: l.cursor.Slice(start.offset),
			Line:   start.line,
			Column: start.column,
			Value:  &token.Value{Float: floatValue(text), Base: 10},
		}
	}
	return token.Token{
		Type:   token.INTEGER,
		Lexeme: l.cursor.Slice(start.offset),
		Line:   start.line,
		Column: start.column,
		Value:  &token.Value{Int: integerValue(text, 10), Base: 10},
	}
}

// finishInteger scans u/U l/L suffixes and builds the INTEGER token
func (l *Lexer) finishInteger(start Mark, val uint64, base int) token.Token {
	unsigned, long, ok := l.scanIntSuffix()
	if !ok {
		return l.invalidNumber(start, "malformed integer constant")
	}
	return token.Token{
		Type:   token.INTEGER,
		Lexeme: l.cursor.Slice(start.offset),
		Line:   start.line,
		Column: start.column,
		Value:  &token.Value{Int: val, Base: base, Unsigned: unsigned, Long: long},
	}
}

// scanIntSuffix accepts at most one u/U and one l/L in either order.
// C89 has no ll/LL; a second occurrence or any trailing identifier
// character makes the constant malformed.
func (l *Lexer) scanIntSuffix() (unsigned, long, ok bool) {
	for {
		ch := l.cursor.Current()
		switch {
		case ch == 'u' || ch == 'U':
			if unsigned {
				return false, false, false
			}
			unsigned = true
			l.cursor.Advance()
		case ch == 'l' || ch == 'L':
			if long {
				return false, false, false
			}
			long = true
			l.cursor.Advance()
		default:
			if ch < 128 && isIdentPart[ch] {
				return false, false, false
			}
			return unsigned, long, true
		}
	}
}

// scanFloatSuffix accepts one f/F or one l/L
func (l *Lexer) scanFloatSuffix() (fsuffix, long, ok bool) {
	switch ch := l.cursor.Current(); {
	case ch == 'f' || ch == 'F':
		fsuffix = true
		l.cursor.Advance()
	case ch == 'l' || ch == 'L':
		long = true
		l.cursor.Advance()
	}
	if ch := l.cursor.Current(); ch < 128 && isIdentPart[ch] {
		return false, false, false
	}
	return fsuffix, long, true
}

// isDigitByte is the bounds-checked table lookup for bytes that may be
// outside the ASCII range
func isDigitByte(ch byte) bool {
	return ch < 128 && isDigit[ch]
}

// readDigits consumes a run of decimal digits
func (l *Lexer) readDigits() {
	for {
		ch := l.cursor.Current()
		if ch >= 128 || !isDigit[ch] {
			return
		}
		l.cursor.Advance()
	}
}

// invalidNumber consumes the rest of the malformed numeric blob, records
// an INVALID_NUMERIC_CONSTANT diagnostic and emits an ILLEGAL token
// carrying the raw lexeme so the scan can resume right after it
func (l *Lexer) invalidNumber(start Mark, msg string) token.Token {
	l.consumeIdentTail()
	lexeme := l.cursor.Slice(start.offset)

	// Digit-leading base-36 numerals (1z, 2f8) look like malformed
	// constants to the standard rules; with the int36 extension they are
	// valid in expression position
	if l.config.int36 && base36Shape(lexeme) && !l.expectIdent && l.inExprContext() {
		tok := token.Token{Type: token.INTEGER, Lexeme: lexeme, Line: start.line, Column: start.column}
		reinterpretBase36(&tok)
		return tok
	}

	l.bag.Add(diag.NewError(diag.CodeInvalidNumericConstant, msg, lexeme, start.line, start.column))
	return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Line: start.line, Column: start.column}
}

// consumeIdentTail eats the trailing letters/digits of a malformed token
func (l *Lexer) consumeIdentTail() {
	for {
		ch := l.cursor.Current()
		if ch >= 128 || !isIdentPart[ch] {
			return
		}
		l.cursor.Advance()
	}
}

// lexCharConstant reads a '...' constant with escape handling. Empty and
// unterminated constants and unknown escapes are recoverable errors: the
// lexeme is consumed up to the closing quote or line boundary and emitted
// as ILLEGAL so the scan continues.
func (l *Lexer) lexCharConstant() token.Token {
	start := l.cursor.Mark()
	l.cursor.Advance() // opening '

	var decoded []byte
	badEscape := byte(0)
	hasBadEscape := false

	for {
		if l.cursor.AtEOF() || l.cursor.Current() == '\n' {
			lexeme := l.cursor.Slice(start.offset)
			l.bag.Add(diag.NewError(diag.CodeUnterminatedCharacter,
				"unterminated character constant", lexeme, start.line, start.column))
			return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Line: start.line, Column: start.column}
		}

		ch := l.cursor.Current()
		if ch == '\'' {
			l.cursor.Advance()
			break
		}
		if ch == '\\' {
			l.cursor.Advance()
			b, ok := l.decodeEscape()
			if !ok {
				hasBadEscape = true
				badEscape = b
			}
			decoded = append(decoded, b)
			continue
		}
		decoded = append(decoded, ch)
		l.cursor.Advance()
	}

	lexeme := l.cursor.Slice(start.offset)

	if len(decoded) == 0 {
		l.bag.Add(diag.NewError(diag.CodeEmptyCharacter,
			"empty character constant", lexeme, start.line, start.column))
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Line: start.line, Column: start.column}
	}
	if hasBadEscape {
		l.bag.Add(diag.NewError(diag.CodeUnknownEscape,
			"unknown escape sequence \\"+string(rune(badEscape)),
			lexeme, start.line, start.column))
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Line: start.line, Column: start.column}
	}

	// Multi-character constants accumulate bytes the way most C89
	// compilers do
	var v uint64
	for _, b := range decoded {
		v = v<<8 | uint64(b)
	}

	return token.Token{
		Type:   token.CHARACTER,
		Lexeme: lexeme,
		Line:   start.line,
		Column: start.column,
		Value:  &token.Value{Int: v, Text: decoded},
	}
}

// lexStringLiteral reads a "..." literal with the same escape rules as
// character constants. Strings do not span lines; reaching a newline or
// EOF before the closing quote is a recoverable error.
func (l *Lexer) lexStringLiteral() token.Token {
	start := l.cursor.Mark()
	l.cursor.Advance() // opening "

	var decoded []byte

	for {
		if l.cursor.AtEOF() || l.cursor.Current() == '\n' {
			lexeme := l.cursor.Slice(start.offset)
			l.bag.Add(diag.NewError(diag.CodeUnterminatedString,
				"unterminated string literal", lexeme, start.line, start.column))
			return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Line: start.line, Column: start.column}
		}

		ch := l.cursor.Current()
		if ch == '"' {
			l.cursor.Advance()
			break
		}
		if ch == '\\' {
			escLine, escCol := l.cursor.Line(), l.cursor.Column()
			l.cursor.Advance()
			b, ok := l.decodeEscape()
			if !ok {
				// Unknown escapes inside strings keep the character
				// verbatim; the literal itself stays usable
				l.bag.Add(diag.NewError(diag.CodeUnknownEscape,
					"unknown escape sequence \\"+string(rune(b)),
					"\\"+string(rune(b)), escLine, escCol))
			}
			decoded = append(decoded, b)
			continue
		}
		decoded = append(decoded, ch)
		l.cursor.Advance()
	}

	return token.Token{
		Type:   token.STRING,
		Lexeme: l.cursor.Slice(start.offset),
		Line:   start.line,
		Column: start.column,
		Value:  &token.Value{Text: decoded},
	}
}

// lexPunctuator greedily matches the operator table, three-character forms
// before two before one. Anything that matches nothing is an unknown
// character: one byte is consumed and reported.
func (l *Lexer) lexPunctuator() token.Token {
	start := l.cursor.Mark()

	if s := l.peekString(3); len(s) == 3 && token.ThreeCharPuncts[s] {
		l.cursor.Advance()
		l.cursor.Advance()
		l.cursor.Advance()
		return token.Token{Type: token.PUNCTUATOR, Lexeme: s, Line: start.line, Column: start.column}
	}
	if s := l.peekString(2); len(s) == 2 && token.TwoCharPuncts[s] {
		l.cursor.Advance()
		l.cursor.Advance()
		return token.Token{Type: token.PUNCTUATOR, Lexeme: s, Line: start.line, Column: start.column}
	}
	if ch := l.cursor.Current(); ch < 128 && token.SingleCharPuncts[ch] {
		l.cursor.Advance()
		return token.Token{Type: token.PUNCTUATOR, Lexeme: string(rune(ch)), Line: start.line, Column: start.column}
	}

	// Unrecognized character: advance exactly one byte and keep going
	l.cursor.Advance()
	lexeme := l.cursor.Slice(start.offset)
	l.bag.Add(diag.NewError(diag.CodeUnknownCharacter,
		"unrecognized character", lexeme, start.line, start.column))
	return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Line: start.line, Column: start.column}
}

// peekString returns up to n upcoming bytes without consuming them
func (l *Lexer) peekString(n int) string {
	buf := make([]byte, 0, n)
	for k := 0; k < n; k++ {
		ch := l.cursor.Peek(k)
		if ch == 0 {
			break
		}
		buf = append(buf, ch)
	}
	return string(buf)
}
