package lexer

import (
	"strconv"

	"github.com/aledsdavies/clex/pkgs/token"
)

// simpleEscapes maps the escape character after a backslash to the byte it
// denotes. Octal (\ddd) and hex (\xhh) escapes are handled separately.
// Immutable after init, shared across scans.
var simpleEscapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'a':  7,
	'b':  8,
	'f':  12,
	'r':  13,
	'v':  11,
}

// decodeEscape consumes one escape sequence after the backslash has been
// consumed, and returns the decoded byte. ok is false for an unknown
// escape character, in which case the character itself is returned
// verbatim and has been consumed.
func (l *Lexer) decodeEscape() (b byte, ok bool) {
	ch := l.cursor.Current()

	if v, hit := simpleEscapes[ch]; hit {
		l.cursor.Advance()
		return v, true
	}

	// Octal escape: up to three octal digits, \0 included
	if ch < 128 && isOctalDigit[ch] {
		v := 0
		for i := 0; i < 3; i++ {
			d := l.cursor.Current()
			if d >= 128 || !isOctalDigit[d] {
				break
			}
			v = v*8 + int(d-'0')
			l.cursor.Advance()
		}
		return byte(v), true
	}

	// Hex escape: \x followed by any run of hex digits
	if next := l.cursor.Peek(1); ch == 'x' && next < 128 && isHexDigit[next] {
		l.cursor.Advance()
		v := 0
		for {
			d := l.cursor.Current()
			if d >= 128 || !isHexDigit[d] {
				break
			}
			v = v*16 + hexDigitValue(d)
			l.cursor.Advance()
		}
		return byte(v), true
	}

	// Unknown escape: keep the character as-is
	l.cursor.Advance()
	return ch, false
}

func hexDigitValue(d byte) int {
	switch {
	case d >= '0' && d <= '9':
		return int(d - '0')
	case d >= 'a' && d <= 'f':
		return int(d-'a') + 10
	default:
		return int(d-'A') + 10
	}
}

// integerValue parses the digits of an integer constant (without suffix)
// in the given base. Out-of-range values saturate, matching strconv.
func integerValue(digits string, base int) uint64 {
	v, _ := strconv.ParseUint(digits, base, 64)
	return v
}

// floatValue parses a floating constant (without suffix)
func floatValue(digits string) float64 {
	v, _ := strconv.ParseFloat(digits, 64)
	return v
}

// reinterpretBase36 re-reads an integer token's lexeme as a base-36
// numeral for the int36 extension. Suffix letters u/l are ordinary
// base-36 digits there, so the whole lexeme participates.
func reinterpretBase36(tok *token.Token) {
	// Out-of-range values saturate, matching integerValue
	v, _ := strconv.ParseUint(tok.Lexeme, 36, 64)
	tok.Value = &token.Value{Int: v, Base: 36}
}
