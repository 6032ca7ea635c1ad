package lexer

import (
	"testing"

	"github.com/aledsdavies/clex/pkgs/token"
)

func TestInt36DisabledByDefault(t *testing.T) {
	// Without the extension int36 is a plain identifier and z9 is another
	assertTokens(t, "int36 a = z9;", []tokenExpectation{
		{token.IDENTIFIER, "int36", 1, 1},
		{token.IDENTIFIER, "a", 1, 7},
		{token.PUNCTUATOR, "=", 1, 9},
		{token.IDENTIFIER, "z9", 1, 11},
		{token.PUNCTUATOR, ";", 1, 13},
		{token.EOF, "", 1, 14},
	})
}

func TestInt36Keyword(t *testing.T) {
	tok := firstToken(t, "int36 a;", WithInt36Extension())
	if tok.Type != token.KEYWORD || tok.Lexeme != "int36" {
		t.Errorf("expected KEYWORD int36, got %s %q", tok.Type, tok.Lexeme)
	}
}

func TestInt36BareNumeralInInitializer(t *testing.T) {
	result := New("int36 a = z9;", WithInt36Extension()).Tokenize()

	num := result.Tokens[3]
	if num.Type != token.INTEGER || num.Lexeme != "z9" {
		t.Fatalf("expected INTEGER z9, got %s %q", num.Type, num.Lexeme)
	}
	// z9 base 36 = 35*36 + 9
	if num.Value == nil || num.Value.Int != 35*36+9 || num.Value.Base != 36 {
		t.Errorf("expected base-36 value %d, got %+v", 35*36+9, num.Value)
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", result.Diagnostics)
	}
}

func TestInt36DigitLeadingNumeral(t *testing.T) {
	// 1z fails the standard numeric rules but is a valid base-36 numeral
	// in expression position
	result := New("x = 1z;", WithInt36Extension()).Tokenize()

	num := result.Tokens[2]
	if num.Type != token.INTEGER || num.Lexeme != "1z" {
		t.Fatalf("expected INTEGER 1z, got %s %q", num.Type, num.Lexeme)
	}
	if num.Value == nil || num.Value.Int != 1*36+35 || num.Value.Base != 36 {
		t.Errorf("expected base-36 value %d, got %+v", 1*36+35, num.Value)
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", result.Diagnostics)
	}
}

func TestInt36PlainIntegerInInitializerIsBase36(t *testing.T) {
	result := New("int36 b = 10;", WithInt36Extension()).Tokenize()

	num := result.Tokens[3]
	if num.Type != token.INTEGER {
		t.Fatalf("expected INTEGER, got %s", num.Type)
	}
	// "10" read as base 36 is 36
	if num.Value == nil || num.Value.Int != 36 || num.Value.Base != 36 {
		t.Errorf("expected base-36 value 36, got %+v", num.Value)
	}
}

func TestInt36DeclaredNameStaysIdentifier(t *testing.T) {
	// The declared name is expected to be an identifier even when its
	// shape matches a base-36 numeral
	result := New("int36 z9;", WithInt36Extension()).Tokenize()

	name := result.Tokens[1]
	if name.Type != token.IDENTIFIER || name.Lexeme != "z9" {
		t.Errorf("expected IDENTIFIER z9, got %s %q", name.Type, name.Lexeme)
	}
}

func TestInt36SecondDeclaratorAfterComma(t *testing.T) {
	result := New("int36 a1, b2;", WithInt36Extension()).Tokenize()

	first := result.Tokens[1]
	second := result.Tokens[3]
	if first.Type != token.IDENTIFIER || first.Lexeme != "a1" {
		t.Errorf("expected IDENTIFIER a1, got %s %q", first.Type, first.Lexeme)
	}
	if second.Type != token.IDENTIFIER || second.Lexeme != "b2" {
		t.Errorf("expected IDENTIFIER b2, got %s %q", second.Type, second.Lexeme)
	}
}

func TestInt36ScopeEndsAtSemicolon(t *testing.T) {
	// After the declaration ends, plain integers are decimal again
	result := New("int36 a = 10; x = 10;", WithInt36Extension()).Tokenize()

	inDecl := result.Tokens[3]
	after := result.Tokens[7]
	if inDecl.Value == nil || inDecl.Value.Int != 36 {
		t.Errorf("initializer: expected 36, got %+v", inDecl.Value)
	}
	if after.Value == nil || after.Value.Int != 10 || after.Value.Base != 10 {
		t.Errorf("after declaration: expected decimal 10, got %+v", after.Value)
	}
}

func TestInt36IdentifierOutsideExpressionStaysIdentifier(t *testing.T) {
	// Statement position after a closing paren is not expression
	// position, so a base-36 shaped name is still an identifier
	result := New("if (x) a1 = z9;", WithInt36Extension()).Tokenize()

	name := result.Tokens[4]
	if name.Type != token.IDENTIFIER || name.Lexeme != "a1" {
		t.Errorf("expected IDENTIFIER a1, got %s %q", name.Type, name.Lexeme)
	}
	// The right-hand side of the assignment is expression position
	num := result.Tokens[6]
	if num.Type != token.INTEGER || num.Value == nil || num.Value.Base != 36 {
		t.Errorf("expected base-36 INTEGER z9, got %s %+v", num.Type, num.Value)
	}
}

func TestInt36ReturnIsExpressionPosition(t *testing.T) {
	result := New("return a1;", WithInt36Extension()).Tokenize()

	num := result.Tokens[1]
	if num.Type != token.INTEGER || num.Value == nil || num.Value.Base != 36 {
		t.Errorf("expected base-36 INTEGER after return, got %s %+v", num.Type, num.Value)
	}
}

func TestInt36HexStaysHex(t *testing.T) {
	// Valid standard constants keep their standard meaning; only lexemes
	// the standard rules reject fall back to base 36
	result := New("x = 0x1A;", WithInt36Extension()).Tokenize()

	num := result.Tokens[2]
	if num.Type != token.INTEGER || num.Value == nil {
		t.Fatalf("expected INTEGER, got %s", num.Type)
	}
	if num.Value.Base != 16 || num.Value.Int != 26 {
		t.Errorf("expected hex 26, got %+v", num.Value)
	}
}
