package token

import "testing"

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		tokenType TokenType
		expected  string
	}{
		{EOF, "EOF"},
		{ILLEGAL, "ILLEGAL"},
		{KEYWORD, "KEYWORD"},
		{IDENTIFIER, "IDENTIFIER"},
		{INTEGER, "INTEGER"},
		{FLOAT, "FLOAT"},
		{CHARACTER, "CHARACTER"},
		{STRING, "STRING"},
		{PUNCTUATOR, "PUNCTUATOR"},
		{DIRECTIVE, "DIRECTIVE"},
		{COMMENT, "COMMENT"},
		{TokenType(999), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.tokenType.String(); got != tt.expected {
			t.Errorf("TokenType(%d).String() = %q, want %q", tt.tokenType, got, tt.expected)
		}
	}
}

func TestKeywordTableIsTheC89Set(t *testing.T) {
	if len(Keywords) != 32 {
		t.Fatalf("expected 32 reserved words, got %d", len(Keywords))
	}
	for _, w := range []string{"auto", "goto", "volatile", "while", "sizeof"} {
		if !Keywords[w] {
			t.Errorf("missing reserved word %q", w)
		}
	}
	for _, w := range []string{"inline", "restrict", "_Bool", "main"} {
		if Keywords[w] {
			t.Errorf("%q should not be reserved", w)
		}
	}
}

func TestPunctuatorTablesAreDisjointPrefixClosed(t *testing.T) {
	// Every multi-character punctuator must decompose into shorter
	// punctuators, otherwise longest-match fallback could not recover
	for p := range ThreeCharPuncts {
		if !TwoCharPuncts[p[:2]] && !(SingleCharPuncts[p[0]] && SingleCharPuncts[p[1]]) {
			t.Errorf("three-char %q has no shorter punctuator prefix", p)
		}
	}
	for p := range TwoCharPuncts {
		if !SingleCharPuncts[p[0]] {
			t.Errorf("two-char %q has no single-char prefix", p)
		}
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Type: PUNCTUATOR, Lexeme: "<<=", Line: 1, Column: 1}
	if tok.String() != "<<=" {
		t.Errorf("expected %q, got %q", "<<=", tok.String())
	}
}
