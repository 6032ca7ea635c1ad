package lexer

// LexerOpt represents a lexer configuration option
type LexerOpt func(*Config)

// Config holds the dialect configuration for one scan
type Config struct {
	lineComments  bool
	commentTokens bool
	int36         bool
}

// WithLineComments enables the // line comment dialect extension.
// Strict C89 has no line comments; this is off by default.
func WithLineComments() LexerOpt {
	return func(c *Config) {
		c.lineComments = true
	}
}

// WithCommentTokens makes the lexer emit COMMENT tokens instead of
// silently discarding comment spans.
func WithCommentTokens() LexerOpt {
	return func(c *Config) {
		c.commentTokens = true
	}
}

// WithInt36Extension enables the int36 dialect: int36 becomes a reserved
// word, bare base-36 numerals (letters and digits mixed) are accepted in
// expression position, and plain integers inside an int36 declaration's
// initializer are read as base-36.
func WithInt36Extension() LexerOpt {
	return func(c *Config) {
		c.int36 = true
	}
}
