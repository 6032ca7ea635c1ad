package lexer

// Mark is an opaque cursor checkpoint used for bounded backtracking
// (ambiguous punctuators, exponents that turn out to be identifiers).
type Mark struct {
	offset int
	line   int
	column int
}

// Cursor walks an in-memory source buffer and tracks byte offset, line and
// column. It performs no I/O; the entire source is loaded before the scan
// starts and the buffer is never mutated.
type Cursor struct {
	src    string
	offset int
	line   int
	column int
}

// NewCursor creates a cursor positioned at the start of src
func NewCursor(src string) *Cursor {
	return &Cursor{src: src, line: 1, column: 1}
}

// Peek returns the byte k positions ahead without consuming it.
// Past the end of the buffer it returns 0, the EOF sentinel.
func (c *Cursor) Peek(k int) byte {
	if c.offset+k >= len(c.src) {
		return 0
	}
	return c.src[c.offset+k]
}

// Current returns the byte under the cursor (Peek of zero)
func (c *Cursor) Current() byte {
	return c.Peek(0)
}

// Advance consumes one byte. A newline resets column to 1 and increments
// line; any other byte increments column. Advancing past EOF is a no-op.
func (c *Cursor) Advance() {
	if c.offset >= len(c.src) {
		return
	}
	if c.src[c.offset] == '\n' {
		c.line++
		c.column = 1
	} else {
		c.column++
	}
	c.offset++
}

// AtEOF reports whether the cursor has consumed the whole buffer
func (c *Cursor) AtEOF() bool {
	return c.offset >= len(c.src)
}

// AtLineStart reports whether only spaces and tabs precede the cursor on
// the current physical line. Preprocessor directives are only recognized
// in this position.
func (c *Cursor) AtLineStart() bool {
	i := c.offset - 1
	for i >= 0 && (c.src[i] == ' ' || c.src[i] == '\t') {
		i--
	}
	return i < 0 || c.src[i] == '\n'
}

// Offset returns the current byte offset (0-based)
func (c *Cursor) Offset() int { return c.offset }

// Line returns the current line (1-based)
func (c *Cursor) Line() int { return c.line }

// Column returns the current column (1-based)
func (c *Cursor) Column() int { return c.column }

// Mark captures the current position for a later Rewind
func (c *Cursor) Mark() Mark {
	return Mark{offset: c.offset, line: c.line, column: c.column}
}

// Rewind restores a position captured by Mark
func (c *Cursor) Rewind(m Mark) {
	c.offset = m.offset
	c.line = m.line
	c.column = m.column
}

// Slice returns the source text between a previous offset and the cursor
func (c *Cursor) Slice(from int) string {
	return c.src[from:c.offset]
}
