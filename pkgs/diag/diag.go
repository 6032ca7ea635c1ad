package diag

import (
	"fmt"
	"sync"
)

// Severity represents the severity level of a diagnostic
type Severity int

const (
	Error Severity = iota // recoverable, scanning continued past it
	Fatal                 // scanning halted at this point
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Diagnostic codes for the lexical error taxonomy
const (
	CodeInvalidNumericConstant = "INVALID_NUMERIC_CONSTANT"
	CodeUnterminatedString     = "UNTERMINATED_STRING_LITERAL"
	CodeUnterminatedCharacter  = "UNTERMINATED_CHARACTER_CONSTANT"
	CodeEmptyCharacter         = "EMPTY_CHARACTER_CONSTANT"
	CodeUnknownEscape          = "UNKNOWN_ESCAPE_SEQUENCE"
	CodeUnknownCharacter       = "UNKNOWN_CHARACTER"
	CodeUnterminatedComment    = "UNTERMINATED_BLOCK_COMMENT"
)

// Diagnostic represents one lexical error with its source location
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Lexeme   string // raw source text the error covers
	Line     int
	Column   int
}

// String formats the diagnostic the way the CLI prints it
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s [%s]", d.Line, d.Column, d.Severity, d.Message, d.Code)
}

// NewError creates a recoverable diagnostic
func NewError(code, message, lexeme string, line, column int) Diagnostic {
	return Diagnostic{
		Severity: Error,
		Code:     code,
		Message:  message,
		Lexeme:   lexeme,
		Line:     line,
		Column:   column,
	}
}

// NewFatal creates a fatal diagnostic
func NewFatal(code, message, lexeme string, line, column int) Diagnostic {
	return Diagnostic{
		Severity: Fatal,
		Code:     code,
		Message:  message,
		Lexeme:   lexeme,
		Line:     line,
		Column:   column,
	}
}

// Bag collects diagnostics during a scan. Each scan owns a private bag;
// the mutex only matters when a consumer drains it from another goroutine.
type Bag struct {
	mu         sync.Mutex
	diags      []Diagnostic
	errorCount int
	fatalCount int
}

// NewBag creates an empty diagnostic bag
func NewBag() *Bag {
	return &Bag{diags: make([]Diagnostic, 0)}
}

// Add adds a diagnostic to the bag
func (b *Bag) Add(d Diagnostic) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.diags = append(b.diags, d)
	switch d.Severity {
	case Error:
		b.errorCount++
	case Fatal:
		b.fatalCount++
	}
}

// HasErrors returns true if any diagnostic was collected
func (b *Bag) HasErrors() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount > 0 || b.fatalCount > 0
}

// HasFatal returns true if a fatal diagnostic was collected
func (b *Bag) HasFatal() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fatalCount > 0
}

// ErrorCount returns the number of recoverable diagnostics
func (b *Bag) ErrorCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount
}

// Diagnostics returns the collected diagnostics in scan order
func (b *Bag) Diagnostics() []Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Diagnostic, len(b.diags))
	copy(out, b.diags)
	return out
}
