package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/aledsdavies/clex/pkgs/diag"
	"github.com/aledsdavies/clex/pkgs/lexer"
	"github.com/aledsdavies/clex/pkgs/token"
)

// Exit code constants
const (
	ExitSuccess     = 0
	ExitDiagnostics = 1 // recoverable diagnostics, only with --strict
	ExitIOError     = 2
	ExitFatalLex    = 3
)

type cliConfig struct {
	lineComments bool
	comments     bool
	int36        bool
	strict       bool
	jsonOut      bool
	watch        bool
}

func main() {
	var cfg cliConfig

	rootCmd := &cobra.Command{
		Use:          "clex <file.c>",
		Short:        "Tokenize a C89 source file",
		Long:         "clex scans a C89/C90 source file and prints its token stream.\nLexical errors are reported on stderr; scanning is best-effort and\ncontinues past recoverable errors.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var code int
			if cfg.watch {
				code = watchAndScan(args[0], cfg)
			} else {
				code = scanFile(args[0], cfg)
			}
			if code != ExitSuccess {
				os.Exit(code)
			}
			return nil
		},
	}

	rootCmd.Flags().BoolVar(&cfg.lineComments, "line-comments", false, "Allow // line comments (dialect extension, not strict C89)")
	rootCmd.Flags().BoolVar(&cfg.comments, "comments", false, "Emit COMMENT tokens instead of discarding comments")
	rootCmd.Flags().BoolVar(&cfg.int36, "int36", false, "Enable the int36 base-36 dialect extension")
	rootCmd.Flags().BoolVar(&cfg.strict, "strict", false, "Exit non-zero when recoverable lexical errors occur")
	rootCmd.Flags().BoolVar(&cfg.jsonOut, "json", false, "Print tokens as JSON")
	rootCmd.Flags().BoolVar(&cfg.watch, "watch", false, "Re-scan the file whenever it changes")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitIOError)
	}
}

func lexerOpts(cfg cliConfig) []lexer.LexerOpt {
	var opts []lexer.LexerOpt
	if cfg.lineComments {
		opts = append(opts, lexer.WithLineComments())
	}
	if cfg.comments {
		opts = append(opts, lexer.WithCommentTokens())
	}
	if cfg.int36 {
		opts = append(opts, lexer.WithInt36Extension())
	}
	return opts
}

// scanFile reads, scans and prints one file, returning the process exit code
func scanFile(path string, cfg cliConfig) int {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		return ExitIOError
	}

	result := lexer.New(string(content), lexerOpts(cfg)...).Tokenize()

	if cfg.jsonOut {
		printJSON(result)
	} else {
		printText(result)
	}

	for _, d := range result.Diagnostics {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, d)
	}

	if result.Fatal != nil {
		return ExitFatalLex
	}
	if cfg.strict && len(result.Diagnostics) > 0 {
		return ExitDiagnostics
	}
	return ExitSuccess
}

func printText(result lexer.Result) {
	for _, tok := range result.Tokens {
		fmt.Printf("%d:%d\t%s\t%s\n", tok.Line, tok.Column, tok.Type, tok.Lexeme)
	}
}

type jsonValue struct {
	Int         uint64  `json:"int,omitempty"`
	Float       float64 `json:"float,omitempty"`
	Text        string  `json:"text,omitempty"`
	Base        int     `json:"base,omitempty"`
	Unsigned    bool    `json:"unsigned,omitempty"`
	Long        bool    `json:"long,omitempty"`
	FloatSuffix bool    `json:"floatSuffix,omitempty"`
}

type jsonToken struct {
	Type   string     `json:"type"`
	Lexeme string     `json:"lexeme"`
	Line   int        `json:"line"`
	Column int        `json:"column"`
	Value  *jsonValue `json:"value,omitempty"`
}

type jsonDiagnostic struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Lexeme   string `json:"lexeme"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

type jsonResult struct {
	Tokens      []jsonToken      `json:"tokens"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
	Fatal       *jsonDiagnostic  `json:"fatal,omitempty"`
}

func printJSON(result lexer.Result) {
	out := jsonResult{
		Tokens:      make([]jsonToken, 0, len(result.Tokens)),
		Diagnostics: make([]jsonDiagnostic, 0, len(result.Diagnostics)),
	}
	for _, tok := range result.Tokens {
		out.Tokens = append(out.Tokens, toJSONToken(tok))
	}
	for _, d := range result.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, toJSONDiagnostic(d))
	}
	if result.Fatal != nil {
		f := toJSONDiagnostic(*result.Fatal)
		out.Fatal = &f
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func toJSONToken(tok token.Token) jsonToken {
	jt := jsonToken{
		Type:   tok.Type.String(),
		Lexeme: tok.Lexeme,
		Line:   tok.Line,
		Column: tok.Column,
	}
	if tok.Value != nil {
		jt.Value = &jsonValue{
			Int:         tok.Value.Int,
			Float:       tok.Value.Float,
			Text:        string(tok.Value.Text),
			Base:        tok.Value.Base,
			Unsigned:    tok.Value.Unsigned,
			Long:        tok.Value.Long,
			FloatSuffix: tok.Value.FloatSuffix,
		}
	}
	return jt
}

func toJSONDiagnostic(d diag.Diagnostic) jsonDiagnostic {
	return jsonDiagnostic{
		Severity: d.Severity.String(),
		Code:     d.Code,
		Message:  d.Message,
		Lexeme:   d.Lexeme,
		Line:     d.Line,
		Column:   d.Column,
	}
}

// watchAndScan re-scans the file on every write until interrupted
func watchAndScan(path string, cfg cliConfig) int {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating watcher: %v\n", err)
		return ExitIOError
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors typically replace the file on save,
	// which drops a watch registered on the file itself
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", dir, err)
		return ExitIOError
	}

	scanFile(path, cfg)

	target := filepath.Clean(path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return ExitSuccess
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fmt.Println("---")
				scanFile(path, cfg)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return ExitSuccess
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
		}
	}
}
