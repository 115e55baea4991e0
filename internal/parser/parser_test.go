package parser

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"blockscope/internal/diag"
	"blockscope/internal/lexer"
	"blockscope/internal/symbols"
	"blockscope/internal/token"
	"blockscope/internal/types"
)

func newParser(input string) *Parser {
	l := lexer.New(input)
	l.ReserveAll(token.Keywords())
	return New(l, symbols.New())
}

func resolved(p *Parser) string {
	var parts []string
	for _, r := range p.Resolutions() {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, " ")
}

func TestDeclareAndUse(t *testing.T) {
	var out bytes.Buffer
	p := newParser("{ i32 a; f32 b; char c; a; b; c; }").WithOutput(&out)
	if err := p.Blocks(); err != nil {
		t.Fatalf("Blocks() error: %v", err)
	}
	if got := resolved(p); got != "a:i32 b:f32 c:char" {
		t.Fatalf("resolutions=%q", got)
	}
	if out.String() != "a:i32\nb:f32\nc:char\n" {
		t.Fatalf("output=%q", out.String())
	}
}

func TestSeparatorsAreOptional(t *testing.T) {
	p := newParser("{ i32 a f32 b char c a b c }")
	if err := p.Blocks(); err != nil {
		t.Fatalf("Blocks() error: %v", err)
	}
	if got := resolved(p); got != "a:i32 b:f32 c:char" {
		t.Fatalf("resolutions=%q", got)
	}
}

func TestEmptyInputAndEmptyBlocks(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "{}", "{ } { ; ; }", "{{{}}}"} {
		p := newParser(input)
		if err := p.Blocks(); err != nil {
			t.Fatalf("%q: unexpected error %v", input, err)
		}
		if p.Scope().Depth() != 1 {
			t.Fatalf("%q: scopes not balanced, depth=%d", input, p.Scope().Depth())
		}
	}
}

func TestOuterDeclarationsPersist(t *testing.T) {
	p := newParser("{ i32 a; { f32 b; b; } a; }")
	if err := p.Blocks(); err != nil {
		t.Fatalf("Blocks() error: %v", err)
	}
	if got := resolved(p); got != "b:f32 a:i32" {
		t.Fatalf("resolutions=%q", got)
	}
}

func TestInnerDeclarationsAreReleased(t *testing.T) {
	p := newParser("{ i32 a; { f32 b; } b; }")
	err := p.Blocks()
	var undef *diag.UndefinedSymbolError
	if !errors.As(err, &undef) {
		t.Fatalf("expected UndefinedSymbolError, got %v", err)
	}
	if undef.Name != "b" || undef.Line != 1 {
		t.Fatalf("got %+v", undef)
	}
	// the inner scope was popped before b was looked up
	if p.Scope().Depth() != 2 {
		t.Fatalf("depth=%d want=2", p.Scope().Depth())
	}
	if sym, ok := p.Scope().Search("a"); !ok || sym.Type != types.NewInt() {
		t.Fatalf("a should still resolve to i32, got %v %v", sym, ok)
	}
}

func TestShadowing(t *testing.T) {
	p := newParser("{ i32 a; { f32 a; a; } a; }")
	if err := p.Blocks(); err != nil {
		t.Fatalf("Blocks() error: %v", err)
	}
	if got := resolved(p); got != "a:f32 a:i32" {
		t.Fatalf("resolutions=%q", got)
	}
}

func TestSiblingBlocksDoNotShare(t *testing.T) {
	p := newParser("{ i32 a; a } { a }")
	err := p.Blocks()
	var undef *diag.UndefinedSymbolError
	if !errors.As(err, &undef) || undef.Name != "a" {
		t.Fatalf("expected a to be undefined in the second block, got %v", err)
	}
	if got := resolved(p); got != "a:i32" {
		t.Fatalf("resolutions=%q", got)
	}
}

func TestRedeclarationOverwrites(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	p := newParser("{ i32 a; f32 a; a }").WithLogger(logger)
	if err := p.Blocks(); err != nil {
		t.Fatalf("Blocks() error: %v", err)
	}
	if got := resolved(p); got != "a:f32" {
		t.Fatalf("resolutions=%q", got)
	}
	if !strings.Contains(logs.String(), "redeclared in same block") {
		t.Fatalf("expected a warning, logs:\n%s", logs.String())
	}
}

func TestStrictRedeclare(t *testing.T) {
	p := newParser("{ i32 a;\n f32 a; }").WithStrictRedeclare(true)
	err := p.Blocks()
	var redecl *diag.RedeclaredError
	if !errors.As(err, &redecl) || redecl.Name != "a" || redecl.Line != 2 {
		t.Fatalf("expected RedeclaredError on line 2, got %v", err)
	}

	// shadowing in a nested block is still allowed
	p = newParser("{ i32 a; { f32 a; a } }").WithStrictRedeclare(true)
	if err := p.Blocks(); err != nil {
		t.Fatalf("Blocks() error: %v", err)
	}
}

func TestUnknownTypeKeywordFallsBackToInt(t *testing.T) {
	var logs bytes.Buffer
	l := lexer.New("{ int a; a }")
	l.Reserve(token.NewWord(token.Type, "int"))
	p := New(l, nil).WithLogger(slog.New(slog.NewTextHandler(&logs, nil)))
	if err := p.Blocks(); err != nil {
		t.Fatalf("Blocks() error: %v", err)
	}
	if got := resolved(p); got != "a:i32" {
		t.Fatalf("resolutions=%q", got)
	}
	if !strings.Contains(logs.String(), "keyword=int") {
		t.Fatalf("fallback not logged:\n%s", logs.String())
	}
}

func TestMissingClosingBrace(t *testing.T) {
	for _, input := range []string{"{ i32 a", "{ i32 a;", "{ { i32 a; }", "{"} {
		err := newParser(input).Blocks()
		var mb *diag.MalformedBlockError
		if !errors.As(err, &mb) {
			t.Fatalf("%q: expected MalformedBlockError, got %v", input, err)
		}
		if !errors.Is(err, diag.ErrEndOfStream) {
			t.Fatalf("%q: missing brace should wrap ErrEndOfStream", input)
		}
	}
}

func TestMalformedBlocks(t *testing.T) {
	tests := []struct {
		input string
		line  int
	}{
		{"}", 1},
		{"{ }\n;", 2},
		{"{ }\n\n}", 3},
	}
	for _, tt := range tests {
		err := newParser(tt.input).Blocks()
		var mb *diag.MalformedBlockError
		if !errors.As(err, &mb) {
			t.Fatalf("%q: expected MalformedBlockError, got %v", tt.input, err)
		}
		if mb.Line != tt.line || mb.EOF {
			t.Fatalf("%q: got %+v", tt.input, mb)
		}
	}
}

func TestUnexpectedTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected token.Tag
		eof      bool
	}{
		{"a", token.Symbol, false},     // a block must open with {
		{"{ i32 ; }", token.Id, false}, // declaration without a name
		{"{ i32 f32 }", token.Id, false},
		{"{ i32", token.Id, true},
		{"{ 42 }", token.Id, false},
		{"{ a <= b }", token.Id, false},
		{"{ true }", token.Id, false},
	}
	for _, tt := range tests {
		p := newParser(tt.input)
		if tt.input == "{ a <= b }" {
			p.Scope().Add(symbols.Symbol{Lexeme: "a", Type: types.NewInt()})
		}
		err := p.Blocks()
		var ut *diag.UnexpectedTokenError
		if !errors.As(err, &ut) {
			t.Fatalf("%q: expected UnexpectedTokenError, got %v", tt.input, err)
		}
		if ut.Expected != tt.expected || ut.EOF != tt.eof {
			t.Fatalf("%q: got %+v", tt.input, ut)
		}
	}
}

func TestLexicalErrorsAbort(t *testing.T) {
	p := newParser("{ i32 a; a @ }")
	err := p.Blocks()
	var lexErr *diag.LexicalError
	if !errors.As(err, &lexErr) || lexErr.Text != "@" {
		t.Fatalf("expected lexical error, got %v", err)
	}
	// uses before the bad character were still resolved
	if got := resolved(p); got != "a:i32" {
		t.Fatalf("resolutions=%q", got)
	}
}

func TestPreseededRootScope(t *testing.T) {
	root := symbols.New()
	root.Add(symbols.Symbol{Lexeme: "g", Type: types.NewChar()})
	l := lexer.New("{ g }")
	l.ReserveAll(token.Keywords())
	p := New(l, root)
	if err := p.Blocks(); err != nil {
		t.Fatalf("Blocks() error: %v", err)
	}
	if got := resolved(p); got != "g:char" {
		t.Fatalf("resolutions=%q", got)
	}
	if p.Scope() != root {
		t.Fatalf("parser should end on the root table")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestOutputErrors(t *testing.T) {
	err := newParser("{ i32 a; a }").WithOutput(failingWriter{}).Blocks()
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected write error, got %v", err)
	}
}

func TestDebugLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if err := newParser("{ i32 a; a }").WithLogger(logger).Blocks(); err != nil {
		t.Fatal(err)
	}
	for _, msg := range []string{"push scope", "declare", "resolve", "pop scope"} {
		if !strings.Contains(logs.String(), "msg=\""+msg+"\"") && !strings.Contains(logs.String(), "msg="+msg+" ") {
			t.Fatalf("missing %q in logs:\n%s", msg, logs.String())
		}
	}
}
