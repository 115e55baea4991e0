package diag

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"blockscope/internal/token"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&LexicalError{Line: 3, Text: "@"}, `line 3: unexpected character "@"`},
		{&LexicalError{Line: 1, Text: "99999999999", Reason: "integer out of range"}, `line 1: integer out of range "99999999999"`},
		{&UnexpectedTokenError{Line: 2, Expected: token.Id, Found: token.NewWord(token.Symbol, ";")}, `line 2: expected <id>, found symbol(";")`},
		{&UnexpectedTokenError{Line: 2, Expected: token.Symbol, EOF: true}, `line 2: expected <symbol>, found end of stream`},
		{&UndefinedSymbolError{Line: 4, Name: "b"}, `line 4: undefined symbol "b"`},
		{&MalformedBlockError{Line: 5, Reason: "missing }"}, `line 5: malformed block: missing }`},
		{&RedeclaredError{Line: 6, Name: "a"}, `line 6: "a" redeclared in this block`},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Fatalf("Error()=%q want=%q", got, tt.want)
		}
	}
}

func TestEndOfStreamWrapping(t *testing.T) {
	if !errors.Is(&UnexpectedTokenError{EOF: true}, ErrEndOfStream) {
		t.Fatalf("EOF unexpected-token error should wrap ErrEndOfStream")
	}
	if errors.Is(&UnexpectedTokenError{}, ErrEndOfStream) {
		t.Fatalf("tag mismatch should not wrap ErrEndOfStream")
	}
	wrapped := fmt.Errorf("parse: %w", &MalformedBlockError{Reason: "missing }", EOF: true})
	if !errors.Is(wrapped, ErrEndOfStream) {
		t.Fatalf("missing brace at EOF should wrap ErrEndOfStream")
	}
	var mb *MalformedBlockError
	if !errors.As(wrapped, &mb) || mb.Reason != "missing }" {
		t.Fatalf("errors.As failed: %v", mb)
	}
}

func TestRender(t *testing.T) {
	src := "{\n\ti32 a;\n    b;\n}\n"

	got := Render(src, "prog.bs", &UndefinedSymbolError{Line: 3, Name: "b"})
	want := "line 3: undefined symbol \"b\" at prog.bs:3\n    b;\n    ^\n"
	if got != want {
		t.Fatalf("Render=\n%q\nwant=\n%q", got, want)
	}

	got = Render(src, "", &LexicalError{Line: 2, Text: "@"})
	if !strings.Contains(got, "at <input>:2\n\ti32 a;\n\t^\n") {
		t.Fatalf("tab indentation not preserved:\n%q", got)
	}

	// out of range lines only get the header
	got = Render(src, "x", &MalformedBlockError{Line: 40, Reason: "missing }"})
	if strings.Count(got, "\n") != 1 {
		t.Fatalf("expected header only, got %q", got)
	}

	plain := errors.New("open x: no such file")
	if got := Render(src, "x", plain); got != plain.Error() {
		t.Fatalf("unpositioned error changed: %q", got)
	}
}
