package diag

import (
	"errors"
	"fmt"
	"strings"

	"blockscope/internal/token"
)

// ErrEndOfStream is wrapped by errors caused by running out of tokens.
var ErrEndOfStream = errors.New("end of stream")

// Positioned is implemented by errors that know their source line.
type Positioned interface {
	error
	Pos() int
}

// LexicalError reports text the lexer cannot turn into a token.
type LexicalError struct {
	Line   int
	Text   string
	Reason string
}

func (e *LexicalError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "unexpected character"
	}
	return fmt.Sprintf("line %d: %s %q", e.Line, reason, e.Text)
}

func (e *LexicalError) Pos() int { return e.Line }

// UnexpectedTokenError reports a token whose tag differs from the expected one,
// or a stream that ended where a token was required.
type UnexpectedTokenError struct {
	Line     int
	Expected token.Tag
	Found    token.Token
	EOF      bool
}

func (e *UnexpectedTokenError) Error() string {
	if e.EOF {
		return fmt.Sprintf("line %d: expected <%s>, found end of stream", e.Line, e.Expected)
	}
	return fmt.Sprintf("line %d: expected <%s>, found %s", e.Line, e.Expected, e.Found)
}

func (e *UnexpectedTokenError) Pos() int { return e.Line }

func (e *UnexpectedTokenError) Unwrap() error {
	if e.EOF {
		return ErrEndOfStream
	}
	return nil
}

// UndefinedSymbolError reports a use of a name no enclosing scope declares.
type UndefinedSymbolError struct {
	Line int
	Name string
}

func (e *UndefinedSymbolError) Error() string {
	return fmt.Sprintf("line %d: undefined symbol %q", e.Line, e.Name)
}

func (e *UndefinedSymbolError) Pos() int { return e.Line }

// MalformedBlockError reports a brace in the wrong place, a block left open
// at end of stream, or unbalanced scopes.
type MalformedBlockError struct {
	Line   int
	Reason string
	EOF    bool
}

func (e *MalformedBlockError) Error() string {
	return fmt.Sprintf("line %d: malformed block: %s", e.Line, e.Reason)
}

func (e *MalformedBlockError) Pos() int { return e.Line }

func (e *MalformedBlockError) Unwrap() error {
	if e.EOF {
		return ErrEndOfStream
	}
	return nil
}

// RedeclaredError reports a second declaration of a name in one scope.
// It is only produced when strict redeclaration checking is on.
type RedeclaredError struct {
	Line int
	Name string
}

func (e *RedeclaredError) Error() string {
	return fmt.Sprintf("line %d: %q redeclared in this block", e.Line, e.Name)
}

func (e *RedeclaredError) Pos() int { return e.Line }

// Render formats err for a human, quoting the offending line of source
// with a caret under its first non-blank character.
// Errors without a position are returned as is.
func Render(source, name string, err error) string {
	var pe Positioned
	if !errors.As(err, &pe) {
		return err.Error()
	}
	if name == "" {
		name = "<input>"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s at %s:%d\n", err.Error(), name, pe.Pos())

	lines := strings.Split(source, "\n")
	idx := pe.Pos() - 1
	if idx < 0 || idx >= len(lines) {
		return sb.String()
	}
	line := strings.TrimRight(lines[idx], "\r")
	sb.WriteString(line)
	sb.WriteString("\n")
	for _, r := range line {
		if r == ' ' {
			sb.WriteByte(' ')
			continue
		}
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		break
	}
	sb.WriteString("^\n")
	return sb.String()
}
