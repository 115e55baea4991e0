package lexer

import (
	"strconv"
	"unicode/utf8"

	"blockscope/internal/diag"
	"blockscope/internal/token"
)

// readChar advances to the next character.
// It stops on the sentinel, so the cursor never runs past the input.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		return
	}
	l.ch = l.input[l.readPosition]
	l.position = l.readPosition
	l.readPosition += 1
}

// peekChar looks at the next character without consuming it
// Used for two-character operators like <= and !=
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return sentinel
	}
	return l.input[l.readPosition]
}

// atEnd reports whether the cursor sits on the appended sentinel.
// A NUL byte inside the source is not the end.
func (l *Lexer) atEnd() bool {
	return l.position == len(l.input)-1
}

// skipWhitespace ignores spaces, tabs, carriage returns and newlines,
// counting the newlines
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		if l.ch == '\n' {
			l.line++
		}
		l.readChar()
	}
}

// readIdentifier reads an identifier.
// First char is guaranteed to be a letter/underscore by caller.
// Subsequent chars may include digits.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads digits and at most one fraction.
// The dot is only taken when a digit follows it.
func (l *Lexer) readNumber() (token.Kind, string) {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
		return token.Float, l.input[position:l.position]
	}
	return token.Int, l.input[position:l.position]
}

func (l *Lexer) scanNumber(line int) (token.Token, error) {
	kind, text := l.readNumber()
	if kind == token.Float {
		v, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return l.failText(line, text, "float out of range")
		}
		return token.NewFloat(float32(v)).At(line), nil
	}
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return l.failText(line, text, "integer out of range")
	}
	return token.NewInt(int32(v)).At(line), nil
}

func (l *Lexer) failText(line int, text, reason string) (token.Token, error) {
	l.err = &diag.LexicalError{Line: line, Text: text, Reason: reason}
	return token.Token{}, l.err
}

// currentRune returns the full UTF-8 character at the cursor.
func (l *Lexer) currentRune() string {
	r, _ := utf8.DecodeRuneInString(l.input[l.position:])
	return string(r)
}

// isLetter checks if ch is a letter or underscore
// We allow underscores in identifiers: foo_bar
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// isDigit checks if ch is 0-9
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
