package lexer

import (
	"io"
	"iter"

	"blockscope/internal/diag"
	"blockscope/internal/token"
)

// sentinel terminates every input. Reaching it means end of stream.
const sentinel = 0

// Lexer holds the state while tokenizing input
// It reads byte by byte and never moves backwards
type Lexer struct {
	input        string // The source code plus the sentinel
	position     int    // Current position in input (points to current char)
	readPosition int    // Current reading position (after current char)
	ch           byte   // Current character under examination
	line         int    // Line of the current character, starting at 1

	// reserved maps a lexeme to its canonical token. Seeded by the caller
	// with keywords and grown with every new identifier.
	reserved map[string]token.Token

	err error // First lexical error, returned by every later Scan
}

// New creates a new Lexer for the given input.
// The reserved table starts empty; seed it with Reserve or ReserveAll.
func New(input string) *Lexer {
	l := &Lexer{
		input:    input + string(rune(sentinel)),
		line:     1,
		reserved: make(map[string]token.Token),
	}
	l.readChar() // Initialize with first character
	return l
}

// Reserve registers tok under its lexeme, replacing any earlier entry.
// Only word tokens can be reserved; numbers are ignored.
func (l *Lexer) Reserve(tok token.Token) {
	if tok.Kind != token.Word {
		return
	}
	tok.Line = 0
	l.reserved[tok.Lexeme] = tok
}

// ReserveAll reserves every token in order, so later entries win.
func (l *Lexer) ReserveAll(toks []token.Token) {
	for _, tok := range toks {
		l.Reserve(tok)
	}
}

// Lookup returns the reserved token for lexeme, if any.
func (l *Lexer) Lookup(lexeme string) (token.Token, bool) {
	tok, ok := l.reserved[lexeme]
	return tok, ok
}

// Line returns the line the lexer is currently on.
func (l *Lexer) Line() int {
	return l.line
}

// Scan returns the next token.
// At the end of input it returns io.EOF, as many times as it is called.
// An unrecognized character yields a *diag.LexicalError, and so does every call after it.
func (l *Lexer) Scan() (token.Token, error) {
	if l.err != nil {
		return token.Token{}, l.err
	}

	l.skipWhitespace() // Ignore spaces, tabs, newlines
	line := l.line

	switch l.ch {
	case '<', '>', '=', '!':
		// Could be a single or a two-character comparison
		if l.peekChar() == '=' {
			lexeme := string(l.ch) + "="
			l.readChar()
			l.readChar()
			return l.operator(lexeme, token.Compare, line), nil
		}
		if l.ch == '=' || l.ch == '!' {
			return l.fail(line, "")
		}
		lexeme := string(l.ch)
		l.readChar()
		return l.operator(lexeme, token.Compare, line), nil
	case '{', '}', ';':
		lexeme := string(l.ch)
		l.readChar()
		return l.operator(lexeme, token.Symbol, line), nil
	case sentinel:
		if l.atEnd() {
			return token.Token{}, io.EOF
		}
	}

	if isLetter(l.ch) {
		return l.scanWord(line), nil
	}
	if isDigit(l.ch) {
		return l.scanNumber(line)
	}
	return l.fail(line, "")
}

// Tokens yields every remaining token. A lexical error is yielded once
// and ends the sequence.
func (l *Lexer) Tokens() iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		for {
			tok, err := l.Scan()
			if err == io.EOF {
				return
			}
			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}

// operator classifies an operator or symbol lexeme.
// A reserved entry overrides the default tag.
func (l *Lexer) operator(lexeme string, tag token.Tag, line int) token.Token {
	if tok, ok := l.reserved[lexeme]; ok {
		return tok.At(line)
	}
	return token.NewWord(tag, lexeme).At(line)
}

// scanWord reads an identifier or keyword.
// Unknown words become identifiers and are reserved, so repeats hit the table.
func (l *Lexer) scanWord(line int) token.Token {
	lexeme := l.readIdentifier()
	if tok, ok := l.reserved[lexeme]; ok {
		return tok.At(line)
	}
	tok := token.NewWord(token.Id, lexeme)
	l.Reserve(tok)
	return tok.At(line)
}

// fail records a lexical error at the current character and returns it.
func (l *Lexer) fail(line int, reason string) (token.Token, error) {
	l.err = &diag.LexicalError{Line: line, Text: l.currentRune(), Reason: reason}
	return token.Token{}, l.err
}
