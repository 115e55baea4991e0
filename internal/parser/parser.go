package parser

import (
	"io"
	"log/slog"

	"blockscope/internal/diag"
	"blockscope/internal/lexer"
	"blockscope/internal/symbols"
	"blockscope/internal/token"
	"blockscope/internal/types"
)

// Resolution is an identifier use bound to its declaration's type.
type Resolution struct {
	Lexeme string
	Type   types.Type
}

// String renders the pair as lexeme:type, e.g. "a:i32".
func (r Resolution) String() string {
	return r.Lexeme + ":" + r.Type.String()
}

type Parser struct {
	l     *lexer.Lexer   // The lexer feeding us tokens
	scope *symbols.Table // Innermost scope; enclosing scopes hang off it

	// one token of look-ahead
	peeked  bool
	peekTok token.Token
	peekErr error

	out         io.Writer
	logger      *slog.Logger
	strict      bool
	resolutions []Resolution
}

// New creates a parser reading from l and declaring into table.
// A nil table starts from an empty root scope.
func New(l *lexer.Lexer, table *symbols.Table) *Parser {
	if table == nil {
		table = symbols.New()
	}
	return &Parser{
		l:      l,
		scope:  table,
		out:    io.Discard,
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithOutput sets where each resolution is written, one per line.
func (p *Parser) WithOutput(w io.Writer) *Parser {
	p.out = w
	return p
}

func (p *Parser) WithLogger(logger *slog.Logger) *Parser {
	p.logger = logger
	return p
}

// WithStrictRedeclare makes a second declaration of a name in one block an error
// instead of an overwrite.
func (p *Parser) WithStrictRedeclare(strict bool) *Parser {
	p.strict = strict
	return p
}

// Resolutions returns every resolved use, in source order.
func (p *Parser) Resolutions() []Resolution {
	return p.resolutions
}

// Scope returns the innermost scope.
func (p *Parser) Scope() *symbols.Table {
	return p.scope
}

// next consumes a token
func (p *Parser) next() (token.Token, error) {
	if p.peeked {
		p.peeked = false
		return p.peekTok, p.peekErr
	}
	return p.l.Scan()
}

// peek returns the next token without consuming it
func (p *Parser) peek() (token.Token, error) {
	if !p.peeked {
		p.peekTok, p.peekErr = p.l.Scan()
		p.peeked = true
	}
	return p.peekTok, p.peekErr
}

// expect consumes the next token and checks it is a word tagged tag.
// End of stream gives an UnexpectedTokenError wrapping diag.ErrEndOfStream;
// lexical errors pass through unchanged.
func (p *Parser) expect(tag token.Tag) (token.Token, error) {
	tok, err := p.next()
	if err == io.EOF {
		return token.Token{}, &diag.UnexpectedTokenError{Line: p.l.Line(), Expected: tag, EOF: true}
	}
	if err != nil {
		return token.Token{}, err
	}
	if !tok.Is(tag) {
		return token.Token{}, &diag.UnexpectedTokenError{Line: tok.Line, Expected: tag, Found: tok}
	}
	return tok, nil
}
