package parser

import (
	"errors"
	"fmt"
	"io"

	"blockscope/internal/diag"
	"blockscope/internal/symbols"
	"blockscope/internal/token"
	"blockscope/internal/types"
)

// Blocks parses blocks until the input runs out.
//
//	blocks ::= block*
//
// Running out of input between blocks is success; any other error stops the parse.
func (p *Parser) Blocks() error {
	for {
		_, err := p.peek()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := p.block(); err != nil {
			return err
		}
	}
}

// block parses a braced block in its own scope.
//
//	block ::= '{' stmts '}'
func (p *Parser) block() error {
	open, err := p.expect(token.Symbol)
	if err != nil {
		return err
	}
	if !open.IsSymbol("{") {
		return &diag.MalformedBlockError{
			Line:   open.Line,
			Reason: fmt.Sprintf("expected { but found %s", open.Lexeme),
		}
	}

	p.scope = symbols.Push(p.scope)
	p.logger.Debug("push scope", "line", open.Line, "depth", p.scope.Depth())

	if err := p.stmts(); err != nil {
		return err
	}

	closing, err := p.expect(token.Symbol)
	if errors.Is(err, diag.ErrEndOfStream) {
		return &diag.MalformedBlockError{
			Line:   p.l.Line(),
			Reason: fmt.Sprintf("block opened on line %d is never closed", open.Line),
			EOF:    true,
		}
	}
	if err != nil {
		return err
	}
	if !closing.IsSymbol("}") {
		return &diag.MalformedBlockError{
			Line:   closing.Line,
			Reason: fmt.Sprintf("expected } but found %s", closing.Lexeme),
		}
	}

	parent, ok := symbols.Pop(p.scope)
	if !ok {
		return &diag.MalformedBlockError{Line: closing.Line, Reason: "} closes no open scope"}
	}
	p.scope = parent
	p.logger.Debug("pop scope", "line", closing.Line, "depth", p.scope.Depth())
	return nil
}

// stmts parses statements up to the closing brace.
// End of stream is not an error here; it just ends the list.
//
//	stmts ::= stmt*
func (p *Parser) stmts() error {
	for {
		tok, err := p.peek()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if tok.IsSymbol("}") {
			return nil
		}
		if err := p.stmt(); err != nil {
			return err
		}
	}
}

// stmt parses one statement. The separator after a declaration is optional.
//
//	stmt ::= block | type-keyword identifier ';'? | identifier | ';'
func (p *Parser) stmt() error {
	tok, err := p.peek()
	if err != nil {
		return err
	}

	switch {
	case tok.IsSymbol("{"):
		return p.block()

	case tok.IsSymbol(";"):
		_, _ = p.next()
		return nil

	case tok.Is(token.Type):
		_, _ = p.next()
		id, err := p.expect(token.Id)
		if err != nil {
			return err
		}
		if err := p.decl(tok, id); err != nil {
			return err
		}
		if next, err := p.peek(); err == nil && next.IsSymbol(";") {
			_, _ = p.next()
		}
		return nil

	case tok.Is(token.Id):
		_, _ = p.next()
		return p.factor(tok)

	default:
		_, _ = p.next()
		return &diag.UnexpectedTokenError{Line: tok.Line, Expected: token.Id, Found: tok}
	}
}

// decl declares id in the innermost scope with the type its keyword names.
func (p *Parser) decl(typeTok, id token.Token) error {
	ty, ok := types.FromKeyword(typeTok.Lexeme)
	if !ok {
		// only reachable when a caller reserves an extra type keyword
		p.logger.Warn("unknown type keyword, using i32", "keyword", typeTok.Lexeme, "line", typeTok.Line)
		ty = types.NewInt()
	}

	if p.strict {
		if _, dup := p.scope.Local(id.Lexeme); dup {
			return &diag.RedeclaredError{Line: id.Line, Name: id.Lexeme}
		}
	}

	if p.scope.Add(symbols.Symbol{Lexeme: id.Lexeme, Type: ty}) {
		p.logger.Warn("redeclared in same block", "name", id.Lexeme, "type", ty.String(), "line", id.Line)
	}
	p.logger.Debug("declare", "name", id.Lexeme, "type", ty.String(), "depth", p.scope.Depth())
	return nil
}

// factor resolves a use of id against the scope chain and emits it.
func (p *Parser) factor(id token.Token) error {
	sym, ok := p.scope.Search(id.Lexeme)
	if !ok {
		return &diag.UndefinedSymbolError{Line: id.Line, Name: id.Lexeme}
	}

	r := Resolution{Lexeme: sym.Lexeme, Type: sym.Type}
	p.resolutions = append(p.resolutions, r)
	p.logger.Debug("resolve", "name", r.Lexeme, "type", r.Type.String(), "line", id.Line)

	if _, err := fmt.Fprintln(p.out, r); err != nil {
		return fmt.Errorf("write resolution: %w", err)
	}
	return nil
}
