package session

import (
	"fmt"
	"io"

	"github.com/reusee/dscope"

	"blockscope/internal/configs"
	"blockscope/internal/lexer"
	"blockscope/internal/logs"
	"blockscope/internal/parser"
	"blockscope/internal/symbols"
	"blockscope/internal/token"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs configs.Module
}

// NewScope returns a scope configured by settings that logs to w.
func NewScope(settings configs.Settings, w io.Writer) dscope.Scope {
	return dscope.New(new(Module)).Fork(
		dscope.Provide(settings),
		func() logs.Writer {
			return w
		},
		func() logs.Level {
			return logs.Level(settings.LogLevel)
		},
	)
}

// Result describes one finished parse.
type Result struct {
	Session     string
	Resolutions []parser.Resolution
}

// Parse runs the block parser over source with a fresh lexer and scope chain,
// writing each resolution to out.
type Parse func(source string, out io.Writer) (Result, error)

func (Module) Parse(
	settings configs.Settings,
	newSession logs.NewSession,
) Parse {
	return func(source string, out io.Writer) (Result, error) {
		logger, id := newSession()

		l := lexer.New(source)
		l.ReserveAll(settings.Reserved())

		p := parser.New(l, symbols.New()).
			WithOutput(out).
			WithLogger(logger).
			WithStrictRedeclare(settings.StrictRedeclare)

		logger.Debug("parse start", "bytes", len(source))
		err := p.Blocks()
		result := Result{
			Session:     id,
			Resolutions: p.Resolutions(),
		}
		if err != nil {
			logger.Debug("parse failed", "error", err)
			return result, err
		}
		logger.Debug("parse done", "resolutions", len(result.Resolutions))
		return result, nil
	}
}

// Tokenize writes every token of source to out, one per line, as
// line, kind or tag, and text.
type Tokenize func(source string, out io.Writer) error

func (Module) Tokenize(
	settings configs.Settings,
) Tokenize {
	return func(source string, out io.Writer) error {
		l := lexer.New(source)
		l.ReserveAll(settings.Reserved())
		for tok, err := range l.Tokens() {
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(out, formatToken(tok)); err != nil {
				return err
			}
		}
		return nil
	}
}

func formatToken(tok token.Token) string {
	switch tok.Kind {
	case token.Int:
		return fmt.Sprintf("%d\tint\t%d", tok.Line, tok.IntValue)
	case token.Float:
		return fmt.Sprintf("%d\tfloat\t%v", tok.Line, tok.FloatValue)
	default:
		return fmt.Sprintf("%d\t%s\t%s", tok.Line, tok.Tag, tok.Lexeme)
	}
}
