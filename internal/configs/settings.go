package configs

import (
	"log/slog"

	"blockscope/internal/token"
)

// Keyword is one reserved-table entry read from configuration.
type Keyword struct {
	Lexeme string `json:"lexeme"`
	Tag    string `json:"tag"`
}

// Settings configures one parse session.
type Settings struct {
	Keywords        []Keyword
	Defaults        bool
	LogLevel        slog.Level
	StrictRedeclare bool
}

// Default seeds the built-in keywords, logs at info and allows redeclaration.
func Default() Settings {
	return Settings{
		Defaults: true,
		LogLevel: slog.LevelInfo,
	}
}

// fileSettings mirrors the schema. Pointer fields distinguish absent from zero.
type fileSettings struct {
	Keywords        []Keyword `json:"keywords"`
	Defaults        *bool     `json:"defaults"`
	LogLevel        *string   `json:"log_level"`
	StrictRedeclare *bool     `json:"strict_redeclare"`
}

func (s Settings) merge(f fileSettings) Settings {
	s.Keywords = append(s.Keywords, f.Keywords...)
	if f.Defaults != nil {
		s.Defaults = *f.Defaults
	}
	if f.LogLevel != nil {
		var level slog.Level
		// the schema only admits names slog understands
		if err := level.UnmarshalText([]byte(*f.LogLevel)); err == nil {
			s.LogLevel = level
		}
	}
	if f.StrictRedeclare != nil {
		s.StrictRedeclare = *f.StrictRedeclare
	}
	return s
}

// Reserved returns the tokens a lexer should be seeded with, in order.
func (s Settings) Reserved() []token.Token {
	var toks []token.Token
	if s.Defaults {
		toks = append(toks, token.Keywords()...)
	}
	for _, kw := range s.Keywords {
		tag, ok := token.ParseTag(kw.Tag)
		if !ok {
			tag = token.None
		}
		toks = append(toks, token.NewWord(tag, kw.Lexeme))
	}
	return toks
}
