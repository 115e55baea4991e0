package token

import (
	"fmt"
	"strconv"
)

// Tag classifies word tokens.
// Numeric tokens carry no tag.
type Tag int

const (
	None    Tag = iota // Unclassified
	Id                 // Identifiers: x, foo_1
	Type               // Type keywords: i32, f32, char
	Symbol             // Braces and separators: { } ;
	Compare            // Comparison operators: < > <= >= == !=
	Bool               // Boolean literals: true false
)

var tagNames = map[Tag]string{
	None:    "none",
	Id:      "id",
	Type:    "type",
	Symbol:  "symbol",
	Compare: "compare",
	Bool:    "bool",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "Tag(" + strconv.Itoa(int(t)) + ")"
}

// ParseTag is the inverse of Tag.String
func ParseTag(name string) (Tag, bool) {
	for tag, n := range tagNames {
		if n == name {
			return tag, true
		}
	}
	return None, false
}

// Kind tells which variant a Token holds.
type Kind int

const (
	Word Kind = iota
	Int
	Float
)

// Token is a lexical unit.
// Int tokens use IntValue, Float tokens FloatValue, Word tokens Tag and Lexeme.
type Token struct {
	Kind       Kind
	Tag        Tag
	Lexeme     string
	IntValue   int32
	FloatValue float32
	Line       int
}

// NewInt builds an integer literal token.
func NewInt(v int32) Token {
	return Token{Kind: Int, IntValue: v}
}

// NewFloat builds a float literal token.
func NewFloat(v float32) Token {
	return Token{Kind: Float, FloatValue: v}
}

// NewWord builds a word token with the given tag.
func NewWord(tag Tag, lexeme string) Token {
	return Token{Kind: Word, Tag: tag, Lexeme: lexeme}
}

// Is reports whether t is a word with the given tag.
func (t Token) Is(tag Tag) bool {
	return t.Kind == Word && t.Tag == tag
}

// IsSymbol reports whether t is the symbol word s, e.g. "{".
func (t Token) IsSymbol(s string) bool {
	return t.Is(Symbol) && t.Lexeme == s
}

// At returns a copy of t stamped with line.
func (t Token) At(line int) Token {
	t.Line = line
	return t
}

func (t Token) String() string {
	switch t.Kind {
	case Int:
		return strconv.FormatInt(int64(t.IntValue), 10)
	case Float:
		return strconv.FormatFloat(float64(t.FloatValue), 'g', -1, 32)
	default:
		return fmt.Sprintf("%s(%q)", t.Tag, t.Lexeme)
	}
}

// Keywords returns the reserved words a lexer is normally seeded with.
// Operators and braces are classified by the lexer itself and need no entry here.
func Keywords() []Token {
	return []Token{
		NewWord(Type, "i32"),
		NewWord(Type, "f32"),
		NewWord(Type, "char"),
		NewWord(Bool, "true"),
		NewWord(Bool, "false"),
	}
}
