package types

// Kind identifies one of the primitive types.
type Kind int

const (
	Int Kind = iota
	Float
	Char
)

// Type is a primitive type together with its storage size in bytes.
// Values are immutable and compared with ==.
type Type struct {
	kind Kind
	size int
}

// NewInt returns the 32-bit integer type (i32).
func NewInt() Type { return Type{kind: Int, size: 4} }

// NewFloat returns the 32-bit float type (f32).
func NewFloat() Type { return Type{kind: Float, size: 4} }

// NewChar returns the 8-bit character type (char).
func NewChar() Type { return Type{kind: Char, size: 1} }

func (t Type) Kind() Kind { return t.kind }

// Size is the number of bytes a value of this type occupies.
func (t Type) Size() int { return t.size }

func (t Type) String() string {
	switch t.kind {
	case Float:
		return "f32"
	case Char:
		return "char"
	default:
		return "i32"
	}
}

// FromKeyword maps type keyword text to its Type.
// Matching is exact: "I32" is not a type keyword.
func FromKeyword(text string) (Type, bool) {
	switch text {
	case "i32":
		return NewInt(), true
	case "f32":
		return NewFloat(), true
	case "char":
		return NewChar(), true
	default:
		return Type{}, false
	}
}

// Keywords lists the type keyword spellings in declaration order.
func Keywords() []string {
	return []string{"i32", "f32", "char"}
}
