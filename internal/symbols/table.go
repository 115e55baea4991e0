package symbols

import "blockscope/internal/types"

// Symbol is a declared name and its type.
type Symbol struct {
	Lexeme string
	Type   types.Type
}

func (s Symbol) String() string {
	return s.Lexeme + ":" + s.Type.String()
}

// Table stores the declarations of one block
// It's a map with a link to the enclosing block's table
type Table struct {
	store  map[string]Symbol
	parent *Table // Enclosing scope, nil for the root
	depth  int
}

// New creates an empty root table
func New() *Table {
	return &Table{store: make(map[string]Symbol), depth: 1}
}

// Push opens a nested scope whose parent is current.
// The returned table is the only handle callers should keep; current stays
// reachable through it until Pop.
func Push(current *Table) *Table {
	t := New()
	t.parent = current
	t.depth = current.depth + 1
	return t
}

// Pop releases t and returns its parent.
// It reports false for the root, which has no enclosing scope.
func Pop(t *Table) (*Table, bool) {
	if t.parent == nil {
		return nil, false
	}
	return t.parent, true
}

// Add declares sym in this scope, replacing an earlier declaration of the
// same name here. It reports whether one was replaced.
// Declarations in enclosing scopes are shadowed, not touched.
func (t *Table) Add(sym Symbol) (replaced bool) {
	_, replaced = t.store[sym.Lexeme]
	t.store[sym.Lexeme] = sym
	return replaced
}

// Search looks up a name
// Checks this scope, then enclosing scopes recursively
func (t *Table) Search(name string) (Symbol, bool) {
	sym, ok := t.store[name]
	if !ok && t.parent != nil {
		sym, ok = t.parent.Search(name)
	}
	return sym, ok
}

// Local looks up a name in this scope only.
func (t *Table) Local(name string) (Symbol, bool) {
	sym, ok := t.store[name]
	return sym, ok
}

// Depth is the number of tables in the chain, 1 for the root.
func (t *Table) Depth() int {
	return t.depth
}

func (t *Table) Parent() *Table {
	return t.parent
}

// Len is the number of names declared in this scope.
func (t *Table) Len() int {
	return len(t.store)
}
