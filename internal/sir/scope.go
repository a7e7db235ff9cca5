package sir

// DebugScope is one node of the lexical scope tree. Scopes only know their
// parent; the tree is recovered by walking parent links. The frontend
// guarantees the parent relation is acyclic.
type DebugScope struct {
	Parent *DebugScope
	Loc    Loc
}

// NewScope creates a child scope under parent.
func NewScope(parent *DebugScope, loc Loc) *DebugScope {
	return &DebugScope{Parent: parent, Loc: loc}
}
