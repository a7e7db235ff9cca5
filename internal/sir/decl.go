package sir

import "sable/internal/source"

// AccessorKind distinguishes property accessors from ordinary functions.
type AccessorKind uint8

const (
	AccessorNone AccessorKind = iota
	AccessorGet
	AccessorSet
)

// FuncDecl is the slice of an AST function declaration the backend needs:
// enough to recover a human-readable name and a declaration position.
// Property accessors are anonymous at the declaration level; Property names
// the owning declaration instead.
type FuncDecl struct {
	Name     string
	Pos      source.Pos
	Accessor AccessorKind
	Property string
}

// IsAccessor reports whether the declaration is a getter or setter.
func (d *FuncDecl) IsAccessor() bool {
	return d != nil && d.Accessor != AccessorNone
}
