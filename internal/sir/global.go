package sir

import "sable/internal/types"

// Global is a module-level variable.
type Global struct {
	Name        string // source-level name
	LinkageName string // mangled symbol name
	Type        types.TypeID
	// Internal marks internal linkage; such globals are local to their
	// compilation unit.
	Internal bool
	Loc      Loc
}

// HasInternalLinkage reports whether the global is unit-local.
func (g *Global) HasInternalLinkage() bool {
	return g != nil && g.Internal
}
