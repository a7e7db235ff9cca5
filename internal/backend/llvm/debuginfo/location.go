package debuginfo

import (
	"sable/internal/sir"
	"sable/internal/source"
)

// Location is a resolved source position. The zero value means "no location":
// no filename, line 0. It is recomputed on demand, never interned.
type Location struct {
	Filename string
	Line     uint32
	Col      uint32
}

// resolvePos maps a position to its file and 1-based line/column. Positions
// outside every buffer (synthetic code) yield the zero Location.
func (e *Engine) resolvePos(p source.Pos) Location {
	f, lc, ok := e.fset.Resolve(p)
	if !ok {
		return Location{}
	}
	return Location{Filename: f.Path, Line: lc.Line, Col: lc.Col}
}

// startLoc resolves a SIR source reference, preferring expressions over
// statements over declarations; expression positions are the most precise
// the frontend records.
func (e *Engine) startLoc(l sir.Loc) Location {
	return e.resolvePos(l.StartPos())
}
