package debuginfo

import (
	"sable/internal/metadata"
	"sable/internal/sir"
)

// EmitStackVariableDeclaration emits the variable entry for a named stack
// slot. A slot whose first discoverable store reads a formal argument is
// emitted as an argument variable rather than a local; the use list of the
// alloca is the best signal SIR offers, since slots are not tagged as
// argument-backed.
func (e *Engine) EmitStackVariableDeclaration(storage string, ti TypeInfo, name string, alloc *sir.Instr) {
	for _, use := range alloc.Uses() {
		if use.Kind != sir.InstrStore {
			continue
		}
		if arg := use.Src.Arg; arg != nil && alloc.Block != nil {
			fn := alloc.Block.Fn
			e.EmitArgVariableDeclaration(storage, ti, name, e.ArgNo(fn, arg))
			return
		}
	}
	e.EmitVariableDeclaration(storage, ti, name, metadata.TagAutoVariable, 0)
}

// EmitArgVariableDeclaration emits an argument variable entry with its
// 1-based position.
func (e *Engine) EmitArgVariableDeclaration(storage string, ti TypeInfo, name string, argNo uint32) {
	e.EmitVariableDeclaration(storage, ti, name, metadata.TagArgVariable, argNo)
}

// EmitVariableDeclaration emits a local variable entry and its declare
// marker, anchored at the ambient location. Without an active location or
// scope there is nothing to attach to and the declaration is skipped.
func (e *Engine) EmitVariableDeclaration(storage string, ti TypeInfo, name string, tag metadata.Tag, argNo uint32) {
	dl, ok := e.builder.CurrentLocation()
	if !ok || !dl.Scope.IsValid() {
		return
	}

	unit := e.fileOf(dl.Scope)
	dty := e.GetOrCreateType(ti, dl.Scope)
	if !dty.IsValid() {
		// No debug type, no variable entry.
		return
	}

	v := e.builder.CreateLocalVariable(tag, dl.Scope, e.names.Str(name), unit,
		dl.Line, dty, 0, argNo)
	e.builder.InsertDeclare(storage, v, metadata.DebugLoc{Line: dl.Line, Col: dl.Col, Scope: dl.Scope})
}

// EmitGlobalVariableDeclaration emits a static/global variable entry directly
// under its file; locality follows the global's own linkage.
func (e *Engine) EmitGlobalVariableDeclaration(g *sir.Global, name, linkageName string, ti TypeInfo, loc sir.Loc) {
	l := e.startLoc(loc)
	unit := e.getOrCreateFile(l.Filename)
	e.builder.CreateGlobalVariable(unit, e.names.Str(name), e.names.Str(linkageName),
		unit, l.Line, e.GetOrCreateType(ti, unit), g.HasInternalLinkage())
}
