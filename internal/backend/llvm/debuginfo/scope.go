package debuginfo

import (
	"sable/internal/metadata"
	"sable/internal/sir"
	"sable/internal/source"
)

// GetOrCreateScope translates a SIR debug scope into a metadata scope entry,
// materializing ancestors first. A nil scope yields NoNodeID: "no scope
// available", not an error.
func (e *Engine) GetOrCreateScope(ds *sir.DebugScope) metadata.NodeID {
	if ds == nil {
		return metadata.NoNodeID
	}

	if cached, ok := e.scopeCache[ds]; ok {
		return cached
	}

	l := e.startLoc(ds.Loc)
	file := e.getOrCreateFile(l.Filename)
	parent := e.GetOrCreateScope(ds.Parent)
	if !parent.IsValid() {
		// An orphan scope hangs directly off its file.
		parent = file
	}

	scope := e.builder.CreateLexicalBlock(parent, file, l.Line, l.Col)
	e.scopeCache[ds] = scope
	return scope
}

// getOrCreateFile translates a filename into a file entry. The cache re-checks
// that the node is still alive in the store; a released node is rebuilt.
func (e *Engine) getOrCreateFile(filename string) metadata.NodeID {
	if filename == "" {
		return metadata.NoNodeID
	}

	if cached, ok := e.fileCache[filename]; ok {
		if e.builder.Alive(cached) {
			return cached
		}
	}

	dir, file := source.SplitPath(filename)
	id := e.builder.CreateFile(e.names.Str(file), e.names.Str(dir))
	e.fileCache[filename] = id
	return id
}

// SetCurrentLoc drives the line-table state machine: it attaches (line, col,
// scope) as the ambient location for subsequently emitted instructions.
func (e *Engine) SetCurrentLoc(ds *sir.DebugScope, loc sir.Loc) {
	l := e.startLoc(loc)

	scope := e.GetOrCreateScope(ds)
	if !scope.IsValid() {
		return
	}

	if l.Filename != "" && l.Filename != e.startLoc(ds.Loc).Filename {
		// We changed files in the middle of a scope. This happens, for
		// example, when constructors are inlined. Create a new scope to
		// reflect this.
		scope = e.builder.CreateLexicalBlockFile(scope, e.getOrCreateFile(l.Filename))
	}

	if l.Line == 0 && ds == e.lastScope {
		// Reuse the last source location if we are still in the same
		// scope to get a more contiguous line table.
		l.Line = e.lastLoc.Line
		l.Col = e.lastLoc.Col
	}
	e.lastLoc = l
	e.lastScope = ds

	e.builder.SetCurrentLocation(metadata.DebugLoc{Line: l.Line, Col: l.Col, Scope: scope})
}

// fileOf walks scope parents up to the owning file entry.
func (e *Engine) fileOf(scope metadata.NodeID) metadata.NodeID {
	for scope.IsValid() {
		n, ok := e.builder.Get(scope)
		if !ok {
			return metadata.NoNodeID
		}
		switch n.Tag {
		case metadata.TagFileType:
			return scope
		case metadata.TagLexicalBlock, metadata.TagLexicalBlockFile, metadata.TagSubprogram:
			scope = n.File
			if fileNode, ok := e.builder.Get(scope); ok && fileNode.Tag == metadata.TagFileType {
				return scope
			}
			scope = n.Scope
		default:
			return metadata.NoNodeID
		}
	}
	return metadata.NoNodeID
}
