package debuginfo

import (
	"fmt"

	"sable/internal/diag"
	"sable/internal/metadata"
	"sable/internal/sir"
	"sable/internal/source"
	"sable/internal/types"
)

// nameForDecl attempts to figure out the source-level name of a function.
// Property accessors are anonymous, so a name is forged from the owning
// declaration.
func (e *Engine) nameForDecl(fd *sir.FuncDecl) string {
	if fd == nil {
		return ""
	}
	if fd.IsAccessor() && fd.Property != "" {
		suffix := ".set"
		if fd.Accessor == sir.AccessorGet {
			suffix = ".get"
		}
		return e.names.Str(fd.Property + suffix)
	}
	if fd.Name != "" {
		return e.names.Str(fd.Name)
	}
	return ""
}

// nameForLoc recovers a function name from a source reference, if the
// reference points at a function expression or declaration.
func (e *Engine) nameForLoc(loc sir.Loc) string {
	return e.nameForDecl(loc.FuncDecl())
}

// fnInfo resolves a signature type down to function-type metadata. A
// signature that is not a function type is reported and treated as absent.
func (e *Engine) fnInfo(sigType types.TypeID) *types.FnInfo {
	if sigType == types.NoTypeID {
		return nil
	}
	canon := e.types.Canonical(sigType)
	info, ok := e.types.FnInfo(canon)
	if !ok {
		diag.ReportWarning(e.reporter, diag.GenUnexpectedFnType, source.Span{},
			fmt.Sprintf("unexpected function type %s", e.types.MustLookup(canon).Kind))
		return nil
	}
	return info
}

// createParameterTypes lowers the flattened input types of a signature, one
// descriptor per positional parameter. A single tuple-typed parameter
// contributes one entry per element, matching the SIR calling convention.
func (e *Engine) createParameterTypes(info *types.FnInfo, scope metadata.NodeID) []metadata.NodeID {
	if info == nil {
		return nil
	}
	flat := e.types.FlattenedParams(info)
	params := make([]metadata.NodeID, 0, len(flat))
	for _, p := range flat {
		params = append(params, e.GetOrCreateType(TypeInfoFor(e.layouts, p), scope))
	}
	return params
}

// CreateFunction emits the subprogram entry for fn and registers it as the
// scope entry for ds, so nested scopes resolve under the subprogram.
func (e *Engine) CreateFunction(ds *sir.DebugScope, fn *sir.Func, conv sir.CallConv, sigType types.TypeID) {
	var name string
	var l Location
	if ds != nil {
		l = e.startLoc(ds.Loc)
		name = e.nameForLoc(ds.Loc)
	}
	linkageName := fn.Name
	file := e.getOrCreateFile(l.Filename)
	scope := e.cu
	line := l.Line

	info := e.fnInfo(sigType)
	params := e.createParameterTypes(info, scope)
	fnType := e.builder.CreateSubroutineType(file, params)

	var flags metadata.Flags
	if name == "" {
		flags |= metadata.FlagArtificial
	}
	if info != nil && info.Closure {
		flags |= metadata.FlagClosureBlock
	}

	// The format has no field for the calling convention, so its locality
	// bit is overloaded the way existing consumers expect; the convention
	// is also recorded explicitly for consumers that can read it.
	var localToUnit bool
	switch conv {
	case sir.ConvC, sir.ConvForeignMethod:
		localToUnit = true
	case sir.ConvMethod, sir.ConvFreestanding:
		localToUnit = false
	}

	sp := e.builder.CreateSubprogram(scope, name, linkageName, file, line,
		fnType, localToUnit, true /*definition*/, line,
		flags, e.opts.OptLevel > 0, conv.String())

	if ds != nil {
		e.scopeCache[ds] = sp
	}
}

// CreateFunctionFor derives scope, convention, and signature from the SIR
// function itself.
func (e *Engine) CreateFunctionFor(fn *sir.Func) {
	e.CreateFunction(fn.Scope, fn, fn.Conv, fn.Type)
}

// CreateArtificialFunction emits a subprogram for compiler-generated code
// with no source counterpart (thunks, initializers) and makes its fresh
// scope current.
func (e *Engine) CreateArtificialFunction(fn *sir.Func) *sir.DebugScope {
	scope := sir.NewScope(nil, sir.Loc{})
	e.CreateFunction(scope, fn, sir.ConvFreestanding, types.NoTypeID)
	e.SetCurrentLoc(scope, sir.Loc{})
	return scope
}
