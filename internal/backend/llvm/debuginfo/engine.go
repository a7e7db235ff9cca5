// Package debuginfo lowers SIR into the debug-information graph a symbolic
// debugger consumes: compile unit, file and scope entries, subprograms,
// variables, and type descriptors. Everything here is best-effort: an input
// the engine cannot resolve produces no metadata, never a failure.
package debuginfo

import (
	"fmt"

	"sable/internal/diag"
	"sable/internal/layout"
	"sable/internal/mangle"
	"sable/internal/metadata"
	"sable/internal/sir"
	"sable/internal/source"
	"sable/internal/types"
	"sable/internal/version"
)

// Options carries the externally-loaded configuration the engine reads.
type Options struct {
	// DebugInfo must be true; constructing an engine without it is a
	// caller bug.
	DebugInfo bool
	// OptLevel > 0 marks the unit (and every subprogram) as optimized.
	OptLevel int
	// MainInputFilename names the unit's primary source file. Empty for
	// synthesized units.
	MainInputFilename string
}

// TypeInfo pairs a type with the layout it was lowered with. Two types
// sharing a canonical type but differing in layout are distinct to the type
// cache.
type TypeInfo struct {
	Type      types.TypeID
	SizeBits  uint64
	AlignBits uint64
}

// TypeInfoFor derives a TypeInfo from the layout engine.
func TypeInfoFor(layouts *layout.Engine, id types.TypeID) TypeInfo {
	l := layouts.LayoutOf(id)
	return TypeInfo{Type: id, SizeBits: l.SizeBits(), AlignBits: l.AlignBits()}
}

type typeKey struct {
	canon     types.TypeID
	sizeBits  uint64
	alignBits uint64
}

// Engine owns all debug-metadata state for one compilation unit. It is
// constructed once per unit, finalized exactly once, and never reset in
// between. Not safe for concurrent use; parallel hosts run one engine per
// unit.
type Engine struct {
	opts     Options
	fset     *source.FileSet
	types    *types.Interner
	layouts  *layout.Engine
	mangler  *mangle.Mangler
	builder  *metadata.Builder
	reporter diag.Reporter

	names *nameArena
	cu    metadata.NodeID
	cwd   string

	// Grow-only caches keyed by stable IR identity. Entries are never
	// removed; stale metadata handles are detected on lookup.
	scopeCache map[*sir.DebugScope]metadata.NodeID
	fileCache  map[string]metadata.NodeID
	typeCache  map[typeKey]metadata.NodeID

	// Location state machine (§ line-table compression).
	lastLoc   Location
	lastScope *sir.DebugScope

	// Argument-scan memo.
	argFn  *sir.Func
	argIdx int
	argNo  uint32
}

// New constructs the engine and its compile unit. opts.DebugInfo must be set.
func New(opts Options, fset *source.FileSet, typesIn *types.Interner, layouts *layout.Engine, mangler *mangle.Mangler, builder *metadata.Builder, reporter diag.Reporter) *Engine {
	if !opts.DebugInfo {
		panic("debuginfo: engine constructed with debug info disabled")
	}
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	e := &Engine{
		opts:       opts,
		fset:       fset,
		types:      typesIn,
		layouts:    layouts,
		mangler:    mangler,
		builder:    builder,
		reporter:   reporter,
		names:      newNameArena(),
		scopeCache: make(map[*sir.DebugScope]metadata.NodeID),
		fileCache:  make(map[string]metadata.NodeID),
		typeCache:  make(map[typeKey]metadata.NodeID),
	}

	var dir, filename string
	if opts.MainInputFilename == "" {
		filename = "<unknown>"
		dir = e.currentDirname()
	} else {
		d, f := source.SplitPath(opts.MainInputFilename)
		filename = e.names.Str(f)
		dir = e.names.Str(d)
	}

	producer := e.names.Str(fmt.Sprintf("sablec %s", version.Number))

	// Flags and split-debug-info are carried through the format but have
	// no producer yet.
	e.cu = builder.CreateCompileUnit(metadata.LangSable, filename, dir, producer,
		opts.OptLevel > 0, "", 1, "")
	return e
}

// Finalize seals the metadata graph. Exactly once per unit.
func (e *Engine) Finalize() {
	e.builder.Finalize()
}

// CompileUnit returns the unit root node.
func (e *Engine) CompileUnit() metadata.NodeID {
	return e.cu
}

// currentDirname returns the cached working directory.
func (e *Engine) currentDirname() string {
	if e.cwd != "" {
		return e.cwd
	}
	cwd, err := source.AbsolutePath(".")
	if err != nil {
		cwd = "."
	}
	e.cwd = e.names.Str(cwd)
	return e.cwd
}
