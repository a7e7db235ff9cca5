package metadata

import (
	"fmt"

	"fortio.org/safecast"
)

// Builder owns the node arena for one compilation unit. It is not safe for
// concurrent use; a parallel host gives each unit its own Builder.
type Builder struct {
	nodes    []Node // slot 0 reserved so NoNodeID never aliases a node
	alive    []bool
	declares []Declare

	cu        NodeID
	curLoc    DebugLoc
	hasCurLoc bool
	finalized bool
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		nodes: make([]Node, 1),
		alive: make([]bool, 1),
	}
}

func (b *Builder) add(n Node) NodeID {
	b.mutable()
	lenNodes, err := safecast.Conv[uint32](len(b.nodes))
	if err != nil {
		panic(fmt.Errorf("metadata node overflow: %w", err))
	}
	id := NodeID(lenNodes)
	n.ID = id
	b.nodes = append(b.nodes, n)
	b.alive = append(b.alive, true)
	return id
}

func (b *Builder) mutable() {
	if b.finalized {
		panic("metadata: mutation after Finalize")
	}
}

// Get returns the node for an id if it is still alive.
func (b *Builder) Get(id NodeID) (*Node, bool) {
	if !b.Alive(id) {
		return nil, false
	}
	return &b.nodes[id], true
}

// Alive reports whether the id references a node that has not been released.
func (b *Builder) Alive(id NodeID) bool {
	return id.IsValid() && int(id) < len(b.nodes) && b.alive[id]
}

// Release drops a node. The slot is tombstoned, never reused; holders of the
// id observe the node as dead and must rebuild.
func (b *Builder) Release(id NodeID) {
	if id.IsValid() && int(id) < len(b.nodes) {
		b.alive[id] = false
	}
}

// Len returns the number of slots ever allocated, dead or alive.
func (b *Builder) Len() int {
	return len(b.nodes) - 1
}

// CompileUnit returns the compile-unit node id, if one was created.
func (b *Builder) CompileUnit() NodeID {
	return b.cu
}

// CreateCompileUnit builds the unit root. Calling it twice is a caller bug.
func (b *Builder) CreateCompileUnit(lang Lang, filename, dir, producer string, optimized bool, flags string, runtimeVersion uint32, splitName string) NodeID {
	if b.cu.IsValid() {
		panic("metadata: compile unit already created")
	}
	file := b.CreateFile(filename, dir)
	id := b.add(Node{
		Tag:            TagCompileUnit,
		File:           file,
		Name:           filename,
		Dir:            dir,
		Lang:           lang,
		Producer:       producer,
		OptFlags:       flags,
		Optimized:      optimized,
		RuntimeVersion: runtimeVersion,
		SplitName:      splitName,
	})
	b.cu = id
	return id
}

// CreateFile builds a file entry from a file name and absolute directory.
func (b *Builder) CreateFile(name, dir string) NodeID {
	return b.add(Node{Tag: TagFileType, Name: name, Dir: dir})
}

// CreateLexicalBlock builds a scope entry under parent anchored at line/col.
func (b *Builder) CreateLexicalBlock(parent, file NodeID, line, col uint32) NodeID {
	return b.add(Node{Tag: TagLexicalBlock, Scope: parent, File: file, Line: line, Col: col})
}

// CreateLexicalBlockFile wraps scope in a new file context without changing
// its identity, for code inlined across file boundaries.
func (b *Builder) CreateLexicalBlockFile(scope, file NodeID) NodeID {
	return b.add(Node{Tag: TagLexicalBlockFile, Scope: scope, File: file})
}

// CreateSubroutineType builds a signature entry from parameter type entries.
func (b *Builder) CreateSubroutineType(file NodeID, params []NodeID) NodeID {
	cp := make([]NodeID, len(params))
	copy(cp, params)
	return b.add(Node{Tag: TagSubroutineType, File: file, Params: cp})
}

// CreateSubprogram builds a function entry.
func (b *Builder) CreateSubprogram(scope NodeID, name, linkageName string, file NodeID, line uint32, fnType NodeID, localToUnit, definition bool, scopeLine uint32, flags Flags, optimized bool, conv string) NodeID {
	return b.add(Node{
		Tag:         TagSubprogram,
		Scope:       scope,
		Name:        name,
		LinkageName: linkageName,
		File:        file,
		Line:        line,
		Type:        fnType,
		LocalToUnit: localToUnit,
		Definition:  definition,
		ScopeLine:   scopeLine,
		Flags:       flags,
		Optimized:   optimized,
		Conv:        conv,
	})
}

// CreateBasicType builds a primitive type entry.
func (b *Builder) CreateBasicType(name string, sizeBits, alignBits uint64, enc Encoding) NodeID {
	return b.add(Node{Tag: TagBaseType, Name: name, SizeBits: sizeBits, AlignBits: alignBits, Encoding: enc})
}

// CreateStructType builds a structure entry with no element list; field
// structure is resolved out of band from the originating unit.
func (b *Builder) CreateStructType(scope NodeID, name string, file NodeID, line uint32, sizeBits, alignBits uint64, flags Flags, runtimeLang Lang) NodeID {
	return b.add(Node{
		Tag:         TagStructureType,
		Scope:       scope,
		Name:        name,
		File:        file,
		Line:        line,
		SizeBits:    sizeBits,
		AlignBits:   alignBits,
		Flags:       flags,
		RuntimeLang: runtimeLang,
	})
}

// CreateLocalVariable builds an auto or argument variable entry.
func (b *Builder) CreateLocalVariable(tag Tag, scope NodeID, name string, file NodeID, line uint32, ty NodeID, flags Flags, argNo uint32) NodeID {
	return b.add(Node{
		Tag:   tag,
		Scope: scope,
		Name:  name,
		File:  file,
		Line:  line,
		Type:  ty,
		Flags: flags,
		ArgNo: argNo,
	})
}

// CreateGlobalVariable builds a static/global variable entry directly under
// context (normally a file).
func (b *Builder) CreateGlobalVariable(context NodeID, name, linkageName string, file NodeID, line uint32, ty NodeID, localToUnit bool) NodeID {
	return b.add(Node{
		Tag:         TagVariable,
		Scope:       context,
		Name:        name,
		LinkageName: linkageName,
		File:        file,
		Line:        line,
		Type:        ty,
		LocalToUnit: localToUnit,
	})
}

// InsertDeclare records a declare marker binding storage to a variable entry.
func (b *Builder) InsertDeclare(storage string, v NodeID, loc DebugLoc) {
	b.mutable()
	b.declares = append(b.declares, Declare{
		Storage: storage,
		Var:     v,
		Line:    loc.Line,
		Col:     loc.Col,
		Scope:   loc.Scope,
	})
}

// Declares returns the recorded declare markers.
func (b *Builder) Declares() []Declare {
	return b.declares
}

// SetCurrentLocation installs the ambient location attached to subsequently
// emitted instructions.
func (b *Builder) SetCurrentLocation(loc DebugLoc) {
	b.mutable()
	b.curLoc = loc
	b.hasCurLoc = true
}

// CurrentLocation returns the ambient location, if one is active.
func (b *Builder) CurrentLocation() (DebugLoc, bool) {
	return b.curLoc, b.hasCurLoc
}

// ClearCurrentLocation drops the ambient location.
func (b *Builder) ClearCurrentLocation() {
	b.curLoc = DebugLoc{}
	b.hasCurLoc = false
}

// Finalize seals the graph. Must be called exactly once; a second call is a
// caller bug.
func (b *Builder) Finalize() {
	if b.finalized {
		panic("metadata: Finalize called twice")
	}
	b.finalized = true
}

// Finalized reports whether the graph is sealed.
func (b *Builder) Finalized() bool {
	return b.finalized
}
