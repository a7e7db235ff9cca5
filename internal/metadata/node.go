package metadata

// NodeID references a node inside a Builder's arena. IDs are never reused;
// the zero value references nothing.
type NodeID uint32

// NoNodeID marks the absence of a node.
const NoNodeID NodeID = 0

// IsValid reports whether the id references a node.
func (id NodeID) IsValid() bool {
	return id != NoNodeID
}

// Node is one entry of the metadata graph. Only the fields meaningful for its
// Tag are populated; everything else stays zero. Nodes reference each other
// by NodeID, never by pointer, so the graph has no cyclic ownership.
type Node struct {
	ID  NodeID
	Tag Tag

	Scope NodeID // lexical parent (blocks, subprograms, types, variables)
	File  NodeID // originating file
	Line  uint32
	Col   uint32

	Name        string
	LinkageName string
	Dir         string // TagFileType: absolute directory

	// TagCompileUnit
	Lang           Lang
	Producer       string
	OptFlags       string
	RuntimeVersion uint32
	SplitName      string

	// TagStructureType
	RuntimeLang Lang

	// TagBaseType / TagStructureType
	SizeBits  uint64
	AlignBits uint64
	Encoding  Encoding

	// TagSubroutineType
	Params []NodeID

	// TagSubprogram
	Type        NodeID // also: variable type
	ScopeLine   uint32
	Conv        string // explicit calling-convention attribute
	LocalToUnit bool
	Definition  bool
	Optimized   bool

	// TagAutoVariable / TagArgVariable
	ArgNo uint32

	Flags Flags
}

// DebugLoc is the ambient "current location" attached to emitted
// instructions.
type DebugLoc struct {
	Line  uint32
	Col   uint32
	Scope NodeID
	// InlinedAt stays unset until the inliner learns to fill it in.
	InlinedAt NodeID
}

// Declare is a dbg.declare-style marker binding a storage location to a
// variable entry at a position.
type Declare struct {
	Storage string // name of the stack slot the variable lives in
	Var     NodeID
	Line    uint32
	Col     uint32
	Scope   NodeID
}
