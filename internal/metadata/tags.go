package metadata

// Tag identifies the DWARF entry kind of a node. Values match the DWARF
// numbering so downstream encoders can pass them through unchanged.
type Tag uint16

const (
	TagLexicalBlock   Tag = 0x0b
	TagCompileUnit    Tag = 0x11
	TagStructureType  Tag = 0x13
	TagSubroutineType Tag = 0x15
	TagBaseType       Tag = 0x24
	TagSubprogram     Tag = 0x2e
	TagFileType       Tag = 0x29
	TagVariable       Tag = 0x34

	// Local-variable tags use the legacy LLVM numbering that keeps
	// arguments and autos distinct.
	TagAutoVariable Tag = 0x100
	TagArgVariable  Tag = 0x101

	// TagLexicalBlockFile wraps a scope whose instructions come from a
	// different file than the scope's origin (inlining across files).
	TagLexicalBlockFile Tag = 0x102
)

// Lang is a DWARF source-language code.
type Lang uint16

const (
	// LangSable hijacks a low-numbered unused language code; the metadata
	// format has no code assigned to Sable yet.
	LangSable Lang = 0xf
	// LangNative is the host platform's native-object-model language. It
	// doubles as the runtime-language marker on class entries so debuggers
	// can tell native classes from Sable's own.
	LangNative Lang = 0x10
)

// Encoding is a DW_ATE base-type encoding.
type Encoding uint16

const (
	EncodingNone     Encoding = 0
	EncodingFloat    Encoding = 0x4
	EncodingSigned   Encoding = 0x5
	EncodingUnsigned Encoding = 0x7
)

// Flags is a bitset of entry attributes.
type Flags uint32

const (
	// FlagArtificial marks compiler-generated entries with no source name.
	FlagArtificial Flags = 1 << iota
	// FlagClosureBlock marks subprograms whose semantic type is a closure.
	FlagClosureBlock
)
