package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
//
// Base is the global position of the file's first byte; every position in
// [Base, Base+len(Content)] belongs to this file. The extra trailing position
// lets an empty file still own a resolvable position.
type File struct {
	ID      FileID
	Path    string
	Base    Pos
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// Size returns the content length in bytes.
func (f *File) Size() uint32 {
	return uint32(len(f.Content))
}

// Pos converts a byte offset inside the file into a global position.
func (f *File) Pos(off uint32) Pos {
	return f.Base + Pos(off)
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
