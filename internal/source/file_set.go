package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"sort"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files and resolves global positions
// back to (file, line, column). Files are assigned non-overlapping base
// offsets in the order they are added, so FileContaining can binary-search
// by base.
type FileSet struct {
	files   []File
	index   map[string]FileID // normalized path -> latest id
	nextPos Pos
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files:   make([]File, 0),
		index:   make(map[string]FileID),
		nextPos: 1, // position 0 is reserved for NoPos
	}
}

// Add stores a file from normalized bytes, computes LineIdx and Hash, assigns
// a fresh base offset, and returns a new FileID. It always creates a new
// FileID even if a file with the same path already exists.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("len(files) overflow: %w", err))
	}
	id := FileID(lenFiles)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    normalizedPath,
		Base:    fs.nextPos,
		Content: content,
		LineIdx: lineIdx,
		Hash:    hash,
		Flags:   flags,
	})
	// +1 so even an empty file owns one position.
	fs.nextPos += Pos(len(content)) + 1
	fs.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the
// FileVirtual flag.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.index[normalizePath(path)]
	return id, ok
}

// FileContaining returns the file owning the given position. Synthetic
// positions (NoPos or past the last file) resolve to nothing.
func (fs *FileSet) FileContaining(p Pos) (*File, bool) {
	if !p.IsValid() || len(fs.files) == 0 {
		return nil, false
	}
	// Largest i with files[i].Base <= p.
	i := sort.Search(len(fs.files), func(i int) bool {
		return fs.files[i].Base > p
	}) - 1
	if i < 0 {
		return nil, false
	}
	f := &fs.files[i]
	if p > f.Base+Pos(len(f.Content)) {
		return nil, false
	}
	return f, true
}

// Resolve converts a global position into a file and line/column pair.
func (fs *FileSet) Resolve(p Pos) (*File, LineCol, bool) {
	f, ok := fs.FileContaining(p)
	if !ok {
		return nil, LineCol{}, false
	}
	return f, toLineCol(f.LineIdx, uint32(p-f.Base)), true
}

// ResolveSpan resolves the start and end of a span.
func (fs *FileSet) ResolveSpan(span Span) (start, end LineCol, ok bool) {
	f, ok := fs.FileContaining(span.Start)
	if !ok {
		return LineCol{}, LineCol{}, false
	}
	start = toLineCol(f.LineIdx, uint32(span.Start-f.Base))
	end = toLineCol(f.LineIdx, uint32(span.End-f.Base))
	return start, end, true
}

// GetLine returns the line with the given 1-based number, or "" if it does
// not exist.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}

	var start, end uint32
	lenLineIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if (lineNum - 1) < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}

	if start >= lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}

	return string(f.Content[start:end])
}
