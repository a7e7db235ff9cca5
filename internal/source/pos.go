package source

import "fmt"

// Pos is a global byte position inside a FileSet. Positions from different
// files never overlap: each file claims the half-open range starting at its
// Base. The zero value means "no position" (synthetic or compiler-generated
// code).
type Pos uint32

// NoPos marks the absence of a position.
const NoPos Pos = 0

// IsValid reports whether the position points into some file.
func (p Pos) IsValid() bool {
	return p != NoPos
}

// Span is a half-open range of global positions.
type Span struct {
	Start Pos // inclusive
	End   Pos // exclusive
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return uint32(s.End - s.Start)
}

func (s Span) IsValid() bool {
	return s.Start.IsValid()
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover extends the span to include other.
func (s Span) Cover(other Span) Span {
	if !other.IsValid() {
		return s
	}
	if !s.IsValid() {
		return other
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
