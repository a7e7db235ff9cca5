package debuginfo

import "strings"

// nameArena owns every string stored into metadata nodes. Interning through
// it does two things: concatenation-built temporaries (accessor names,
// producer strings) collapse to one copy per distinct text, and stored names
// are detached from whatever larger buffer they were sliced out of, so they
// live exactly as long as the engine. There is no removal; the arena is freed
// with the engine.
type nameArena struct {
	owned map[string]string
}

func newNameArena() *nameArena {
	return &nameArena{owned: make(map[string]string, 64)}
}

// Str returns the arena-owned copy of s.
func (a *nameArena) Str(s string) string {
	if s == "" {
		return ""
	}
	if owned, ok := a.owned[s]; ok {
		return owned
	}
	owned := strings.Clone(s)
	a.owned[owned] = owned
	return owned
}

// Bytes interns a byte slice.
func (a *nameArena) Bytes(b []byte) string {
	return a.Str(string(b))
}
