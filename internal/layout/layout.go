package layout

import (
	"sable/internal/types"
)

// TypeLayout is the ABI layout of a type for a specific Target.
type TypeLayout struct {
	Size  int // bytes
	Align int // bytes
}

// SizeBits returns the size in bits, the unit debug metadata is written in.
func (l TypeLayout) SizeBits() uint64 {
	return uint64(l.Size) * 8
}

// AlignBits returns the alignment in bits.
func (l TypeLayout) AlignBits() uint64 {
	return uint64(l.Align) * 8
}

// Engine computes memory layout for types.
type Engine struct {
	Target Target
	Types  *types.Interner

	cache map[types.TypeID]TypeLayout
}

// New creates a new layout Engine for the specified target.
func New(target Target, typesIn *types.Interner) *Engine {
	return &Engine{
		Target: target,
		Types:  typesIn,
		cache:  make(map[types.TypeID]TypeLayout, 256),
	}
}

// LayoutOf computes and caches the layout of a type. Unknown or unsized kinds
// yield the degenerate {0, 1} layout rather than an error: debug metadata is
// best-effort and never blocks code generation.
func (e *Engine) LayoutOf(id types.TypeID) TypeLayout {
	if e == nil || e.Types == nil {
		return TypeLayout{Size: 0, Align: 1}
	}
	canon := e.Types.Canonical(id)
	if cached, ok := e.cache[canon]; ok {
		return cached
	}
	l := e.computeLayout(canon)
	e.cache[canon] = l
	return l
}

func (e *Engine) computeLayout(id types.TypeID) TypeLayout {
	tt, ok := e.Types.Lookup(id)
	if !ok {
		return TypeLayout{Size: 0, Align: 1}
	}
	switch tt.Kind {
	case types.KindUnit:
		return TypeLayout{Size: 0, Align: 1}
	case types.KindBool:
		return TypeLayout{Size: 1, Align: 1}
	case types.KindInt, types.KindUint, types.KindFloat:
		return numericLayout(tt.Width, e.Target)
	case types.KindString, types.KindClass, types.KindFn, types.KindProtocol:
		// Reference-shaped: one pointer.
		return TypeLayout{Size: e.Target.PtrSize, Align: e.Target.PtrAlign}
	case types.KindStruct, types.KindUnion, types.KindTuple:
		// Field-level layout belongs to the out-of-band type description;
		// aggregates here only need a conservative pointer-sized footprint.
		return TypeLayout{Size: e.Target.PtrSize, Align: e.Target.PtrAlign}
	default:
		return TypeLayout{Size: 0, Align: 1}
	}
}

func numericLayout(w types.Width, target Target) TypeLayout {
	switch w {
	case types.Width8:
		return TypeLayout{Size: 1, Align: 1}
	case types.Width16:
		return TypeLayout{Size: 2, Align: 2}
	case types.Width32:
		return TypeLayout{Size: 4, Align: 4}
	case types.Width64:
		return TypeLayout{Size: 8, Align: 8}
	default:
		// WidthAny defaults to the target word.
		return TypeLayout{Size: target.PtrSize, Align: target.PtrAlign}
	}
}
