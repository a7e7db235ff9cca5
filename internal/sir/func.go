package sir

import (
	"fmt"

	"sable/internal/types"
)

// CallConv enumerates the calling conventions a SIR function may use.
type CallConv uint8

const (
	// ConvFreestanding is the default Sable convention.
	ConvFreestanding CallConv = iota
	// ConvMethod is the Sable method convention.
	ConvMethod
	// ConvC is the platform C convention for exported/imported symbols.
	ConvC
	// ConvForeignMethod is the host platform's native-object-model method
	// convention.
	ConvForeignMethod
)

func (c CallConv) String() string {
	switch c {
	case ConvFreestanding:
		return "freestanding"
	case ConvMethod:
		return "method"
	case ConvC:
		return "c"
	case ConvForeignMethod:
		return "foreign-method"
	default:
		return fmt.Sprintf("CallConv(%d)", c)
	}
}

// Func is one lowered function. Name is the linkage (mangled) name; the
// human-readable name, if any, is recovered from the debug scope's source
// reference.
type Func struct {
	Name   string
	Scope  *DebugScope
	Conv   CallConv
	Type   types.TypeID // lowered fn type; NoTypeID for artificial thunks
	Blocks []*Block
}

// Empty reports whether the function has no body.
func (f *Func) Empty() bool {
	return f == nil || len(f.Blocks) == 0
}

// Entry returns the entry block, or nil for bodiless functions.
func (f *Func) Entry() *Block {
	if f.Empty() {
		return nil
	}
	return f.Blocks[0]
}

// NewBlock appends a fresh basic block to the function.
func (f *Func) NewBlock() *Block {
	b := &Block{Fn: f}
	f.Blocks = append(f.Blocks, b)
	return b
}
