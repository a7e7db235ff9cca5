package sir

import "sable/internal/types"

// InstrKind enumerates instruction kinds in SIR.
type InstrKind uint8

const (
	// InstrAllocVar reserves a named stack slot.
	InstrAllocVar InstrKind = iota
	// InstrStore writes Src into Dst.
	InstrStore
	// InstrCall invokes a callee with arguments.
	InstrCall
	// InstrReturn leaves the function.
	InstrReturn
	// InstrNop does nothing.
	InstrNop
)

// Value is an operand: either a block argument or the result of another
// instruction. At most one field is set.
type Value struct {
	Arg   *Arg
	Instr *Instr
}

// IsValid reports whether the value references anything.
func (v Value) IsValid() bool {
	return v.Arg != nil || v.Instr != nil
}

// ArgValue wraps a block argument as an operand.
func ArgValue(a *Arg) Value {
	return Value{Arg: a}
}

// InstrValue wraps an instruction result as an operand.
func InstrValue(in *Instr) Value {
	return Value{Instr: in}
}

// Instr is a kind-tagged instruction. Only the fields of its kind are
// meaningful.
type Instr struct {
	Kind  InstrKind
	Block *Block
	Loc   Loc
	// Scope is the debug scope the instruction was lowered in; nil means
	// "use the enclosing function's scope".
	Scope *DebugScope

	// InstrAllocVar
	VarName string
	VarType types.TypeID

	// InstrStore
	Src Value
	Dst Value

	// InstrCall
	Callee string
	Args   []Value

	uses []*Instr
}

// Uses returns the instructions consuming this instruction's result, in
// append order.
func (in *Instr) Uses() []*Instr {
	return in.uses
}

// Operands returns the values the instruction reads.
func (in *Instr) Operands() []Value {
	switch in.Kind {
	case InstrStore:
		return []Value{in.Src, in.Dst}
	case InstrCall:
		return in.Args
	case InstrReturn:
		if in.Src.IsValid() {
			return []Value{in.Src}
		}
		return nil
	default:
		return nil
	}
}

// NewAllocVar builds a stack-slot allocation for a named local.
func NewAllocVar(name string, ty types.TypeID, loc Loc) *Instr {
	return &Instr{Kind: InstrAllocVar, VarName: name, VarType: ty, Loc: loc}
}

// NewStore builds a store of src into dst.
func NewStore(src, dst Value, loc Loc) *Instr {
	return &Instr{Kind: InstrStore, Src: src, Dst: dst, Loc: loc}
}

// NewCall builds a call instruction.
func NewCall(callee string, args []Value, loc Loc) *Instr {
	return &Instr{Kind: InstrCall, Callee: callee, Args: args, Loc: loc}
}

// NewReturn builds a return. src may be the zero Value for void returns.
func NewReturn(src Value, loc Loc) *Instr {
	return &Instr{Kind: InstrReturn, Src: src, Loc: loc}
}

// NewNop builds a no-op carrying only a source reference.
func NewNop(loc Loc) *Instr {
	return &Instr{Kind: InstrNop, Loc: loc}
}
