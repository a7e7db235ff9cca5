package sir

import "sable/internal/types"

// Arg is a basic-block argument. Entry-block arguments are the function's
// formal parameters; identity is pointer identity.
type Arg struct {
	Block *Block
	Name  string
	Type  types.TypeID
}

// Block is a basic block: arguments followed by a straight-line instruction
// sequence.
type Block struct {
	Fn     *Func
	Args   []*Arg
	Instrs []*Instr
}

// AddArg appends a new block argument.
func (b *Block) AddArg(name string, ty types.TypeID) *Arg {
	a := &Arg{Block: b, Name: name, Type: ty}
	b.Args = append(b.Args, a)
	return a
}

// Append adds an instruction to the block and wires operand use lists.
func (b *Block) Append(in *Instr) *Instr {
	in.Block = b
	for _, op := range in.Operands() {
		if op.Instr != nil {
			op.Instr.uses = append(op.Instr.uses, in)
		}
	}
	b.Instrs = append(b.Instrs, in)
	return in
}
