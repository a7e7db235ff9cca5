package sir

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"sable/internal/source"
	"sable/internal/types"
)

// Current schema version - increment when the payload format changes.
const unitSchemaVersion uint16 = 1

// ErrSchemaMismatch is wrapped into decode errors for stale unit files.
var ErrSchemaMismatch = fmt.Errorf("sir: unit schema mismatch")

// The payload flattens the pointer-linked module into index-addressed tables:
// declarations and scopes are deduplicated by identity, values reference
// (block, slot) pairs. -1 means "absent" throughout.
type unitPayload struct {
	Schema   uint16
	Name     string
	MainFile string
	Decls    []declRec
	Scopes   []scopeRec
	Funcs    []funcRec
	Globals  []globalRec
}

type declRec struct {
	Name     string
	Pos      uint32
	Accessor uint8
	Property string
}

type locRec struct {
	HasExpr  bool
	ExprPos  uint32
	ExprDecl int32
	HasStmt  bool
	StmtPos  uint32
	HasDecl  bool
	DeclPos  uint32
	DeclDecl int32
}

type scopeRec struct {
	Parent int32
	Loc    locRec
}

type argRec struct {
	Name string
	Type uint32
}

type valueRec struct {
	Kind  uint8 // 0 none, 1 arg, 2 instr
	Block int32
	Slot  int32
}

type instrRec struct {
	Kind    uint8
	Scope   int32
	Loc     locRec
	VarName string
	VarType uint32
	Src     valueRec
	Dst     valueRec
	Callee  string
	Args    []valueRec
}

type blockRec struct {
	Args   []argRec
	Instrs []instrRec
}

type funcRec struct {
	Name   string
	Scope  int32
	Conv   uint8
	Type   uint32
	Blocks []blockRec
}

type globalRec struct {
	Name        string
	LinkageName string
	Type        uint32
	Internal    bool
	Loc         locRec
}

type unitEncoder struct {
	payload  unitPayload
	declIdx  map[*FuncDecl]int32
	scopeIdx map[*DebugScope]int32
}

// EncodeModule serializes the module as a schema-versioned msgpack container.
func EncodeModule(w io.Writer, m *Module) error {
	if m == nil {
		return fmt.Errorf("sir: nil module")
	}
	enc := &unitEncoder{
		payload: unitPayload{
			Schema:   unitSchemaVersion,
			Name:     m.Name,
			MainFile: m.MainFile,
		},
		declIdx:  make(map[*FuncDecl]int32),
		scopeIdx: make(map[*DebugScope]int32),
	}
	for _, f := range m.Funcs {
		rec, err := enc.encodeFunc(f)
		if err != nil {
			return err
		}
		enc.payload.Funcs = append(enc.payload.Funcs, rec)
	}
	for _, g := range m.Globals {
		enc.payload.Globals = append(enc.payload.Globals, globalRec{
			Name:        g.Name,
			LinkageName: g.LinkageName,
			Type:        uint32(g.Type),
			Internal:    g.Internal,
			Loc:         enc.encodeLoc(g.Loc),
		})
	}
	return msgpack.NewEncoder(w).Encode(&enc.payload)
}

func (enc *unitEncoder) encodeDecl(d *FuncDecl) int32 {
	if d == nil {
		return -1
	}
	if idx, ok := enc.declIdx[d]; ok {
		return idx
	}
	idx := int32(len(enc.payload.Decls))
	enc.declIdx[d] = idx
	enc.payload.Decls = append(enc.payload.Decls, declRec{
		Name:     d.Name,
		Pos:      uint32(d.Pos),
		Accessor: uint8(d.Accessor),
		Property: d.Property,
	})
	return idx
}

func (enc *unitEncoder) encodeLoc(l Loc) locRec {
	var rec locRec
	if l.Expr != nil {
		rec.HasExpr = true
		rec.ExprPos = uint32(l.Expr.Pos)
		rec.ExprDecl = enc.encodeDecl(l.Expr.Fn)
	} else {
		rec.ExprDecl = -1
	}
	if l.Stmt != nil {
		rec.HasStmt = true
		rec.StmtPos = uint32(l.Stmt.Pos)
	}
	if l.Decl != nil {
		rec.HasDecl = true
		rec.DeclPos = uint32(l.Decl.Pos)
		rec.DeclDecl = enc.encodeDecl(l.Decl.Fn)
	} else {
		rec.DeclDecl = -1
	}
	return rec
}

// encodeScope interns a scope, parent before child.
func (enc *unitEncoder) encodeScope(ds *DebugScope) int32 {
	if ds == nil {
		return -1
	}
	if idx, ok := enc.scopeIdx[ds]; ok {
		return idx
	}
	parent := enc.encodeScope(ds.Parent)
	idx := int32(len(enc.payload.Scopes))
	enc.scopeIdx[ds] = idx
	enc.payload.Scopes = append(enc.payload.Scopes, scopeRec{
		Parent: parent,
		Loc:    enc.encodeLoc(ds.Loc),
	})
	return idx
}

func (enc *unitEncoder) encodeFunc(f *Func) (funcRec, error) {
	rec := funcRec{
		Name:  f.Name,
		Scope: enc.encodeScope(f.Scope),
		Conv:  uint8(f.Conv),
		Type:  uint32(f.Type),
	}

	argSlot := make(map[*Arg]valueRec)
	instrSlot := make(map[*Instr]valueRec)
	for bi, b := range f.Blocks {
		for ai, a := range b.Args {
			argSlot[a] = valueRec{Kind: 1, Block: int32(bi), Slot: int32(ai)}
		}
		for ii, in := range b.Instrs {
			instrSlot[in] = valueRec{Kind: 2, Block: int32(bi), Slot: int32(ii)}
		}
	}

	encodeValue := func(v Value) (valueRec, error) {
		switch {
		case v.Arg != nil:
			slot, ok := argSlot[v.Arg]
			if !ok {
				return valueRec{}, fmt.Errorf("sir: operand argument not in function %q", f.Name)
			}
			return slot, nil
		case v.Instr != nil:
			slot, ok := instrSlot[v.Instr]
			if !ok {
				return valueRec{}, fmt.Errorf("sir: operand instruction not in function %q", f.Name)
			}
			return slot, nil
		default:
			return valueRec{Kind: 0, Block: -1, Slot: -1}, nil
		}
	}

	for _, b := range f.Blocks {
		var brec blockRec
		for _, a := range b.Args {
			brec.Args = append(brec.Args, argRec{Name: a.Name, Type: uint32(a.Type)})
		}
		for _, in := range b.Instrs {
			irec := instrRec{
				Kind:    uint8(in.Kind),
				Scope:   enc.encodeScope(in.Scope),
				Loc:     enc.encodeLoc(in.Loc),
				VarName: in.VarName,
				VarType: uint32(in.VarType),
				Callee:  in.Callee,
			}
			var err error
			if irec.Src, err = encodeValue(in.Src); err != nil {
				return funcRec{}, err
			}
			if irec.Dst, err = encodeValue(in.Dst); err != nil {
				return funcRec{}, err
			}
			for _, a := range in.Args {
				vrec, err := encodeValue(a)
				if err != nil {
					return funcRec{}, err
				}
				irec.Args = append(irec.Args, vrec)
			}
			brec.Instrs = append(brec.Instrs, irec)
		}
		rec.Blocks = append(rec.Blocks, brec)
	}
	return rec, nil
}

// DecodeModule reads a unit container and rebuilds the pointer-linked module,
// including instruction use lists.
func DecodeModule(r io.Reader) (*Module, error) {
	var payload unitPayload
	if err := msgpack.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("sir: decode unit: %w", err)
	}
	if payload.Schema != unitSchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchemaMismatch, payload.Schema, unitSchemaVersion)
	}

	decls := make([]*FuncDecl, len(payload.Decls))
	for i, d := range payload.Decls {
		decls[i] = &FuncDecl{
			Name:     d.Name,
			Pos:      source.Pos(d.Pos),
			Accessor: AccessorKind(d.Accessor),
			Property: d.Property,
		}
	}
	declAt := func(idx int32) *FuncDecl {
		if idx < 0 || int(idx) >= len(decls) {
			return nil
		}
		return decls[idx]
	}

	decodeLoc := func(rec locRec) Loc {
		var l Loc
		if rec.HasExpr {
			l.Expr = &ExprRef{Pos: source.Pos(rec.ExprPos), Fn: declAt(rec.ExprDecl)}
		}
		if rec.HasStmt {
			l.Stmt = &StmtRef{Pos: source.Pos(rec.StmtPos)}
		}
		if rec.HasDecl {
			l.Decl = &DeclRef{Pos: source.Pos(rec.DeclPos), Fn: declAt(rec.DeclDecl)}
		}
		return l
	}

	scopes := make([]*DebugScope, len(payload.Scopes))
	for i, s := range payload.Scopes {
		var parent *DebugScope
		if s.Parent >= 0 {
			if int(s.Parent) >= i {
				return nil, fmt.Errorf("sir: scope %d references parent %d out of order", i, s.Parent)
			}
			parent = scopes[s.Parent]
		}
		scopes[i] = &DebugScope{Parent: parent, Loc: decodeLoc(s.Loc)}
	}

	m := &Module{Name: payload.Name, MainFile: payload.MainFile}

	for _, frec := range payload.Funcs {
		f := &Func{
			Name: frec.Name,
			Conv: CallConv(frec.Conv),
			Type: types.TypeID(frec.Type),
		}
		if frec.Scope >= 0 {
			if int(frec.Scope) >= len(scopes) {
				return nil, fmt.Errorf("sir: function %q references unknown scope %d", frec.Name, frec.Scope)
			}
			f.Scope = scopes[frec.Scope]
		}

		// Shells first so operand references resolve across blocks.
		blocks := make([]*Block, len(frec.Blocks))
		shells := make([][]*Instr, len(frec.Blocks))
		for bi, brec := range frec.Blocks {
			b := f.NewBlock()
			blocks[bi] = b
			for _, arec := range brec.Args {
				b.AddArg(arec.Name, types.TypeID(arec.Type))
			}
			shells[bi] = make([]*Instr, len(brec.Instrs))
			for ii := range brec.Instrs {
				shells[bi][ii] = &Instr{}
			}
		}

		decodeValue := func(rec valueRec) (Value, error) {
			switch rec.Kind {
			case 0:
				return Value{}, nil
			case 1:
				if rec.Block < 0 || rec.Slot < 0 || int(rec.Block) >= len(blocks) || int(rec.Slot) >= len(blocks[rec.Block].Args) {
					return Value{}, fmt.Errorf("sir: bad argument reference %d/%d in %q", rec.Block, rec.Slot, frec.Name)
				}
				return ArgValue(blocks[rec.Block].Args[rec.Slot]), nil
			case 2:
				if rec.Block < 0 || rec.Slot < 0 || int(rec.Block) >= len(shells) || int(rec.Slot) >= len(shells[rec.Block]) {
					return Value{}, fmt.Errorf("sir: bad instruction reference %d/%d in %q", rec.Block, rec.Slot, frec.Name)
				}
				return InstrValue(shells[rec.Block][rec.Slot]), nil
			default:
				return Value{}, fmt.Errorf("sir: unknown value kind %d", rec.Kind)
			}
		}

		for bi, brec := range frec.Blocks {
			for ii, irec := range brec.Instrs {
				in := shells[bi][ii]
				in.Kind = InstrKind(irec.Kind)
				in.Loc = decodeLoc(irec.Loc)
				if irec.Scope >= 0 && int(irec.Scope) < len(scopes) {
					in.Scope = scopes[irec.Scope]
				}
				in.VarName = irec.VarName
				in.VarType = types.TypeID(irec.VarType)
				in.Callee = irec.Callee
				var err error
				if in.Src, err = decodeValue(irec.Src); err != nil {
					return nil, err
				}
				if in.Dst, err = decodeValue(irec.Dst); err != nil {
					return nil, err
				}
				for _, arec := range irec.Args {
					v, err := decodeValue(arec)
					if err != nil {
						return nil, err
					}
					in.Args = append(in.Args, v)
				}
			}
		}

		// Append in order; this also rebuilds use lists.
		for bi := range frec.Blocks {
			for _, in := range shells[bi] {
				blocks[bi].Append(in)
			}
		}

		m.AddFunc(f)
	}

	for _, grec := range payload.Globals {
		m.AddGlobal(&Global{
			Name:        grec.Name,
			LinkageName: grec.LinkageName,
			Type:        types.TypeID(grec.Type),
			Internal:    grec.Internal,
			Loc:         decodeLoc(grec.Loc),
		})
	}

	return m, nil
}
