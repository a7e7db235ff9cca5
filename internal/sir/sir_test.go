package sir

import (
	"bytes"
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"sable/internal/types"
)

func TestAppendWiresUseLists(t *testing.T) {
	f := &Func{Name: "f"}
	b := f.NewBlock()
	arg := b.AddArg("x", 1)

	alloc := b.Append(NewAllocVar("x", 1, Loc{}))
	store := b.Append(NewStore(ArgValue(arg), InstrValue(alloc), Loc{}))

	uses := alloc.Uses()
	if len(uses) != 1 || uses[0] != store {
		t.Fatalf("expected the store to be the only use of the alloca, got %v", uses)
	}
}

func TestLocStartPosPriority(t *testing.T) {
	e := &ExprRef{Pos: 10}
	s := &StmtRef{Pos: 20}
	d := &DeclRef{Pos: 30}

	l := Loc{Expr: e, Stmt: s, Decl: d}
	if got := l.StartPos(); got != 10 {
		t.Fatalf("expression position must win, got %d", got)
	}
	l = Loc{Stmt: s, Decl: d}
	if got := l.StartPos(); got != 20 {
		t.Fatalf("statement position must win over declaration, got %d", got)
	}
	l = Loc{Decl: d}
	if got := l.StartPos(); got != 30 {
		t.Fatalf("declaration position expected, got %d", got)
	}
	if got := (Loc{}).StartPos(); got != 0 {
		t.Fatalf("null reference must yield NoPos, got %d", got)
	}
}

func buildSampleModule() *Module {
	fd := &FuncDecl{Name: "main", Pos: 5}
	fnScope := NewScope(nil, DeclLoc(fd))
	inner := NewScope(fnScope, StmtLoc(12))

	f := &Func{Name: "_S4demo4mainF_ytf", Scope: fnScope, Conv: ConvFreestanding, Type: 3}
	b := f.NewBlock()
	a0 := b.AddArg("x", 2)
	alloc := b.Append(NewAllocVar("x", 2, StmtLoc(8)))
	b.Append(NewStore(ArgValue(a0), InstrValue(alloc), StmtLoc(9)))
	b.Append(NewNop(Loc{Stmt: &StmtRef{Pos: 13}}))
	_ = inner

	m := &Module{Name: "demo", MainFile: "demo.sb"}
	m.AddFunc(f)
	m.AddGlobal(&Global{Name: "g", LinkageName: "_S4demo1g", Type: 2, Internal: true, Loc: StmtLoc(3)})
	return m
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := buildSampleModule()

	var buf bytes.Buffer
	if err := EncodeModule(&buf, m); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := DecodeModule(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if got.Name != "demo" || got.MainFile != "demo.sb" {
		t.Fatalf("module header lost: %+v", got)
	}
	if len(got.Funcs) != 1 || len(got.Globals) != 1 {
		t.Fatalf("expected 1 func and 1 global, got %d/%d", len(got.Funcs), len(got.Globals))
	}

	f := got.Funcs[0]
	if f.Name != "_S4demo4mainF_ytf" || f.Conv != ConvFreestanding || f.Type != types.TypeID(3) {
		t.Fatalf("function header lost: %+v", f)
	}
	if f.Scope == nil || f.Scope.Parent != nil {
		t.Fatalf("function scope topology lost")
	}
	if fd := f.Scope.Loc.FuncDecl(); fd == nil || fd.Name != "main" {
		t.Fatalf("function declaration reference lost")
	}

	b := f.Entry()
	if b == nil || len(b.Args) != 1 || len(b.Instrs) != 3 {
		t.Fatalf("block shape lost")
	}
	alloc := b.Instrs[0]
	store := b.Instrs[1]
	if alloc.Kind != InstrAllocVar || store.Kind != InstrStore {
		t.Fatalf("instruction kinds lost")
	}
	if store.Src.Arg != b.Args[0] || store.Dst.Instr != alloc {
		t.Fatalf("operand references lost")
	}
	if uses := alloc.Uses(); len(uses) != 1 || uses[0] != store {
		t.Fatalf("use lists not rebuilt")
	}

	g := got.Globals[0]
	if !g.HasInternalLinkage() || g.LinkageName != "_S4demo1g" {
		t.Fatalf("global lost: %+v", g)
	}
}

func TestDecodeRejectsWrongSchema(t *testing.T) {
	var buf bytes.Buffer
	payload := unitPayload{Schema: unitSchemaVersion + 1, Name: "x"}
	if err := msgpack.NewEncoder(&buf).Encode(&payload); err != nil {
		t.Fatalf("setup encode failed: %v", err)
	}
	_, err := DecodeModule(&buf)
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}

func TestDecodeRejectsNegativeValueIndices(t *testing.T) {
	// Operand references in a unit file are attacker-controlled; negative
	// block/slot indices must surface as a decode error, not a panic.
	for _, kind := range []uint8{1, 2} {
		payload := unitPayload{
			Schema: unitSchemaVersion,
			Name:   "x",
			Funcs: []funcRec{{
				Name:  "f",
				Scope: -1,
				Blocks: []blockRec{{
					Instrs: []instrRec{{
						Kind:  uint8(InstrStore),
						Scope: -1,
						Src:   valueRec{Kind: kind, Block: -1, Slot: -1},
						Dst:   valueRec{Kind: 0, Block: -1, Slot: -1},
					}},
				}},
			}},
		}
		var buf bytes.Buffer
		if err := msgpack.NewEncoder(&buf).Encode(&payload); err != nil {
			t.Fatalf("setup encode failed: %v", err)
		}
		if _, err := DecodeModule(&buf); err == nil {
			t.Fatalf("kind %d: negative operand indices must fail decoding", kind)
		}
	}
}
