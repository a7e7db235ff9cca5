package llvm

import (
	"testing"

	"sable/internal/metadata"
	"sable/internal/sir"
	"sable/internal/source"
	"sable/internal/types"
)

func countTag(b *metadata.Builder, tag metadata.Tag) int {
	n := 0
	for id := metadata.NodeID(1); int(id) <= b.Len(); id++ {
		if node, ok := b.Get(id); ok && node.Tag == tag {
			n++
		}
	}
	return n
}

func TestEmitModuleNil(t *testing.T) {
	if _, err := EmitModule(nil, source.NewFileSet(), types.NewInterner(), nil, EmitOptions{}); err == nil {
		t.Fatalf("nil module must error")
	}
}

func TestEmitModuleDebugInfoDisabled(t *testing.T) {
	mod := &sir.Module{Name: "demo"}
	b, err := EmitModule(mod, source.NewFileSet(), types.NewInterner(), nil, EmitOptions{DebugInfo: false})
	if err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	if !b.Finalized() {
		t.Fatalf("disabled run must still finalize")
	}
	if b.Len() != 0 {
		t.Fatalf("disabled run emitted %d nodes", b.Len())
	}
}

func TestEmitModuleOneFunctionOneArgument(t *testing.T) {
	fset := source.NewFileSet()
	fid := fset.AddVirtual("main.sb", []byte("fn add(a) {\n    a;\n}\n"))
	f := fset.Get(fid)

	typesIn := types.NewInterner()
	int32ID := typesIn.Builtins().Int32
	sig := typesIn.RegisterFn([]types.TypeID{int32ID}, typesIn.Builtins().Unit, false)

	fd := &sir.FuncDecl{Name: "add", Pos: f.Pos(0)}
	ds := sir.NewScope(nil, sir.DeclLoc(fd))
	fn := &sir.Func{Name: "_S4demo3addF", Scope: ds, Type: sig}
	entry := fn.NewBlock()
	a := entry.AddArg("a", int32ID)

	loc := sir.StmtLoc(f.Pos(16))
	alloc := entry.Append(sir.NewAllocVar("a", int32ID, loc))
	entry.Append(sir.NewStore(sir.ArgValue(a), sir.InstrValue(alloc), loc))

	mod := &sir.Module{Name: "demo", MainFile: "main.sb"}
	mod.AddFunc(fn)

	b, err := EmitModule(mod, fset, typesIn, nil, EmitOptions{DebugInfo: true})
	if err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	if !b.Finalized() {
		t.Fatalf("graph not finalized")
	}

	if n := countTag(b, metadata.TagSubprogram); n != 1 {
		t.Fatalf("subprogram count = %d, want 1", n)
	}
	if n := countTag(b, metadata.TagArgVariable); n != 1 {
		t.Fatalf("argument variable count = %d, want 1", n)
	}

	// The single subprogram has a one-entry parameter list of type "int".
	for id := metadata.NodeID(1); int(id) <= b.Len(); id++ {
		node, ok := b.Get(id)
		if !ok || node.Tag != metadata.TagSubprogram {
			continue
		}
		st, ok := b.Get(node.Type)
		if !ok || st.Tag != metadata.TagSubroutineType {
			t.Fatalf("subprogram without signature")
		}
		if len(st.Params) != 1 {
			t.Fatalf("parameter count = %d, want 1", len(st.Params))
		}
		p, ok := b.Get(st.Params[0])
		if !ok || p.Name != "int" {
			t.Fatalf("parameter type = %+v, want int", p)
		}
	}

	decls := b.Declares()
	if len(decls) != 1 || decls[0].Storage != "%a.addr" {
		t.Fatalf("declare markers = %+v", decls)
	}
}

func TestEmitModuleGlobals(t *testing.T) {
	fset := source.NewFileSet()
	fid := fset.AddVirtual("main.sb", []byte("let g = 0;\n"))
	f := fset.Get(fid)

	typesIn := types.NewInterner()
	mod := &sir.Module{Name: "demo", MainFile: "main.sb"}
	mod.AddGlobal(&sir.Global{
		Name:        "g",
		LinkageName: "_S4demo1gSiv",
		Type:        typesIn.Builtins().Int64,
		Internal:    true,
		Loc:         sir.StmtLoc(f.Pos(4)),
	})

	b, err := EmitModule(mod, fset, typesIn, nil, EmitOptions{DebugInfo: true})
	if err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	if n := countTag(b, metadata.TagVariable); n != 1 {
		t.Fatalf("global count = %d, want 1", n)
	}
}
