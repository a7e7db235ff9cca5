package mangle

import (
	"testing"

	"sable/internal/types"
)

func TestTypeNameIsStable(t *testing.T) {
	in := types.NewInterner()
	m := New(in, "demo")
	pt := in.RegisterStruct("Point", 0)

	first := m.TypeName(pt)
	second := m.TypeName(pt)
	if first == "" {
		t.Fatalf("mangled name must not be empty")
	}
	if first != second {
		t.Fatalf("mangling must be deterministic: %q vs %q", first, second)
	}
}

func TestDistinctDeclarationsGetDistinctNames(t *testing.T) {
	in := types.NewInterner()
	m := New(in, "demo")
	s := in.RegisterStruct("Thing", 0)
	c := in.RegisterClass("Thing", 0, false)
	if m.TypeName(s) == m.TypeName(c) {
		t.Fatalf("struct and class with the same name must mangle differently")
	}
}

func TestAliasManglesAsTarget(t *testing.T) {
	in := types.NewInterner()
	m := New(in, "demo")
	base := in.RegisterUnion("Either", 0)
	alias := in.RegisterAlias("E", 0, base)
	if m.TypeName(alias) != m.TypeName(base) {
		t.Fatalf("alias must mangle as its canonical target")
	}
}

func TestStructuralSpellings(t *testing.T) {
	in := types.NewInterner()
	m := New(in, "demo")
	b := in.Builtins()
	tup := in.RegisterTuple([]types.TypeID{b.Int32, b.Bool})
	fn := in.RegisterFn([]types.TypeID{tup}, b.Unit, false)

	if m.TypeName(tup) == m.TypeName(fn) {
		t.Fatalf("tuple and fn must differ")
	}
	if m.TypeName(b.Int32) == m.TypeName(b.Int64) {
		t.Fatalf("widths must affect the name")
	}
}
