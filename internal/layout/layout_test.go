package layout

import (
	"testing"

	"sable/internal/types"
)

func TestNumericLayouts(t *testing.T) {
	in := types.NewInterner()
	e := New(X86_64LinuxGNU(), in)
	b := in.Builtins()

	cases := []struct {
		id   types.TypeID
		size int
	}{
		{b.Int32, 4},
		{b.Int64, 8},
		{b.Float64, 8},
		{b.Bool, 1},
	}
	for _, c := range cases {
		if got := e.LayoutOf(c.id); got.Size != c.size {
			t.Errorf("type %d: expected size %d, got %d", c.id, c.size, got.Size)
		}
	}
}

func TestAliasSharesLayoutWithTarget(t *testing.T) {
	in := types.NewInterner()
	e := New(X86_64LinuxGNU(), in)
	alias := in.RegisterAlias("MyInt", 0, in.Builtins().Int32)
	if got := e.LayoutOf(alias); got.Size != 4 {
		t.Fatalf("alias should inherit target layout, got %+v", got)
	}
}

func TestUnknownTypeIsDegenerate(t *testing.T) {
	in := types.NewInterner()
	e := New(X86_64LinuxGNU(), in)
	got := e.LayoutOf(types.NoTypeID)
	if got.Size != 0 || got.Align != 1 {
		t.Fatalf("expected degenerate layout, got %+v", got)
	}
	if got.SizeBits() != 0 || got.AlignBits() != 8 {
		t.Fatalf("bit conversion wrong: %d/%d", got.SizeBits(), got.AlignBits())
	}
}
